package literal

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type parser struct {
	s    *scanner
	tok  token
	prev token
}

// Parse parses a literal document.
func Parse(src []byte) (*Document, error) {
	p := &parser{s: newScanner(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	doc, err := p.parseDocument()
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseValue parses a single bare value.
func ParseValue(src []byte) (*Value, error) {
	p := &parser{s: newScanner(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.unexpected()
	}
	return v, nil
}

func (p *parser) advance() error {
	tok, err := p.s.next()
	if err != nil {
		return err
	}
	p.prev = p.tok
	p.tok = tok
	return nil
}

// reset restarts scanning at off.
func (p *parser) reset(off int) error {
	p.s.off = off
	return p.advance()
}

func (p *parser) errorf(pos Position, format string, args ...any) error {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) unexpected() error {
	return p.errorf(p.tok.pos, "unexpected %s", p.tok.describe())
}

func (p *parser) expect(text string) error {
	if !p.tok.is(tokPunct, text) {
		return p.errorf(p.tok.pos, "expected %q, found %s", text, p.tok.describe())
	}
	return p.advance()
}

func (p *parser) source(start, end int) string {
	return string(p.s.src[start:end])
}

func (p *parser) parseDocument() (*Document, error) {
	doc := &Document{}

	switch {
	case p.tok.is(tokIdent, "export"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		if !p.tok.is(tokIdent, "default") {
			return nil, p.errorf(p.tok.pos, "expected \"default\" after export")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	case p.tok.is(tokIdent, "var"), p.tok.is(tokIdent, "let"), p.tok.is(tokIdent, "const"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind != tokIdent {
			return nil, p.errorf(p.tok.pos, "expected variable name, found %s", p.tok.describe())
		}
		doc.Binding = p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expect("="); err != nil {
			return nil, err
		}
	}

	if p.tok.kind == tokIdent && !isValueKeyword(p.tok.text) {
		call, err := p.parseCall()
		if err != nil {
			return nil, err
		}
		doc.Call = call
		for i := len(call.Args) - 1; i >= 0; i-- {
			if call.Args[i].Kind == KindObject {
				doc.Root = call.Args[i]
				break
			}
		}
		if doc.Root == nil {
			return nil, p.errorf(call.Pos, "call to %s has no options object", call.Callee)
		}
	} else {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		doc.Root = v
	}

	for p.tok.is(tokPunct, ";") {
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if p.tok.kind != tokEOF {
		return nil, p.errorf(p.tok.pos, "unexpected %s after value", p.tok.describe())
	}
	return doc, nil
}

// parseCall parses `a.b.c(arg, ...)` at the top level of a document.
func (p *parser) parseCall() (*Call, error) {
	call := &Call{Pos: p.tok.pos}
	parts := []string{p.tok.text}
	if err := p.advance(); err != nil {
		return nil, err
	}
	for p.tok.is(tokPunct, ".") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind != tokIdent {
			return nil, p.errorf(p.tok.pos, "expected property name, found %s", p.tok.describe())
		}
		parts = append(parts, p.tok.text)
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	call.Callee = strings.Join(parts, ".")
	if !p.tok.is(tokPunct, "(") {
		return nil, p.errorf(call.Pos, "unexpected identifier %q", call.Callee)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	for !p.tok.is(tokPunct, ")") {
		arg, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
		if p.tok.is(tokPunct, ",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		if !p.tok.is(tokPunct, ")") {
			return nil, p.errorf(p.tok.pos, "expected \",\" or \")\" in argument list, found %s", p.tok.describe())
		}
	}
	return call, p.advance()
}

func isValueKeyword(name string) bool {
	switch name {
	case "true", "false", "null", "undefined", "NaN", "Infinity", "function", "async", "new":
		return true
	}
	return false
}

func (p *parser) parseValue() (*Value, error) {
	tok := p.tok
	switch tok.kind {
	case tokEOF:
		return nil, p.errorf(tok.pos, "unexpected end of input, expected a value")

	case tokString:
		v := &Value{Kind: KindString, Str: tok.str, Pos: tok.pos}
		return v, p.advance()

	case tokTemplate:
		if tok.subst {
			return nil, p.errorf(tok.pos, "template substitutions are not supported")
		}
		v := &Value{Kind: KindString, Str: tok.str, Pos: tok.pos}
		return v, p.advance()

	case tokNumber:
		v := &Value{Kind: KindNumber, Num: tok.num, Raw: tok.text, Pos: tok.pos}
		return v, p.advance()

	case tokIdent:
		return p.parseIdentValue()

	case tokPunct:
		switch tok.text {
		case "{":
			return p.parseObject()
		case "[":
			return p.parseArray()
		case "(":
			return p.parseParen()
		case "-", "+":
			return p.parseSigned()
		}
	}
	return nil, p.unexpected()
}

func (p *parser) parseIdentValue() (*Value, error) {
	tok := p.tok
	var v *Value
	switch tok.text {
	case "true", "false":
		v = &Value{Kind: KindBool, Bool: tok.text == "true"}
	case "null":
		v = &Value{Kind: KindNull}
	case "undefined":
		v = &Value{Kind: KindUndefined}
	case "NaN":
		v = &Value{Kind: KindNumber, Num: math.NaN(), Raw: "NaN"}
	case "Infinity":
		v = &Value{Kind: KindNumber, Num: math.Inf(1), Raw: "Infinity"}
	case "function":
		return p.parseFunction(tok.pos)
	case "async":
		return p.parseAsync()
	case "new":
		return p.parseExpression(tok.pos)
	}
	if v != nil {
		v.Pos = tok.pos
		return v, p.advance()
	}

	if err := p.advance(); err != nil {
		return nil, err
	}
	switch {
	case p.tok.is(tokPunct, "=>"):
		return p.parseArrowBody(tok.pos)
	case p.tok.is(tokPunct, "."), p.tok.is(tokPunct, "("), p.tok.is(tokPunct, "["):
		if err := p.reset(tok.pos.Offset); err != nil {
			return nil, err
		}
		return p.parseExpression(tok.pos)
	}
	return nil, p.errorf(tok.pos, "unexpected identifier %q", tok.text)
}

func (p *parser) parseSigned() (*Value, error) {
	sign := p.tok
	if err := p.advance(); err != nil {
		return nil, err
	}
	neg := sign.text == "-"
	switch {
	case p.tok.kind == tokNumber:
		n := p.tok.num
		if neg {
			n = -n
		}
		v := &Value{Kind: KindNumber, Num: n, Raw: sign.text + p.tok.text, Pos: sign.pos}
		return v, p.advance()
	case p.tok.is(tokIdent, "Infinity"):
		v := &Value{Kind: KindNumber, Num: signedInfinity(neg), Raw: sign.text + "Infinity", Pos: sign.pos}
		return v, p.advance()
	case p.tok.is(tokIdent, "NaN"):
		v := &Value{Kind: KindNumber, Num: math.NaN(), Raw: "NaN", Pos: sign.pos}
		return v, p.advance()
	}
	return nil, p.errorf(p.tok.pos, "expected number after %q, found %s", sign.text, p.tok.describe())
}

func (p *parser) parseObject() (*Value, error) {
	obj := &Value{Kind: KindObject, Pos: p.tok.pos}
	if err := p.advance(); err != nil {
		return nil, err
	}
	for !p.tok.is(tokPunct, "}") {
		keyTok := p.tok
		var key string
		switch keyTok.kind {
		case tokIdent:
			key = keyTok.text
		case tokString:
			key = keyTok.str
		case tokTemplate:
			if keyTok.subst {
				return nil, p.errorf(keyTok.pos, "template substitutions are not supported")
			}
			key = keyTok.str
		case tokNumber:
			key = strconv.FormatFloat(keyTok.num, 'f', -1, 64)
		case tokEOF:
			return nil, p.errorf(obj.Pos, "unterminated object")
		default:
			if keyTok.is(tokPunct, "[") {
				return nil, p.errorf(keyTok.pos, "computed keys are not supported")
			}
			if keyTok.is(tokPunct, "...") {
				return nil, p.errorf(keyTok.pos, "spread elements are not supported")
			}
			return nil, p.errorf(keyTok.pos, "expected property name, found %s", keyTok.describe())
		}
		if err := p.advance(); err != nil {
			return nil, err
		}

		var val *Value
		switch {
		case p.tok.is(tokPunct, ":"):
			if err := p.advance(); err != nil {
				return nil, err
			}
			v, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			val = v
		case p.tok.is(tokPunct, "(") && keyTok.kind == tokIdent:
			v, err := p.parseMethod(keyTok)
			if err != nil {
				return nil, err
			}
			val = v
		default:
			return nil, p.errorf(p.tok.pos, "expected \":\" after property %q, found %s", key, p.tok.describe())
		}
		obj.Fields = append(obj.Fields, Field{Key: key, Value: val, Pos: keyTok.pos})

		if p.tok.is(tokPunct, ",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		if !p.tok.is(tokPunct, "}") {
			if p.tok.kind == tokEOF {
				return nil, p.errorf(obj.Pos, "unterminated object")
			}
			return nil, p.errorf(p.tok.pos, "expected \",\" or \"}\" after property %q, found %s", key, p.tok.describe())
		}
	}
	return obj, p.advance()
}

func (p *parser) parseArray() (*Value, error) {
	arr := &Value{Kind: KindArray, Pos: p.tok.pos, Elems: []*Value{}}
	if err := p.advance(); err != nil {
		return nil, err
	}
	for !p.tok.is(tokPunct, "]") {
		if p.tok.is(tokPunct, ",") {
			arr.Elems = append(arr.Elems, &Value{Kind: KindUndefined, Pos: p.tok.pos})
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		if p.tok.kind == tokEOF {
			return nil, p.errorf(arr.Pos, "unterminated array")
		}
		if p.tok.is(tokPunct, "...") {
			return nil, p.errorf(p.tok.pos, "spread elements are not supported")
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr.Elems = append(arr.Elems, v)
		if p.tok.is(tokPunct, ",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		if !p.tok.is(tokPunct, "]") {
			if p.tok.kind == tokEOF {
				return nil, p.errorf(arr.Pos, "unterminated array")
			}
			return nil, p.errorf(p.tok.pos, "expected \",\" or \"]\" in array, found %s", p.tok.describe())
		}
	}
	return arr, p.advance()
}

// parseParen handles `(a, b) => ...` and parenthesized values.
func (p *parser) parseParen() (*Value, error) {
	start := p.tok.pos
	if err := p.skipBalanced(); err != nil {
		return nil, err
	}
	if p.tok.is(tokPunct, "=>") {
		return p.parseArrowBody(start)
	}
	if err := p.reset(start.Offset + 1); err != nil {
		return nil, err
	}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return v, nil
}

func (p *parser) parseAsync() (*Value, error) {
	start := p.tok.pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	switch {
	case p.tok.is(tokIdent, "function"):
		return p.parseFunction(start)
	case p.tok.is(tokPunct, "("):
		if err := p.skipBalanced(); err != nil {
			return nil, err
		}
	case p.tok.kind == tokIdent:
		if err := p.advance(); err != nil {
			return nil, err
		}
	default:
		return nil, p.errorf(p.tok.pos, "expected function after async, found %s", p.tok.describe())
	}
	if !p.tok.is(tokPunct, "=>") {
		return nil, p.errorf(p.tok.pos, "expected \"=>\", found %s", p.tok.describe())
	}
	return p.parseArrowBody(start)
}

// parseFunction parses `function name?(params) { body }` starting at the
// current `function` keyword; start is where the value's source begins.
func (p *parser) parseFunction(start Position) (*Value, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.is(tokPunct, "*") {
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if p.tok.kind == tokIdent {
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if !p.tok.is(tokPunct, "(") {
		return nil, p.errorf(p.tok.pos, "expected \"(\" in function literal, found %s", p.tok.describe())
	}
	if err := p.skipBalanced(); err != nil {
		return nil, err
	}
	if !p.tok.is(tokPunct, "{") {
		return nil, p.errorf(p.tok.pos, "expected function body, found %s", p.tok.describe())
	}
	if err := p.skipBalanced(); err != nil {
		return nil, err
	}
	return &Value{Kind: KindFunction, Raw: p.source(start.Offset, p.prev.end), Pos: start}, nil
}

// parseMethod parses the shorthand `name(params) { body }`. The stored source
// is rewritten as a function expression.
func (p *parser) parseMethod(name token) (*Value, error) {
	paramsStart := p.tok.pos.Offset
	if err := p.skipBalanced(); err != nil {
		return nil, err
	}
	if !p.tok.is(tokPunct, "{") {
		return nil, p.errorf(p.tok.pos, "expected method body, found %s", p.tok.describe())
	}
	if err := p.skipBalanced(); err != nil {
		return nil, err
	}
	raw := "function " + p.source(paramsStart, p.prev.end)
	return &Value{Kind: KindFunction, Raw: raw, Pos: name.pos}, nil
}

// parseArrowBody parses the body following `=>`; start is where the arrow
// function's source begins.
func (p *parser) parseArrowBody(start Position) (*Value, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.is(tokPunct, "{") {
		if err := p.skipBalanced(); err != nil {
			return nil, err
		}
	} else {
		if err := p.skipExpression(); err != nil {
			return nil, err
		}
	}
	return &Value{Kind: KindFunction, Raw: p.source(start.Offset, p.prev.end), Pos: start}, nil
}

// parseExpression captures member and call chains such as Date.UTC(2020, 0, 1)
// or `new Date(...)` without evaluating them.
func (p *parser) parseExpression(start Position) (*Value, error) {
	if p.tok.is(tokIdent, "new") {
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if p.tok.kind != tokIdent {
		return nil, p.errorf(p.tok.pos, "expected identifier, found %s", p.tok.describe())
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	for {
		switch {
		case p.tok.is(tokPunct, "."), p.tok.is(tokPunct, "?."):
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.tok.kind != tokIdent {
				return nil, p.errorf(p.tok.pos, "expected property name, found %s", p.tok.describe())
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		case p.tok.is(tokPunct, "("), p.tok.is(tokPunct, "["):
			if err := p.skipBalanced(); err != nil {
				return nil, err
			}
		default:
			return &Value{Kind: KindExpression, Raw: p.source(start.Offset, p.prev.end), Pos: start}, nil
		}
	}
}

var closers = map[string]string{"(": ")", "[": "]", "{": "}"}

// skipBalanced consumes a bracketed group starting at the current opening
// bracket, leaving the token after the matching closer current.
func (p *parser) skipBalanced() error {
	open := p.tok
	stack := []string{closers[open.text]}
	if err := p.advance(); err != nil {
		return err
	}
	for len(stack) > 0 {
		if err := p.maybeRegexp(); err != nil {
			return err
		}
		tok := p.tok
		switch {
		case tok.kind == tokEOF:
			return p.errorf(open.pos, "unbalanced %q", open.text)
		case tok.kind == tokPunct && closers[tok.text] != "":
			stack = append(stack, closers[tok.text])
		case tok.is(tokPunct, ")"), tok.is(tokPunct, "]"), tok.is(tokPunct, "}"):
			if stack[len(stack)-1] != tok.text {
				return p.errorf(tok.pos, "mismatched %q", tok.text)
			}
			stack = stack[:len(stack)-1]
		}
		if err := p.advance(); err != nil {
			return err
		}
	}
	return nil
}

// skipExpression consumes tokens of an arrow function's expression body up
// to the first unnested `,` `;` or closing bracket.
func (p *parser) skipExpression() error {
	start := p.tok
	consumed := false
	for {
		if err := p.maybeRegexp(); err != nil {
			return err
		}
		tok := p.tok
		switch {
		case tok.kind == tokEOF,
			tok.is(tokPunct, ","), tok.is(tokPunct, ";"),
			tok.is(tokPunct, ")"), tok.is(tokPunct, "]"), tok.is(tokPunct, "}"):
			if !consumed {
				return p.errorf(start.pos, "expected arrow function body, found %s", tok.describe())
			}
			return nil
		case tok.kind == tokPunct && closers[tok.text] != "":
			if err := p.skipBalanced(); err != nil {
				return err
			}
			consumed = true
			continue
		}
		consumed = true
		if err := p.advance(); err != nil {
			return err
		}
	}
}

// maybeRegexp rescans a `/` token as a regular expression literal when the
// previous token cannot end an operand.
func (p *parser) maybeRegexp() error {
	if !p.tok.is(tokPunct, "/") {
		return nil
	}
	if operandBefore(p.prev) {
		return nil
	}
	tok, err := p.s.scanRegexp(p.tok.pos.Offset)
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}
