package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/firefly-engineering/chartlit/internal/literal"
)

// DefaultWrapper is the call the rendered object is passed to.
const DefaultWrapper = "Highcharts.setOptions"

// Style controls the rendered text.
type Style struct {
	// Indent is the string repeated once per nesting level.
	Indent string

	// Quote is the string delimiter, ' or ".
	Quote byte

	// Wrapper is the dotted callee the value is passed to. Empty renders
	// the bare value.
	Wrapper string

	// Semicolon terminates the wrapped call with a semicolon.
	Semicolon bool

	// QuoteKeys quotes every key, including identifiers.
	QuoteKeys bool
}

// DefaultStyle returns the canonical style.
func DefaultStyle() Style {
	return Style{Indent: "  ", Quote: '\'', Wrapper: DefaultWrapper}
}

// Render returns the source text of v in the given style, terminated by a
// newline.
func Render(v *literal.Value, st Style) string {
	if st.Quote == 0 {
		st.Quote = '\''
	}
	w := &writer{st: st}
	if st.Wrapper != "" {
		w.b.WriteString(st.Wrapper)
		w.b.WriteByte('(')
	}
	w.value(v, 0)
	if st.Wrapper != "" {
		w.b.WriteByte(')')
		if st.Semicolon {
			w.b.WriteByte(';')
		}
	}
	w.b.WriteByte('\n')
	return w.b.String()
}

type writer struct {
	st Style
	b  strings.Builder
}

func (w *writer) indent(depth int) {
	for i := 0; i < depth; i++ {
		w.b.WriteString(w.st.Indent)
	}
}

func (w *writer) value(v *literal.Value, depth int) {
	if v == nil {
		w.b.WriteString("undefined")
		return
	}
	switch v.Kind {
	case literal.KindUndefined:
		w.b.WriteString("undefined")
	case literal.KindNull:
		w.b.WriteString("null")
	case literal.KindBool:
		w.b.WriteString(strconv.FormatBool(v.Bool))
	case literal.KindNumber:
		w.b.WriteString(FormatNumber(v.Num, v.Float))
	case literal.KindString:
		w.b.WriteString(Quote(v.Str, w.st.Quote))
	case literal.KindFunction, literal.KindExpression:
		w.b.WriteString(Reindent(v.Raw, strings.Repeat(w.st.Indent, depth)))
	case literal.KindArray:
		w.array(v, depth)
	case literal.KindObject:
		w.object(v, depth)
	}
}

func (w *writer) object(v *literal.Value, depth int) {
	if len(v.Fields) == 0 {
		w.b.WriteString("{}")
		return
	}
	w.b.WriteString("{\n")
	for i, f := range v.Fields {
		w.indent(depth + 1)
		w.key(f.Key)
		w.b.WriteString(": ")
		w.value(f.Value, depth+1)
		if i < len(v.Fields)-1 {
			w.b.WriteByte(',')
		}
		w.b.WriteByte('\n')
	}
	w.indent(depth)
	w.b.WriteByte('}')
}

func (w *writer) array(v *literal.Value, depth int) {
	if len(v.Elems) == 0 {
		w.b.WriteString("[]")
		return
	}
	if allScalar(v.Elems) {
		w.b.WriteByte('[')
		for i, e := range v.Elems {
			if i > 0 {
				w.b.WriteString(", ")
			}
			w.value(e, depth)
		}
		w.b.WriteByte(']')
		return
	}
	w.b.WriteString("[\n")
	for i, e := range v.Elems {
		w.indent(depth + 1)
		w.value(e, depth+1)
		if i < len(v.Elems)-1 {
			w.b.WriteByte(',')
		}
		w.b.WriteByte('\n')
	}
	w.indent(depth)
	w.b.WriteByte(']')
}

func (w *writer) key(k string) {
	if !w.st.QuoteKeys && literal.IsIdentifier(k) {
		w.b.WriteString(k)
		return
	}
	w.b.WriteString(Quote(k, w.st.Quote))
}

func allScalar(elems []*literal.Value) bool {
	for _, e := range elems {
		if e != nil && !e.IsScalar() {
			return false
		}
	}
	return true
}

// FormatNumber writes n the way a script engine prints it. When float is
// set, integral values keep a `.0` suffix.
func FormatNumber(n float64, float bool) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case n == 0:
		if float {
			return "0.0"
		}
		return "0"
	}

	abs := math.Abs(n)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(n, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if float && !strings.Contains(mant, ".") {
			mant += ".0"
		}
		return mant + "e" + sign + digits
	}

	s := strconv.FormatFloat(n, 'f', -1, 64)
	if float && !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Quote returns s as a string literal delimited by q.
func Quote(s string, q byte) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte(q)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\v':
			b.WriteString(`\v`)
		case '\u2028':
			b.WriteString(`\u2028`)
		case '\u2029':
			b.WriteString(`\u2029`)
		default:
			switch {
			case r == rune(q):
				b.WriteByte('\\')
				b.WriteByte(q)
			case r < 0x20 || r == 0x7f:
				b.WriteString(`\x`)
				hex := strconv.FormatInt(int64(r), 16)
				if len(hex) < 2 {
					b.WriteByte('0')
				}
				b.WriteString(hex)
			default:
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte(q)
	return b.String()
}

// Reindent rewrites the continuation lines of src so that their common
// leading whitespace becomes prefix. The first line is left alone, as are
// lines that start inside a string or template literal.
func Reindent(src, prefix string) string {
	lines := strings.Split(src, "\n")
	if len(lines) == 1 {
		return src
	}
	quoted := quotedLines(src, lines)
	common := ""
	first := true
	for i, l := range lines[1:] {
		if quoted[i+1] || strings.TrimSpace(l) == "" {
			continue
		}
		ws := l[:len(l)-len(strings.TrimLeft(l, " \t"))]
		if first {
			common = ws
			first = false
			continue
		}
		common = commonPrefix(common, ws)
	}
	for i := 1; i < len(lines); i++ {
		if quoted[i] {
			continue
		}
		l := strings.TrimRight(lines[i], " \t\r")
		if l == "" {
			lines[i] = ""
			continue
		}
		lines[i] = prefix + strings.TrimPrefix(l, common)
	}
	return strings.Join(lines, "\n")
}

// quotedLines reports, per line, whether the line starts inside a literal
// that spans several lines.
func quotedLines(src string, lines []string) []bool {
	quoted := make([]bool, len(lines))
	spans := literal.StringSpans(src)
	off := 0
	for i, l := range lines {
		for len(spans) > 0 && spans[0].End <= off {
			spans = spans[1:]
		}
		quoted[i] = len(spans) > 0 && spans[0].Start < off
		off += len(l) + 1
	}
	return quoted
}

func commonPrefix(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
