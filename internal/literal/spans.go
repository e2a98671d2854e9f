package literal

// Span is a half-open byte range of source text.
type Span struct {
	Start, End int
}

// StringSpans returns the byte ranges of the string, template and regular
// expression literals in src, in source order. Scanning stops at the first
// lexical error.
func StringSpans(src string) []Span {
	s := newScanner([]byte(src))
	var spans []Span
	var prev token
	for {
		tok, err := s.next()
		if err != nil || tok.kind == tokEOF {
			return spans
		}
		if tok.is(tokPunct, "/") && !operandBefore(prev) {
			if tok, err = s.scanRegexp(tok.pos.Offset); err != nil {
				return spans
			}
		}
		switch tok.kind {
		case tokString, tokTemplate, tokRegexp:
			spans = append(spans, Span{Start: tok.pos.Offset, End: tok.end})
		}
		prev = tok
	}
}

// operandBefore reports whether a '/' following prev is a division operator
// rather than the start of a regular expression.
func operandBefore(prev token) bool {
	switch prev.kind {
	case tokNumber, tokString, tokTemplate, tokRegexp:
		return true
	case tokIdent:
		switch prev.text {
		case "return", "typeof", "case", "do", "else", "in", "of", "void", "delete", "throw":
			return false
		}
		return true
	}
	return prev.is(tokPunct, ")") || prev.is(tokPunct, "]") || prev.is(tokPunct, "}")
}
