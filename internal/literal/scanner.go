package literal

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokPunct
	tokIdent
	tokString
	tokTemplate
	tokNumber
	tokRegexp
)

type token struct {
	kind tokenKind
	text string // punctuator, identifier name or raw source
	str  string // decoded string contents
	num  float64

	// subst is set for template strings containing ${...}.
	subst bool

	pos Position
	end int
}

func (t token) is(kind tokenKind, text string) bool {
	return t.kind == kind && t.text == text
}

func (t token) describe() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokString, tokTemplate:
		return "string " + strconv.Quote(t.str)
	case tokNumber:
		return "number " + t.text
	case tokIdent:
		return fmt.Sprintf("identifier %q", t.text)
	}
	return fmt.Sprintf("%q", t.text)
}

// scanner splits source text into tokens. It is restartable at any offset,
// which the parser uses to look ahead across balanced groups.
type scanner struct {
	src []byte
	off int
	pos *Positions
}

func newScanner(src []byte) *scanner {
	return &scanner{src: src, pos: NewPositions(src)}
}

func (s *scanner) position(off int) Position {
	return s.pos.At(off)
}

// Positions maps byte offsets of a source text to line and column positions.
type Positions struct {
	src   []byte
	lines []int // offsets of line starts

	// last is the most recently computed position. Positions are mostly
	// requested in increasing order, so columns are counted from there.
	last Position
}

// NewPositions indexes the line starts of src.
func NewPositions(src []byte) *Positions {
	lines := []int{0}
	for i, b := range src {
		if b == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &Positions{src: src, lines: lines}
}

// At returns the position of the byte at off. Columns count runes.
func (p *Positions) At(off int) Position {
	line := sort.Search(len(p.lines), func(i int) bool { return p.lines[i] > off }) - 1
	var col int
	if p.last.Line == line+1 && p.last.Offset <= off {
		col = p.last.Column + utf8.RuneCount(p.src[p.last.Offset:off])
	} else {
		col = utf8.RuneCount(p.src[p.lines[line]:off]) + 1
	}
	p.last = Position{Offset: off, Line: line + 1, Column: col}
	return p.last
}

func (s *scanner) errorf(off int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Pos: s.position(off), Msg: fmt.Sprintf(format, args...)}
}

func (s *scanner) peekByte(n int) byte {
	if s.off+n < len(s.src) {
		return s.src[s.off+n]
	}
	return 0
}

// skipSpace skips whitespace and comments.
func (s *scanner) skipSpace() error {
	for s.off < len(s.src) {
		r, size := utf8.DecodeRune(s.src[s.off:])
		switch {
		case r == '/' && s.peekByte(1) == '/':
			for s.off < len(s.src) && s.src[s.off] != '\n' {
				s.off++
			}
		case r == '/' && s.peekByte(1) == '*':
			start := s.off
			end := bytes.Index(s.src[s.off+2:], []byte("*/"))
			if end < 0 {
				return s.errorf(start, "unterminated comment")
			}
			s.off += end + 4
		case r == '\uFEFF' || unicode.IsSpace(r):
			s.off += size
		default:
			return nil
		}
	}
	return nil
}

func isIdentStart(r rune) bool {
	return r == '$' || r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || r == '\u200C' || r == '\u200D'
}

func (s *scanner) next() (token, error) {
	if err := s.skipSpace(); err != nil {
		return token{}, err
	}
	start := s.off
	pos := s.position(start)
	if s.off >= len(s.src) {
		return token{kind: tokEOF, pos: pos, end: start}, nil
	}

	c := s.src[s.off]
	r, size := utf8.DecodeRune(s.src[s.off:])
	switch {
	case c == '"' || c == '\'':
		str, err := s.scanQuoted(c)
		if err != nil {
			return token{}, err
		}
		return token{kind: tokString, text: string(s.src[start:s.off]), str: str, pos: pos, end: s.off}, nil

	case c == '`':
		str, subst, err := s.scanTemplate()
		if err != nil {
			return token{}, err
		}
		return token{kind: tokTemplate, text: string(s.src[start:s.off]), str: str, subst: subst, pos: pos, end: s.off}, nil

	case c >= '0' && c <= '9' || c == '.' && s.peekByte(1) >= '0' && s.peekByte(1) <= '9':
		num, err := s.scanNumber()
		if err != nil {
			return token{}, err
		}
		return token{kind: tokNumber, text: string(s.src[start:s.off]), num: num, pos: pos, end: s.off}, nil

	case isIdentStart(r):
		s.off += size
		for s.off < len(s.src) {
			r, size := utf8.DecodeRune(s.src[s.off:])
			if !isIdentPart(r) {
				break
			}
			s.off += size
		}
		return token{kind: tokIdent, text: string(s.src[start:s.off]), pos: pos, end: s.off}, nil
	}

	for _, p := range []string{"...", "=>", "?.", "??"} {
		if strings.HasPrefix(string(s.src[s.off:min(s.off+3, len(s.src))]), p) {
			s.off += len(p)
			return token{kind: tokPunct, text: p, pos: pos, end: s.off}, nil
		}
	}
	s.off += size
	return token{kind: tokPunct, text: string(r), pos: pos, end: s.off}, nil
}

func (s *scanner) scanQuoted(quote byte) (string, error) {
	start := s.off
	s.off++
	var b strings.Builder
	for {
		if s.off >= len(s.src) {
			return "", s.errorf(start, "unterminated string")
		}
		c := s.src[s.off]
		switch c {
		case quote:
			s.off++
			return b.String(), nil
		case '\n', '\r':
			return "", s.errorf(start, "unterminated string")
		case '\\':
			if err := s.scanEscape(&b); err != nil {
				return "", err
			}
		default:
			r, size := utf8.DecodeRune(s.src[s.off:])
			b.WriteRune(r)
			s.off += size
		}
	}
}

func (s *scanner) scanTemplate() (string, bool, error) {
	start := s.off
	s.off++
	var b strings.Builder
	subst := false
	for {
		if s.off >= len(s.src) {
			return "", false, s.errorf(start, "unterminated template string")
		}
		c := s.src[s.off]
		switch {
		case c == '`':
			s.off++
			return b.String(), subst, nil
		case c == '\\':
			if err := s.scanEscape(&b); err != nil {
				return "", false, err
			}
		case c == '$' && s.peekByte(1) == '{':
			subst = true
			s.off++
			depth := 0
			for s.off < len(s.src) {
				switch s.src[s.off] {
				case '{':
					depth++
				case '}':
					depth--
				}
				s.off++
				if depth == 0 {
					break
				}
			}
			if depth != 0 {
				return "", false, s.errorf(start, "unterminated template substitution")
			}
		default:
			r, size := utf8.DecodeRune(s.src[s.off:])
			b.WriteRune(r)
			s.off += size
		}
	}
}

// scanEscape decodes the escape sequence at s.off, which points at the
// backslash.
func (s *scanner) scanEscape(b *strings.Builder) error {
	start := s.off
	s.off++
	if s.off >= len(s.src) {
		return s.errorf(start, "unterminated escape sequence")
	}
	c := s.src[s.off]
	s.off++
	switch c {
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'v':
		b.WriteByte('\v')
	case '0':
		b.WriteByte(0)
	case '\r':
		if s.off < len(s.src) && s.src[s.off] == '\n' {
			s.off++
		}
	case '\n':
		// line continuation
	case 'x':
		r, err := s.scanHex(start, 2)
		if err != nil {
			return err
		}
		b.WriteRune(r)
	case 'u':
		if s.off < len(s.src) && s.src[s.off] == '{' {
			end := bytes.IndexByte(s.src[s.off:], '}')
			if end < 0 {
				return s.errorf(start, "invalid unicode escape")
			}
			n, err := strconv.ParseUint(string(s.src[s.off+1:s.off+end]), 16, 32)
			if err != nil || n > unicode.MaxRune {
				return s.errorf(start, "invalid unicode escape")
			}
			s.off += end + 1
			b.WriteRune(rune(n))
			return nil
		}
		r, err := s.scanHex(start, 4)
		if err != nil {
			return err
		}
		if utf16Surrogate(r) && s.off+6 <= len(s.src) && s.src[s.off] == '\\' && s.src[s.off+1] == 'u' {
			save := s.off
			s.off += 2
			low, err := s.scanHex(save, 4)
			if err == nil {
				b.WriteRune(combineSurrogates(r, low))
				return nil
			}
			s.off = save
		}
		b.WriteRune(r)
	default:
		r, size := utf8.DecodeRune(s.src[s.off-1:])
		s.off += size - 1
		b.WriteRune(r)
	}
	return nil
}

func (s *scanner) scanHex(start, n int) (rune, error) {
	if s.off+n > len(s.src) {
		return 0, s.errorf(start, "invalid escape sequence")
	}
	v, err := strconv.ParseUint(string(s.src[s.off:s.off+n]), 16, 32)
	if err != nil {
		return 0, s.errorf(start, "invalid escape sequence")
	}
	s.off += n
	return rune(v), nil
}

func utf16Surrogate(r rune) bool {
	return r >= 0xd800 && r < 0xdc00
}

func combineSurrogates(high, low rune) rune {
	if low < 0xdc00 || low >= 0xe000 {
		return utf8.RuneError
	}
	return (high-0xd800)<<10 + (low - 0xdc00) + 0x10000
}

func (s *scanner) scanNumber() (float64, error) {
	start := s.off
	if s.src[s.off] == '0' && s.off+1 < len(s.src) {
		base := 0
		switch s.src[s.off+1] | 0x20 {
		case 'x':
			base = 16
		case 'o':
			base = 8
		case 'b':
			base = 2
		}
		if base != 0 {
			s.off += 2
			digits := s.off
			for s.off < len(s.src) && (isHexDigit(s.src[s.off]) || s.src[s.off] == '_') {
				s.off++
			}
			text := strings.ReplaceAll(string(s.src[digits:s.off]), "_", "")
			if s.off < len(s.src) && s.src[s.off] == 'n' {
				s.off++
			}
			n, ok := new(big.Int).SetString(text, base)
			if !ok {
				return 0, s.errorf(start, "invalid number %q", string(s.src[start:s.off]))
			}
			f, _ := new(big.Float).SetInt(n).Float64()
			return f, nil
		}
	}

	digits := func() {
		for s.off < len(s.src) && (s.src[s.off] >= '0' && s.src[s.off] <= '9' || s.src[s.off] == '_') {
			s.off++
		}
	}
	digits()
	if s.off < len(s.src) && s.src[s.off] == '.' {
		s.off++
		digits()
	}
	if s.off < len(s.src) && s.src[s.off]|0x20 == 'e' {
		s.off++
		if s.off < len(s.src) && (s.src[s.off] == '+' || s.src[s.off] == '-') {
			s.off++
		}
		digits()
	}
	text := strings.ReplaceAll(string(s.src[start:s.off]), "_", "")
	if s.off < len(s.src) && s.src[s.off] == 'n' {
		s.off++
	}
	if s.off < len(s.src) {
		if r, _ := utf8.DecodeRune(s.src[s.off:]); isIdentStart(r) {
			return 0, s.errorf(start, "invalid number %q", string(s.src[start:s.off+1]))
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !isRangeErr(err) {
		return 0, s.errorf(start, "invalid number %q", text)
	}
	return f, nil
}

func isRangeErr(err error) bool {
	var numErr *strconv.NumError
	return errors.As(err, &numErr) && numErr.Err == strconv.ErrRange
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c|0x20 >= 'a' && c|0x20 <= 'f'
}

// scanRegexp scans a regular expression literal starting at off, which
// points at the opening slash.
func (s *scanner) scanRegexp(off int) (token, error) {
	s.off = off + 1
	inClass := false
	for {
		if s.off >= len(s.src) || s.src[s.off] == '\n' {
			return token{}, s.errorf(off, "unterminated regular expression")
		}
		c := s.src[s.off]
		s.off++
		switch {
		case c == '\\':
			s.off++
		case c == '[':
			inClass = true
		case c == ']':
			inClass = false
		case c == '/' && !inClass:
			for s.off < len(s.src) {
				r, size := utf8.DecodeRune(s.src[s.off:])
				if !isIdentPart(r) {
					break
				}
				s.off += size
			}
			return token{kind: tokRegexp, text: string(s.src[off:s.off]), pos: s.position(off), end: s.off}, nil
		}
	}
}

func signedInfinity(neg bool) float64 {
	if neg {
		return math.Inf(-1)
	}
	return math.Inf(1)
}
