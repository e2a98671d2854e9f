package literal

import (
	"regexp"
	"strconv"
	"strings"
)

var identRegex = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// IsIdentifier reports whether s can be written as an unquoted key.
func IsIdentifier(s string) bool {
	return identRegex.MatchString(s)
}

// Path is the location of a value inside a document, e.g.
// series[0].data[3] or chart.backgroundColor.
type Path []PathElem

// PathElem is an object key or, when Key is empty and IsIndex is set, an
// array index.
type PathElem struct {
	Key     string
	Index   int
	IsIndex bool
}

// Key returns a copy of p extended by an object key.
func (p Path) Key(k string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, PathElem{Key: k})
}

// Index returns a copy of p extended by an array index.
func (p Path) Index(i int) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, PathElem{Index: i, IsIndex: true})
}

func (p Path) String() string {
	if len(p) == 0 {
		return "(root)"
	}
	var b strings.Builder
	for i, e := range p {
		switch {
		case e.IsIndex:
			b.WriteString("[" + strconv.Itoa(e.Index) + "]")
		case IsIdentifier(e.Key):
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(e.Key)
		default:
			b.WriteString("[" + strconv.Quote(e.Key) + "]")
		}
	}
	return b.String()
}

// ParsePath parses the dotted form produced by Path.String. A bare `[]`
// stands for any index and is returned as index -1.
func ParsePath(s string) (Path, error) {
	var p Path
	s = strings.TrimSpace(s)
	for len(s) > 0 {
		switch {
		case s[0] == '.':
			s = s[1:]
		case s[0] == '[':
			end := strings.IndexByte(s, ']')
			if end < 0 {
				return nil, &SyntaxError{Msg: "unterminated index in path"}
			}
			inner := s[1:end]
			s = s[end+1:]
			if inner == "" {
				p = append(p, PathElem{Index: -1, IsIndex: true})
				continue
			}
			if unq, err := strconv.Unquote(inner); err == nil {
				p = append(p, PathElem{Key: unq})
				continue
			}
			n, err := strconv.Atoi(inner)
			if err != nil {
				return nil, &SyntaxError{Msg: "invalid index " + strconv.Quote(inner) + " in path"}
			}
			p = append(p, PathElem{Index: n, IsIndex: true})
		default:
			end := strings.IndexAny(s, ".[")
			if end < 0 {
				end = len(s)
			}
			p = append(p, PathElem{Key: s[:end]})
			s = s[end:]
		}
	}
	return p, nil
}

// Lookup follows p from v. It returns nil when the path does not exist.
func (v *Value) Lookup(p Path) *Value {
	cur := v
	for _, e := range p {
		if e.IsIndex {
			cur = cur.Index(e.Index)
		} else {
			cur = cur.Get(e.Key)
		}
		if cur == nil {
			return nil
		}
	}
	return cur
}
