package schema

import (
	"fmt"
	"math"
	"strings"

	"github.com/firefly-engineering/chartlit/internal/literal"
)

// Severity of a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue codes.
const (
	CodeType         = "type"
	CodeEnum         = "enum"
	CodeRange        = "range"
	CodeUnknownKey   = "unknown-key"
	CodeDuplicateKey = "duplicate-key"
	CodeUndefined    = "undefined"
)

// Issue is a single validation finding.
type Issue struct {
	Path     string           `json:"path"`
	Pos      literal.Position `json:"-"`
	Severity Severity         `json:"severity"`
	Code     string           `json:"code"`
	Message  string           `json:"message"`
}

func (i Issue) String() string {
	loc := i.Path
	if i.Pos.IsValid() {
		loc = i.Pos.String() + " " + loc
	}
	return fmt.Sprintf("%s: %s: %s", loc, i.Severity, i.Message)
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns the issues with error severity.
func Errors(issues []Issue) []Issue {
	var out []Issue
	for _, i := range issues {
		if i.Severity == SeverityError {
			out = append(out, i)
		}
	}
	return out
}

// Options control validation.
type Options struct {
	// Strict turns unknown keys into errors.
	Strict bool
}

// Validate checks v against the schema root and returns every issue found,
// in document order.
func (s *Schema) Validate(v *literal.Value, opts Options) []Issue {
	val := &validator{s: s, strict: opts.Strict}
	val.validate(s.Root, v, nil)
	return val.issues
}

type validator struct {
	s      *Schema
	strict bool
	issues []Issue
}

func (val *validator) add(sev Severity, code string, path literal.Path, pos literal.Position, format string, args ...any) {
	val.issues = append(val.issues, Issue{
		Path:     path.String(),
		Pos:      pos,
		Severity: sev,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (val *validator) typeError(n *Node, v *literal.Value, path literal.Path) {
	val.add(SeverityError, CodeType, path, v.Pos, "expected %s, got %s", val.s.Describe(n), v.Kind)
}

func (val *validator) validate(n *Node, v *literal.Value, path literal.Path) {
	n = val.s.Resolve(n)
	if v == nil || v.Kind == literal.KindNull || v.Kind == literal.KindUndefined {
		return
	}
	if n == nil || n.Type == TypeAny {
		val.checkDuplicates(v, path)
		return
	}

	switch n.Type {
	case TypeNumber:
		if v.Kind == literal.KindExpression {
			return
		}
		if v.Kind != literal.KindNumber {
			val.typeError(n, v, path)
			return
		}
		val.checkRange(n, v, path)
	case TypeInteger:
		if v.Kind != literal.KindNumber {
			val.typeError(n, v, path)
			return
		}
		if !v.IsInteger() {
			val.add(SeverityError, CodeType, path, v.Pos, "expected integer, got %s", v.Raw)
			return
		}
		val.checkRange(n, v, path)
	case TypeFloat:
		if v.Kind != literal.KindNumber {
			val.typeError(n, v, path)
			return
		}
		val.checkRange(n, v, path)
	case TypeString:
		if v.Kind != literal.KindString {
			val.typeError(n, v, path)
			return
		}
		if len(n.Enum) > 0 && !contains(n.Enum, v.Str) {
			val.add(SeverityError, CodeEnum, path, v.Pos, "%q is not one of %s", v.Str, strings.Join(n.Enum, ", "))
		}
	case TypeBoolean:
		if v.Kind != literal.KindBool {
			val.typeError(n, v, path)
		}
	case TypeCallback:
		if v.Kind != literal.KindFunction {
			val.typeError(n, v, path)
		}
	case TypeColor:
		switch v.Kind {
		case literal.KindString:
		case literal.KindObject:
			val.validate(val.s.Definitions[GradientDefinition], v, path)
		default:
			val.typeError(n, v, path)
		}
	case TypeObject:
		if v.Kind != literal.KindObject {
			val.typeError(n, v, path)
			return
		}
		val.validateObject(n, v, path)
	case TypeArray:
		if v.Kind != literal.KindArray {
			val.typeError(n, v, path)
			return
		}
		val.validateArray(n, v, path)
	case TypeOneOf:
		alt := val.s.chooseAlternative(n, v)
		if alt == nil {
			val.typeError(n, v, path)
			return
		}
		val.validate(alt, v, path)
	}
}

func (val *validator) validateObject(n *Node, v *literal.Value, path literal.Path) {
	val.checkDuplicates(v, path)
	for _, f := range v.Fields {
		if f.Value != nil && f.Value.Kind == literal.KindUndefined {
			val.add(SeverityWarning, CodeUndefined, path.Key(f.Key), f.Pos, "option %q is undefined and will be dropped", f.Key)
			continue
		}
		child, known := n.Properties[f.Key]
		if !known {
			switch {
			case n.Values != nil:
				child = n.Values
			case n.Additional:
				continue
			default:
				sev := SeverityWarning
				if val.strict {
					sev = SeverityError
				}
				val.add(sev, CodeUnknownKey, path.Key(f.Key), f.Pos, "unknown option %q", f.Key)
				continue
			}
		}
		val.validate(child, f.Value, path.Key(f.Key))
	}
}

func (val *validator) validateArray(n *Node, v *literal.Value, path literal.Path) {
	if len(n.Tuple) > 0 && n.Items == nil && len(v.Elems) > len(n.Tuple) {
		val.add(SeverityError, CodeRange, path, v.Pos, "expected at most %d elements, got %d", len(n.Tuple), len(v.Elems))
	}
	for i, e := range v.Elems {
		val.validate(val.s.Element(n, i), e, path.Index(i))
	}
}

// checkDuplicates warns about repeated keys; the last occurrence wins.
func (val *validator) checkDuplicates(v *literal.Value, path literal.Path) {
	if v.Kind != literal.KindObject {
		return
	}
	seen := make(map[string]bool, len(v.Fields))
	for _, f := range v.Fields {
		if seen[f.Key] {
			val.add(SeverityWarning, CodeDuplicateKey, path.Key(f.Key), f.Pos, "duplicate key %q, last value wins", f.Key)
		}
		seen[f.Key] = true
	}
}

func (val *validator) checkRange(n *Node, v *literal.Value, path literal.Path) {
	if math.IsNaN(v.Num) {
		return
	}
	if n.Min != nil && v.Num < *n.Min {
		val.add(SeverityError, CodeRange, path, v.Pos, "%s is less than minimum %g", v.Raw, *n.Min)
	}
	if n.Max != nil && v.Num > *n.Max {
		val.add(SeverityError, CodeRange, path, v.Pos, "%s is greater than maximum %g", v.Raw, *n.Max)
	}
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
