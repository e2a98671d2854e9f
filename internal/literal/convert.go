package literal

import (
	"math"
	"strings"
)

// ToAny converts v to the generic representation produced by encoding/json:
// map[string]any, []any, string, float64, bool and nil. Functions and
// expressions become their source text; undefined and non-finite numbers
// become nil. Duplicate keys resolve to the last occurrence.
func ToAny(v *Value) any {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindNumber:
		if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
			return nil
		}
		return v.Num
	case KindString:
		return v.Str
	case KindFunction, KindExpression:
		return v.Raw
	case KindArray:
		out := make([]any, len(v.Elems))
		for i, e := range v.Elems {
			out[i] = ToAny(e)
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.Fields))
		for _, f := range v.Fields {
			if f.Value.Kind == KindUndefined {
				delete(out, f.Key)
				continue
			}
			out[f.Key] = ToAny(f.Value)
		}
		return out
	}
	return nil
}

// Equal reports whether a and b hold the same data. Object fields are
// compared in order, numbers by value (NaN equals NaN), and function or
// expression sources with whitespace runs collapsed. Number formatting and
// positions are ignored.
func Equal(a, b *Value) bool {
	return EqualFunc(a, b, sameNumber)
}

func sameNumber(a, b *Value) bool {
	if math.IsNaN(a.Num) {
		return math.IsNaN(b.Num)
	}
	return a.Num == b.Num
}

// EqualFunc is like Equal but compares numbers with eq.
func EqualFunc(a, b *Value, eq func(a, b *Value) bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindUndefined, KindNull:
		return true
	case KindBool:
		return a.Bool == b.Bool
	case KindNumber:
		return eq(a, b)
	case KindString:
		return a.Str == b.Str
	case KindFunction, KindExpression:
		return CollapseSpace(a.Raw) == CollapseSpace(b.Raw)
	case KindArray:
		if len(a.Elems) != len(b.Elems) {
			return false
		}
		for i := range a.Elems {
			if !EqualFunc(a.Elems[i], b.Elems[i], eq) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if a.Fields[i].Key != b.Fields[i].Key || !EqualFunc(a.Fields[i].Value, b.Fields[i].Value, eq) {
				return false
			}
		}
		return true
	}
	return false
}

// CollapseSpace replaces every whitespace run with a single space and trims
// the ends.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
