package literal

import (
	"fmt"
	"math"
	"strconv"
)

// Kind identifies the type of a Value.
type Kind int

const (
	KindUndefined Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
	KindFunction
	KindExpression
)

var kindNames = map[Kind]string{
	KindUndefined:  "undefined",
	KindNull:       "null",
	KindBool:       "boolean",
	KindNumber:     "number",
	KindString:     "string",
	KindArray:      "array",
	KindObject:     "object",
	KindFunction:   "function",
	KindExpression: "expression",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Position is a location in the source text. Line and Column are 1-based.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position was set by the parser.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Value is a node of a parsed literal.
type Value struct {
	Kind Kind

	// Str holds the decoded text of a string.
	Str string

	// Num holds the value of a number.
	Num float64

	// Raw holds the source text of numbers, functions and expressions.
	Raw string

	// Bool holds the value of a boolean.
	Bool bool

	// Float marks a number that must be written with a fractional part.
	Float bool

	Fields []Field
	Elems  []*Value
	Pos    Position
}

// Field is a key/value pair of an object.
type Field struct {
	Key   string
	Value *Value
	Pos   Position
}

// Undefined returns an undefined value.
func Undefined() *Value { return &Value{Kind: KindUndefined} }

// Null returns a null value.
func Null() *Value { return &Value{Kind: KindNull} }

// Bool returns a boolean value.
func Bool(b bool) *Value { return &Value{Kind: KindBool, Bool: b} }

// String returns a string value.
func String(s string) *Value { return &Value{Kind: KindString, Str: s} }

// Number returns a number value.
func Number(n float64) *Value {
	return &Value{Kind: KindNumber, Num: n, Raw: strconv.FormatFloat(n, 'g', -1, 64)}
}

// Function returns a function value with the given source text.
func Function(src string) *Value { return &Value{Kind: KindFunction, Raw: src} }

// Expression returns an unevaluated expression with the given source text.
func Expression(src string) *Value { return &Value{Kind: KindExpression, Raw: src} }

// Array returns an array value.
func Array(elems ...*Value) *Value { return &Value{Kind: KindArray, Elems: elems} }

// Object returns an object value.
func Object(fields ...Field) *Value { return &Value{Kind: KindObject, Fields: fields} }

// F is shorthand for building a Field.
func F(key string, v *Value) Field { return Field{Key: key, Value: v} }

// Get returns the value of the last field named key, or nil.
func (v *Value) Get(key string) *Value {
	if v == nil || v.Kind != KindObject {
		return nil
	}
	for i := len(v.Fields) - 1; i >= 0; i-- {
		if v.Fields[i].Key == key {
			return v.Fields[i].Value
		}
	}
	return nil
}

// Index returns the i-th element of an array, or nil.
func (v *Value) Index(i int) *Value {
	if v == nil || v.Kind != KindArray || i < 0 || i >= len(v.Elems) {
		return nil
	}
	return v.Elems[i]
}

// Keys returns the object's keys in source order, duplicates included.
func (v *Value) Keys() []string {
	if v == nil || v.Kind != KindObject {
		return nil
	}
	keys := make([]string, len(v.Fields))
	for i, f := range v.Fields {
		keys[i] = f.Key
	}
	return keys
}

// IsScalar reports whether the value has no children.
func (v *Value) IsScalar() bool {
	switch v.Kind {
	case KindArray, KindObject, KindFunction, KindExpression:
		return false
	}
	return true
}

// IsInteger reports whether the value is a finite number without a
// fractional part.
func (v *Value) IsInteger() bool {
	if v == nil || v.Kind != KindNumber {
		return false
	}
	if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
		return false
	}
	return v.Num == math.Trunc(v.Num)
}

// Clone returns a deep copy of the value.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	c := *v
	if v.Fields != nil {
		c.Fields = make([]Field, len(v.Fields))
		for i, f := range v.Fields {
			c.Fields[i] = Field{Key: f.Key, Value: f.Value.Clone(), Pos: f.Pos}
		}
	}
	if v.Elems != nil {
		c.Elems = make([]*Value, len(v.Elems))
		for i, e := range v.Elems {
			c.Elems[i] = e.Clone()
		}
	}
	return &c
}

// Document is a parsed source file.
type Document struct {
	// Root is the options value.
	Root *Value

	// Binding is the variable name of a `var name = ...` declaration.
	Binding string

	// Call is set when the value was passed to a call expression.
	Call *Call
}

// Call records the call expression that wrapped the options value.
type Call struct {
	Callee string
	Args   []*Value
	Pos    Position
}

// SyntaxError reports malformed input.
type SyntaxError struct {
	Pos Position
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}
