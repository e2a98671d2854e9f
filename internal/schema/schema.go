package schema

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/firefly-engineering/chartlit/internal/literal"
)

// Type is the kind of value a schema node accepts.
type Type string

const (
	TypeAny      Type = "any"
	TypeNumber   Type = "number"
	TypeInteger  Type = "integer"
	TypeFloat    Type = "float"
	TypeString   Type = "string"
	TypeBoolean  Type = "boolean"
	TypeColor    Type = "color"
	TypeCallback Type = "callback"
	TypeObject   Type = "object"
	TypeArray    Type = "array"
	TypeOneOf    Type = "oneOf"
)

var validTypes = map[Type]bool{
	TypeAny: true, TypeNumber: true, TypeInteger: true, TypeFloat: true,
	TypeString: true, TypeBoolean: true, TypeColor: true, TypeCallback: true,
	TypeObject: true, TypeArray: true, TypeOneOf: true,
}

// GradientDefinition is the definition color nodes use for object values.
const GradientDefinition = "gradient"

// Node describes the values accepted at one position of the option tree.
//
// In YAML a node may be written as a bare type name (`x1: float`) or as a
// `$name` reference to a definition.
type Node struct {
	Type        Type             `yaml:"type"`
	Ref         string           `yaml:"ref"`
	Extends     string           `yaml:"extends"`
	Description string           `yaml:"description"`
	Properties  map[string]*Node `yaml:"properties"`
	// Values validates keys not listed in Properties.
	Values *Node `yaml:"values"`
	// Additional allows unlisted keys with any value.
	Additional bool     `yaml:"additional"`
	Items      *Node    `yaml:"items"`
	Tuple      []*Node  `yaml:"tuple"`
	OneOf      []*Node  `yaml:"oneOf"`
	Enum       []string `yaml:"enum"`
	Min        *float64 `yaml:"min"`
	Max        *float64 `yaml:"max"`
}

// UnmarshalYAML accepts the scalar shorthands as well as full mappings.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		if strings.HasPrefix(s, "$") {
			n.Ref = s[1:]
		} else {
			n.Type = Type(s)
		}
		return nil
	}
	type plain Node
	return value.Decode((*plain)(n))
}

// Schema is a loaded option tree.
type Schema struct {
	Version     string           `yaml:"version"`
	Root        *Node            `yaml:"root"`
	Definitions map[string]*Node `yaml:"definitions"`
}

//go:embed options.yaml
var defaultSchemaYAML []byte

var (
	defaultOnce   sync.Once
	defaultSchema *Schema
	defaultErr    error
)

// Default returns the built-in charting option schema.
func Default() (*Schema, error) {
	defaultOnce.Do(func() {
		defaultSchema, defaultErr = Load(defaultSchemaYAML)
	})
	return defaultSchema, defaultErr
}

// Load parses and checks a YAML schema.
func Load(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	if s.Root == nil {
		return nil, fmt.Errorf("schema has no root")
	}
	if err := s.applyExtends(); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(s.Definitions))
	for name := range s.Definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := s.check(s.Definitions[name], "$"+name); err != nil {
			return nil, err
		}
	}
	if err := s.check(s.Root, "root"); err != nil {
		return nil, err
	}
	return &s, nil
}

// applyExtends copies the properties of extended definitions into the nodes
// that extend them. Properties declared on the extending node win.
func (s *Schema) applyExtends() error {
	var visit func(n *Node, seen map[string]bool) error
	visit = func(n *Node, seen map[string]bool) error {
		if n == nil {
			return nil
		}
		for _, child := range n.children() {
			if err := visit(child, seen); err != nil {
				return err
			}
		}
		if n.Extends == "" {
			return nil
		}
		if seen[n.Extends] {
			return fmt.Errorf("schema: extends cycle through %q", n.Extends)
		}
		base, ok := s.Definitions[n.Extends]
		if !ok {
			return fmt.Errorf("schema: unknown definition %q in extends", n.Extends)
		}
		seen[n.Extends] = true
		if err := visit(base, seen); err != nil {
			return err
		}
		delete(seen, n.Extends)
		if n.Properties == nil {
			n.Properties = make(map[string]*Node, len(base.Properties))
		}
		for k, v := range base.Properties {
			if _, ok := n.Properties[k]; !ok {
				n.Properties[k] = v
			}
		}
		if n.Type == "" {
			n.Type = base.Type
		}
		n.Extends = ""
		return nil
	}
	for _, def := range s.Definitions {
		if err := visit(def, map[string]bool{}); err != nil {
			return err
		}
	}
	return visit(s.Root, map[string]bool{})
}

func (n *Node) children() []*Node {
	var out []*Node
	for _, p := range n.Properties {
		out = append(out, p)
	}
	out = append(out, n.Values, n.Items)
	out = append(out, n.Tuple...)
	out = append(out, n.OneOf...)
	return out
}

func (s *Schema) check(n *Node, where string) error {
	if n == nil {
		return nil
	}
	if n.Ref != "" {
		if n.Type != "" {
			return fmt.Errorf("schema: %s: node has both type and ref", where)
		}
		if _, ok := s.Definitions[n.Ref]; !ok {
			return fmt.Errorf("schema: %s: unknown definition %q", where, n.Ref)
		}
		return nil
	}
	if !validTypes[n.Type] {
		return fmt.Errorf("schema: %s: invalid type %q", where, n.Type)
	}
	if n.Type == TypeOneOf && len(n.OneOf) == 0 {
		return fmt.Errorf("schema: %s: oneOf without alternatives", where)
	}
	if n.Type == TypeColor {
		if _, ok := s.Definitions[GradientDefinition]; !ok {
			return fmt.Errorf("schema: %s: color requires a %q definition", where, GradientDefinition)
		}
	}
	keys := make([]string, 0, len(n.Properties))
	for k := range n.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := s.check(n.Properties[k], where+"."+k); err != nil {
			return err
		}
	}
	if err := s.check(n.Values, where+".*"); err != nil {
		return err
	}
	if err := s.check(n.Items, where+"[]"); err != nil {
		return err
	}
	for i, t := range n.Tuple {
		if err := s.check(t, fmt.Sprintf("%s[%d]", where, i)); err != nil {
			return err
		}
	}
	for i, alt := range n.OneOf {
		if err := s.check(alt, fmt.Sprintf("%s|%d", where, i)); err != nil {
			return err
		}
	}
	return nil
}

// Resolve follows definition references. A nil node resolves to nil, which
// callers treat as "any".
func (s *Schema) Resolve(n *Node) *Node {
	for i := 0; n != nil && n.Ref != "" && i < 32; i++ {
		n = s.Definitions[n.Ref]
	}
	return n
}

// Child returns the node for key inside an object node.
func (s *Schema) Child(n *Node, key string) *Node {
	n = s.Resolve(n)
	if n == nil || n.Type != TypeObject {
		return nil
	}
	if p, ok := n.Properties[key]; ok {
		return p
	}
	return n.Values
}

// Element returns the node for the i-th element of an array node. A negative
// index returns the node shared by all non-tuple elements.
func (s *Schema) Element(n *Node, i int) *Node {
	n = s.Resolve(n)
	if n == nil || n.Type != TypeArray {
		return nil
	}
	if i >= 0 && i < len(n.Tuple) {
		return n.Tuple[i]
	}
	return n.Items
}

// Select resolves n against a concrete value: references are followed, the
// matching oneOf alternative is chosen, and color objects resolve to the
// gradient definition.
func (s *Schema) Select(n *Node, v *literal.Value) *Node {
	n = s.Resolve(n)
	if n == nil || v == nil {
		return n
	}
	switch n.Type {
	case TypeOneOf:
		alt := s.chooseAlternative(n, v)
		if alt == nil {
			return nil
		}
		return s.Select(alt, v)
	case TypeColor:
		if v.Kind == literal.KindObject {
			return s.Resolve(s.Definitions[GradientDefinition])
		}
	}
	return n
}

// chooseAlternative returns the first alternative whose kind matches v and
// that validates without errors, or the first kind match.
func (s *Schema) chooseAlternative(n *Node, v *literal.Value) *Node {
	var first *Node
	for _, alt := range n.OneOf {
		if !s.accepts(alt, v) {
			continue
		}
		if first == nil {
			first = alt
		}
		sub := &validator{s: s}
		sub.validate(alt, v, nil)
		if !HasErrors(sub.issues) {
			return alt
		}
	}
	return first
}

// accepts reports whether v has a kind the node can hold.
func (s *Schema) accepts(n *Node, v *literal.Value) bool {
	n = s.Resolve(n)
	if n == nil {
		return true
	}
	switch v.Kind {
	case literal.KindNull, literal.KindUndefined:
		return true
	}
	switch n.Type {
	case TypeAny:
		return true
	case TypeNumber:
		return v.Kind == literal.KindNumber || v.Kind == literal.KindExpression
	case TypeInteger, TypeFloat:
		return v.Kind == literal.KindNumber
	case TypeString:
		return v.Kind == literal.KindString
	case TypeBoolean:
		return v.Kind == literal.KindBool
	case TypeCallback:
		return v.Kind == literal.KindFunction
	case TypeColor:
		return v.Kind == literal.KindString || v.Kind == literal.KindObject
	case TypeObject:
		return v.Kind == literal.KindObject
	case TypeArray:
		return v.Kind == literal.KindArray
	case TypeOneOf:
		for _, alt := range n.OneOf {
			if s.accepts(alt, v) {
				return true
			}
		}
	}
	return false
}

// TypeAt returns the node describing the option at path. Array indexes
// (including the `[]` wildcard) step into element nodes.
func (s *Schema) TypeAt(path literal.Path) (*Node, error) {
	n := s.Root
	for i, e := range path {
		n = s.Resolve(n)
		if n == nil || n.Type == TypeAny {
			return nil, nil
		}
		var next *Node
		if e.IsIndex {
			arr := s.pick(n, TypeArray)
			next = s.Element(arr, e.Index)
			if next == nil && arr.Type == TypeArray {
				return nil, nil
			}
		} else {
			obj := s.pick(n, TypeObject)
			next = s.Child(obj, e.Key)
			if next == nil && obj.Type == TypeObject && obj.Additional {
				return nil, nil
			}
		}
		if next == nil {
			return nil, fmt.Errorf("no option at %s", path[:i+1])
		}
		n = next
	}
	return s.Resolve(n), nil
}

// pick narrows oneOf and color nodes to an alternative of the wanted type.
func (s *Schema) pick(n *Node, want Type) *Node {
	n = s.Resolve(n)
	if n == nil {
		return nil
	}
	switch n.Type {
	case TypeOneOf:
		for _, alt := range n.OneOf {
			if r := s.pick(alt, want); r != nil && r.Type == want {
				return r
			}
		}
	case TypeColor:
		if want == TypeObject {
			return s.Resolve(s.Definitions[GradientDefinition])
		}
	}
	return n
}

// Describe returns a one-line summary of a node, e.g. "number" or
// "one of number, array of number".
func (s *Schema) Describe(n *Node) string {
	n = s.Resolve(n)
	if n == nil {
		return string(TypeAny)
	}
	switch n.Type {
	case TypeArray:
		if len(n.Tuple) > 0 {
			parts := make([]string, len(n.Tuple))
			for i, t := range n.Tuple {
				parts[i] = s.Describe(t)
			}
			return "[" + strings.Join(parts, ", ") + "]"
		}
		if n.Items != nil {
			return "array of " + s.Describe(n.Items)
		}
		return "array"
	case TypeOneOf:
		parts := make([]string, len(n.OneOf))
		for i, alt := range n.OneOf {
			parts[i] = s.Describe(alt)
		}
		return "one of " + strings.Join(parts, ", ")
	case TypeString:
		if len(n.Enum) > 0 {
			return "string (" + strings.Join(n.Enum, "|") + ")"
		}
	}
	return string(n.Type)
}

// PropertyNames returns the sorted property names of an object node.
func (s *Schema) PropertyNames(n *Node) []string {
	n = s.pick(n, TypeObject)
	if n == nil || n.Type != TypeObject {
		return nil
	}
	names := make([]string, 0, len(n.Properties))
	for k := range n.Properties {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
