// Package normalize validates a parsed option literal and rewrites it into
// canonical form.
//
// Canonical form has no undefined object fields, one field per key (the last
// duplicate wins and keeps the position of the first), keys sorted
// byte-wise at every level, array holes as null, and numbers in float-typed
// options marked so they render with a fractional part.
package normalize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/firefly-engineering/chartlit/internal/literal"
	"github.com/firefly-engineering/chartlit/internal/schema"
)

// Options control normalization.
type Options struct {
	// Strict turns unknown options into validation errors.
	Strict bool

	// PreserveOrder keeps object keys in source order instead of sorting.
	PreserveOrder bool
}

// ValidationError is returned when a document has error-severity issues.
type ValidationError struct {
	Issues []schema.Issue
}

func (e *ValidationError) Error() string {
	switch len(e.Issues) {
	case 0:
		return "validation failed"
	case 1:
		return "validation failed: " + e.Issues[0].String()
	}
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.String()
	}
	return fmt.Sprintf("validation failed with %d errors:\n  %s", len(e.Issues), strings.Join(msgs, "\n  "))
}

// Normalize validates v against sch and returns its canonical form along
// with every issue found. v is not modified. When validation fails the
// returned error is a *ValidationError and the value is nil.
func Normalize(v *literal.Value, sch *schema.Schema, opts Options) (*literal.Value, []schema.Issue, error) {
	if v == nil {
		return nil, nil, fmt.Errorf("normalize: nil document")
	}
	issues := sch.Validate(v, schema.Options{Strict: opts.Strict})
	if schema.HasErrors(issues) {
		return nil, issues, &ValidationError{Issues: schema.Errors(issues)}
	}
	n := &normalizer{sch: sch, opts: opts}
	return n.value(sch.Root, v.Clone()), issues, nil
}

type normalizer struct {
	sch  *schema.Schema
	opts Options
}

func (n *normalizer) value(node *schema.Node, v *literal.Value) *literal.Value {
	if v.Kind == literal.KindUndefined {
		return literal.Null()
	}
	node = n.sch.Select(node, v)
	switch v.Kind {
	case literal.KindObject:
		v.Fields = n.fields(node, v.Fields)
	case literal.KindArray:
		for i, e := range v.Elems {
			v.Elems[i] = n.value(n.sch.Element(node, i), e)
		}
	case literal.KindNumber:
		v.Float = node != nil && node.Type == schema.TypeFloat
	}
	return v
}

func (n *normalizer) fields(node *schema.Node, fields []literal.Field) []literal.Field {
	out := make([]literal.Field, 0, len(fields))
	index := make(map[string]int, len(fields))
	for _, f := range fields {
		if i, ok := index[f.Key]; ok {
			out[i].Value = f.Value
			continue
		}
		index[f.Key] = len(out)
		out = append(out, f)
	}

	kept := out[:0]
	for _, f := range out {
		if f.Value.Kind == literal.KindUndefined {
			continue
		}
		f.Value = n.value(n.sch.Child(node, f.Key), f.Value)
		kept = append(kept, f)
	}

	if !n.opts.PreserveOrder {
		sort.SliceStable(kept, func(i, j int) bool { return kept[i].Key < kept[j].Key })
	}
	return kept
}
