package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/firefly-engineering/chartlit/internal/literal"
)

// External is a compiled JSON Schema used as an additional check on the
// JSON projection of a document.
type External struct {
	location string
	compiled *jsonschema.Schema
}

// CompileExternal compiles the JSON Schema read from r. location names the
// schema in error messages and resolves relative $refs.
func CompileExternal(location string, r io.Reader) (*External, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(location, r); err != nil {
		return nil, fmt.Errorf("failed to load JSON schema %s: %w", location, err)
	}
	sch, err := c.Compile(location)
	if err != nil {
		return nil, fmt.Errorf("failed to compile JSON schema %s: %w", location, err)
	}
	return &External{location: location, compiled: sch}, nil
}

// FileReader reads whole files.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// LoadExternal reads and compiles the JSON Schema file at path.
func LoadExternal(fsys FileReader, path string) (*External, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON schema %s: %w", path, err)
	}
	return CompileExternal(path, bytes.NewReader(data))
}

// Location returns the name the schema was compiled from.
func (e *External) Location() string {
	return e.location
}

// Validate checks the JSON projection of v. Functions are checked as their
// source strings and undefined fields are absent.
func (e *External) Validate(v *literal.Value) ([]Issue, error) {
	data, err := json.Marshal(literal.ToAny(v))
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var inst any
	if err := dec.Decode(&inst); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}

	err = e.compiled.Validate(inst)
	if err == nil {
		return nil, nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return nil, err
	}

	var issues []Issue
	for _, u := range verr.BasicOutput().Errors {
		if u.Error == "" || strings.HasPrefix(u.Error, "doesn't validate with") {
			continue
		}
		issues = append(issues, Issue{
			Path:     pointerToPath(u.InstanceLocation),
			Pos:      lookupPos(v, u.InstanceLocation),
			Severity: SeverityError,
			Code:     CodeType,
			Message:  u.Error,
		})
	}
	if len(issues) == 0 {
		issues = append(issues, Issue{Path: "(root)", Severity: SeverityError, Code: CodeType, Message: verr.Message})
	}
	return issues, nil
}

// pointerToPath converts a JSON pointer such as /series/0/data into
// the dotted path form used by Issue.
func pointerToPath(ptr string) string {
	return pointerPath(ptr).String()
}

func pointerPath(ptr string) literal.Path {
	var p literal.Path
	if ptr == "" || ptr == "/" {
		return p
	}
	for _, tok := range strings.Split(strings.TrimPrefix(ptr, "/"), "/") {
		tok = strings.ReplaceAll(strings.ReplaceAll(tok, "~1", "/"), "~0", "~")
		if n, ok := parseIndex(tok); ok {
			p = p.Index(n)
			continue
		}
		p = p.Key(tok)
	}
	return p
}

func parseIndex(tok string) (int, bool) {
	if tok == "" || (len(tok) > 1 && tok[0] == '0') {
		return 0, false
	}
	n := 0
	for _, c := range tok {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

func lookupPos(v *literal.Value, ptr string) literal.Position {
	if found := v.Lookup(pointerPath(ptr)); found != nil {
		return found.Pos
	}
	return literal.Position{}
}
