package app

import (
	"fmt"
	"path/filepath"

	"github.com/firefly-engineering/chartlit/internal/errors"
	"github.com/firefly-engineering/chartlit/internal/literal"
	"github.com/firefly-engineering/chartlit/internal/logging"
	"github.com/firefly-engineering/chartlit/internal/normalize"
	"github.com/firefly-engineering/chartlit/internal/reader"
	"github.com/firefly-engineering/chartlit/internal/render"
	"github.com/firefly-engineering/chartlit/internal/schema"
)

// cachedDocument is a parse result. Failed parses are cached too so an
// unchanged broken file is not re-read on every run.
type cachedDocument struct {
	doc *literal.Document
	err error
}

// Output is the result of processing one file.
type Output struct {
	// Path is the file that was processed.
	Path string

	// Doc is the parsed source. Nil when parsing failed.
	Doc *literal.Document

	// Value is the normalized options value. Nil when validation failed.
	Value *literal.Value

	// Issues holds every validation finding, warnings included.
	Issues []schema.Issue
}

// Load reads and parses path, consulting the document cache first.
// Callers must not modify the returned document.
func (a *App) Load(path string) (*literal.Document, error) {
	info, err := a.FS.Stat(path)
	if err != nil {
		return nil, errors.Wrap(errors.ExitGeneralError, fmt.Sprintf("failed to read %s", path), err)
	}
	key := DocumentKey{Path: path, Size: info.Size(), ModTime: info.ModTime()}

	if a.Cache != nil {
		if c, ok := a.Cache.Get(key); ok {
			logging.Debug("document cache hit", "path", path)
			return c.doc, c.err
		}
	}

	data, err := a.FS.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ExitGeneralError, fmt.Sprintf("failed to read %s", path), err)
	}
	doc, err := reader.Read(path, data)
	if err != nil {
		err = errors.ParseError(filepath.Base(path), err)
	}
	if a.Cache != nil {
		a.Cache.Add(key, &cachedDocument{doc: doc, err: err})
	}
	return doc, err
}

// NormalizeOptions returns the normalization options from the configuration.
func (a *App) NormalizeOptions() normalize.Options {
	return normalize.Options{
		Strict:        a.Config.Validation.Strict,
		PreserveOrder: a.Config.Validation.PreserveOrder,
	}
}

// Style returns the render style from the configuration.
func (a *App) Style() render.Style {
	return a.Config.Render.Style()
}

// Process parses, validates and normalizes path. On a validation failure
// the returned Output still carries the document and its issues.
func (a *App) Process(path string) (*Output, error) {
	doc, err := a.Load(path)
	if err != nil {
		return &Output{Path: path}, err
	}
	return a.ProcessDocument(path, doc)
}

// ProcessDocument validates and normalizes an already parsed document.
func (a *App) ProcessDocument(path string, doc *literal.Document) (*Output, error) {
	out := &Output{Path: path, Doc: doc}
	if a.Schema == nil {
		return out, errors.New(errors.ExitGeneralError, "no option schema loaded")
	}

	value, issues, err := normalize.Normalize(doc.Root, a.Schema, a.NormalizeOptions())
	out.Issues = issues
	if err != nil {
		return out, errors.ValidationFailed(filepath.Base(path), err)
	}

	ext, err := a.ExternalSchema()
	if err != nil {
		return out, errors.ConfigError("invalid JSON schema", err)
	}
	if ext != nil {
		extIssues, err := ext.Validate(value)
		if err != nil {
			return out, errors.Wrap(errors.ExitGeneralError, "JSON schema validation failed", err)
		}
		out.Issues = append(out.Issues, extIssues...)
		if schema.HasErrors(extIssues) {
			return out, errors.ValidationFailed(filepath.Base(path), &normalize.ValidationError{Issues: schema.Errors(extIssues)})
		}
	}

	out.Value = value
	logging.Debug("processed document", "path", path, "issues", len(out.Issues))
	return out, nil
}

// Render returns the canonical text of a processed value.
func (a *App) Render(v *literal.Value) string {
	return render.Render(v, a.Style())
}
