// Package reader turns option files of any supported format into literal
// documents.
package reader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tailscale/hujson"
	"github.com/titanous/json5"

	"github.com/firefly-engineering/chartlit/internal/literal"
)

// Format is an input file format.
type Format string

const (
	FormatJS    Format = "js"
	FormatJSON  Format = "json"
	FormatJSON5 Format = "json5"
)

// Extensions lists every file extension Read understands.
var Extensions = []string{".js", ".mjs", ".ts", ".json", ".jsonc", ".json5"}

// FormatFor returns the format implied by a file name's extension.
func FormatFor(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".js", ".mjs", ".ts":
		return FormatJS, nil
	case ".json", ".jsonc":
		return FormatJSON, nil
	case ".json5":
		return FormatJSON5, nil
	}
	return "", fmt.Errorf("unsupported file type %q", filepath.Ext(name))
}

// IsSupported reports whether name has an extension Read understands.
func IsSupported(name string) bool {
	_, err := FormatFor(name)
	return err == nil
}

// Read parses data according to the format implied by name.
func Read(name string, data []byte) (*literal.Document, error) {
	format, err := FormatFor(name)
	if err != nil {
		return nil, err
	}
	return ReadFormat(format, data)
}

// ReadFormat parses data in the given format.
func ReadFormat(format Format, data []byte) (*literal.Document, error) {
	switch format {
	case FormatJS:
		return literal.Parse(data)
	case FormatJSON:
		return readJSONC(data)
	case FormatJSON5:
		return readJSON5(data)
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

// readJSONC accepts JSON with comments and trailing commas. The tree is
// built from the syntax so member order, duplicates and positions survive.
func readJSONC(data []byte) (*literal.Document, error) {
	root, err := hujson.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	b := &jsonBuilder{pos: literal.NewPositions(data)}
	v, err := b.value(root)
	if err != nil {
		return nil, err
	}
	return &literal.Document{Root: v}, nil
}

type jsonBuilder struct {
	pos *literal.Positions
}

func (b *jsonBuilder) value(hv hujson.Value) (*literal.Value, error) {
	pos := b.pos.At(hv.StartOffset)
	switch t := hv.Value.(type) {
	case *hujson.Object:
		obj := &literal.Value{Kind: literal.KindObject, Pos: pos}
		for _, m := range t.Members {
			keyPos := b.pos.At(m.Name.StartOffset)
			key, ok := m.Name.Value.(hujson.Literal)
			if !ok || key.Kind() != '"' {
				return nil, fmt.Errorf("failed to decode JSON: %s: object key must be a string", keyPos)
			}
			val, err := b.value(m.Value)
			if err != nil {
				return nil, err
			}
			obj.Fields = append(obj.Fields, literal.Field{Key: key.String(), Value: val, Pos: keyPos})
		}
		return obj, nil

	case *hujson.Array:
		arr := &literal.Value{Kind: literal.KindArray, Pos: pos, Elems: []*literal.Value{}}
		for _, e := range t.Elements {
			val, err := b.value(e)
			if err != nil {
				return nil, err
			}
			arr.Elems = append(arr.Elems, val)
		}
		return arr, nil

	case hujson.Literal:
		v := &literal.Value{Pos: pos}
		switch t.Kind() {
		case 'n':
			v.Kind = literal.KindNull
		case 't', 'f':
			v.Kind = literal.KindBool
			v.Bool = t.Bool()
		case '"':
			v.Kind = literal.KindString
			v.Str = t.String()
		case '0':
			n, err := strconv.ParseFloat(string(t), 64)
			if err != nil && !errors.Is(err, strconv.ErrRange) {
				return nil, fmt.Errorf("failed to decode JSON: %s: %w", pos, err)
			}
			v.Kind = literal.KindNumber
			v.Num = n
			v.Raw = string(t)
		default:
			return nil, fmt.Errorf("failed to decode JSON: %s: invalid literal %q", pos, string(t))
		}
		return v, nil
	}
	return nil, fmt.Errorf("failed to decode JSON: %s: unexpected value", pos)
}

// readJSON5 checks the document against the JSON5 grammar, then builds the
// tree with the literal parser, which accepts every JSON5 construct and keeps
// order, duplicates and positions.
func readJSON5(data []byte) (*literal.Document, error) {
	var x any
	if err := json5.Unmarshal(data, &x); err != nil {
		return nil, fmt.Errorf("failed to parse JSON5: %w", err)
	}
	v, err := literal.ParseValue(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON5: %w", err)
	}
	return &literal.Document{Root: v}, nil
}
