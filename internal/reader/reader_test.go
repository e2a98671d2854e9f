package reader

import (
	"errors"
	"strings"
	"testing"

	"github.com/firefly-engineering/chartlit/internal/literal"
)

func TestFormatFor(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{"01.js", FormatJS, false},
		{"options.MJS", FormatJS, false},
		{"options.ts", FormatJS, false},
		{"options.json", FormatJSON, false},
		{"options.jsonc", FormatJSON, false},
		{"options.json5", FormatJSON5, false},
		{"options.yaml", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatFor(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFor(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatFor(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestRead_JS(t *testing.T) {
	doc, err := Read("01.js", []byte(`Highcharts.setOptions({ chart: { type: 'bar' } })`))
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if doc.Call == nil || doc.Call.Callee != "Highcharts.setOptions" {
		t.Errorf("Call = %+v, want Highcharts.setOptions", doc.Call)
	}
	if got := doc.Root.Get("chart").Get("type").Str; got != "bar" {
		t.Errorf("chart.type = %q, want %q", got, "bar")
	}
}

func TestRead_JSONC(t *testing.T) {
	src := `{
		// comment
		"title": {"text": "Sales"},
		"colors": ["#000", "#fff",],
	}`
	doc, err := Read("options.jsonc", []byte(src))
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if doc.Call != nil {
		t.Error("JSON documents should have no call")
	}
	if got := doc.Root.Keys(); len(got) != 2 || got[0] != "title" || got[1] != "colors" {
		t.Errorf("Keys() = %v, want [title colors]", got)
	}
	if got := len(doc.Root.Get("colors").Elems); got != 2 {
		t.Errorf("len(colors) = %d, want 2", got)
	}
}

func TestRead_JSON5(t *testing.T) {
	src := `{
		// JSON5 allows unquoted keys and single quotes
		title: {text: 'Sales'},
		tickInterval: 16,
	}`
	doc, err := Read("options.json5", []byte(src))
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if got := doc.Root.Get("tickInterval").Num; got != 16 {
		t.Errorf("tickInterval = %v, want 16", got)
	}
	if got := doc.Root.Get("title").Get("text").Str; got != "Sales" {
		t.Errorf("title.text = %q, want %q", got, "Sales")
	}
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad.js", `{ a: }`},
		{"bad.json", `{"a": }`},
		{"bad.json5", `{a: }`},
		{"bad.txt", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Read(tt.name, []byte(tt.data)); err == nil {
				t.Errorf("Read(%q) should fail", tt.name)
			}
		})
	}
}

func TestRead_JSSyntaxErrorType(t *testing.T) {
	_, err := Read("bad.js", []byte(`{ a: 'x }`))
	var synErr *literal.SyntaxError
	if !errors.As(err, &synErr) {
		t.Errorf("error type = %T, want *literal.SyntaxError", err)
	}
}

func TestRead_JSONKeepsSyntax(t *testing.T) {
	src := "{\n  \"zIndex\": 1.0,\n  \"title\": \"é\", \"title\": \"Sales\",\n  \"data\": [1e3, -0]\n}"
	for _, name := range []string{"options.json", "options.json5"} {
		t.Run(name, func(t *testing.T) {
			doc, err := Read(name, []byte(src))
			if err != nil {
				t.Fatalf("Read error: %v", err)
			}
			root := doc.Root
			if got := root.Keys(); strings.Join(got, ",") != "zIndex,title,title,data" {
				t.Errorf("Keys() = %v, want [zIndex title title data]", got)
			}
			if got := root.Get("title").Str; got != "Sales" {
				t.Errorf("title = %q, want %q", got, "Sales")
			}
			if got := root.Get("zIndex").Raw; got != "1.0" {
				t.Errorf("zIndex raw = %q, want %q", got, "1.0")
			}
			if got := root.Get("data").Elems[0].Num; got != 1000 {
				t.Errorf("data[0] = %v, want 1000", got)
			}

			wantPos := []literal.Position{
				{Offset: 4, Line: 2, Column: 3},
				{Offset: 21, Line: 3, Column: 3},
				{Offset: 36, Line: 3, Column: 17},
				{Offset: 56, Line: 4, Column: 3},
			}
			for i, f := range root.Fields {
				if f.Pos != wantPos[i] {
					t.Errorf("Fields[%d].Pos = %+v, want %+v", i, f.Pos, wantPos[i])
				}
			}
		})
	}
}
