package schema

import (
	"strings"
	"testing"

	"github.com/firefly-engineering/chartlit/internal/system"
)

const titleSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "title": {
      "type": "object",
      "properties": {"text": {"type": "string"}}
    }
  }
}`

func TestExternal_Validate(t *testing.T) {
	ext, err := CompileExternal("title.schema.json", strings.NewReader(titleSchema))
	if err != nil {
		t.Fatalf("CompileExternal error: %v", err)
	}

	issues, err := ext.Validate(mustParse(t, `{ title: { text: 'ok' }, tooltip: { formatter: function () {} } }`))
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("valid document produced issues: %v", issues)
	}

	issues, err = ext.Validate(mustParse(t, "{\n  title: { text: 5 }\n}"))
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	found := false
	for _, i := range issues {
		if i.Path == "title.text" {
			found = true
			if i.Pos.Line != 2 {
				t.Errorf("Pos.Line = %d, want 2", i.Pos.Line)
			}
		}
	}
	if !found {
		t.Errorf("issues = %v, want one at title.text", issues)
	}
}

func TestLoadExternal(t *testing.T) {
	fsys := system.NewMockFS()
	fsys.AddFile("/schemas/options.schema.json", []byte(titleSchema), 0644)

	ext, err := LoadExternal(fsys, "/schemas/options.schema.json")
	if err != nil {
		t.Fatalf("LoadExternal error: %v", err)
	}
	if ext.Location() != "/schemas/options.schema.json" {
		t.Errorf("Location() = %q, want %q", ext.Location(), "/schemas/options.schema.json")
	}

	if _, err := LoadExternal(fsys, "/schemas/missing.json"); err == nil {
		t.Error("LoadExternal should fail for a missing file")
	}
	if _, err := CompileExternal("bad.json", strings.NewReader(`{"type": 5}`)); err == nil {
		t.Error("CompileExternal should reject an invalid schema")
	}
}

func TestExternal_ValidateNumbers(t *testing.T) {
	ext, err := CompileExternal("numbers.schema.json", strings.NewReader(`{
  "type": "object",
  "properties": {
    "borderWidth": {"type": "integer", "maximum": 4},
    "x1": {"type": "number"}
  }
}`))
	if err != nil {
		t.Fatalf("CompileExternal error: %v", err)
	}

	issues, err := ext.Validate(mustParse(t, `{ borderWidth: 2, x1: 0.5 }`))
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("valid numbers produced issues: %v", issues)
	}

	issues, err = ext.Validate(mustParse(t, `{ borderWidth: 2.5 }`))
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if len(issues) == 0 || issues[0].Path != "borderWidth" {
		t.Errorf("issues = %v, want one at borderWidth", issues)
	}
}

func TestPointerToPath(t *testing.T) {
	tests := []struct {
		ptr  string
		want string
	}{
		{"", "(root)"},
		{"/series/0/data", "series[0].data"},
		{"/a~1b/c~0d", `["a/b"]["c~d"]`},
		{"/x/01", "x[\"01\"]"},
	}
	for _, tt := range tests {
		t.Run(tt.ptr, func(t *testing.T) {
			if got := pointerToPath(tt.ptr); got != tt.want {
				t.Errorf("pointerToPath(%q) = %q, want %q", tt.ptr, got, tt.want)
			}
		})
	}
}
