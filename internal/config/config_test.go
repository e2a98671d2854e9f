package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func noEnv(string) (string, bool) { return "", false }

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error: %v", err)
	}
	if cfg.Render.Wrapper != "Highcharts.setOptions" {
		t.Errorf("Wrapper = %q, want %q", cfg.Render.Wrapper, "Highcharts.setOptions")
	}
	if cfg.Corpus.Compare != CompareSemantic {
		t.Errorf("Compare = %q, want %q", cfg.Corpus.Compare, CompareSemantic)
	}
}

func TestRenderConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     RenderConfig
		wantErr bool
	}{
		{"defaults", RenderConfig{Indent: "  ", Quote: "'", Wrapper: "Highcharts.setOptions"}, false},
		{"tab and double quote", RenderConfig{Indent: "\t", Quote: `"`}, false},
		{"bare wrapper", RenderConfig{Indent: "    ", Quote: "'", Wrapper: "setOptions"}, false},
		{"empty indent", RenderConfig{Indent: "", Quote: "'"}, true},
		{"too much indent", RenderConfig{Indent: strings.Repeat(" ", 9), Quote: "'"}, true},
		{"mixed indent", RenderConfig{Indent: " \t", Quote: "'"}, true},
		{"backtick quote", RenderConfig{Indent: "  ", Quote: "`"}, true},
		{"call in wrapper", RenderConfig{Indent: "  ", Quote: "'", Wrapper: "Highcharts.chart('c')"}, true},
		{"trailing dot", RenderConfig{Indent: "  ", Quote: "'", Wrapper: "Highcharts."}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCorpusConfig_Validate(t *testing.T) {
	valid := Default().Corpus

	tests := []struct {
		name    string
		modify  func(c *CorpusConfig)
		wantErr bool
	}{
		{"defaults", func(c *CorpusConfig) {}, false},
		{"text compare", func(c *CorpusConfig) { c.Compare = CompareText }, false},
		{"cache disabled", func(c *CorpusConfig) { c.CacheSize = 0 }, false},
		{"zero concurrency", func(c *CorpusConfig) { c.Concurrency = 0 }, true},
		{"negative cache", func(c *CorpusConfig) { c.CacheSize = -1 }, true},
		{"unknown compare", func(c *CorpusConfig) { c.Compare = "bytes" }, true},
		{"bad debounce", func(c *CorpusConfig) { c.Debounce = "soon" }, true},
		{"negative debounce", func(c *CorpusConfig) { c.Debounce = "-1s" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.modify(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDebounceDuration(t *testing.T) {
	c := CorpusConfig{}
	if d, _ := c.DebounceDuration(); d != DefaultDebounce {
		t.Errorf("DebounceDuration() = %v, want %v", d, DefaultDebounce)
	}
	c.Debounce = "1s"
	if d, _ := c.DebounceDuration(); d != time.Second {
		t.Errorf("DebounceDuration() = %v, want 1s", d)
	}
}

func TestDiffConfig_Args(t *testing.T) {
	tests := []struct {
		command string
		want    []string
		wantErr bool
	}{
		{"", nil, false},
		{"diff -u", []string{"diff", "-u"}, false},
		{`delta --side-by-side --file-style 'bold yellow'`, []string{"delta", "--side-by-side", "--file-style", "bold yellow"}, false},
		{`diff "unterminated`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			d := DiffConfig{Command: tt.command}
			got, err := d.Args()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Args() error = %v, wantErr %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Args() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStyle(t *testing.T) {
	r := RenderConfig{Indent: "\t", Quote: `"`, Wrapper: "Chart.setOptions", Semicolon: true}
	st := r.Style()
	if st.Indent != "\t" || st.Quote != '"' || st.Wrapper != "Chart.setOptions" || !st.Semicolon {
		t.Errorf("Style() = %+v", st)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, DefaultConfigFile), `
[render]
indent = "    "
quote = '"'
semicolon = true

[validate]
strict = true
json_schema = "schemas/options.json"

[corpus]
root = "fixtures"
concurrency = 2
compare = "text"

[diff]
command = "diff -u"
`)

	cfg, err := Load(dir, "")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Render.Indent != "    " {
		t.Errorf("Indent = %q, want 4 spaces", cfg.Render.Indent)
	}
	if cfg.Render.Wrapper != "Highcharts.setOptions" {
		t.Errorf("Wrapper = %q, want default kept", cfg.Render.Wrapper)
	}
	if !cfg.Validation.Strict {
		t.Error("Strict should be true")
	}
	if want := filepath.Join(dir, "schemas", "options.json"); cfg.Validation.JSONSchema != want {
		t.Errorf("JSONSchema = %q, want %q", cfg.Validation.JSONSchema, want)
	}
	if want := filepath.Join(dir, "fixtures"); cfg.Corpus.Root != want {
		t.Errorf("Root = %q, want %q", cfg.Corpus.Root, want)
	}
	if cfg.Corpus.Concurrency != 2 {
		t.Errorf("Concurrency = %d, want 2", cfg.Corpus.Concurrency)
	}
	if cfg.Path != filepath.Join(dir, DefaultConfigFile) {
		t.Errorf("Path = %q", cfg.Path)
	}
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load(t.TempDir(), "")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Path != "" {
		t.Errorf("Path = %q, want empty", cfg.Path)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "[render]\nindnet = 2\n"},
		{"unknown section", "[server]\nport = 1\n"},
		{"bad toml", "[render\n"},
		{"invalid value", "[corpus]\nconcurrency = 0\n"},
		{"bad diff command", "[diff]\ncommand = \"diff 'x\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "custom.toml")
			writeFile(t, path, tt.content)
			if _, err := Load(dir, path); err == nil {
				t.Errorf("Load should fail for %q", tt.content)
			}
		})
	}

	if _, err := Load(t.TempDir(), "/nonexistent/chartlit.toml"); err == nil {
		t.Error("Load should fail for a missing explicit path")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"CHARTLIT_INDENT":       "tab",
		"CHARTLIT_QUOTE":        `"`,
		"CHARTLIT_WRAPPER":      "",
		"CHARTLIT_STRICT":       "true",
		"CHARTLIT_CONCURRENCY":  "8",
		"CHARTLIT_DIFF_COMMAND": "colordiff -u",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("ApplyEnv error: %v", err)
	}

	want := Default()
	want.Render.Indent = "\t"
	want.Render.Quote = `"`
	want.Render.Wrapper = ""
	want.Validation.Strict = true
	want.Corpus.Concurrency = 8
	want.Diff.Command = "colordiff -u"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("ApplyEnv mismatch (-want +got):\n%s", diff)
	}

	if err := Default().ApplyEnv(noEnv); err != nil {
		t.Errorf("ApplyEnv with empty env error: %v", err)
	}

	bad := func(k string) (string, bool) {
		if k == "CHARTLIT_STRICT" {
			return "maybe", true
		}
		return "", false
	}
	if err := Default().ApplyEnv(bad); err == nil {
		t.Error("ApplyEnv should reject a non-boolean CHARTLIT_STRICT")
	}
}

func TestParseIndent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2", "  "},
		{"4", "    "},
		{"tab", "\t"},
		{"   ", "   "},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseIndent(tt.in); got != tt.want {
				t.Errorf("parseIndent(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, EnvFile), "CHARTLIT_TEST_ENVFILE=from-file\n")
	t.Setenv("CHARTLIT_TEST_ENVFILE", "")
	os.Unsetenv("CHARTLIT_TEST_ENVFILE")

	if err := LoadEnvFile(dir); err != nil {
		t.Fatalf("LoadEnvFile error: %v", err)
	}
	if got := os.Getenv("CHARTLIT_TEST_ENVFILE"); got != "from-file" {
		t.Errorf("CHARTLIT_TEST_ENVFILE = %q, want %q", got, "from-file")
	}

	if err := LoadEnvFile(t.TempDir()); err != nil {
		t.Errorf("LoadEnvFile without .env error: %v", err)
	}
}
