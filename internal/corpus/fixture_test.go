package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/firefly-engineering/chartlit/internal/errors"
	"github.com/firefly-engineering/chartlit/internal/system"
)

func TestDiscover(t *testing.T) {
	mockFS := system.NewMockFS()
	for _, name := range []string{
		"01.js",
		"error-01.js",
		"shared_options.js",
		"shared_options_output.js",
		"lone_output.js",
		"nested/03.json",
		".hidden/skipped.js",
		"README.md",
	} {
		mockFS.AddFile("/corpus/"+name, []byte("{}"), 0644)
	}

	fixtures, err := Discover(mockFS, "/corpus")
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}

	want := []Fixture{
		{Name: "01.js", Path: "/corpus/01.js", Kind: KindValid},
		{Name: "error-01.js", Path: "/corpus/error-01.js", Kind: KindError},
		{Name: "lone_output.js", Path: "/corpus/lone_output.js", Kind: KindValid},
		{Name: "nested/03.json", Path: "/corpus/nested/03.json", Kind: KindValid},
		{
			Name:         "shared_options.js",
			Path:         "/corpus/shared_options.js",
			Kind:         KindPair,
			Expected:     "shared_options_output.js",
			ExpectedPath: "/corpus/shared_options_output.js",
		},
	}
	if diff := cmp.Diff(want, fixtures); diff != "" {
		t.Errorf("Discover() mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscover_NotADirectory(t *testing.T) {
	mockFS := system.NewMockFS()

	_, err := Discover(mockFS, "/missing")
	if got := errors.GetExitCode(err); got != errors.ExitFixtureNotFound {
		t.Errorf("GetExitCode() = %d, want %d", got, errors.ExitFixtureNotFound)
	}
}

func TestDiscover_JSONOutput(t *testing.T) {
	mockFS := system.NewMockFS()
	mockFS.AddFile("/c/theme.json5", []byte("{}"), 0644)
	mockFS.AddFile("/c/theme_output.js", []byte("{}"), 0644)

	fixtures, err := Discover(mockFS, "/c")
	if err != nil {
		t.Fatal(err)
	}
	if len(fixtures) != 1 || fixtures[0].Kind != KindPair || fixtures[0].Expected != "theme_output.js" {
		t.Errorf("Discover() = %+v, want one pair with theme_output.js", fixtures)
	}
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "nested"), 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"01.js", "nested/02.json"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	fsys := system.DefaultFS()

	tests := []struct {
		name     string
		want     string
		wantCode int
	}{
		{"01.js", filepath.Join(root, "01.js"), 0},
		{"01", filepath.Join(root, "01.js"), 0},
		{"nested/02.json", filepath.Join(root, "nested", "02.json"), 0},
		{"missing", "", errors.ExitFixtureNotFound},
		{"nested", "", errors.ExitFixtureNotFound},
		{"../outside.js", "", errors.ExitGeneralError},
		{"/etc/passwd", "", errors.ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(fsys, root, tt.name)
			if tt.wantCode != 0 {
				if err == nil {
					t.Fatalf("Resolve(%q) = %q, want error", tt.name, got)
				}
				if code := errors.GetExitCode(err); code != tt.wantCode {
					t.Errorf("GetExitCode() = %d, want %d", code, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) error: %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestFind(t *testing.T) {
	fixtures := []Fixture{
		{Name: "01.js"},
		{Name: "nested/shared_options.js"},
	}

	if f, ok := Find(fixtures, "01.js"); !ok || f.Name != "01.js" {
		t.Errorf("Find(01.js) = %+v, %v", f, ok)
	}
	if f, ok := Find(fixtures, "nested/shared_options"); !ok || f.Name != "nested/shared_options.js" {
		t.Errorf("Find(nested/shared_options) = %+v, %v", f, ok)
	}
	if _, ok := Find(fixtures, "02"); ok {
		t.Error("Find(02) should not match")
	}
}
