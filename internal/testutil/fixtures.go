package testutil

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

//go:embed fixtures/*.js
var fixturesFS embed.FS

// Fixture names in the embedded corpus.
const (
	ValidFixture         = "01.js"
	SecondValidFixture   = "02.js"
	TypeErrorFixture     = "error-01.js"
	ShapeErrorFixture    = "error-02.js"
	SyntaxErrorFixture   = "error-03.js"
	SharedOptionsFixture = "shared_options.js"
	SharedOptionsOutput  = "shared_options_output.js"
)

// LoadFixture loads an embedded fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// MustLoadFixture loads a fixture or fails the test.
func MustLoadFixture(t testing.TB, name string) []byte {
	t.Helper()
	data, err := LoadFixture(name)
	if err != nil {
		t.Fatalf("failed to load fixture %s: %v", name, err)
	}
	return data
}

// FixtureNames returns the names of all embedded fixtures, sorted.
func FixtureNames() []string {
	entries, err := fs.ReadDir(fixturesFS, "fixtures")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

// WriteCorpus copies every embedded fixture into dir.
func WriteCorpus(t testing.TB, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create corpus dir: %v", err)
	}
	for _, name := range FixtureNames() {
		if err := os.WriteFile(filepath.Join(dir, name), MustLoadFixture(t, name), 0644); err != nil {
			t.Fatalf("failed to write fixture %s: %v", name, err)
		}
	}
}
