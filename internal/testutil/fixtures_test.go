package testutil

import (
	"os"
	"strings"
	"testing"

	"github.com/firefly-engineering/chartlit/internal/app"
)

func TestFixtureNames(t *testing.T) {
	names := FixtureNames()
	want := []string{
		ValidFixture, SecondValidFixture,
		TypeErrorFixture, ShapeErrorFixture, SyntaxErrorFixture,
		SharedOptionsFixture, SharedOptionsOutput,
	}
	if len(names) != len(want) {
		t.Fatalf("FixtureNames() = %v, want %d names", names, len(want))
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("FixtureNames()[%d] = %q, want %q", i, names[i], name)
		}
	}
}

func TestLoadFixture(t *testing.T) {
	data, err := LoadFixture(SharedOptionsOutput)
	if err != nil {
		t.Fatalf("LoadFixture() error: %v", err)
	}
	if !strings.HasPrefix(string(data), "Highcharts.setOptions({") {
		t.Errorf("output fixture should start with the wrapper, got %q", string(data[:30]))
	}

	if _, err := LoadFixture("missing.js"); err == nil {
		t.Error("LoadFixture should fail for a missing fixture")
	}
}

func TestNewTestEnv(t *testing.T) {
	original := app.Default
	env := NewTestEnv(t)

	if app.Default != env.App {
		t.Error("NewTestEnv should install its App as app.Default")
	}
	if env.App.Config.Corpus.Root != env.Root {
		t.Errorf("Corpus.Root = %q, want %q", env.App.Config.Corpus.Root, env.Root)
	}
	for _, name := range FixtureNames() {
		if _, err := os.Stat(env.Path(name)); err != nil {
			t.Errorf("fixture %s not written: %v", name, err)
		}
	}

	path := env.AddFixture("extra.js", "{}")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("AddFixture did not write %s", path)
	}

	env.Cleanup()
	if app.Default != original {
		t.Error("Cleanup should restore app.Default")
	}
}

func TestEmbeddedCorpus(t *testing.T) {
	env := NewTestEnv(t)

	for _, name := range []string{ValidFixture, SecondValidFixture, SharedOptionsFixture} {
		if _, err := env.App.Process(env.Path(name)); err != nil {
			t.Errorf("Process(%s) error: %v", name, err)
		}
	}
	for _, name := range []string{TypeErrorFixture, ShapeErrorFixture, SyntaxErrorFixture} {
		if _, err := env.App.Process(env.Path(name)); err == nil {
			t.Errorf("Process(%s) should fail", name)
		}
	}

	out, err := env.App.Process(env.Path(SharedOptionsFixture))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := env.App.Render(out.Value), string(MustLoadFixture(t, SharedOptionsOutput)); got != want {
		t.Errorf("Render(shared_options.js) =\n%s\nwant\n%s", got, want)
	}
}
