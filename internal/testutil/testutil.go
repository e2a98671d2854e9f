// Package testutil provides test utilities for corpus and command tests
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/firefly-engineering/chartlit/internal/app"
	"github.com/firefly-engineering/chartlit/internal/config"
	"github.com/firefly-engineering/chartlit/internal/system"
)

// TestEnv holds the test environment
type TestEnv struct {
	T        *testing.T
	TmpDir   string
	Root     string
	Config   *config.Config
	Executor *system.MockExecutor
	App      *app.App
	cleanup  func()
}

// NewTestEnv creates a temp corpus holding the embedded fixtures and
// installs an App rooted there as app.Default. The real file system is
// used; commands go to a mock executor.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpDir := t.TempDir()
	root := filepath.Join(tmpDir, "fixtures")
	WriteCorpus(t, root)

	cfg := config.Default()
	cfg.Corpus.Root = root
	cfg.Corpus.Concurrency = 2

	mockExec := system.NewMockExecutor()
	testApp := app.New(
		app.WithConfig(cfg),
		app.WithExecutor(mockExec),
	)

	// Save original default and set test app
	originalDefault := app.Default
	app.SetDefault(testApp)

	env := &TestEnv{
		T:        t,
		TmpDir:   tmpDir,
		Root:     root,
		Config:   cfg,
		Executor: mockExec,
		App:      testApp,
		cleanup: func() {
			app.SetDefault(originalDefault)
		},
	}
	t.Cleanup(env.Cleanup)

	return env
}

// Cleanup restores the original app default
func (e *TestEnv) Cleanup() {
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
}

// Path returns the absolute path of a fixture in the corpus.
func (e *TestEnv) Path(name string) string {
	return filepath.Join(e.Root, name)
}

// AddFixture writes a fixture into the corpus and returns its path.
func (e *TestEnv) AddFixture(name, content string) string {
	e.T.Helper()

	path := e.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.T.Fatalf("Failed to create fixture dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.T.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

// RemoveFixture deletes a fixture from the corpus.
func (e *TestEnv) RemoveFixture(name string) {
	e.T.Helper()

	if err := os.Remove(e.Path(name)); err != nil {
		e.T.Fatalf("Failed to remove fixture: %v", err)
	}
}

// ReadFile returns the contents of a file under the temp dir.
func (e *TestEnv) ReadFile(rel string) string {
	e.T.Helper()

	data, err := os.ReadFile(filepath.Join(e.TmpDir, rel))
	if err != nil {
		e.T.Fatalf("Failed to read %s: %v", rel, err)
	}
	return string(data)
}
