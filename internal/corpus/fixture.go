package corpus

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/firefly-engineering/chartlit/internal/errors"
	"github.com/firefly-engineering/chartlit/internal/reader"
	"github.com/firefly-engineering/chartlit/internal/system"
)

const (
	// ErrorPrefix marks fixtures that must be rejected.
	ErrorPrefix = "error-"

	// OutputSuffix marks the expected output of a pair, before the extension.
	OutputSuffix = "_output"
)

// Kind is what a fixture is expected to do.
type Kind string

const (
	KindValid Kind = "valid"
	KindError Kind = "error"
	KindPair  Kind = "pair"
)

// Fixture is one corpus entry.
type Fixture struct {
	// Name is the path relative to the corpus root, slash separated.
	Name string `json:"name"`

	// Path is the file on disk.
	Path string `json:"path"`

	Kind Kind `json:"kind"`

	// Expected names the output file of a pair, relative to the root.
	Expected string `json:"expected,omitempty"`

	// ExpectedPath is the output file of a pair on disk.
	ExpectedPath string `json:"-"`
}

// Discover walks root and classifies every supported file. Hidden
// directories are skipped. Fixtures are sorted by name.
func Discover(fsys system.FileSystem, root string) ([]Fixture, error) {
	if !fsys.IsDir(root) {
		return nil, errors.New(errors.ExitFixtureNotFound, fmt.Sprintf("corpus root is not a directory: %s", root))
	}

	var files []string
	if err := walk(fsys, root, "", &files); err != nil {
		return nil, err
	}

	present := make(map[string]bool, len(files))
	for _, f := range files {
		present[f] = true
	}
	consumed := make(map[string]bool)
	for _, f := range files {
		if out, ok := outputFor(f, present); ok {
			consumed[out] = true
		}
	}

	var fixtures []Fixture
	for _, name := range files {
		if consumed[name] {
			continue
		}
		if expected, ok := outputFor(name, present); ok {
			fixtures = append(fixtures, Fixture{
				Name:         name,
				Path:         filepath.Join(root, filepath.FromSlash(name)),
				Kind:         KindPair,
				Expected:     expected,
				ExpectedPath: filepath.Join(root, filepath.FromSlash(expected)),
			})
			continue
		}
		kind := KindValid
		if strings.HasPrefix(path.Base(name), ErrorPrefix) {
			kind = KindError
		}
		fixtures = append(fixtures, Fixture{
			Name: name,
			Path: filepath.Join(root, filepath.FromSlash(name)),
			Kind: kind,
		})
	}

	sort.Slice(fixtures, func(i, j int) bool { return fixtures[i].Name < fixtures[j].Name })
	return fixtures, nil
}

func walk(fsys system.FileSystem, root, rel string, files *[]string) error {
	dir := filepath.Join(root, filepath.FromSlash(rel))
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", dir, err)
	}
	for _, e := range entries {
		name := e.Name()
		child := path.Join(rel, name)
		if e.IsDir() {
			if strings.HasPrefix(name, ".") {
				continue
			}
			if err := walk(fsys, root, child, files); err != nil {
				return err
			}
			continue
		}
		if reader.IsSupported(name) {
			*files = append(*files, child)
		}
	}
	return nil
}

// splitExt returns name without its extension, and the extension.
func splitExt(name string) (string, string) {
	ext := path.Ext(name)
	return strings.TrimSuffix(name, ext), ext
}

// outputFor returns the expected output of name when one exists. Output
// files never have outputs of their own.
func outputFor(name string, present map[string]bool) (string, bool) {
	stem, ext := splitExt(name)
	if strings.HasSuffix(stem, OutputSuffix) {
		return "", false
	}
	for _, candidate := range []string{stem + OutputSuffix + ext, stem + OutputSuffix + ".js"} {
		if present[candidate] {
			return candidate, true
		}
	}
	return "", false
}

// Resolve maps a fixture name to a file inside root. The ".js" extension
// may be omitted. Names that climb out of root are rejected.
func Resolve(fsys system.FileSystem, root, name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", errors.UsageError(fmt.Sprintf("fixture %q is outside the corpus root", name))
	}

	candidates := []string{clean}
	if filepath.Ext(clean) == "" {
		candidates = append(candidates, clean+".js")
	}
	for _, c := range candidates {
		p, err := securejoin.SecureJoin(root, c)
		if err != nil {
			return "", errors.Wrap(errors.ExitGeneralError, fmt.Sprintf("failed to resolve %s", name), err)
		}
		if fsys.Exists(p) && !fsys.IsDir(p) {
			return p, nil
		}
	}
	return "", errors.FixtureNotFound(name)
}

// Find returns the fixture called name, matching with or without extension.
func Find(fixtures []Fixture, name string) (Fixture, bool) {
	name = filepath.ToSlash(name)
	for _, f := range fixtures {
		if f.Name == name {
			return f, true
		}
	}
	for _, f := range fixtures {
		if stem, _ := splitExt(f.Name); stem == name {
			return f, true
		}
	}
	return Fixture{}, false
}
