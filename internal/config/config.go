package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kballard/go-shellquote"

	"github.com/firefly-engineering/chartlit/internal/render"
)

const (
	DefaultConfigFile  = ".chartlit.toml"
	EnvFile            = ".env"
	EnvPrefix          = "CHARTLIT_"
	DefaultConcurrency = 4
	DefaultCacheSize   = 256
	DefaultDebounce    = 200 * time.Millisecond

	CompareSemantic = "semantic"
	CompareText     = "text"
)

// wrapperRegex matches a dotted callee such as Highcharts.setOptions.
var wrapperRegex = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*(\.[A-Za-z_$][A-Za-z0-9_$]*)*$`)

// Config is the project configuration read from .chartlit.toml
type Config struct {
	Render     RenderConfig     `toml:"render"`
	Validation ValidationConfig `toml:"validate"`
	Corpus     CorpusConfig     `toml:"corpus"`
	Diff       DiffConfig       `toml:"diff"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-"`
}

// RenderConfig controls the canonical output style.
type RenderConfig struct {
	Indent    string `toml:"indent"`
	Quote     string `toml:"quote"`
	Wrapper   string `toml:"wrapper"` // empty writes the bare object
	Semicolon bool   `toml:"semicolon"`
	QuoteKeys bool   `toml:"quote_keys"`
}

// ValidationConfig controls validation and normalization.
type ValidationConfig struct {
	Strict        bool   `toml:"strict"`
	PreserveOrder bool   `toml:"preserve_order"`
	JSONSchema    string `toml:"json_schema"` // optional JSON Schema applied after the built-in one
}

// CorpusConfig controls fixture runs.
type CorpusConfig struct {
	Root        string `toml:"root"`
	Concurrency int    `toml:"concurrency"`
	CacheSize   int    `toml:"cache_size"` // 0 disables the document cache
	Compare     string `toml:"compare"`    // "semantic" or "text"
	Debounce    string `toml:"debounce"`   // watch debounce, e.g. "200ms"
}

// DiffConfig names the external diff tool.
type DiffConfig struct {
	Command string `toml:"command"` // e.g. "diff -u" or "delta --side-by-side"
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Indent:  "  ",
			Quote:   "'",
			Wrapper: render.DefaultWrapper,
		},
		Corpus: CorpusConfig{
			Root:        ".",
			Concurrency: DefaultConcurrency,
			CacheSize:   DefaultCacheSize,
			Compare:     CompareSemantic,
			Debounce:    DefaultDebounce.String(),
		},
	}
}

// Validate checks that the Config is valid.
func (c *Config) Validate() error {
	if err := c.Render.Validate(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := c.Corpus.Validate(); err != nil {
		return fmt.Errorf("corpus: %w", err)
	}
	if _, err := c.Diff.Args(); err != nil {
		return fmt.Errorf("diff: %w", err)
	}
	return nil
}

// Validate checks that the RenderConfig is valid.
func (r *RenderConfig) Validate() error {
	if r.Indent != "\t" {
		if r.Indent == "" || len(r.Indent) > 8 || strings.Trim(r.Indent, " ") != "" {
			return fmt.Errorf("indent must be 1 to 8 spaces or a tab (got %q)", r.Indent)
		}
	}
	if r.Quote != "'" && r.Quote != `"` {
		return fmt.Errorf("quote must be ' or \" (got %q)", r.Quote)
	}
	if r.Wrapper != "" && !wrapperRegex.MatchString(r.Wrapper) {
		return fmt.Errorf("invalid wrapper %q: must be a dotted identifier path", r.Wrapper)
	}
	return nil
}

// Style returns the render style described by the configuration.
func (r *RenderConfig) Style() render.Style {
	st := render.Style{
		Indent:    r.Indent,
		Quote:     '\'',
		Wrapper:   r.Wrapper,
		Semicolon: r.Semicolon,
		QuoteKeys: r.QuoteKeys,
	}
	if r.Quote == `"` {
		st.Quote = '"'
	}
	return st
}

// Validate checks that the CorpusConfig is valid.
func (c *CorpusConfig) Validate() error {
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1 (got %d)", c.Concurrency)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size cannot be negative (got %d)", c.CacheSize)
	}
	if c.Compare != CompareSemantic && c.Compare != CompareText {
		return fmt.Errorf("invalid compare mode: %s (must be %s or %s)", c.Compare, CompareSemantic, CompareText)
	}
	if _, err := c.DebounceDuration(); err != nil {
		return err
	}
	return nil
}

// DebounceDuration parses Debounce, falling back to the default when unset.
func (c *CorpusConfig) DebounceDuration() (time.Duration, error) {
	if c.Debounce == "" {
		return DefaultDebounce, nil
	}
	d, err := time.ParseDuration(c.Debounce)
	if err != nil {
		return 0, fmt.Errorf("invalid debounce %q: %w", c.Debounce, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("debounce cannot be negative (got %s)", d)
	}
	return d, nil
}

// Args splits the diff command into argv. An unset command yields nil.
func (d *DiffConfig) Args() ([]string, error) {
	if strings.TrimSpace(d.Command) == "" {
		return nil, nil
	}
	args, err := shellquote.Split(d.Command)
	if err != nil {
		return nil, fmt.Errorf("invalid command %q: %w", d.Command, err)
	}
	return args, nil
}

// Load reads the configuration. An explicit path must exist; without one,
// DefaultConfigFile in dir is used when present. A .env file in dir is
// loaded into the process environment first, and CHARTLIT_* variables
// override file values.
func Load(dir, path string) (*Config, error) {
	if err := LoadEnvFile(dir); err != nil {
		return nil, err
	}

	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, DefaultConfigFile)
	}

	if _, err := os.Stat(path); err == nil {
		if err := cfg.decodeFile(path); err != nil {
			return nil, err
		}
	} else if explicit || !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	c.Path = path

	// Relative paths in the file are relative to the file itself.
	base := filepath.Dir(path)
	if c.Validation.JSONSchema != "" && !filepath.IsAbs(c.Validation.JSONSchema) {
		c.Validation.JSONSchema = filepath.Join(base, c.Validation.JSONSchema)
	}
	if c.Corpus.Root != "" && !filepath.IsAbs(c.Corpus.Root) {
		c.Corpus.Root = filepath.Join(base, c.Corpus.Root)
	}
	return nil
}

// LoadEnvFile loads dir/.env into the environment without overriding
// variables that are already set. A missing file is not an error.
func LoadEnvFile(dir string) error {
	envPath := filepath.Join(dir, EnvFile)
	if _, err := os.Stat(envPath); err != nil {
		return nil
	}
	if err := godotenv.Load(envPath); err != nil {
		return fmt.Errorf("failed to load %s: %w", envPath, err)
	}
	return nil
}

// ApplyEnv overrides values from CHARTLIT_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "INDENT"); ok {
		c.Render.Indent = parseIndent(v)
	}
	if v, ok := lookup(EnvPrefix + "QUOTE"); ok {
		c.Render.Quote = v
	}
	if v, ok := lookup(EnvPrefix + "WRAPPER"); ok {
		c.Render.Wrapper = v
	}
	if v, ok := lookup(EnvPrefix + "STRICT"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sSTRICT %q: %w", EnvPrefix, v, err)
		}
		c.Validation.Strict = b
	}
	if v, ok := lookup(EnvPrefix + "CONCURRENCY"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sCONCURRENCY %q: %w", EnvPrefix, v, err)
		}
		c.Corpus.Concurrency = n
	}
	if v, ok := lookup(EnvPrefix + "DIFF_COMMAND"); ok {
		c.Diff.Command = v
	}
	return nil
}

// parseIndent accepts a space count, "tab", or the literal indent string.
func parseIndent(v string) string {
	if v == "tab" {
		return "\t"
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 8 {
		return strings.Repeat(" ", n)
	}
	return v
}
