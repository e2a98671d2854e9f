package app

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/firefly-engineering/chartlit/internal/config"
	"github.com/firefly-engineering/chartlit/internal/logging"
	"github.com/firefly-engineering/chartlit/internal/schema"
	"github.com/firefly-engineering/chartlit/internal/system"
)

// App holds the application dependencies
type App struct {
	// Config is the loaded project configuration
	Config *config.Config

	// Schema is the option schema documents are validated against
	Schema *schema.Schema

	// FS reads fixtures and writes outputs
	FS system.FileSystem

	// Executor runs the external diff tool
	Executor system.CommandExecutor

	// Cache holds parsed documents keyed by file identity. Nil disables it.
	Cache *lru.Cache[DocumentKey, *cachedDocument]

	externalOnce sync.Once
	external     *schema.External
	externalErr  error
}

// DocumentKey identifies one version of a file on disk.
type DocumentKey struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Option is a function that configures the App
type Option func(*App)

// WithConfig sets a custom configuration
func WithConfig(cfg *config.Config) Option {
	return func(a *App) {
		a.Config = cfg
	}
}

// WithSchema sets a custom option schema
func WithSchema(s *schema.Schema) Option {
	return func(a *App) {
		a.Schema = s
	}
}

// WithFileSystem sets a custom file system
func WithFileSystem(fs system.FileSystem) Option {
	return func(a *App) {
		a.FS = fs
	}
}

// WithExecutor sets a custom command executor
func WithExecutor(exec system.CommandExecutor) Option {
	return func(a *App) {
		a.Executor = exec
	}
}

// New creates a new App with the given options.
// If no schema is provided via WithSchema, the embedded one is used.
func New(opts ...Option) *App {
	app := &App{}

	for _, opt := range opts {
		opt(app)
	}

	if app.Config == nil {
		app.Config = config.Default()
	}
	if app.FS == nil {
		app.FS = system.DefaultFS()
	}
	if app.Executor == nil {
		app.Executor = system.DefaultExecutor()
	}

	// Load the embedded schema if not provided
	if app.Schema == nil {
		s, err := schema.Default()
		if err != nil {
			logging.Debug("failed to load embedded schema", "error", err)
		} else {
			app.Schema = s
		}
	}

	if size := app.Config.Corpus.CacheSize; size > 0 {
		cache, err := lru.New[DocumentKey, *cachedDocument](size)
		if err != nil {
			logging.Debug("failed to create document cache", "error", err)
		} else {
			app.Cache = cache
		}
	}

	return app
}

// ExternalSchema returns the JSON Schema named by the configuration, loading
// it on first use. It returns nil when none is configured.
func (a *App) ExternalSchema() (*schema.External, error) {
	a.externalOnce.Do(func() {
		path := a.Config.Validation.JSONSchema
		if path == "" {
			return
		}
		a.external, a.externalErr = schema.LoadExternal(a.FS, path)
		if a.externalErr == nil {
			logging.Debug("loaded JSON schema", "path", path)
		}
	})
	return a.external, a.externalErr
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
