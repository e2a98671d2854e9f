// Package app provides the application context for chartlit.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    Config   *config.Config         // Project configuration
//	    Schema   *schema.Schema         // Option schema
//	    FS       system.FileSystem      // File access
//	    Executor system.CommandExecutor // External diff tool
//	    Cache    *lru.Cache[...]        // Parsed documents
//	}
//
// # Creating an App
//
//	// Production usage
//	a := app.New(app.WithConfig(cfg))
//
//	// Testing with custom dependencies
//	a := app.New(
//	    app.WithConfig(cfg),
//	    app.WithFileSystem(system.NewMockFS()),
//	    app.WithExecutor(system.NewMockExecutor()),
//	)
//
// # Processing Files
//
// Process runs the read, validate and normalize pipeline on one file:
//
//	out, err := a.Process("charts/01.js")
//	if err == nil {
//	    fmt.Print(a.Render(out.Value))
//	}
//
// Parsed documents are cached by path, size and modification time, so
// repeated corpus runs only re-parse files that changed.
package app
