// Package corpus discovers fixture files and verifies them.
//
// A corpus is a directory of option literals. File names decide what each
// fixture must do:
//
//	NN.js                      must parse, validate and normalize
//	error-NN.js                must be rejected by the parser or validator
//	X.js + X_output.js         X.js must normalize to the contents of X_output.js
//
// JSON, JSONC and JSON5 files take part under the same naming rules.
//
// # Running
//
//	fixtures, err := corpus.Discover(fs, root)
//	report, err := corpus.NewRunner(app.Default).Run(ctx, fixtures)
//	if report.Failed > 0 { ... }
//
// Fixtures are checked concurrently. Pair mismatches carry a unified diff
// of expected against actual output.
package corpus
