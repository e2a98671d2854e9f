// Package testutil provides test fixtures and utilities.
//
// This package contains an embedded fixture corpus and helpers that lay it
// out on disk for corpus, watcher and command tests.
//
// # Fixtures
//
// Fixtures are embedded using go:embed:
//
//	fixtures/01.js                    valid options object
//	fixtures/02.js                    valid `var options = {...};`
//	fixtures/error-01.js              string where a number is expected
//	fixtures/error-02.js              object where an array is expected
//	fixtures/error-03.js              unterminated string
//	fixtures/shared_options.js        input of the canonical pair
//	fixtures/shared_options_output.js expected canonical output
//
// # Raw Fixture Access
//
//	data, err := testutil.LoadFixture("01.js")
//
// # Usage in Tests
//
//	func TestVerify(t *testing.T) {
//	    env := testutil.NewTestEnv(t)
//	    env.AddFixture("error-99.js", "{ xAxis: { min: 'x' } }")
//	    // app.Default is now rooted at env.Root
//	}
package testutil
