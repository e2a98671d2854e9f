// Package config provides project configuration for chartlit.
//
// # Configuration File
//
// Settings are read from .chartlit.toml in the working directory, or from
// the file given with --config:
//
//	[render]
//	indent = "  "
//	quote = "'"
//	wrapper = "Highcharts.setOptions"
//
//	[validate]
//	strict = true
//	json_schema = "schemas/options.schema.json"
//
//	[corpus]
//	root = "fixtures"
//	concurrency = 8
//	compare = "semantic"
//
//	[diff]
//	command = "diff -u"
//
// Unknown keys are rejected. Relative paths are resolved against the
// directory holding the file.
//
// # Environment
//
// A .env file next to the configuration is loaded first. CHARTLIT_INDENT,
// CHARTLIT_QUOTE, CHARTLIT_WRAPPER, CHARTLIT_STRICT, CHARTLIT_CONCURRENCY and
// CHARTLIT_DIFF_COMMAND override file values.
//
// # Validation
//
// Config and its sections implement Validate(). Load validates after all
// sources are merged.
package config
