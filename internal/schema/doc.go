// Package schema describes the charting option tree and validates parsed
// literals against it.
//
// # Option Tree
//
// The built-in tree lives in options.yaml and is embedded in the binary.
// Nodes carry a type (number, integer, float, string, boolean, color,
// callback, object, array, oneOf or any) and may reference shared
// definitions with `$name`.
//
// # Validation
//
// [Schema.Validate] walks a value and reports [Issue]s. Null is accepted
// everywhere. Unknown keys are warnings unless strict mode is on. A color
// may be a string or a gradient object.
//
// # External Schemas
//
// [External] wraps a JSON Schema document and validates the JSON projection
// of a value, for projects that keep their own option contract.
package schema
