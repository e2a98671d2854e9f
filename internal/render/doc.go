// Package render writes literal values as canonical source text.
//
// # Layout
//
// Objects and arrays of non-scalar elements are written one entry per line.
// Arrays whose elements are all scalars stay on one line. Keys are written
// bare when they are identifiers and quoted otherwise.
//
// # Numbers
//
// Integers have no decimal point unless the value is marked as a float, in
// which case `.0` is appended. Other numbers use the shortest form that
// reads back to the same value. NaN and the infinities are written as the
// identifiers NaN, Infinity and -Infinity.
//
// # Functions
//
// Function and expression values are written from their source text.
// Continuation lines are reindented to the depth they are rendered at.
package render
