// Package literal parses JS-style charting configuration literals.
//
// The accepted dialect is the subset of JavaScript that option files are
// written in: object and array literals, scalars, and callback slots.
//
// # Documents
//
// A document is a single value, optionally wrapped in a declaration or a
// call expression:
//
//	{ chart: { type: 'bar' } }
//	var options = { chart: { type: 'bar' } };
//	Highcharts.setOptions({ lang: { decimalPoint: ',' } });
//	Highcharts.chart('container', { series: [] });
//
// For call expressions the options object is the last object argument and
// the callee is recorded in Document.Call.
//
// # Values
//
// Objects keep their fields in source order, duplicates included, so that
// later stages can report duplicates and decide which one wins. Function
// literals and expressions such as Date.UTC(2020, 0, 1) are never evaluated;
// their source text is kept in Value.Raw.
//
// # Errors
//
// Parse returns a *SyntaxError carrying the line and column of the first
// problem.
package literal
