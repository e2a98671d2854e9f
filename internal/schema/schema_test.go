package schema

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/firefly-engineering/chartlit/internal/literal"
)

func mustDefault(t *testing.T) *Schema {
	t.Helper()
	s, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	return s
}

func mustParse(t *testing.T, src string) *literal.Value {
	t.Helper()
	doc, err := literal.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	return doc.Root
}

func issueCodes(issues []Issue) []string {
	var codes []string
	for _, i := range issues {
		codes = append(codes, i.Path+":"+i.Code)
	}
	return codes
}

func TestDefault_Loads(t *testing.T) {
	s := mustDefault(t)
	names := s.PropertyNames(s.Root)
	for _, want := range []string{"chart", "colors", "plotOptions", "series", "title", "xAxis", "yAxis"} {
		found := false
		for _, n := range names {
			if n == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root properties missing %q", want)
		}
	}
}

func TestValidate(t *testing.T) {
	s := mustDefault(t)

	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "valid basics",
			src:  `{ chart: { type: 'bar' }, title: { text: 'Fruit' } }`,
		},
		{
			name: "string where number expected",
			src:  `{ xAxis: { min: 'abc' } }`,
			want: []string{"xAxis.min:type"},
		},
		{
			name: "object where array expected",
			src:  `{ series: { data: [1] } }`,
			want: []string{"series:type"},
		},
		{
			name: "enum mismatch",
			src:  `{ chart: { type: 'pies' } }`,
			want: []string{"chart.type:enum"},
		},
		{
			name: "unknown key",
			src:  `{ foo: 1 }`,
			want: []string{"foo:unknown-key"},
		},
		{
			name: "duplicate key",
			src:  `{ title: { text: 'a', text: 'b' } }`,
			want: []string{"title.text:duplicate-key"},
		},
		{
			name: "axis list element",
			src:  `{ xAxis: [{ min: 0 }, { max: 'x' }] }`,
			want: []string{"xAxis[1].max:type"},
		},
		{
			name: "gradient color",
			src: `{ colors: [{
				linearGradient: { x1: 0, y1: 0, x2: 0, y2: 1 },
				stops: [[0, '#fff'], [1, 'rgb(0,0,0)']]
			}] }`,
		},
		{
			name: "gradient stop out of range",
			src:  `{ colors: [{ radialGradient: { cx: 0.5, cy: 0.5, r: 0.7 }, stops: [[2, '#fff']] }] }`,
			want: []string{"colors[0].stops[0][0]:range"},
		},
		{
			name: "gradient tuple too long",
			src:  `{ colors: [{ linearGradient: [0, 0, 0, 1, 5] }] }`,
			want: []string{"colors[0].linearGradient:range"},
		},
		{
			name: "callback",
			src:  `{ tooltip: { formatter: function () { return this.y; } } }`,
		},
		{
			name: "string where callback expected",
			src:  `{ tooltip: { formatter: 'x' } }`,
			want: []string{"tooltip.formatter:type"},
		},
		{
			name: "null accepted",
			src:  `{ title: { text: null }, lang: { numericSymbols: [null, 'M'] } }`,
		},
		{
			name: "integer with fraction",
			src:  `{ tooltip: { valueDecimals: 1.5 } }`,
			want: []string{"tooltip.valueDecimals:type"},
		},
		{
			name: "expression accepted as number",
			src:  `{ xAxis: { min: Date.UTC(2010, 0, 1) } }`,
		},
		{
			name: "plot options by series type",
			src:  `{ plotOptions: { series: { stacking: 'normal' }, pie: { innerSize: '50%' } } }`,
		},
		{
			name: "series points",
			src:  `{ series: [{ type: 'pie', data: [['A', 1], { name: 'B', y: 2, sliced: true }, 3] }] }`,
		},
		{
			name: "series inherits plot options",
			src:  `{ series: [{ name: 'a', lineWidth: 'thick' }] }`,
			want: []string{"series[0].lineWidth:type"},
		},
		{
			name: "undefined option",
			src:  `{ title: { text: undefined } }`,
			want: []string{"title.text:undefined"},
		},
		{
			name: "additional keys in open objects",
			src:  `{ chart: { style: { fontFamily: 'serif', anything: 1 } } }`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := issueCodes(s.Validate(mustParse(t, tt.src), Options{}))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Validate issues mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate_Severity(t *testing.T) {
	s := mustDefault(t)
	v := mustParse(t, `{ foo: 1 }`)

	lenient := s.Validate(v, Options{})
	if HasErrors(lenient) {
		t.Errorf("unknown key should be a warning, got %v", lenient)
	}

	strict := s.Validate(v, Options{Strict: true})
	if !HasErrors(strict) {
		t.Errorf("unknown key should be an error in strict mode, got %v", strict)
	}
	if got := len(Errors(strict)); got != 1 {
		t.Errorf("len(Errors) = %d, want 1", got)
	}
}

func TestValidate_Position(t *testing.T) {
	s := mustDefault(t)
	issues := s.Validate(mustParse(t, "{\n  xAxis: {\n    min: 'abc'\n  }\n}"), Options{})
	if len(issues) != 1 {
		t.Fatalf("got %d issues, want 1", len(issues))
	}
	if issues[0].Pos.Line != 3 {
		t.Errorf("Pos.Line = %d, want 3", issues[0].Pos.Line)
	}
	if !strings.Contains(issues[0].String(), "xAxis.min") {
		t.Errorf("String() = %q, want it to contain the path", issues[0].String())
	}
	if !strings.Contains(issues[0].Message, "expected number, got string") {
		t.Errorf("Message = %q", issues[0].Message)
	}
}

func TestTypeAt(t *testing.T) {
	s := mustDefault(t)

	tests := []struct {
		path     string
		wantType Type
		wantErr  bool
	}{
		{"xAxis.labels.formatter", TypeCallback, false},
		{"colors[0]", TypeColor, false},
		{"colors[0].stops", TypeArray, false},
		{"series[].data", TypeArray, false},
		{"series[2].type", TypeString, false},
		{"plotOptions.pie.innerSize", TypeOneOf, false},
		{"chart.style.fontSize", "", false},
		{"chart.nope", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			p, err := literal.ParsePath(tt.path)
			if err != nil {
				t.Fatalf("ParsePath error: %v", err)
			}
			n, err := s.TypeAt(p)
			if (err != nil) != tt.wantErr {
				t.Fatalf("TypeAt(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			var got Type
			if n != nil {
				got = n.Type
			}
			if got != tt.wantType {
				t.Errorf("TypeAt(%q).Type = %q, want %q", tt.path, got, tt.wantType)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	s := mustDefault(t)
	n, err := s.TypeAt(literal.Path{}.Key("chart").Key("height"))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := s.Describe(n), "one of number, string"; got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no root", `version: "1"`},
		{"invalid type", "root: {type: thing}"},
		{"unknown ref", "root: $missing"},
		{"empty oneOf", "root: {type: oneOf}"},
		{"color without gradient", "root: color"},
		{"extends cycle", "definitions:\n  a: {type: object, extends: b}\n  b: {type: object, extends: a}\nroot: $a"},
		{"bad yaml", "root: [unclosed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load([]byte(tt.yaml)); err == nil {
				t.Errorf("Load(%q) should fail", tt.yaml)
			}
		})
	}
}

func TestLoad_Extends(t *testing.T) {
	s, err := Load([]byte(`
definitions:
  base:
    type: object
    properties: {a: number, b: number}
root:
  type: object
  extends: base
  properties: {b: string}
`))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got := s.PropertyNames(s.Root); !cmp.Equal(got, []string{"a", "b"}) {
		t.Errorf("PropertyNames = %v, want [a b]", got)
	}
	if got := s.Root.Properties["b"].Type; got != TypeString {
		t.Errorf("b.Type = %q, want string", got)
	}
}
