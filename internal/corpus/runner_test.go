package corpus

import (
	"context"
	"math"
	"strings"
	"testing"

	"go.uber.org/goleak"

	"github.com/firefly-engineering/chartlit/internal/config"
	"github.com/firefly-engineering/chartlit/internal/errors"
	"github.com/firefly-engineering/chartlit/internal/literal"
	"github.com/firefly-engineering/chartlit/internal/system"
	"github.com/firefly-engineering/chartlit/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func runCorpus(t *testing.T, env *testutil.TestEnv) *Report {
	t.Helper()
	fixtures, err := Discover(system.DefaultFS(), env.Root)
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	report, err := NewRunner(env.App).Run(context.Background(), fixtures)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	return report
}

func findResult(t *testing.T, report *Report, name string) Result {
	t.Helper()
	for _, r := range report.Results {
		if r.Fixture.Name == name {
			return r
		}
	}
	t.Fatalf("no result for %s", name)
	return Result{}
}

func TestRun_EmbeddedCorpus(t *testing.T) {
	for _, mode := range []string{config.CompareSemantic, config.CompareText} {
		t.Run(mode, func(t *testing.T) {
			env := testutil.NewTestEnv(t)
			env.Config.Corpus.Compare = mode

			report := runCorpus(t, env)
			if report.Failed != 0 {
				for _, f := range report.Failures() {
					t.Errorf("%s failed: %s\n%s", f.Fixture.Name, f.Message, f.Diff)
				}
			}
			if report.Passed != 6 {
				t.Errorf("Passed = %d, want 6", report.Passed)
			}
			if err := report.Err(); err != nil {
				t.Errorf("Err() = %v, want nil", err)
			}

			var names []string
			for _, r := range report.Results {
				names = append(names, r.Fixture.Name)
			}
			want := "01.js 02.js error-01.js error-02.js error-03.js shared_options.js"
			if got := strings.Join(names, " "); got != want {
				t.Errorf("result order = %q, want %q", got, want)
			}
		})
	}
}

func TestRun_ErrorFixtureAccepted(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.AddFixture("error-99.js", "{ title: { text: 'nothing wrong here' } }")

	report := runCorpus(t, env)
	res := findResult(t, report, "error-99.js")
	if res.Passed {
		t.Fatal("error fixture that validates should fail")
	}
	if !strings.Contains(res.Message, "accepted") {
		t.Errorf("Message = %q, want it to mention acceptance", res.Message)
	}
	if report.Failed != 1 {
		t.Errorf("Failed = %d, want 1", report.Failed)
	}
	if got := errors.GetExitCode(report.Err()); got != errors.ExitFixtureFailure {
		t.Errorf("GetExitCode(Err()) = %d, want %d", got, errors.ExitFixtureFailure)
	}
}

func TestRun_ValidFixtureRejected(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.AddFixture("03.js", "{ yAxis: { min: 'low' } }")

	res := findResult(t, runCorpus(t, env), "03.js")
	if res.Passed {
		t.Fatal("invalid fixture without the error- prefix should fail")
	}
	if len(res.Issues) == 0 || res.Issues[0].Path != "yAxis.min" {
		t.Errorf("Issues = %v, want one at yAxis.min", res.Issues)
	}
}

func TestRun_PairMismatch(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.AddFixture("title.js", "{ title: { text: 'a' } }")
	env.AddFixture("title_output.js", "Highcharts.setOptions({\n  title: {\n    text: 'b'\n  }\n})\n")

	for _, mode := range []string{config.CompareSemantic, config.CompareText} {
		t.Run(mode, func(t *testing.T) {
			env.Config.Corpus.Compare = mode
			res := findResult(t, runCorpus(t, env), "title.js")
			if res.Passed {
				t.Fatal("mismatched pair should fail")
			}
			for _, want := range []string{"-    text: 'b'", "+    text: 'a'"} {
				if !strings.Contains(res.Diff, want) {
					t.Errorf("Diff = %q, want it to contain %q", res.Diff, want)
				}
			}
		})
	}
}

func TestRun_PairFloatForm(t *testing.T) {
	env := testutil.NewTestEnv(t)
	expected := env.ReadFile("fixtures/" + testutil.SharedOptionsOutput)
	integral := strings.NewReplacer("0.0", "0", "1.0", "1").Replace(expected)
	env.AddFixture(testutil.SharedOptionsOutput, integral)

	for _, mode := range []string{config.CompareSemantic, config.CompareText} {
		t.Run(mode, func(t *testing.T) {
			env.Config.Corpus.Compare = mode
			res := findResult(t, runCorpus(t, env), testutil.SharedOptionsFixture)
			if res.Passed {
				t.Fatal("expected output with integral gradient coordinates should fail")
			}
			if !strings.Contains(res.Diff, "+        x1: 0.0,") {
				t.Errorf("Diff = %q, want the float form of x1", res.Diff)
			}
		})
	}
}

func TestSameNumberForm(t *testing.T) {
	tests := []struct {
		expected string
		actual   float64
		float    bool
		want     bool
	}{
		{"0.0", 0, true, true},
		{"0", 0, true, false},
		{"2", 2, false, true},
		{"2.0", 2, false, false},
		{"+2", 2, false, true},
		{"0.5", 0.5, true, true},
		{"NaN", math.NaN(), false, true},
		{"3", 2, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			v, err := literal.ParseValue([]byte(tt.expected))
			if err != nil {
				t.Fatalf("ParseValue(%q) error: %v", tt.expected, err)
			}
			actual := literal.Number(tt.actual)
			actual.Float = tt.float
			if got := sameNumberForm(v, actual); got != tt.want {
				t.Errorf("sameNumberForm(%q, %v) = %v, want %v", tt.expected, tt.actual, got, tt.want)
			}
		})
	}
}

func TestRun_PairWrapperMismatch(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.AddFixture("wrap.js", "{ title: { text: 'a' } }")
	env.AddFixture("wrap_output.js", "Highcharts.chart({\n  title: {\n    text: 'a'\n  }\n})\n")

	res := findResult(t, runCorpus(t, env), "wrap.js")
	if res.Passed {
		t.Fatal("wrong wrapper should fail")
	}
	if !strings.Contains(res.Message, "Highcharts.chart") {
		t.Errorf("Message = %q, want it to name the wrong callee", res.Message)
	}
}

func TestRun_TextModeIgnoresLineEndings(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.Config.Corpus.Compare = config.CompareText
	env.AddFixture("crlf.js", "{ title: { text: 'a' } }")
	env.AddFixture("crlf_output.js", "Highcharts.setOptions({\r\n  title: {  \r\n    text: 'a'\r\n  }\r\n})")

	if res := findResult(t, runCorpus(t, env), "crlf.js"); !res.Passed {
		t.Errorf("crlf.js failed: %s\n%s", res.Message, res.Diff)
	}
}

func TestRun_Cancelled(t *testing.T) {
	env := testutil.NewTestEnv(t)
	fixtures, err := Discover(system.DefaultFS(), env.Root)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewRunner(env.App).Run(ctx, fixtures); err != context.Canceled {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestPairOutputs(t *testing.T) {
	env := testutil.NewTestEnv(t)
	fixtures, err := Discover(system.DefaultFS(), env.Root)
	if err != nil {
		t.Fatal(err)
	}
	pair, ok := Find(fixtures, testutil.SharedOptionsFixture)
	if !ok {
		t.Fatal("shared_options.js not discovered")
	}

	actual, expected, err := NewRunner(env.App).PairOutputs(pair)
	if err != nil {
		t.Fatalf("PairOutputs() error: %v", err)
	}
	if actual != expected {
		t.Errorf("PairOutputs() actual differs:\n%s", UnifiedDiff("expected", "actual", expected, actual))
	}

	valid, _ := Find(fixtures, testutil.ValidFixture)
	if _, _, err := NewRunner(env.App).PairOutputs(valid); err == nil {
		t.Error("PairOutputs() should reject a non-pair fixture")
	}
}
