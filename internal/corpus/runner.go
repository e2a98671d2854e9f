package corpus

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/firefly-engineering/chartlit/internal/app"
	"github.com/firefly-engineering/chartlit/internal/config"
	"github.com/firefly-engineering/chartlit/internal/errors"
	"github.com/firefly-engineering/chartlit/internal/literal"
	"github.com/firefly-engineering/chartlit/internal/logging"
	"github.com/firefly-engineering/chartlit/internal/render"
	"github.com/firefly-engineering/chartlit/internal/schema"
)

// Result is the outcome of checking one fixture.
type Result struct {
	Fixture  Fixture        `json:"fixture"`
	Passed   bool           `json:"passed"`
	Message  string         `json:"message,omitempty"`
	Diff     string         `json:"diff,omitempty"`
	Issues   []schema.Issue `json:"issues,omitempty"`
	Duration time.Duration  `json:"duration"`
}

// Status returns "pass" or "fail".
func (r Result) Status() string {
	if r.Passed {
		return "pass"
	}
	return "fail"
}

// Report summarizes a corpus run.
type Report struct {
	Results []Result `json:"results"`
	Passed  int      `json:"passed"`
	Failed  int      `json:"failed"`
}

// Failures returns the failed results.
func (r *Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.Passed {
			out = append(out, res)
		}
	}
	return out
}

// Err returns a fixture-failure error when any fixture failed.
func (r *Report) Err() error {
	if r.Failed > 0 {
		return errors.FixturesFailed(r.Failed)
	}
	return nil
}

// Runner checks fixtures against the expectations their names encode.
type Runner struct {
	App         *app.App
	Concurrency int
	Compare     string
}

// NewRunner creates a Runner configured from the app's configuration.
func NewRunner(a *app.App) *Runner {
	return &Runner{
		App:         a,
		Concurrency: a.Config.Corpus.Concurrency,
		Compare:     a.Config.Corpus.Compare,
	}
}

// Run checks every fixture concurrently. It returns early only when ctx is
// cancelled; fixture failures are recorded in the report.
func (r *Runner) Run(ctx context.Context, fixtures []Fixture) (*Report, error) {
	results := make([]Result, len(fixtures))

	g, gctx := errgroup.WithContext(ctx)
	limit := r.Concurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for i, f := range fixtures {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.Check(f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Results: results}
	sort.SliceStable(report.Results, func(i, j int) bool {
		return report.Results[i].Fixture.Name < report.Results[j].Fixture.Name
	})
	for _, res := range report.Results {
		if res.Passed {
			report.Passed++
		} else {
			report.Failed++
		}
	}
	logging.Debug("corpus run finished", "passed", report.Passed, "failed", report.Failed)
	return report, nil
}

// Check verifies a single fixture.
func (r *Runner) Check(f Fixture) Result {
	start := time.Now()
	var res Result
	switch f.Kind {
	case KindError:
		res = r.checkError(f)
	case KindPair:
		res = r.checkPair(f)
	default:
		res = r.checkValid(f)
	}
	res.Fixture = f
	res.Duration = time.Since(start)
	logging.Debug("checked fixture", "name", f.Name, "kind", f.Kind, "passed", res.Passed)
	return res
}

func (r *Runner) checkValid(f Fixture) Result {
	out, err := r.App.Process(f.Path)
	if err != nil {
		return Result{Message: err.Error(), Issues: out.Issues}
	}
	return Result{Passed: true, Message: warningSummary(out.Issues), Issues: out.Issues}
}

func (r *Runner) checkError(f Fixture) Result {
	out, err := r.App.Process(f.Path)
	if err == nil {
		return Result{Message: "accepted, want a parse or validation failure", Issues: out.Issues}
	}
	code := errors.GetExitCode(err)
	if code != errors.ExitParseError && code != errors.ExitValidationError {
		return Result{Message: err.Error()}
	}
	return Result{Passed: true, Message: err.Error(), Issues: out.Issues}
}

func (r *Runner) checkPair(f Fixture) Result {
	actual, expected, out, err := r.pairOutputs(f)
	if err != nil {
		res := Result{Message: err.Error()}
		if out != nil {
			res.Issues = out.Issues
		}
		return res
	}

	wantName, gotName := f.Expected, f.Name+" (normalized)"
	switch r.Compare {
	case config.CompareText:
		if NormalizeText(actual) != NormalizeText(expected) {
			return Result{
				Message: "output differs from " + wantName,
				Diff:    UnifiedDiff(wantName, gotName, NormalizeText(expected), NormalizeText(actual)),
				Issues:  out.Issues,
			}
		}
	default:
		if msg := r.semanticMismatch(f, out.Value); msg != "" {
			return Result{
				Message: msg,
				Diff:    UnifiedDiff(wantName, gotName, NormalizeText(expected), NormalizeText(actual)),
				Issues:  out.Issues,
			}
		}
	}
	return Result{Passed: true, Message: warningSummary(out.Issues), Issues: out.Issues}
}

// semanticMismatch compares the normalized value with the parsed expected
// output. It returns an empty string when they match.
func (r *Runner) semanticMismatch(f Fixture, actual *literal.Value) string {
	doc, err := r.App.Load(f.ExpectedPath)
	if err != nil {
		return err.Error()
	}
	if wrapper := r.App.Style().Wrapper; wrapper != "" {
		if doc.Call == nil {
			return fmt.Sprintf("expected output is not wrapped in %s(...)", wrapper)
		}
		if doc.Call.Callee != wrapper {
			return fmt.Sprintf("expected output calls %s, want %s", doc.Call.Callee, wrapper)
		}
	}
	if !literal.EqualFunc(doc.Root, actual, sameNumberForm) {
		return "normalized value differs from " + f.Expected
	}
	return ""
}

// sameNumberForm reports whether the expected number is written the way
// the actual one renders, so 0 and 0.0 differ where a float is required.
func sameNumberForm(expected, actual *literal.Value) bool {
	if math.IsNaN(actual.Num) {
		return math.IsNaN(expected.Num)
	}
	if expected.Num != actual.Num {
		return false
	}
	return strings.TrimPrefix(expected.Raw, "+") == render.FormatNumber(actual.Num, actual.Float)
}

// PairOutputs returns the rendered normalized input of a pair and the text
// of its expected output file.
func (r *Runner) PairOutputs(f Fixture) (actual, expected string, err error) {
	actual, expected, _, err = r.pairOutputs(f)
	return actual, expected, err
}

func (r *Runner) pairOutputs(f Fixture) (string, string, *app.Output, error) {
	if f.Kind != KindPair {
		return "", "", nil, errors.UsageError(fmt.Sprintf("%s is not a pair fixture", f.Name))
	}
	out, err := r.App.Process(f.Path)
	if err != nil {
		return "", "", out, err
	}
	data, err := r.App.FS.ReadFile(f.ExpectedPath)
	if err != nil {
		return "", "", out, errors.Wrap(errors.ExitGeneralError, "failed to read expected output", err)
	}
	return r.App.Render(out.Value), string(data), out, nil
}

func warningSummary(issues []schema.Issue) string {
	switch n := len(issues); n {
	case 0:
		return ""
	case 1:
		return "1 warning"
	default:
		return fmt.Sprintf("%d warnings", n)
	}
}
