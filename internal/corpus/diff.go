package corpus

import (
	"fmt"
	"strings"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// UnifiedDiff returns a unified diff turning want into got. It is empty
// when the two are equal.
func UnifiedDiff(wantName, gotName, want, got string) string {
	if want == got {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(wantName), want, got)
	return fmt.Sprint(gotextdiff.ToUnified(wantName, gotName, want, edits))
}

// NormalizeText makes text comparable across platforms and editors: CRLF
// becomes LF, trailing whitespace is dropped from each line and the text
// ends with exactly one newline.
func NormalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t\r")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
}
