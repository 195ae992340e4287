package agent

import (
	"regexp"
	"strings"
)

// Verdict is the parsed outcome of an intent evaluation.
type Verdict struct {
	Result      string // "PASS" or "FAIL"
	Explanation string
}

func (v Verdict) Passed() bool {
	return v.Result == "PASS"
}

var (
	resultPattern      = regexp.MustCompile(`(?im)^\s*(?:\*\*)?result(?:\*\*)?\s*[:\-]\s*(?:\*\*)?\s*(PASS|FAIL)`)
	explanationPattern = regexp.MustCompile(`(?is)explanation(?:\*\*)?\s*[:\-]\s*(?:\*\*)?\s*(.+)`)
)

// ParseVerdict extracts the PASS/FAIL result and explanation from raw
// model output. Models don't always follow the requested format, so
// parsing is tolerant: a bare PASS/FAIL anywhere counts, and a missing
// result defaults to FAIL with the full output as explanation.
func ParseVerdict(output string) Verdict {
	verdict := Verdict{Result: "FAIL", Explanation: strings.TrimSpace(output)}

	if m := resultPattern.FindStringSubmatch(output); m != nil {
		verdict.Result = strings.ToUpper(m[1])
	} else {
		upper := strings.ToUpper(output)
		passIdx := strings.Index(upper, "PASS")
		failIdx := strings.Index(upper, "FAIL")
		switch {
		case passIdx >= 0 && (failIdx < 0 || passIdx < failIdx):
			verdict.Result = "PASS"
		case failIdx >= 0:
			verdict.Result = "FAIL"
		}
	}

	if m := explanationPattern.FindStringSubmatch(output); m != nil {
		verdict.Explanation = strings.TrimSpace(m[1])
	}

	return verdict
}
