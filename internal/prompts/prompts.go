package prompts

import (
	"fmt"
	"strings"
	"text/template"
)

// IntentCheckInput carries the three blocks the evaluation prompt is
// built from: the linked issue's requirements, the raw diff, and the
// structural context extracted from the changed files.
type IntentCheckInput struct {
	Requirements string
	Diff         string
	Context      string
}

const intentCheckTemplate = `You are a strict code reviewer. Decide whether the code changes fulfill the stated requirements, nothing more and nothing less.

REQUIREMENTS (from the linked issue):
{{.Requirements}}

CODE CHANGES (unified diff):
{{.Diff}}

CONTEXT CODE (full definitions touched by the diff, with their imports and calls; files marked as skipped could not be analyzed structurally, judge those from the diff alone):
{{.Context}}

Evaluate whether the changes implement the requirements. Unrelated changes, missing requirements, or contradictions between the diff and the requirements mean FAIL.

Respond in exactly this format:
Result: PASS or FAIL
Explanation: <your reasoning, a short paragraph>`

var intentTmpl = template.Must(template.New("intent_check").Parse(intentCheckTemplate))

// BuildIntentPrompt renders the evaluation prompt. Empty sections are
// replaced with an explicit placeholder so the model never sees a bare
// header.
func BuildIntentPrompt(input IntentCheckInput) (string, error) {
	if strings.TrimSpace(input.Requirements) == "" {
		input.Requirements = "(no requirements provided: the linked issue body is empty)"
	}
	if strings.TrimSpace(input.Context) == "" {
		input.Context = "(no structural context could be extracted)"
	}

	var b strings.Builder
	if err := intentTmpl.Execute(&b, input); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return b.String(), nil
}
