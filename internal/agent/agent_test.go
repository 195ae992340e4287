package agent

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diffscope/internal/extract"
	"diffscope/internal/github"
	"diffscope/internal/parser"
)

const calcSource = `import math


def add(a, b):
    return a + b
`

const calcDiff = `diff --git a/calc.py b/calc.py
index 0000000..1111111 100644
--- a/calc.py
+++ b/calc.py
@@ -4,2 +4,2 @@
 def add(a, b):
-    return a
+    return a + b
`

type fakeGitHub struct {
	pr          *github.PullRequest
	diff        string
	linkedIssue int
	issue       *github.Issue
	files       map[string]string

	comments        []string
	linkedIssueCall bool
}

func (f *fakeGitHub) PullRequest(ctx context.Context, number int) (*github.PullRequest, error) {
	return f.pr, nil
}

func (f *fakeGitHub) Diff(ctx context.Context, number int) (string, error) {
	return f.diff, nil
}

func (f *fakeGitHub) LinkedIssue(ctx context.Context, prNumber int) (int, error) {
	f.linkedIssueCall = true
	return f.linkedIssue, nil
}

func (f *fakeGitHub) Issue(ctx context.Context, number int) (*github.Issue, error) {
	return f.issue, nil
}

func (f *fakeGitHub) FileContent(ctx context.Context, ref, path string) (string, error) {
	content, ok := f.files[path]
	if !ok {
		return "", fmt.Errorf("no content for %s at %s", path, ref)
	}
	return content, nil
}

func (f *fakeGitHub) PostComment(ctx context.Context, number int, body string) error {
	f.comments = append(f.comments, body)
	return nil
}

type fakeProvider struct {
	output  string
	prompts []string
}

func (f *fakeProvider) GetModel() string { return "fake-model" }

func (f *fakeProvider) Generate(prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.output, nil
}

func newTestAgent(gh *fakeGitHub, provider *fakeProvider) *IntentAgent {
	extractor := extract.NewExtractor(parser.NewRegistry(), extract.Config{Workers: 1})
	return NewIntentAgent(gh, provider, extractor)
}

func passingFake() *fakeGitHub {
	pr := &github.PullRequest{Number: 12, Title: "Sum both arguments"}
	pr.Head.SHA = "abc123"
	return &fakeGitHub{
		pr:          pr,
		diff:        calcDiff,
		linkedIssue: 7,
		issue:       &github.Issue{Number: 7, Title: "add is wrong", Body: "add() must sum both arguments."},
		files:       map[string]string{"calc.py": calcSource},
	}
}

func TestCheckPullRequestPass(t *testing.T) {
	gh := passingFake()
	provider := &fakeProvider{output: "Result: PASS\nExplanation: The sum now includes both arguments."}
	a := newTestAgent(gh, provider)

	verdict, err := a.CheckPullRequest(context.Background(), 12, true)
	require.NoError(t, err)
	assert.True(t, verdict.Passed())
	assert.Equal(t, "The sum now includes both arguments.", verdict.Explanation)

	require.Len(t, provider.prompts, 1)
	prompt := provider.prompts[0]
	assert.Contains(t, prompt, "add() must sum both arguments.")
	assert.Contains(t, prompt, "return a + b")
	assert.Contains(t, prompt, ">>>>> File: calc.py")
	assert.Contains(t, prompt, "Function `add`")

	require.Len(t, gh.comments, 1)
	assert.Contains(t, gh.comments[0], "PASS")
}

func TestCheckPullRequestNoComment(t *testing.T) {
	gh := passingFake()
	provider := &fakeProvider{output: "Result: FAIL\nExplanation: Nope."}
	a := newTestAgent(gh, provider)

	verdict, err := a.CheckPullRequest(context.Background(), 12, false)
	require.NoError(t, err)
	assert.False(t, verdict.Passed())
	assert.Empty(t, gh.comments)
}

func TestCheckPullRequestEmptyDiff(t *testing.T) {
	gh := passingFake()
	gh.diff = "   \n"
	provider := &fakeProvider{}
	a := newTestAgent(gh, provider)

	verdict, err := a.CheckPullRequest(context.Background(), 12, false)
	require.NoError(t, err)
	assert.True(t, verdict.Passed())
	assert.False(t, gh.linkedIssueCall, "empty diff should short-circuit before issue lookup")
	assert.Empty(t, provider.prompts)
}

func TestCheckPullRequestNoLinkedIssue(t *testing.T) {
	gh := passingFake()
	gh.linkedIssue = 0
	a := newTestAgent(gh, &fakeProvider{})

	_, err := a.CheckPullRequest(context.Background(), 12, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no linked issue")
}

func TestCheckPullRequestUnfetchableFileDegrades(t *testing.T) {
	gh := passingFake()
	gh.files = map[string]string{} // content fetch fails
	provider := &fakeProvider{output: "Result: FAIL\nExplanation: Cannot verify."}
	a := newTestAgent(gh, provider)

	_, err := a.CheckPullRequest(context.Background(), 12, false)
	require.NoError(t, err)

	require.Len(t, provider.prompts, 1)
	assert.True(t, strings.Contains(provider.prompts[0], "Structural analysis skipped: content unavailable"),
		"prompt should carry the degraded file marker")
}
