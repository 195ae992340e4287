package agent

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"diffscope/internal/diffparse"
	"diffscope/internal/extract"
	"diffscope/internal/github"
	"diffscope/internal/llm"
	"diffscope/internal/prompts"
	"diffscope/internal/types"
)

// GitHub is the slice of the REST client the agent depends on, kept as
// an interface so tests can substitute a fake.
type GitHub interface {
	PullRequest(ctx context.Context, number int) (*github.PullRequest, error)
	Diff(ctx context.Context, number int) (string, error)
	LinkedIssue(ctx context.Context, prNumber int) (int, error)
	Issue(ctx context.Context, number int) (*github.Issue, error)
	FileContent(ctx context.Context, ref, path string) (string, error)
	PostComment(ctx context.Context, number int, body string) error
}

// IntentAgent evaluates whether a pull request's changes match the
// requirements in its linked issue, using structural context extracted
// from the changed files.
type IntentAgent struct {
	gh        GitHub
	provider  llm.Provider
	extractor *extract.Extractor
}

func NewIntentAgent(gh GitHub, provider llm.Provider, extractor *extract.Extractor) *IntentAgent {
	return &IntentAgent{
		gh:        gh,
		provider:  provider,
		extractor: extractor,
	}
}

// CheckPullRequest runs the full intent check: fetch the PR and its
// linked issue, extract structural context for the diff, evaluate with
// the model and optionally post the verdict as a PR comment.
func (a *IntentAgent) CheckPullRequest(ctx context.Context, prNumber int, postComment bool) (*Verdict, error) {
	pr, err := a.gh.PullRequest(ctx, prNumber)
	if err != nil {
		return nil, err
	}

	diff, err := a.gh.Diff(ctx, prNumber)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(diff) == "" {
		return &Verdict{Result: "PASS", Explanation: "No code changes detected in the pull request diff."}, nil
	}

	issueNumber, err := a.gh.LinkedIssue(ctx, prNumber)
	if err != nil {
		return nil, err
	}
	if issueNumber == 0 {
		return nil, fmt.Errorf("no linked issue found for pull request #%d", prNumber)
	}

	issue, err := a.gh.Issue(ctx, issueNumber)
	if err != nil {
		return nil, err
	}
	fmt.Printf("Evaluating PR #%d against issue #%d (%s)\n", prNumber, issue.Number, issue.Title)

	bundle, err := a.buildContext(ctx, pr, diff)
	if err != nil {
		return nil, err
	}

	prompt, err := prompts.BuildIntentPrompt(prompts.IntentCheckInput{
		Requirements: issue.Body,
		Diff:         diff,
		Context:      extract.Render(bundle),
	})
	if err != nil {
		return nil, err
	}

	output, err := a.provider.Generate(prompt)
	if err != nil {
		return nil, fmt.Errorf("model evaluation failed: %w", err)
	}

	verdict := ParseVerdict(output)

	if postComment {
		body := fmt.Sprintf("🤖 **PR Intent Check Result: %s**\n\n%s", verdict.Result, verdict.Explanation)
		if err := a.gh.PostComment(ctx, prNumber, body); err != nil {
			// A failed comment shouldn't fail the check itself.
			fmt.Fprintf(os.Stderr, "Warning: failed to post comment on PR #%d: %v\n", prNumber, err)
		}
	}

	return &verdict, nil
}

// buildContext derives the range index from the diff, fetches each
// changed file's content at the PR head and runs the extractor. Files
// whose content can't be fetched degrade instead of aborting the run.
func (a *IntentAgent) buildContext(ctx context.Context, pr *github.PullRequest, diff string) (types.ContextBundle, error) {
	index, err := diffparse.Build(diff)
	if err != nil {
		return types.ContextBundle{}, err
	}

	var inputs []extract.FileInput
	var unavailable []types.DegradedFile

	for _, path := range index.Paths() {
		content, err := a.gh.FileContent(ctx, pr.Head.SHA, path)
		if err != nil {
			unavailable = append(unavailable, types.DegradedFile{
				Path:   path,
				Reason: types.ReasonContentUnavailable,
				Detail: err.Error(),
			})
			continue
		}
		inputs = append(inputs, extract.FileInput{
			Path:      path,
			Content:   content,
			Intervals: index[path],
		})
	}

	bundle := a.extractor.Extract(ctx, inputs)
	if len(unavailable) > 0 {
		bundle.Degraded = append(bundle.Degraded, unavailable...)
		sort.Slice(bundle.Degraded, func(i, j int) bool {
			return bundle.Degraded[i].Path < bundle.Degraded[j].Path
		})
	}

	return bundle, nil
}
