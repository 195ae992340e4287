package cli

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"diffscope/internal/agent"
	"diffscope/internal/extract"
	"diffscope/internal/github"
	"diffscope/internal/llm"
	"diffscope/internal/parser"
	"diffscope/pkg/spinner"
)

var (
	checkPR        int
	checkNoComment bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate a pull request against its linked issue",
	Long: `Fetch a pull request's diff and linked issue, extract structural
context for the changed definitions, and ask the configured model
whether the changes fulfill the issue's requirements.

Requires GITHUB_TOKEN in the environment; exits non-zero on FAIL.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().IntVar(&checkPR, "pr", 0, "pull request number (required)")
	checkCmd.Flags().BoolVar(&checkNoComment, "no-comment", false, "don't post the verdict as a PR comment")
	checkCmd.MarkFlagRequired("pr")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if !slices.Contains(llm.SupportedProviders, cfg.LLM.Provider) {
		return fmt.Errorf("unsupported LLM provider: %s", cfg.LLM.Provider)
	}

	repo := cfg.GitHub.Repository
	if repo == "" {
		repo = os.Getenv("GITHUB_REPOSITORY")
	}
	if repo == "" {
		return fmt.Errorf("no repository configured: set github.repository or GITHUB_REPOSITORY")
	}

	gh := github.NewClient(cfg.GitHub.BaseURL, os.Getenv("GITHUB_TOKEN"), repo)

	provider, err := llm.NewProvider(llm.ProviderConfig{
		Type:    llm.ProviderType(cfg.LLM.Provider),
		Model:   cfg.LLM.Model,
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  os.Getenv("OPENAI_API_KEY"),
	})
	if err != nil {
		return fmt.Errorf("failed to create LLM provider: %w", err)
	}

	fmt.Printf("Using %s API with %s model\n\n", cfg.LLM.Provider, provider.GetModel())

	extractor := extract.NewExtractor(parser.NewRegistry(), extractorConfig(cfg))
	intentAgent := agent.NewIntentAgent(gh, provider, extractor)

	sp := spinner.New(fmt.Sprintf("Checking intent of PR #%d...", checkPR))
	sp.Start()
	verdict, err := intentAgent.CheckPullRequest(context.Background(), checkPR, !checkNoComment)
	sp.Stop()
	if err != nil {
		return err
	}

	fmt.Printf("Result: %s\n\n%s\n", verdict.Result, verdict.Explanation)
	if !verdict.Passed() {
		os.Exit(1)
	}
	return nil
}
