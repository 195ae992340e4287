package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"diffscope/internal/diffparse"
	"diffscope/internal/extract"
	"diffscope/internal/parser"
	"diffscope/internal/types"
	"diffscope/pkg/config"
)

var (
	contextDiffPath string
	contextDir      string
)

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Print structural context for a local diff",
	Long: `Read a unified diff, locate the definitions its changed lines touch
in the post-change files on disk, and print the assembled context
bundle. Useful for inspecting what the reviewer model would see.

Examples:
  git diff HEAD~1 | diffscope context --diff -
  diffscope context --diff changes.patch --dir /path/to/repo`,
	RunE: runContext,
}

func init() {
	rootCmd.AddCommand(contextCmd)
	contextCmd.Flags().StringVar(&contextDiffPath, "diff", "-", "diff file to read, or - for stdin")
	contextCmd.Flags().StringVarP(&contextDir, "dir", "d", ".", "directory holding the post-change files")
}

func runContext(cmd *cobra.Command, args []string) error {
	rawDiff, err := readDiff(contextDiffPath)
	if err != nil {
		return err
	}

	index, err := diffparse.Build(string(rawDiff))
	if err != nil {
		return err
	}
	if len(index) == 0 {
		return fmt.Errorf("no changed lines found in diff")
	}

	// The config file is optional here: without one the extractor just
	// runs with defaults.
	cfg, err := loadConfig()
	if err != nil {
		cfg = &config.Config{}
	}

	var inputs []extract.FileInput
	var unreadable []types.DegradedFile
	for _, path := range index.Paths() {
		content, err := os.ReadFile(filepath.Join(contextDir, path))
		if err != nil {
			unreadable = append(unreadable, types.DegradedFile{
				Path:   path,
				Reason: types.ReasonContentUnavailable,
				Detail: err.Error(),
			})
			continue
		}
		inputs = append(inputs, extract.FileInput{
			Path:      path,
			Content:   string(content),
			Intervals: index[path],
		})
	}

	extractor := extract.NewExtractor(parser.NewRegistry(), extractorConfig(cfg))
	bundle := extractor.Extract(context.Background(), inputs)
	if len(unreadable) > 0 {
		bundle.Degraded = append(bundle.Degraded, unreadable...)
		sort.Slice(bundle.Degraded, func(i, j int) bool {
			return bundle.Degraded[i].Path < bundle.Degraded[j].Path
		})
	}

	fmt.Println(extract.Render(bundle))
	return nil
}

func readDiff(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read diff from stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read diff file: %w", err)
	}
	return data, nil
}
