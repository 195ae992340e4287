package diffparse

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sourcegraph/go-diff/diff"

	"diffscope/internal/types"
)

// RangeIndex maps a file path to its merged changed-line intervals on
// the new side of the diff. Intervals are disjoint and sorted ascending.
type RangeIndex map[string][]types.LineInterval

// Build parses a unified diff and derives the changed-line intervals for
// every file, new-file side only. Pure-deletion hunks and deleted files
// contribute nothing; files that end up with no intervals are omitted.
func Build(rawDiff string) (RangeIndex, error) {
	if strings.TrimSpace(rawDiff) == "" {
		return RangeIndex{}, nil
	}

	fileDiffs, err := diff.ParseMultiFileDiff([]byte(rawDiff))
	if err != nil {
		return nil, fmt.Errorf("failed to parse diff: %w", err)
	}

	index := make(RangeIndex)
	for _, fd := range fileDiffs {
		if fd.NewName == "/dev/null" {
			continue
		}
		path := strings.TrimPrefix(fd.NewName, "b/")

		var intervals []types.LineInterval
		for _, hunk := range fd.Hunks {
			if hunk.NewLines == 0 {
				continue
			}
			start := int(hunk.NewStartLine)
			intervals = append(intervals, types.LineInterval{
				Start: start,
				End:   start + int(hunk.NewLines) - 1,
			})
		}

		merged := Merge(intervals)
		if len(merged) > 0 {
			index[path] = merged
		}
	}

	return index, nil
}

// Merge sorts intervals by start and coalesces overlapping or adjacent
// ones, so the result is the minimal disjoint ascending cover.
func Merge(intervals []types.LineInterval) []types.LineInterval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]types.LineInterval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	merged := []types.LineInterval{sorted[0]}
	for _, next := range sorted[1:] {
		current := &merged[len(merged)-1]
		if next.Start <= current.End+1 {
			if next.End > current.End {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, next)
	}

	return merged
}

// Paths returns the indexed file paths in ascending order.
func (ri RangeIndex) Paths() []string {
	paths := make([]string, 0, len(ri))
	for path := range ri {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
