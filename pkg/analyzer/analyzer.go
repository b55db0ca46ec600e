// Package analyzer turns repository snapshots into human-readable analysis
// reports: structure overviews, beginner-friendliness assessments, resource
// digests, good-first-issue suggestions, and multi-repository comparisons.
package analyzer

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/onrampdev/onramp/pkg/score"
)

// Fetcher is the slice of the code-hosting API the analyzer consumes.
// *gh.Client implements it; tests substitute fakes.
type Fetcher interface {
	// Snapshot fetches the full repository bundle used for scoring.
	Snapshot(ctx context.Context, owner, repo string) (*score.Snapshot, error)

	// FileContent fetches and decodes a single file.
	FileContent(ctx context.Context, owner, repo, path string) (string, error)

	// IssuesByLabel lists open issues carrying the given label.
	IssuesByLabel(ctx context.Context, owner, repo, label string) ([]score.Issue, error)
}

// Analyzer renders analysis reports from fetched repository data. It holds
// its collaborators explicitly; nothing here is process-global.
type Analyzer struct {
	fetcher Fetcher
	logger  *zap.Logger
	now     func() time.Time
}

// Option configures the Analyzer.
type Option func(*Analyzer)

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) { a.logger = logger }
}

// WithClock overrides the evaluation clock. Used in tests to make scoring
// deterministic.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

// New creates an Analyzer around the given fetcher.
func New(fetcher Fetcher, opts ...Option) *Analyzer {
	a := &Analyzer{
		fetcher: fetcher,
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeRepository fetches a repository and renders the full markdown
// analysis: basic info, language breakdown, beginner-friendliness
// assessment, recent activity, and open issues.
func (a *Analyzer) AnalyzeRepository(ctx context.Context, owner, repo string) (string, error) {
	snap, err := a.fetcher.Snapshot(ctx, owner, repo)
	if err != nil {
		return "", err
	}

	result, err := score.Score(snap, a.now())
	if err != nil {
		return "", err
	}

	a.logger.Debug("repository analyzed",
		zap.String("repo", snap.FullName()),
		zap.Int("score", result.Score),
	)

	var b strings.Builder
	fmt.Fprintf(&b, "# Repository Analysis: %s/%s\n\n", owner, repo)

	b.WriteString("## Basic Information\n")
	fmt.Fprintf(&b, "- **Description**: %s\n", orDefault(snap.Description, "No description provided"))
	fmt.Fprintf(&b, "- **Stars**: %s\n", comma(snap.Stars))
	fmt.Fprintf(&b, "- **Forks**: %s\n", comma(snap.Forks))
	fmt.Fprintf(&b, "- **Open Issues**: %d\n", snap.OpenIssues)
	fmt.Fprintf(&b, "- **Created**: %s\n", formatTime(snap.CreatedAt))
	fmt.Fprintf(&b, "- **Last Updated**: %s\n", formatTime(snap.UpdatedAt))
	fmt.Fprintf(&b, "- **Default Branch**: %s\n", orDefault(snap.DefaultBranch, "main"))

	b.WriteString("\n## Programming Languages\n")
	if len(snap.Languages) > 0 {
		total := 0
		for _, bytes := range snap.Languages {
			total += bytes
		}
		for _, lang := range languagesByBytes(snap.Languages) {
			pct := float64(snap.Languages[lang]) / float64(total) * 100
			fmt.Fprintf(&b, "- **%s**: %.1f%%\n", lang, pct)
		}
	} else {
		b.WriteString("- No language data available\n")
	}

	b.WriteString("\n## Beginner-Friendliness Assessment\n\n")
	fmt.Fprintf(&b, "**Overall Rating**: %s (%d/100)\n\n", result.Level, result.Score)
	b.WriteString("### Analysis Factors:\n")
	for _, factor := range result.Factors {
		fmt.Fprintf(&b, "- %s\n", factor)
	}

	if len(snap.Commits) > 0 {
		b.WriteString("\n## Recent Activity\n")
		fmt.Fprintf(&b, "- **Recent Commits**: %d in history\n", len(snap.Commits))
		latest := snap.Commits[0]
		fmt.Fprintf(&b, "- **Last Commit**: %s\n", formatTime(latest.Date))
		fmt.Fprintf(&b, "- **Last Commit Message**: %s...\n", truncate(latest.Message, 100))
	}

	if len(snap.Issues) > 0 {
		b.WriteString("\n## Open Issues & Collaboration\n")
		fmt.Fprintf(&b, "- **Open Issues**: %d shown (may be more)\n", len(snap.Issues))
		for _, issue := range firstN(snap.Issues, 3) {
			fmt.Fprintf(&b, "  - [%d] %s...\n", issue.Number, truncate(issue.Title, 50))
		}
	}

	return b.String(), nil
}

// languagesByBytes orders language names by byte count descending, ties
// broken by name so the report is deterministic.
func languagesByBytes(languages map[string]int) []string {
	names := make([]string, 0, len(languages))
	for name := range languages {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if languages[names[i]] != languages[names[j]] {
			return languages[names[i]] > languages[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
