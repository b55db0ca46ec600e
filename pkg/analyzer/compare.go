package analyzer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/onrampdev/onramp/pkg/score"
)

const maxCompareRepos = 5

// comparison holds the per-repository outcome of a comparison run. Exactly
// one of err or result is set.
type comparison struct {
	repo   string
	err    error
	snap   *score.Snapshot
	result *score.Result
}

// CompareRepositories analyzes up to five "owner/repo" entries (comma
// separated) and renders them ranked by beginner-friendliness. Repositories
// are fetched concurrently; results keep their input slots so ordering is
// deterministic, and ranking uses a stable sort so equal scores preserve
// input order.
func (a *Analyzer) CompareRepositories(ctx context.Context, repos string) (string, error) {
	var list []string
	for _, entry := range strings.Split(repos, ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			list = append(list, entry)
		}
	}

	if len(list) == 0 {
		return "", fmt.Errorf("no repositories given")
	}
	if len(list) > maxCompareRepos {
		return "", fmt.Errorf("maximum %d repositories can be compared at once", maxCompareRepos)
	}

	entries := make([]comparison, len(list))
	g, gctx := errgroup.WithContext(ctx)

	for i, full := range list {
		entries[i].repo = full

		owner, name, ok := strings.Cut(full, "/")
		if !ok || owner == "" || name == "" {
			entries[i].err = fmt.Errorf("invalid format, use 'owner/repo'")
			continue
		}

		g.Go(func() error {
			snap, err := a.fetcher.Snapshot(gctx, owner, name)
			if err != nil {
				entries[i].err = err
				return nil
			}
			result, err := score.Score(snap, a.now())
			if err != nil {
				entries[i].err = err
				return nil
			}
			entries[i].snap = snap
			entries[i].result = result
			return nil
		})
	}

	// Workers record failures per entry instead of failing the group, so
	// Wait only surfaces context cancellation.
	if err := g.Wait(); err != nil {
		return "", err
	}

	var valid, failed []comparison
	for _, entry := range entries {
		if entry.err != nil {
			failed = append(failed, entry)
		} else {
			valid = append(valid, entry)
		}
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].result.Score > valid[j].result.Score
	})

	var b strings.Builder
	b.WriteString("# Repository Comparison\n\n")

	if len(valid) > 0 {
		b.WriteString("## Rankings (by Beginner-Friendliness)\n\n")
		for i, entry := range valid {
			fmt.Fprintf(&b, "### %d. %s (%d/100)\n", i+1, entry.repo, entry.result.Score)
			fmt.Fprintf(&b, "**Level**: %s\n", entry.result.Level)
			fmt.Fprintf(&b, "**Language**: %s\n", entry.result.MainLanguage)
			fmt.Fprintf(&b, "**Stats**: ⭐%s | 🍴%s | 🐛%s\n",
				comma(entry.snap.Stars), comma(entry.snap.Forks), comma(entry.snap.OpenIssues))
			fmt.Fprintf(&b, "**Description**: %s...\n",
				truncate(orDefault(entry.snap.Description, "No description"), 100))
			b.WriteString("**Key Factors**:\n")
			for _, factor := range firstN(entry.result.Factors, 3) {
				fmt.Fprintf(&b, "  - %s\n", factor)
			}
			b.WriteString("\n")
		}

		b.WriteString("## Quick Comparison\n\n")
		b.WriteString("| Repository | Score | Level | Stars | Language |\n")
		b.WriteString("|------------|-------|-------|-------|----------|\n")
		for _, entry := range valid {
			fmt.Fprintf(&b, "| %s | %d/100 | %s | %s | %s |\n",
				entry.repo, entry.result.Score, levelGlyph(entry.result.Level),
				starCount(entry.snap.Stars), entry.result.MainLanguage)
		}
	}

	if len(failed) > 0 {
		b.WriteString("\n## Errors\n\n")
		for _, entry := range failed {
			fmt.Fprintf(&b, "- **%s**: %v\n", entry.repo, entry.err)
		}
	}

	return b.String(), nil
}

// levelGlyph extracts the leading status glyph from a level label for the
// compact comparison table.
func levelGlyph(level string) string {
	if glyph, _, ok := strings.Cut(level, " "); ok {
		return glyph
	}
	return level
}
