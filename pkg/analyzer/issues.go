package analyzer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/onrampdev/onramp/pkg/score"
)

// beginnerLabels are the issue labels scanned for newcomer-suitable work,
// in scan order.
var beginnerLabels = []string{
	"good first issue", "beginner", "easy", "starter", "first-timers-only",
	"help wanted", "documentation", "hacktoberfest",
}

const maxSuggestedIssues = 5

// GoodFirstIssues scans the beginner labels and renders the newest open
// issues suitable for first-time contributors. Issues carrying several of
// the labels are deduplicated by issue number.
func (a *Analyzer) GoodFirstIssues(ctx context.Context, owner, repo string) (string, error) {
	seen := make(map[int]bool)
	var good []score.Issue

	for _, label := range beginnerLabels {
		issues, err := a.fetcher.IssuesByLabel(ctx, owner, repo, label)
		if err != nil {
			a.logger.Warn("could not list labeled issues",
				zap.String("repo", owner+"/"+repo),
				zap.String("label", label),
				zap.Error(err),
			)
			continue
		}
		for _, issue := range issues {
			if seen[issue.Number] {
				continue
			}
			seen[issue.Number] = true
			good = append(good, issue)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Good First Issues for %s/%s\n\n", owner, repo)

	if len(good) == 0 {
		b.WriteString("❌ No issues specifically labeled for beginners found.\n")
		b.WriteString("💡 Consider looking at the general issues list or contributing documentation.\n")
		return b.String(), nil
	}

	fmt.Fprintf(&b, "Found %d beginner-friendly issues:\n\n", len(good))

	sort.SliceStable(good, func(i, j int) bool {
		return good[i].CreatedAt.After(good[j].CreatedAt)
	})

	for i, issue := range firstN(good, maxSuggestedIssues) {
		fmt.Fprintf(&b, "## %d. [%d] %s\n", i+1, issue.Number, issue.Title)
		fmt.Fprintf(&b, "**Labels**: %s\n", strings.Join(issue.Labels, ", "))
		fmt.Fprintf(&b, "**Created**: %s\n", formatTime(issue.CreatedAt))
		fmt.Fprintf(&b, "**Comments**: %d\n", issue.Comments)
		fmt.Fprintf(&b, "**URL**: %s\n", orDefault(issue.URL, "N/A"))

		if issue.Body != "" {
			preview := issue.Body
			if len(preview) > 200 {
				preview = preview[:200] + "..."
			}
			fmt.Fprintf(&b, "**Description**: %s\n", preview)
		}

		b.WriteString("\n---\n\n")
	}

	if len(good) > maxSuggestedIssues {
		fmt.Fprintf(&b, "... and %d more issues available.\n", len(good)-maxSuggestedIssues)
	}

	return b.String(), nil
}
