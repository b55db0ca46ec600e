package analyzer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// resourceKeywords mark a top-level file as beginner documentation.
var resourceKeywords = []string{
	"readme", "getting", "started", "tutorial", "guide",
	"contributing", "install", "setup",
}

const (
	maxResourceFiles = 5
	previewLineCount = 10
)

// BeginnerResources renders a digest of the repository's beginner-facing
// documentation: keyword-matched top-level files with a short content
// preview of each.
func (a *Analyzer) BeginnerResources(ctx context.Context, owner, repo string) (string, error) {
	snap, err := a.fetcher.Snapshot(ctx, owner, repo)
	if err != nil {
		return "", err
	}

	var docFiles []string
	for _, name := range snap.Files {
		lower := strings.ToLower(name)
		for _, keyword := range resourceKeywords {
			if strings.Contains(lower, keyword) {
				docFiles = append(docFiles, name)
				break
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Beginner Resources for %s/%s\n\n", owner, repo)

	if len(docFiles) == 0 {
		b.WriteString("❌ No obvious beginner documentation found.\n")
		return b.String(), nil
	}

	for _, name := range firstN(docFiles, maxResourceFiles) {
		fmt.Fprintf(&b, "## 📄 %s\n", name)

		content, err := a.fetcher.FileContent(ctx, owner, repo, name)
		if err != nil {
			a.logger.Warn("could not fetch resource file",
				zap.String("repo", snap.FullName()),
				zap.String("file", name),
				zap.Error(err),
			)
			b.WriteString("Could not retrieve file content.\n\n")
			continue
		}

		lines := strings.Split(content, "\n")
		preview := firstN(lines, previewLineCount)

		b.WriteString("```\n")
		b.WriteString(strings.Join(preview, "\n"))
		if len(lines) > previewLineCount {
			fmt.Fprintf(&b, "\n... (truncated, %d total lines)", len(lines))
		}
		b.WriteString("\n```\n\n")
	}

	return b.String(), nil
}
