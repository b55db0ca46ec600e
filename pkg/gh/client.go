// Package gh wraps the GitHub REST API behind the narrow fetch surface the
// analyzer needs: repository snapshots, file contents, and labeled issues.
package gh

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-github/v60/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/onrampdev/onramp/pkg/score"
)

// listPageSize caps commits and issues per snapshot.
const listPageSize = 10

// Client fetches repository data from the GitHub REST API. Calls are rate
// limited client-side to stay clear of secondary rate limits.
type Client struct {
	gh      *github.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithRateLimit sets the request budget in requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithLogger attaches a logger for degraded-fetch warnings.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithBaseURL points the client at a different API endpoint. Used in tests.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return
		}
		c.gh.BaseURL = u
	}
}

// New creates a Client authenticated with the given token. An empty token
// produces an unauthenticated client, which GitHub rate-limits aggressively
// but still serves.
func New(ctx context.Context, token string, opts ...Option) *Client {
	var tc *github.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		tc = github.NewClient(oauth2.NewClient(ctx, ts))
	} else {
		tc = github.NewClient(nil)
	}

	c := &Client{
		gh:     tc,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot fetches everything the scorer and report renderer consume for a
// single repository. The repository record itself is required; the listings
// around it (contents, languages, commits, issues) degrade to empty defaults
// on failure rather than aborting the whole analysis.
func (c *Client) Snapshot(ctx context.Context, owner, repo string) (*score.Snapshot, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	repository, _, err := c.gh.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("repository %s/%s not found or access denied: %w", owner, repo, err)
	}

	snap := &score.Snapshot{
		Owner:         owner,
		Name:          repo,
		Description:   repository.GetDescription(),
		Topics:        repository.Topics,
		Stars:         repository.GetStargazersCount(),
		Forks:         repository.GetForksCount(),
		OpenIssues:    repository.GetOpenIssuesCount(),
		CreatedAt:     repository.GetCreatedAt().Time,
		UpdatedAt:     repository.GetUpdatedAt().Time,
		DefaultBranch: repository.GetDefaultBranch(),
		Languages:     map[string]int{},
	}

	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	_, entries, _, err := c.gh.Repositories.GetContents(ctx, owner, repo, "", nil)
	if err != nil {
		c.logger.Warn("could not list repository contents",
			zap.String("repo", snap.FullName()), zap.Error(err))
	}
	for _, entry := range entries {
		snap.Files = append(snap.Files, entry.GetName())
	}

	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	languages, _, err := c.gh.Repositories.ListLanguages(ctx, owner, repo)
	if err != nil {
		c.logger.Warn("could not list repository languages",
			zap.String("repo", snap.FullName()), zap.Error(err))
	} else {
		snap.Languages = languages
	}

	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	commits, _, err := c.gh.Repositories.ListCommits(ctx, owner, repo, &github.CommitsListOptions{
		ListOptions: github.ListOptions{PerPage: listPageSize},
	})
	if err != nil {
		c.logger.Warn("could not list recent commits",
			zap.String("repo", snap.FullName()), zap.Error(err))
	}
	for _, commit := range commits {
		snap.Commits = append(snap.Commits, score.Commit{
			SHA:     commit.GetSHA(),
			Message: commit.GetCommit().GetMessage(),
			Author:  commit.GetCommit().GetAuthor().GetName(),
			Date:    commit.GetCommit().GetCommitter().GetDate().Time,
		})
	}

	issues, err := c.listIssues(ctx, owner, repo, "")
	if err != nil {
		c.logger.Warn("could not list open issues",
			zap.String("repo", snap.FullName()), zap.Error(err))
	} else {
		snap.Issues = issues
	}

	return snap, nil
}

// FileContent fetches and decodes a single file from the default branch.
func (c *Client) FileContent(ctx context.Context, owner, repo, path string) (string, error) {
	if err := c.wait(ctx); err != nil {
		return "", err
	}
	file, _, _, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		return "", fmt.Errorf("fetching %s from %s/%s: %w", path, owner, repo, err)
	}
	if file == nil {
		return "", fmt.Errorf("%s in %s/%s is not a file", path, owner, repo)
	}

	content, err := file.GetContent()
	if err != nil {
		return "", fmt.Errorf("decoding %s from %s/%s: %w", path, owner, repo, err)
	}
	return content, nil
}

// IssuesByLabel lists open issues carrying the given label.
func (c *Client) IssuesByLabel(ctx context.Context, owner, repo, label string) ([]score.Issue, error) {
	return c.listIssues(ctx, owner, repo, label)
}

func (c *Client) listIssues(ctx context.Context, owner, repo, label string) ([]score.Issue, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	opts := &github.IssueListByRepoOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: listPageSize},
	}
	if label != "" {
		opts.Labels = []string{label}
	}

	issues, _, err := c.gh.Issues.ListByRepo(ctx, owner, repo, opts)
	if err != nil {
		return nil, fmt.Errorf("listing issues for %s/%s: %w", owner, repo, err)
	}

	converted := make([]score.Issue, 0, len(issues))
	for _, issue := range issues {
		labels := make([]string, 0, len(issue.Labels))
		for _, l := range issue.Labels {
			labels = append(labels, l.GetName())
		}
		converted = append(converted, score.Issue{
			Number:    issue.GetNumber(),
			Title:     issue.GetTitle(),
			Body:      issue.GetBody(),
			Labels:    labels,
			Comments:  issue.GetComments(),
			URL:       issue.GetHTMLURL(),
			CreatedAt: issue.GetCreatedAt().Time,
		})
	}
	return converted, nil
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}
