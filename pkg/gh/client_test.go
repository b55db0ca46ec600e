package gh_test

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onrampdev/onramp/pkg/gh"
)

// fakeGitHub wires a mux of canned API responses into a Client.
func fakeGitHub(t *testing.T, mux *http.ServeMux) *gh.Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return gh.New(context.Background(), "", gh.WithBaseURL(srv.URL))
}

const repoJSON = `{
	"name": "starter",
	"description": "A starter project",
	"topics": ["tutorial"],
	"stargazers_count": 321,
	"forks_count": 12,
	"open_issues_count": 3,
	"created_at": "2020-01-01T00:00:00Z",
	"updated_at": "2024-05-30T00:00:00Z",
	"default_branch": "main"
}`

func TestSnapshotHappyPath(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/starter", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, repoJSON)
	})
	mux.HandleFunc("/repos/octo/starter/contents/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"name":"README.md","type":"file"},{"name":"src","type":"dir"}]`)
	})
	mux.HandleFunc("/repos/octo/starter/languages", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Go":9000,"Shell":100}`)
	})
	mux.HandleFunc("/repos/octo/starter/commits", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10", r.URL.Query().Get("per_page"))
		fmt.Fprint(w, `[{
			"sha": "abc123",
			"commit": {
				"message": "Fix the widget",
				"author": {"name": "Octo"},
				"committer": {"date": "2024-05-29T00:00:00Z"}
			}
		}]`)
	})
	mux.HandleFunc("/repos/octo/starter/issues", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "open", r.URL.Query().Get("state"))
		fmt.Fprint(w, `[{
			"number": 7,
			"title": "Widget breaks on Tuesdays",
			"body": "It really does",
			"labels": [{"name": "bug"}],
			"comments": 2,
			"html_url": "https://github.com/octo/starter/issues/7",
			"created_at": "2024-05-01T00:00:00Z"
		}]`)
	})

	snap, err := fakeGitHub(t, mux).Snapshot(context.Background(), "octo", "starter")
	require.NoError(t, err)

	assert.Equal(t, "octo/starter", snap.FullName())
	assert.Equal(t, "A starter project", snap.Description)
	assert.Equal(t, []string{"tutorial"}, snap.Topics)
	assert.Equal(t, 321, snap.Stars)
	assert.Equal(t, 12, snap.Forks)
	assert.Equal(t, 3, snap.OpenIssues)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), snap.CreatedAt)
	assert.Equal(t, "main", snap.DefaultBranch)
	assert.Equal(t, []string{"README.md", "src"}, snap.Files)
	assert.Equal(t, map[string]int{"Go": 9000, "Shell": 100}, snap.Languages)

	require.Len(t, snap.Commits, 1)
	assert.Equal(t, "abc123", snap.Commits[0].SHA)
	assert.Equal(t, "Fix the widget", snap.Commits[0].Message)
	assert.Equal(t, "Octo", snap.Commits[0].Author)

	require.Len(t, snap.Issues, 1)
	assert.Equal(t, 7, snap.Issues[0].Number)
	assert.Equal(t, []string{"bug"}, snap.Issues[0].Labels)
}

func TestSnapshotMissingRepository(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/gone", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	})

	_, err := fakeGitHub(t, mux).Snapshot(context.Background(), "octo", "gone")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "octo/gone not found or access denied")
}

func TestSnapshotDegradesOnListingFailures(t *testing.T) {
	// Only the repository record itself answers; every listing 404s.
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/sparse", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, repoJSON)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	})

	snap, err := fakeGitHub(t, mux).Snapshot(context.Background(), "octo", "sparse")
	require.NoError(t, err)

	assert.Empty(t, snap.Files)
	assert.Empty(t, snap.Languages)
	assert.Empty(t, snap.Commits)
	assert.Empty(t, snap.Issues)
	// The record fields still came through.
	assert.Equal(t, 321, snap.Stars)
}

func TestFileContentDecodesBase64(t *testing.T) {
	content := "# Starter\nWelcome!"
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/starter/contents/README.md", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{
			"type": "file",
			"name": "README.md",
			"encoding": "base64",
			"content": %q
		}`, base64.StdEncoding.EncodeToString([]byte(content)))
	})

	got, err := fakeGitHub(t, mux).FileContent(context.Background(), "octo", "starter", "README.md")
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestFileContentRejectsDirectory(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/starter/contents/docs", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"name":"guide.md","type":"file"}]`)
	})

	_, err := fakeGitHub(t, mux).FileContent(context.Background(), "octo", "starter", "docs")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a file")
}

func TestFileContentFetchError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	})

	_, err := fakeGitHub(t, mux).FileContent(context.Background(), "octo", "starter", "MISSING.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching MISSING.md from octo/starter")
}

func TestIssuesByLabelFiltersByLabel(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/starter/issues", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "good first issue", r.URL.Query().Get("labels"))
		assert.Equal(t, "open", r.URL.Query().Get("state"))
		fmt.Fprint(w, `[{
			"number": 1,
			"title": "Fix typo in docs",
			"labels": [{"name": "good first issue"}],
			"created_at": "2024-05-01T00:00:00Z"
		}]`)
	})

	issues, err := fakeGitHub(t, mux).IssuesByLabel(context.Background(), "octo", "starter", "good first issue")
	require.NoError(t, err)

	require.Len(t, issues, 1)
	assert.Equal(t, "Fix typo in docs", issues[0].Title)
	assert.Equal(t, []string{"good first issue"}, issues[0].Labels)
}

func TestRateLimiterHonorsContext(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, repoJSON)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	// The burst admits the first request; the next wait would take hours,
	// so the fetch must fail once the context expires rather than hanging.
	client := gh.New(context.Background(), "",
		gh.WithBaseURL(srv.URL),
		gh.WithRateLimit(0.0001),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Snapshot(ctx, "octo", "starter")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait")
}

func TestUnauthenticatedClientConstructs(t *testing.T) {
	client := gh.New(context.Background(), "")
	require.NotNil(t, client)
}
