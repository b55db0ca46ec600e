// Package score computes heuristic beginner-friendliness scores for
// repository snapshots fetched from a code-hosting API.
package score

import "time"

// Snapshot is the bundle of repository metadata and listings fetched prior
// to scoring. It is constructed fresh per request and discarded after the
// response is formatted.
type Snapshot struct {
	Owner string
	Name  string

	Description   string
	Topics        []string
	Stars         int
	Forks         int
	OpenIssues    int
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DefaultBranch string

	// Files holds the names of top-level entries in the repository tree.
	Files []string

	// Languages maps language name to byte count.
	Languages map[string]int

	// Commits holds up to ten recent commits, newest first.
	Commits []Commit

	// Issues holds up to ten open issues.
	Issues []Issue
}

// Commit is the slice of commit data the analyzer presents.
type Commit struct {
	SHA     string
	Message string
	Author  string
	Date    time.Time
}

// Issue is the slice of issue data the analyzer presents.
type Issue struct {
	Number    int
	Title     string
	Body      string
	Labels    []string
	Comments  int
	URL       string
	CreatedAt time.Time
}

// FullName returns the owner/name form of the repository.
func (s *Snapshot) FullName() string {
	return s.Owner + "/" + s.Name
}
