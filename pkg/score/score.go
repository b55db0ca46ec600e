package score

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ErrMissingCreatedAt reports a snapshot whose creation timestamp is absent
// or unparseable. The age signal cannot be evaluated without it, so scoring
// surfaces a data-quality error instead of guessing.
var ErrMissingCreatedAt = errors.New("snapshot has no creation timestamp")

// UnknownLanguage is the sentinel main language for a repository with no
// language data. It earns neither the friendly bonus nor the complex malus.
const UnknownLanguage = "Unknown"

// matureAge is the minimum repository age for the maturity bonus.
const matureAge = 30 * 24 * time.Hour

// Result is the outcome of scoring a single snapshot.
type Result struct {
	// Score is the accumulated point total. Nominally 0-100 but not
	// clamped: a repository can land below zero or above one hundred.
	Score int

	// Level is the threshold-selected rating label.
	Level string

	// Factors holds one human-readable line per evaluated signal, in
	// fixed evaluation order.
	Factors []string

	MainLanguage       string
	TotalLanguages     int
	DocumentationFiles int
}

// signal is one row of the scoring table: a named predicate worth a fixed
// number of points, with a factor line for either outcome.
type signal struct {
	name   string
	points int
	met    func(f *features) bool
	pass   func(f *features) string
	fail   string
}

// features holds the per-snapshot facts the signal table evaluates.
type features struct {
	hasReadme       bool
	hasContributing bool
	hasLicense      bool
	hasDescription  bool
	topicCount      int
	docFileCount    int
	mainLanguage    string
	age             time.Duration
}

// signals is the scoring table, in documented evaluation order. The main
// language signal is handled separately because it is three-valued.
var signals = []signal{
	{
		name: "readme", points: 25,
		met:  func(f *features) bool { return f.hasReadme },
		pass: func(f *features) string { return "✅ Has README.md" },
		fail: "❌ Missing README.md - essential for explaining the project",
	},
	{
		name: "contributing", points: 15,
		met:  func(f *features) bool { return f.hasContributing },
		pass: func(f *features) string { return "✅ Has contributing guidelines" },
		fail: "⚠️ Missing contributing guidelines",
	},
	{
		name: "license", points: 10,
		met:  func(f *features) bool { return f.hasLicense },
		pass: func(f *features) string { return "✅ Has license file" },
		fail: "⚠️ Missing license file",
	},
	{
		name: "description", points: 15,
		met:  func(f *features) bool { return f.hasDescription },
		pass: func(f *features) string { return "✅ Has clear description" },
		fail: "❌ Missing or poor description",
	},
	{
		name: "topics", points: 10,
		met:  func(f *features) bool { return f.topicCount > 0 },
		pass: func(f *features) string { return fmt.Sprintf("✅ Has %d topic tags", f.topicCount) },
		fail: "⚠️ No topic tags for discoverability",
	},
	{
		name: "documentation", points: 15,
		met:  func(f *features) bool { return f.docFileCount > 2 },
		pass: func(f *features) string { return fmt.Sprintf("✅ Good documentation (%d doc files)", f.docFileCount) },
		fail: "⚠️ Limited documentation",
	},
}

// friendlyLanguages earn a bonus; complexLanguages a malus. Membership is
// checked case-insensitively against the snapshot's dominant language.
var (
	friendlyLanguages = map[string]bool{"python": true, "javascript": true, "typescript": true}
	complexLanguages  = map[string]bool{"c": true, "c++": true, "rust": true, "assembly": true}
)

// levels maps inclusive lower score bounds to rating labels, highest first.
var levels = []struct {
	min   int
	label string
}{
	{80, "🟢 Very Beginner Friendly"},
	{60, "🟡 Moderately Beginner Friendly"},
	{40, "🟠 Somewhat Beginner Friendly"},
}

const levelNotFriendly = "🔴 Not Beginner Friendly"

// docExtensions mark a top-level file as documentation.
var docExtensions = []string{".md", ".txt", ".rst"}

// Score evaluates the beginner-friendliness of a snapshot against the given
// evaluation time. It is deterministic for a fixed snapshot and clock, and
// fails only when the snapshot's creation timestamp is missing.
func Score(snap *Snapshot, now time.Time) (*Result, error) {
	if snap.CreatedAt.IsZero() {
		return nil, fmt.Errorf("scoring %s: %w", snap.FullName(), ErrMissingCreatedAt)
	}

	f := extractFeatures(snap, now)

	total := 0
	factors := make([]string, 0, len(signals)+2)

	for _, sig := range signals {
		if sig.met(f) {
			total += sig.points
			factors = append(factors, sig.pass(f))
		} else {
			factors = append(factors, sig.fail)
		}
	}

	// Language signal: friendly bonus, complex malus, or a neutral line.
	switch lang := strings.ToLower(f.mainLanguage); {
	case friendlyLanguages[lang]:
		total += 10
		factors = append(factors, fmt.Sprintf("✅ Uses beginner-friendly language (%s)", f.mainLanguage))
	case complexLanguages[lang]:
		total -= 5
		factors = append(factors, fmt.Sprintf("⚠️ Uses complex language (%s)", f.mainLanguage))
	default:
		factors = append(factors, fmt.Sprintf("◯ Language: %s", f.mainLanguage))
	}

	if f.age > matureAge {
		total += 5
		factors = append(factors, "✅ Mature project (30+ days old)")
	} else {
		factors = append(factors, "⚠️ Very new project")
	}

	return &Result{
		Score:              total,
		Level:              levelFor(total),
		Factors:            factors,
		MainLanguage:       f.mainLanguage,
		TotalLanguages:     len(snap.Languages),
		DocumentationFiles: f.docFileCount,
	}, nil
}

func extractFeatures(snap *Snapshot, now time.Time) *features {
	f := &features{
		hasDescription: strings.TrimSpace(snap.Description) != "",
		topicCount:     len(snap.Topics),
		mainLanguage:   MainLanguage(snap.Languages),
		age:            now.Sub(snap.CreatedAt),
	}

	for _, name := range snap.Files {
		lower := strings.ToLower(name)
		if lower == "readme.md" {
			f.hasReadme = true
		}
		if strings.Contains(lower, "contributing") {
			f.hasContributing = true
		}
		if strings.Contains(lower, "license") {
			f.hasLicense = true
		}
		for _, ext := range docExtensions {
			if strings.HasSuffix(lower, ext) {
				f.docFileCount++
				break
			}
		}
	}

	return f
}

// MainLanguage returns the language with the largest byte count, breaking
// ties by name so the choice is deterministic. An empty mapping yields the
// UnknownLanguage sentinel.
func MainLanguage(languages map[string]int) string {
	if len(languages) == 0 {
		return UnknownLanguage
	}

	names := make([]string, 0, len(languages))
	for name := range languages {
		names = append(names, name)
	}
	sort.Strings(names)

	main := names[0]
	for _, name := range names[1:] {
		if languages[name] > languages[main] {
			main = name
		}
	}
	return main
}

func levelFor(total int) string {
	for _, l := range levels {
		if total >= l.min {
			return l.label
		}
	}
	return levelNotFriendly
}
