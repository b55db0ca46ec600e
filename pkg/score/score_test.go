package score_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/onrampdev/onramp/pkg/score"
)

var _ = Describe("Score", func() {
	var now time.Time

	BeforeEach(func() {
		now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	})

	// ancient is comfortably past the 30-day maturity threshold.
	ancient := func() time.Time {
		return time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	}

	Describe("a fully equipped repository", func() {
		var snap *score.Snapshot

		BeforeEach(func() {
			snap = &score.Snapshot{
				Owner:       "octo",
				Name:        "starter",
				Description: "A well documented starter project",
				Topics:      []string{"tutorial", "beginner"},
				CreatedAt:   ancient(),
				Files: []string{
					"README.md", "CONTRIBUTING.md", "LICENSE",
					"docs.md", "notes.txt",
				},
				Languages: map[string]int{"Python": 5000, "Shell": 100},
			}
		})

		It("earns every bonus for a total of 105", func() {
			result, err := score.Score(snap, now)
			Expect(err).NotTo(HaveOccurred())

			// 25+15+10+15+10+15+10+5
			Expect(result.Score).To(Equal(105))
			Expect(result.Level).To(Equal("🟢 Very Beginner Friendly"))
		})

		It("selects the dominant language", func() {
			result, err := score.Score(snap, now)
			Expect(err).NotTo(HaveOccurred())

			Expect(result.MainLanguage).To(Equal("Python"))
			Expect(result.TotalLanguages).To(Equal(2))
		})

		It("counts documentation files by extension", func() {
			result, err := score.Score(snap, now)
			Expect(err).NotTo(HaveOccurred())

			// README.md, CONTRIBUTING.md, docs.md, notes.txt
			Expect(result.DocumentationFiles).To(Equal(4))
		})

		It("emits one factor per signal in fixed order", func() {
			result, err := score.Score(snap, now)
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Factors).To(Equal([]string{
				"✅ Has README.md",
				"✅ Has contributing guidelines",
				"✅ Has license file",
				"✅ Has clear description",
				"✅ Has 2 topic tags",
				"✅ Good documentation (4 doc files)",
				"✅ Uses beginner-friendly language (Python)",
				"✅ Mature project (30+ days old)",
			}))
		})

		It("is deterministic for a fixed snapshot and clock", func() {
			first, err := score.Score(snap, now)
			Expect(err).NotTo(HaveOccurred())

			second, err := score.Score(snap, now)
			Expect(err).NotTo(HaveOccurred())

			Expect(second).To(Equal(first))
		})
	})

	Describe("a bare repository in a complex language", func() {
		It("lands below zero", func() {
			snap := &score.Snapshot{
				Owner:     "octo",
				Name:      "kernel",
				CreatedAt: now.Add(-10 * 24 * time.Hour), // too young for the maturity bonus
				Languages: map[string]int{"Rust": 9000},
			}

			result, err := score.Score(snap, now)
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Score).To(Equal(-5))
			Expect(result.Level).To(Equal("🔴 Not Beginner Friendly"))
			Expect(result.Factors).To(ContainElement("⚠️ Uses complex language (Rust)"))
			Expect(result.Factors).To(ContainElement("⚠️ Very new project"))
		})
	})

	Describe("language handling", func() {
		It("treats an empty language mapping as Unknown with zero net points", func() {
			snap := &score.Snapshot{
				Owner:     "octo",
				Name:      "empty",
				CreatedAt: now.Add(-10 * 24 * time.Hour),
				Languages: map[string]int{},
			}

			result, err := score.Score(snap, now)
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Score).To(Equal(0))
			Expect(result.MainLanguage).To(Equal(score.UnknownLanguage))
			Expect(result.Factors).To(ContainElement("◯ Language: Unknown"))
		})

		It("adds a neutral factor for languages outside both sets", func() {
			snap := &score.Snapshot{
				Owner:     "octo",
				Name:      "gopher",
				CreatedAt: ancient(),
				Languages: map[string]int{"Go": 1000},
			}

			result, err := score.Score(snap, now)
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Factors).To(ContainElement("◯ Language: Go"))
			// Only the maturity bonus applies.
			Expect(result.Score).To(Equal(5))
		})

		It("matches language sets case-insensitively", func() {
			snap := &score.Snapshot{
				Owner:     "octo",
				Name:      "scripts",
				CreatedAt: now,
				Languages: map[string]int{"JavaScript": 100},
			}

			result, err := score.Score(snap, now)
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Factors).To(ContainElement("✅ Uses beginner-friendly language (JavaScript)"))
		})
	})

	Describe("level thresholds", func() {
		// Each snapshot is tuned to land exactly on an inclusive bound.
		It("rates exactly 80 as Very Beginner Friendly", func() {
			snap := &score.Snapshot{
				Owner:       "octo",
				Name:        "edge80",
				Description: "has a description",
				Topics:      []string{"one"},
				CreatedAt:   ancient(),
				// Two doc files keeps the >2 documentation bonus off:
				// 25+15+10+15+10+0+0+5 = 80
				Files:     []string{"README.md", "CONTRIBUTING.md", "LICENSE"},
				Languages: map[string]int{"Go": 100},
			}

			result, err := score.Score(snap, now)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Score).To(Equal(80))
			Expect(result.Level).To(Equal("🟢 Very Beginner Friendly"))
		})

		It("rates exactly 60 as Moderately Beginner Friendly", func() {
			snap := &score.Snapshot{
				Owner:       "octo",
				Name:        "edge60",
				Description: "has a description",
				CreatedAt:   ancient(),
				// 25+15+0+15+0+0+0+5 = 60
				Files:     []string{"README.md", "CONTRIBUTING.md"},
				Languages: map[string]int{"Go": 100},
			}

			result, err := score.Score(snap, now)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Score).To(Equal(60))
			Expect(result.Level).To(Equal("🟡 Moderately Beginner Friendly"))
		})

		It("rates exactly 40 as Somewhat Beginner Friendly", func() {
			snap := &score.Snapshot{
				Owner:     "octo",
				Name:      "edge40",
				CreatedAt: ancient(),
				// 25+0+10+0+0+0+0+5 = 40
				Files:     []string{"README.md", "LICENSE"},
				Languages: map[string]int{"Go": 100},
			}

			result, err := score.Score(snap, now)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Score).To(Equal(40))
			Expect(result.Level).To(Equal("🟠 Somewhat Beginner Friendly"))
		})

		It("rates below 40 as Not Beginner Friendly", func() {
			snap := &score.Snapshot{
				Owner:     "octo",
				Name:      "edge25",
				CreatedAt: ancient(),
				// 25+5 = 30
				Files:     []string{"README.md"},
				Languages: map[string]int{"Go": 100},
			}

			result, err := score.Score(snap, now)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Score).To(Equal(30))
			Expect(result.Level).To(Equal("🔴 Not Beginner Friendly"))
		})
	})

	Describe("data quality", func() {
		It("reports a missing creation timestamp instead of guessing", func() {
			snap := &score.Snapshot{Owner: "octo", Name: "ghost"}

			_, err := score.Score(snap, now)
			Expect(err).To(MatchError(score.ErrMissingCreatedAt))
			Expect(err.Error()).To(ContainSubstring("octo/ghost"))
		})
	})
})

var _ = Describe("MainLanguage", func() {
	It("returns Unknown for an empty mapping", func() {
		Expect(score.MainLanguage(nil)).To(Equal(score.UnknownLanguage))
		Expect(score.MainLanguage(map[string]int{})).To(Equal(score.UnknownLanguage))
	})

	It("picks the language with the most bytes", func() {
		languages := map[string]int{"Go": 100, "Python": 900, "Shell": 50}
		Expect(score.MainLanguage(languages)).To(Equal("Python"))
	})

	It("breaks byte-count ties by name", func() {
		languages := map[string]int{"Zig": 100, "Ada": 100}
		Expect(score.MainLanguage(languages)).To(Equal("Ada"))
	})
})
