// Package pack turns requirements and test ideas into a deterministic,
// uniquely identified list of test cases.
//
// Determinism rules:
//   - ideas are processed in (requirement_id, CATEGORY, idea_id) order,
//     with description and origin as final tie-breakers;
//   - test ids derive from content only: TC-{REQ}-{CAT}-{sha256[:8]};
//   - a colliding id is re-hashed with a numbered "dup" suffix.
package pack

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"aita/pkg/schema"
)

// ErrInvalidTestCase marks a synthesized test case that failed validation.
// It signals a defect in the generator, never bad input.
var ErrInvalidTestCase = errors.New("pack: generated test case failed validation")

const fallbackDescription = "Generated from test idea."

var (
	preconditionScaffold = []string{
		"The system under test is deployed in a known initial state.",
		"Test data and accounts required by the scenario are available.",
	}
	expectedScaffold = []string{
		"System behavior matches the expected requirement intent.",
		"No unexpected side effects are observed.",
	}
)

// Build converts ideas into test cases. Empty inputs yield an empty list;
// ideas naming an unknown requirement are dropped.
func Build(reqs []schema.Requirement, ideas []schema.TestIdea) ([]schema.TestCase, error) {
	if len(reqs) == 0 || len(ideas) == 0 {
		return []schema.TestCase{}, nil
	}

	byID := make(map[string]schema.Requirement, len(reqs))
	for _, r := range reqs {
		rid := strings.TrimSpace(r.ID)
		if rid == "" {
			continue
		}
		if _, dup := byID[rid]; !dup {
			byID[rid] = r
		}
	}

	usable := make([]schema.TestIdea, 0, len(ideas))
	for _, idea := range ideas {
		idea.RequirementID = strings.TrimSpace(idea.RequirementID)
		if _, ok := byID[idea.RequirementID]; ok {
			usable = append(usable, idea)
		}
	}

	SortIdeas(usable)

	out := make([]schema.TestCase, 0, len(usable))
	seen := make(map[string]struct{}, len(usable))
	for _, idea := range usable {
		tc := synthesize(byID[idea.RequirementID], idea)
		tc.TestID = uniqueTestID(idea, seen)
		seen[tc.TestID] = struct{}{}

		if err := tc.Validate(); err != nil {
			return nil, fmt.Errorf("%w: idea %s: %w", ErrInvalidTestCase, idea.ID, err)
		}
		out = append(out, tc)
	}

	return out, nil
}

// SortIdeas orders ideas canonically in place.
func SortIdeas(ideas []schema.TestIdea) {
	sort.SliceStable(ideas, func(i, j int) bool {
		a, b := ideas[i], ideas[j]
		if a.RequirementID != b.RequirementID {
			return a.RequirementID < b.RequirementID
		}
		if ca, cb := a.NormalizedCategory(), b.NormalizedCategory(); ca != cb {
			return ca < cb
		}
		if a.ID != b.ID {
			return a.ID < b.ID
		}
		if a.Description != b.Description {
			return a.Description < b.Description
		}
		return a.Origin < b.Origin
	})
}

// TestID returns the primary content-derived identifier of an idea.
func TestID(idea schema.TestIdea) string {
	return testID(idea, "")
}

// uniqueTestID returns the primary id, or the first numbered fallback that
// is not yet taken.
func uniqueTestID(idea schema.TestIdea, seen map[string]struct{}) string {
	id := testID(idea, "")
	for n := 1; ; n++ {
		if _, taken := seen[id]; !taken {
			return id
		}
		suffix := "dup"
		if n > 1 {
			suffix = fmt.Sprintf("dup%d", n)
		}
		id = testID(idea, suffix)
	}
}

func testID(idea schema.TestIdea, suffix string) string {
	category := idea.NormalizedCategory()
	parts := []string{idea.RequirementID, category, idea.ID, idea.Description}
	if suffix != "" {
		parts = append(parts, suffix)
	}
	return schema.TestCaseID(idea.RequirementID, category, schema.Token(parts...))
}

func synthesize(req schema.Requirement, idea schema.TestIdea) schema.TestCase {
	category := idea.NormalizedCategory()

	return schema.TestCase{
		RequirementID: idea.RequirementID,
		Title:         fmt.Sprintf("[%s] %s", category, strings.TrimSpace(req.Title)),
		Description:   describe(req, idea),
		Preconditions: clone(preconditionScaffold),
		Steps: []string{
			"Prepare the system under test in a known initial state.",
			fmt.Sprintf("Apply the scenario described in idea %s: %s.", idea.ID, ideaSummary(idea)),
			"Observe the system behavior and collect evidence (logs, outputs, states).",
		},
		ExpectedResults: clone(expectedScaffold),
		SourceIdeas:     []string{idea.ID},
	}
}

func describe(req schema.Requirement, idea schema.TestIdea) string {
	var parts []string
	if d := strings.TrimSpace(idea.Description); d != "" {
		parts = append(parts, d)
	}
	if o := strings.TrimSpace(idea.Origin); o != "" {
		parts = append(parts, "Origin: "+o)
	}
	if excerpt := Excerpt(req.Description, schema.RequirementExcerptMax); excerpt != "" {
		parts = append(parts, "Requirement excerpt: "+excerpt)
	}
	if len(parts) == 0 {
		return fallbackDescription
	}
	return strings.Join(parts, "\n")
}

func ideaSummary(idea schema.TestIdea) string {
	if d := strings.TrimSpace(idea.Description); d != "" {
		return d
	}
	return "untitled test idea"
}

// Excerpt trims s and cuts it to at most limit runes.
func Excerpt(s string, limit int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return strings.TrimSpace(string(r[:limit]))
}

func clone(lines []string) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}
