// Package export renders a test pack as JSON and Markdown documents.
//
// Both renderers validate every case, order a copy by
// (requirement_id, test_id) and never embed timestamps, so identical
// inputs produce byte-identical documents.
package export

import (
	"fmt"
	"sort"

	"aita/pkg/schema"
)

// Format tags every exported document.
const Format = "vv-app3-aita.test-pack.v1"

// Artifact file names inside the output directory.
const (
	JSONFile     = "test_pack.json"
	MarkdownFile = "test_pack.md"
)

// Artifacts renders both documents, keyed by file name. Nothing is returned
// when any case is invalid.
func Artifacts(cases []schema.TestCase) (map[string][]byte, error) {
	jsonDoc, err := ToJSON(cases)
	if err != nil {
		return nil, err
	}
	mdDoc, err := ToMarkdown(cases)
	if err != nil {
		return nil, err
	}
	return map[string][]byte{
		JSONFile:     jsonDoc,
		MarkdownFile: mdDoc,
	}, nil
}

// prepare validates cases and returns a sorted, normalized copy.
func prepare(cases []schema.TestCase) ([]schema.TestCase, error) {
	out := make([]schema.TestCase, 0, len(cases))
	for i := range cases {
		if err := cases[i].Validate(); err != nil {
			return nil, fmt.Errorf("test case %d: %w", i, err)
		}
		out = append(out, normalize(cases[i]))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RequirementID != out[j].RequirementID {
			return out[i].RequirementID < out[j].RequirementID
		}
		if out[i].TestID != out[j].TestID {
			return out[i].TestID < out[j].TestID
		}
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].Description < out[j].Description
	})
	return out, nil
}

// normalize replaces nil lists so they serialize as [].
func normalize(tc schema.TestCase) schema.TestCase {
	tc.Preconditions = orEmpty(tc.Preconditions)
	tc.Steps = orEmpty(tc.Steps)
	tc.ExpectedResults = orEmpty(tc.ExpectedResults)
	tc.SourceIdeas = orEmpty(tc.SourceIdeas)
	return tc
}

func orEmpty(lines []string) []string {
	if lines == nil {
		return []string{}
	}
	return lines
}
