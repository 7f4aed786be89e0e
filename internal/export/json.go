package export

import (
	"encoding/json"
	"fmt"

	"aita/pkg/schema"
)

type meta struct {
	Format string `json:"format"`
	Count  int    `json:"count"`
}

type document struct {
	Meta  meta              `json:"meta"`
	Tests []schema.TestCase `json:"tests"`
}

// ToJSON renders {"meta":{...},"tests":[...]} with two-space indentation
// and a trailing newline.
func ToJSON(cases []schema.TestCase) ([]byte, error) {
	sorted, err := prepare(cases)
	if err != nil {
		return nil, err
	}

	doc := document{
		Meta:  meta{Format: Format, Count: len(sorted)},
		Tests: sorted,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal test pack: %w", err)
	}
	return append(data, '\n'), nil
}
