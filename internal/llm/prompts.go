package llm

import (
	"fmt"
	"strings"

	"aita/pkg/schema"
)

// ChecklistCategories is the coverage the checklist already provides. The
// suggestion prompt lists it so a model proposes something beyond it.
var ChecklistCategories = []string{
	schema.CategoryPositive,
	schema.CategoryNegative,
	schema.CategoryBoundary,
	schema.CategoryRobustness,
	schema.CategorySecurity,
}

// BuildSuggestionPrompt creates a prompt asking for one complementary test idea.
func BuildSuggestionPrompt(req schema.Requirement) string {
	source := req.Source
	if source == "" {
		source = "unspecified"
	}

	return fmt.Sprintf(`Requirement under test:
- ID: %s
- Title: %s
- Description: %s
- Criticality: %s
- Source: %s

A deterministic checklist already covers: %s.

Propose ONE additional edge-case test idea that the checklist misses.
Keep it under 200 characters.

Return ONLY valid JSON with this exact structure:
{
  "description": "string"
}`,
		req.ID,
		req.Title,
		req.Description,
		req.Criticality,
		source,
		strings.Join(ChecklistCategories, ", "),
	)
}
