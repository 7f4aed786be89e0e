package schema

import "strings"

// TestIdea is a candidate test scenario linked to one requirement.
type TestIdea struct {
	ID            string `json:"idea_id" yaml:"idea_id"`
	RequirementID string `json:"requirement_id" yaml:"requirement_id"`
	Category      string `json:"category" yaml:"category"`
	Description   string `json:"description" yaml:"description"`
	Origin        string `json:"origin" yaml:"origin"` // CHECKLIST | AI
}

// NewTestIdea builds a checklist-originated idea.
func NewTestIdea(id, requirementID, category, description string) TestIdea {
	return TestIdea{
		ID:            id,
		RequirementID: requirementID,
		Category:      category,
		Description:   description,
		Origin:        OriginChecklist,
	}
}

// IsAIGenerated reports whether the idea came from the suggestion source.
func (i TestIdea) IsAIGenerated() bool {
	return strings.EqualFold(i.Origin, OriginAI)
}

// NormalizedCategory returns the trimmed, uppercased category, or
// CategoryGeneric when the idea has none.
func (i TestIdea) NormalizedCategory() string {
	c := strings.ToUpper(strings.TrimSpace(i.Category))
	if c == "" {
		return CategoryGeneric
	}
	return c
}
