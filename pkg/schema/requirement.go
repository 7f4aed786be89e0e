package schema

import "strings"

// Requirement represents one system requirement to be tested.
// Values are immutable once constructed; use NewRequirement to build one
// from an input row.
type Requirement struct {
	ID          string `json:"requirement_id" yaml:"requirement_id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Criticality string `json:"criticality" yaml:"criticality"`
	Source      string `json:"source,omitempty" yaml:"source,omitempty"`
}

// NewRequirement builds a Requirement from a row keyed by column name.
// Every value is trimmed; a missing or blank required field is rejected.
func NewRequirement(row map[string]string) (Requirement, error) {
	for _, field := range RequiredRequirementFields {
		value, ok := row[field]
		if !ok {
			return Requirement{}, requirementError(field, "missing field")
		}
		if strings.TrimSpace(value) == "" {
			return Requirement{}, requirementError(field, "must not be empty")
		}
	}

	return Requirement{
		ID:          strings.TrimSpace(row[FieldRequirementID]),
		Title:       strings.TrimSpace(row[FieldTitle]),
		Description: strings.TrimSpace(row[FieldDescription]),
		Criticality: strings.TrimSpace(row[FieldCriticality]),
		Source:      strings.TrimSpace(row[FieldSource]),
	}, nil
}

// HasSource reports whether the requirement names its origin document.
func (r Requirement) HasSource() bool { return r.Source != "" }
