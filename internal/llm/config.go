package llm

import (
	"fmt"
	"strings"
)

// DefaultModel is the locally registered stand-in suggestion model.
const DefaultModel = "aita/suggestion-stub"

// SuggestionConfig controls the optional suggestion source. It is passed
// explicitly to NewSuggester; nothing in this package reads the environment.
type SuggestionConfig struct {
	// Enabled is the explicit opt-in flag.
	Enabled bool

	// APIKey is the credential a real suggestion backend would need.
	// Suggestions stay off while it is blank.
	APIKey string

	// Model is the genkit model name to ask.
	// Default: aita/suggestion-stub
	Model string
}

// Active reports whether both the flag and a credential are present.
func (c *SuggestionConfig) Active() bool {
	return c.Enabled && strings.TrimSpace(c.APIKey) != ""
}

// Validate checks that an active config is usable.
func (c *SuggestionConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("APIKey is required when suggestions are enabled")
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("Model is required")
	}
	return nil
}

// SetDefaults fills in default values for optional fields.
func (c *SuggestionConfig) SetDefaults() {
	if c.Model == "" {
		c.Model = DefaultModel
	}
}
