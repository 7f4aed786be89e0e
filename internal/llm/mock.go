package llm

import "context"

// MockGenerator is a canned Generator for testing.
type MockGenerator struct {
	Response string // The response to return
	Error    error  // Error to return (if any)
	Calls    int    // Number of Generate calls
	Prompts  []string
}

// Generate records the prompt and returns the canned response.
func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.Calls++
	m.Prompts = append(m.Prompts, prompt)
	if m.Error != nil {
		return "", m.Error
	}
	return m.Response, nil
}
