package schema

// TestCase is a fully structured, exportable test.
type TestCase struct {
	TestID          string   `json:"test_id" yaml:"test_id"`
	RequirementID   string   `json:"requirement_id" yaml:"requirement_id"`
	Title           string   `json:"title" yaml:"title"`
	Description     string   `json:"description" yaml:"description"`
	Preconditions   []string `json:"preconditions" yaml:"preconditions"`
	Steps           []string `json:"steps" yaml:"steps"`
	ExpectedResults []string `json:"expected_results" yaml:"expected_results"`
	SourceIdeas     []string `json:"source_ideas" yaml:"source_ideas"`
}

// Validate checks the fields a test case needs before it may be exported.
func (tc *TestCase) Validate() error {
	if tc.TestID == "" {
		return testCaseError("test_id", "is mandatory")
	}
	if tc.RequirementID == "" {
		return testCaseError("requirement_id", "is mandatory")
	}
	if tc.Title == "" {
		return testCaseError("title", "is mandatory")
	}
	if len(tc.Steps) == 0 {
		return testCaseError("steps", "at least one test step is required")
	}
	if len(tc.ExpectedResults) == 0 {
		return testCaseError("expected_results", "at least one expected result is required")
	}
	return nil
}
