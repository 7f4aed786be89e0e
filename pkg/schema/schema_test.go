package schema

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func validRow() map[string]string {
	return map[string]string{
		"requirement_id": " REQ-1 ",
		"title":          "Login",
		"description":    "The user shall log in",
		"criticality":    "HIGH",
	}
}

func TestNewRequirement(t *testing.T) {
	req, err := NewRequirement(validRow())
	if err != nil {
		t.Fatalf("NewRequirement failed: %v", err)
	}
	if req.ID != "REQ-1" {
		t.Errorf("ID should be trimmed, got %q", req.ID)
	}
	if req.HasSource() {
		t.Error("requirement without source column should not have a source")
	}

	row := validRow()
	row["source"] = "  SRS v2 "
	req, err = NewRequirement(row)
	if err != nil {
		t.Fatalf("NewRequirement failed: %v", err)
	}
	if req.Source != "SRS v2" {
		t.Errorf("Source mismatch: got %q", req.Source)
	}
}

func TestNewRequirementRejectsInvalidRows(t *testing.T) {
	tests := []struct {
		name  string
		field string
		edit  func(map[string]string)
	}{
		{"missing id", "requirement_id", func(r map[string]string) { delete(r, "requirement_id") }},
		{"blank id", "requirement_id", func(r map[string]string) { r["requirement_id"] = "   " }},
		{"empty title", "title", func(r map[string]string) { r["title"] = "" }},
		{"missing description", "description", func(r map[string]string) { delete(r, "description") }},
		{"blank criticality", "criticality", func(r map[string]string) { r["criticality"] = "\t" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := validRow()
			tt.edit(row)

			_, err := NewRequirement(row)
			if err == nil {
				t.Fatal("expected validation error")
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if vErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", vErr.Field, tt.field)
			}
		})
	}
}

func TestTestIdeaHelpers(t *testing.T) {
	idea := NewTestIdea("REQ-1-POS-1", "REQ-1", " positive ", "Nominal behavior")
	if idea.Origin != OriginChecklist {
		t.Errorf("default origin should be %s, got %s", OriginChecklist, idea.Origin)
	}
	if idea.IsAIGenerated() {
		t.Error("checklist idea should not be AI generated")
	}
	if got := idea.NormalizedCategory(); got != "POSITIVE" {
		t.Errorf("NormalizedCategory() = %q", got)
	}

	idea.Origin = "ai"
	if !idea.IsAIGenerated() {
		t.Error("origin comparison should be case-insensitive")
	}

	idea.Category = "  "
	if got := idea.NormalizedCategory(); got != CategoryGeneric {
		t.Errorf("empty category should normalize to %s, got %s", CategoryGeneric, got)
	}
}

func TestTestCaseValidate(t *testing.T) {
	valid := func() TestCase {
		return TestCase{
			TestID:          "TC-REQ1-POSITIVE-00000001",
			RequirementID:   "REQ-1",
			Title:           "[POSITIVE] Login",
			Steps:           []string{"step"},
			ExpectedResults: []string{"result"},
		}
	}

	tests := []struct {
		name    string
		edit    func(*TestCase)
		field   string
		wantErr bool
	}{
		{"valid", func(*TestCase) {}, "", false},
		{"empty test id", func(tc *TestCase) { tc.TestID = "" }, "test_id", true},
		{"empty requirement id", func(tc *TestCase) { tc.RequirementID = "" }, "requirement_id", true},
		{"empty title", func(tc *TestCase) { tc.Title = "" }, "title", true},
		{"no steps", func(tc *TestCase) { tc.Steps = nil }, "steps", true},
		{"no expected results", func(tc *TestCase) { tc.ExpectedResults = []string{} }, "expected_results", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := valid()
			tt.edit(&tc)
			err := tc.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) || vErr.Field != tt.field {
				t.Errorf("expected validation error on %q, got %v", tt.field, err)
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	base := errors.New("base")
	err := &ValidationError{Record: "requirement", Field: "title", Message: "must not be empty", Err: base}
	if got := err.Error(); got != "invalid requirement: title: must not be empty" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, base) {
		t.Error("ValidationError should unwrap to base error")
	}

	noField := &ValidationError{Record: "test case", Message: "broken"}
	if got := noField.Error(); got != "invalid test case: broken" {
		t.Errorf("Error() = %q", got)
	}
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"REQ-A":       "REQA",
		"req-gen-001": "REQGEN001",
		"Boundary":    "BOUNDARY",
		"a b_c.d/é9":  "ABCD9",
		"---":         "",
	}
	for in, want := range tests {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTokenIsStableAndSeparated(t *testing.T) {
	a := Token("REQ-1", "BOUNDARY", "REQ-1-BND-1", "Max length")
	b := Token("REQ-1", "BOUNDARY", "REQ-1-BND-1", "Max length")
	if a != b {
		t.Fatalf("Token should be deterministic: %s != %s", a, b)
	}
	if len(a) != TokenLength {
		t.Errorf("Token length = %d, want %d", len(a), TokenLength)
	}
	if !regexp.MustCompile(`^[0-9a-f]{8}$`).MatchString(a) {
		t.Errorf("Token should be lowercase hex, got %s", a)
	}

	// Moving a character across a field boundary must change the token.
	if Token("AB", "C") == Token("A", "BC") {
		t.Error("field boundaries should affect the token")
	}
}

func TestTestCaseID(t *testing.T) {
	id := TestCaseID("REQ-A", "BOUNDARY", "deadbeef")
	if id != "TC-REQA-BOUNDARY-deadbeef" {
		t.Errorf("TestCaseID() = %s", id)
	}
}

func TestRunAndReportIDs(t *testing.T) {
	runID, err := NewRunID()
	if err != nil {
		t.Fatalf("Failed to generate run ID: %v", err)
	}
	if !strings.HasPrefix(runID, "RUN-") || len(runID) != len("RUN-")+10 {
		t.Errorf("unexpected run ID %s", runID)
	}

	reportID, err := NewReportID()
	if err != nil {
		t.Fatalf("Failed to generate report ID: %v", err)
	}
	if !strings.HasPrefix(reportID, "ENV-") {
		t.Errorf("Report ID should start with ENV-, got %s", reportID)
	}
}

func TestTestCaseMarshaling(t *testing.T) {
	tc := TestCase{
		TestID:          "TC-REQ1-NEGATIVE-0a1b2c3d",
		RequirementID:   "REQ-1",
		Title:           "[NEGATIVE] Login",
		Description:     "Invalid inputs rejected\nOrigin: CHECKLIST",
		Preconditions:   []string{"p1"},
		Steps:           []string{"s1", "s2"},
		ExpectedResults: []string{"e1"},
		SourceIdeas:     []string{"REQ-1-NEG-1"},
	}

	jsonData, err := json.Marshal(tc)
	if err != nil {
		t.Fatalf("Failed to marshal test case to JSON: %v", err)
	}
	for _, key := range []string{`"test_id"`, `"expected_results"`, `"source_ideas"`} {
		if !strings.Contains(string(jsonData), key) {
			t.Errorf("JSON should contain %s", key)
		}
	}

	yamlData, err := yaml.Marshal(tc)
	if err != nil {
		t.Fatalf("Failed to marshal test case to YAML: %v", err)
	}
	var back TestCase
	if err := yaml.Unmarshal(yamlData, &back); err != nil {
		t.Fatalf("Failed to unmarshal test case from YAML: %v", err)
	}
	if back.Description != tc.Description {
		t.Errorf("Description mismatch: got %q, want %q", back.Description, tc.Description)
	}
}
