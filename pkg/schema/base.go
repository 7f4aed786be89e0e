package schema

// Origin tags where a test idea came from.
const (
	OriginChecklist = "CHECKLIST"
	OriginAI        = "AI"
)

// Category tags produced by the checklist and the suggestion stub.
const (
	CategoryPositive   = "POSITIVE"
	CategoryNegative   = "NEGATIVE"
	CategoryBoundary   = "BOUNDARY"
	CategoryRobustness = "ROBUSTNESS"
	CategorySecurity   = "SECURITY"
	CategoryAI         = "AI"
	CategoryGeneric    = "GENERIC" // used when an idea carries no category
)

// Requirement field names as they appear in input rows.
const (
	FieldRequirementID = "requirement_id"
	FieldTitle         = "title"
	FieldDescription   = "description"
	FieldCriticality   = "criticality"
	FieldSource        = "source"
)

// RequiredRequirementFields lists the columns every input row must carry.
var RequiredRequirementFields = []string{
	FieldRequirementID,
	FieldTitle,
	FieldDescription,
	FieldCriticality,
}

// Limits used when synthesizing test cases.
const (
	RequirementExcerptMax = 220 // runes of requirement description quoted in a test case
	TokenLength           = 8   // hex characters of the test id token
)
