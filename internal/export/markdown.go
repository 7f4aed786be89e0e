package export

import (
	"fmt"
	"strings"

	"aita/pkg/schema"
)

const markdownTitle = "# Test Pack — APP3 AITA"

// ToMarkdown renders a human-readable pack grouped by requirement.
func ToMarkdown(cases []schema.TestCase) ([]byte, error) {
	sorted, err := prepare(cases)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(markdownTitle + "\n\n")
	fmt.Fprintf(&b, "- Format: `%s`\n", Format)
	fmt.Fprintf(&b, "- Count: **%d**\n", len(sorted))

	if len(sorted) == 0 {
		b.WriteString("\n## No tests generated\n\n")
		b.WriteString("The input produced no test cases.\n")
		return []byte(b.String()), nil
	}

	current := ""
	for i, tc := range sorted {
		if i == 0 || tc.RequirementID != current {
			current = tc.RequirementID
			fmt.Fprintf(&b, "\n## Requirement: `%s`\n", current)
		}
		writeCase(&b, tc)
	}
	return []byte(b.String()), nil
}

func writeCase(b *strings.Builder, tc schema.TestCase) {
	fmt.Fprintf(b, "\n### %s — %s\n", tc.TestID, tc.Title)

	if d := strings.TrimSpace(tc.Description); d != "" {
		b.WriteString("\n")
		for _, line := range strings.Split(d, "\n") {
			b.WriteString(strings.TrimRight(line, " \t") + "  \n")
		}
	}

	writeList(b, "Preconditions", tc.Preconditions, false)
	writeList(b, "Steps", tc.Steps, true)
	writeList(b, "Expected results", tc.ExpectedResults, false)

	ideas := make([]string, len(tc.SourceIdeas))
	for i, id := range tc.SourceIdeas {
		ideas[i] = "`" + id + "`"
	}
	writeList(b, "Source ideas", ideas, false)
}

func writeList(b *strings.Builder, heading string, lines []string, numbered bool) {
	fmt.Fprintf(b, "\n**%s**\n\n", heading)
	if len(lines) == 0 {
		b.WriteString("- _none_\n")
		return
	}
	for i, line := range lines {
		if numbered {
			fmt.Fprintf(b, "%d. %s\n", i+1, line)
		} else {
			fmt.Fprintf(b, "- %s\n", line)
		}
	}
}
