// Package checklist derives a fixed, deterministic set of test ideas from a
// requirement: nominal, negative, boundary, robustness and security cases.
package checklist

import (
	"errors"
	"fmt"
	"strings"

	"aita/pkg/schema"
)

// ErrInvalidRequirement is returned when a requirement has no identifier.
var ErrInvalidRequirement = errors.New("checklist: requirement has no identifier")

// item is one checklist entry; the idea id is <requirement>-<tag>-<seq>.
type item struct {
	tag         string
	category    string
	description string
}

// items is ordered; Generate preserves this order.
var items = []item{
	{"POS", schema.CategoryPositive, "Nominal behavior"},
	{"NEG", schema.CategoryNegative, "Invalid inputs rejected"},
	{"NEG", schema.CategoryNegative, "Missing mandatory inputs"},
	{"BND", schema.CategoryBoundary, "Minimum boundary value"},
	{"BND", schema.CategoryBoundary, "Maximum boundary value"},
	{"ROB", schema.CategoryRobustness, "Unexpected conditions"},
	{"SEC", schema.CategorySecurity, "Unauthorized access attempt"},
}

// Size is the number of ideas Generate returns for a valid requirement.
func Size() int { return len(items) }

// Generate returns the checklist ideas for one requirement.
func Generate(req schema.Requirement) ([]schema.TestIdea, error) {
	base := strings.TrimSpace(req.ID)
	if base == "" {
		return nil, ErrInvalidRequirement
	}

	seq := make(map[string]int, len(items))
	ideas := make([]schema.TestIdea, 0, len(items))
	for _, it := range items {
		seq[it.tag]++
		id := fmt.Sprintf("%s-%s-%d", base, it.tag, seq[it.tag])
		ideas = append(ideas, schema.NewTestIdea(id, base, it.category, it.description))
	}
	return ideas, nil
}

// GenerateAll concatenates the checklist ideas of every requirement in input
// order. The first invalid requirement aborts generation.
func GenerateAll(reqs []schema.Requirement) ([]schema.TestIdea, error) {
	ideas := make([]schema.TestIdea, 0, len(reqs)*len(items))
	for i, req := range reqs {
		generated, err := Generate(req)
		if err != nil {
			return nil, fmt.Errorf("requirement %d: %w", i, err)
		}
		ideas = append(ideas, generated...)
	}
	return ideas, nil
}
