package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"aita/pkg/schema"
)

// Logger is the logging surface the suggester needs.
type Logger interface {
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Debug(msg string, fields ...any)
}

// SuggestionStatus tells why a SuggestionResult holds the ideas it holds.
type SuggestionStatus string

const (
	StatusSuggested          SuggestionStatus = "suggested"
	StatusDisabled           SuggestionStatus = "disabled"
	StatusMissingCredential  SuggestionStatus = "missing_credential"
	StatusInvalidRequirement SuggestionStatus = "invalid_requirement"
	StatusFailed             SuggestionStatus = "failed"
)

// SuggestionResult is the outcome of one suggestion request. Ideas is empty
// unless Status is StatusSuggested; Err holds the absorbed fault, if any.
type SuggestionResult struct {
	Ideas  []schema.TestIdea
	Status SuggestionStatus
	Err    error
}

// OK reports whether suggestions were produced.
func (r SuggestionResult) OK() bool { return r.Status == StatusSuggested }

// suggestionOutput is the JSON shape a model answers with.
type suggestionOutput struct {
	Description string `json:"description"`
}

// Suggester proposes at most one extra test idea per requirement.
type Suggester struct {
	config    SuggestionConfig
	generator Generator
	logger    Logger
}

// NewSuggester creates a suggester around an explicit generator. A nil
// generator makes every active request fail softly.
func NewSuggester(config SuggestionConfig, generator Generator, logger Logger) *Suggester {
	config.SetDefaults()
	return &Suggester{
		config:    config,
		generator: generator,
		logger:    logger,
	}
}

// NewStubSuggester wires the suggester to the offline genkit stub model.
// The model is only registered when the config is active and valid.
func NewStubSuggester(ctx context.Context, config SuggestionConfig, logger Logger) *Suggester {
	config.SetDefaults()
	s := NewSuggester(config, nil, logger)
	if !config.Active() {
		return s
	}

	if err := config.Validate(); err != nil {
		logger.Warn("invalid suggestion config, suggestions will be empty",
			"error", err.Error(),
		)
		return s
	}

	gen, err := safeStubGenerator(ctx, config.Model)
	if err != nil {
		logger.Warn("suggestion model unavailable, suggestions will be empty",
			"model", config.Model,
			"error", err.Error(),
		)
		return s
	}
	s.generator = gen
	return s
}

// safeStubGenerator turns a panic during model registration into an error.
func safeStubGenerator(ctx context.Context, model string) (gen Generator, err error) {
	defer func() {
		if r := recover(); r != nil {
			gen, err = nil, NewModelError(model, fmt.Errorf("panic: %v", r))
		}
	}()
	return NewStubGenerator(ctx, model)
}

// Suggest returns the suggestion outcome for one requirement. It never
// returns an error: every fault degrades to an empty result and a log line.
func (s *Suggester) Suggest(ctx context.Context, req schema.Requirement) (result SuggestionResult) {
	rid := strings.TrimSpace(req.ID)
	defer func() {
		if r := recover(); r != nil {
			result = s.fail(rid, NewModelError(s.config.Model, fmt.Errorf("panic: %v", r)))
		}
	}()

	if rid == "" {
		s.logger.Warn("suggestion skipped: requirement has no identifier")
		return SuggestionResult{Status: StatusInvalidRequirement}
	}

	if !s.config.Enabled {
		s.logger.Debug("suggestions disabled", "requirement_id", rid)
		return SuggestionResult{Status: StatusDisabled}
	}

	if strings.TrimSpace(s.config.APIKey) == "" {
		s.logger.Warn("suggestions enabled but credential missing", "requirement_id", rid)
		return SuggestionResult{Status: StatusMissingCredential}
	}

	if s.generator == nil {
		return s.fail(rid, NewModelError(s.config.Model, nil))
	}

	s.logger.Info("requesting suggestion", "requirement_id", rid, "model", s.config.Model)

	content, err := s.generator.Generate(ctx, BuildSuggestionPrompt(req))
	if err != nil {
		return s.fail(rid, err)
	}

	content = cleanMarkdownCodeBlocks(content)

	var out suggestionOutput
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return s.fail(rid, NewParseError(content, err))
	}

	description := strings.TrimSpace(out.Description)
	if description == "" {
		return s.fail(rid, NewValidationError("description is required", nil))
	}

	idea := schema.TestIdea{
		ID:            fmt.Sprintf("%s-AI-1", rid),
		RequirementID: rid,
		Category:      schema.CategoryAI,
		Description:   description,
		Origin:        schema.OriginAI,
	}
	return SuggestionResult{Ideas: []schema.TestIdea{idea}, Status: StatusSuggested}
}

// SuggestAll collects the suggested ideas of every requirement in input order.
func (s *Suggester) SuggestAll(ctx context.Context, reqs []schema.Requirement) []schema.TestIdea {
	var ideas []schema.TestIdea
	for _, req := range reqs {
		ideas = append(ideas, s.Suggest(ctx, req).Ideas...)
	}
	return ideas
}

func (s *Suggester) fail(rid string, err error) SuggestionResult {
	s.logger.Warn("suggestion failed, continuing without it",
		"requirement_id", rid,
		"error", err.Error(),
	)
	return SuggestionResult{Status: StatusFailed, Err: err}
}

// cleanMarkdownCodeBlocks removes markdown code block wrappers from JSON.
func cleanMarkdownCodeBlocks(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSpace(content)
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSpace(content)
	}

	if strings.HasSuffix(content, "```") {
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	return content
}
