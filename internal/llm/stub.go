package llm

import (
	"context"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

// StubSuggestion is the fixed answer of the stand-in model.
const StubSuggestion = "AI-suggested edge case scenario"

// Generator produces a text answer for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// genkitGenerator asks a genkit model with a single user message.
type genkitGenerator struct {
	model ai.Model
	name  string
}

// RegisterStubModel registers the stand-in suggestion model with a fresh
// Genkit instance. The model answers locally and never touches the network.
func RegisterStubModel(ctx context.Context, name string) *genkit.Genkit {
	g := genkit.Init(ctx)

	genkit.DefineModel(
		g,
		name,
		&ai.ModelOptions{
			Label: "Suggestion stub (offline)",
			Supports: &ai.ModelSupports{
				Multiturn:  false,
				SystemRole: false,
			},
		},
		func(ctx context.Context, req *ai.ModelRequest, cb ai.ModelStreamCallback) (*ai.ModelResponse, error) {
			return &ai.ModelResponse{
				Request: req,
				Message: &ai.Message{
					Role: ai.RoleModel,
					Content: []*ai.Part{
						ai.NewTextPart(`{"description": "` + StubSuggestion + `"}`),
					},
				},
			}, nil
		},
	)

	return g
}

// NewStubGenerator registers the stand-in model and returns a Generator
// bound to it.
func NewStubGenerator(ctx context.Context, name string) (Generator, error) {
	g := RegisterStubModel(ctx, name)
	model := genkit.LookupModel(g, name)
	if model == nil {
		return nil, NewModelError(name, nil)
	}
	return &genkitGenerator{model: model, name: name}, nil
}

// Generate sends prompt to the model and concatenates the text parts of its answer.
func (g *genkitGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.Generate(ctx, &ai.ModelRequest{
		Messages: []*ai.Message{
			{
				Role: ai.RoleUser,
				Content: []*ai.Part{
					ai.NewTextPart(prompt),
				},
			},
		},
	}, nil)
	if err != nil {
		return "", NewModelError(g.name, err)
	}
	if resp == nil || resp.Message == nil {
		return "", NewModelError(g.name, nil)
	}

	var b strings.Builder
	for _, part := range resp.Message.Content {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return b.String(), nil
}
