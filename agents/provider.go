package agents

import (
	"context"
	"fmt"
	"io"

	"github.com/reusee/tairlm/generators"
	"github.com/reusee/tairlm/notebooks"
	"github.com/reusee/tairlm/prompts"
	"github.com/reusee/tairlm/sandboxes"
)

// GeneratorProvider asks a generator for the next step and parses its reply.
type GeneratorProvider struct {
	Generator generators.Generator
	// SystemPrompt defaults to prompts.System for the ledger's output budget.
	SystemPrompt string
	// Stream receives the model reply as it arrives, if set.
	Stream io.Writer
}

var _ Provider = GeneratorProvider{}

func (g GeneratorProvider) Generate(ctx context.Context, ledger *notebooks.Ledger) (notebooks.Step, error) {
	system := g.SystemPrompt
	if system == "" {
		system = prompts.System(ledger.OutputTokens())
	}

	var state generators.State = generators.UserPrompt(system, ledger.Render())
	if g.Stream != nil {
		state = generators.NewOutput(state, g.Stream, false)
	}

	text, err := generators.Complete(ctx, g.Generator, state)
	if err != nil {
		return notebooks.Step{}, fmt.Errorf("generate: %w", err)
	}

	step, err := notebooks.Parse(text)
	if err != nil {
		return notebooks.Step{}, err
	}
	return step, nil
}

// QueryModel answers llm_query calls with a single user message and no system prompt.
func QueryModel(generator generators.Generator) sandboxes.Model {
	return func(ctx context.Context, prompt string) (string, error) {
		return generators.Complete(ctx, generator, generators.UserPrompt("", prompt))
	}
}
