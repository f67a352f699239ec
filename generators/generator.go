package generators

import (
	"context"
	"fmt"
	"strings"

	"github.com/reusee/tairlm/vars"
)

type Generator interface {
	Args() GeneratorArgs
	Generate(ctx context.Context, state State) (State, error)
}

// GetGenerator resolves a model name to a generator wrapped with retries.
// Names are matched against user-defined specs first, then "provider:model" forms, then built-ins.
type GetGenerator func(name string) (Generator, error)

func (Module) GetGenerator(
	newGemini NewGemini,
	newAnthropic NewAnthropic,
	newDeepseek NewDeepseek,
	newOpenRouter NewOpenRouter,
	newOpenAI NewOpenAIOfficial,
	newOllama NewOllama,
	newRetry NewRetry,
	getSpecs GetGeneratorSpecs,
	getFileKey GetFileAPIKey,
) GetGenerator {

	build := func(typ string, args GeneratorArgs) (Generator, error) {
		switch strings.ToLower(typ) {
		case "open-router", "open_router", "openrouter":
			return newOpenRouter(args), nil
		case "deepseek":
			return newDeepseek(args), nil
		case "openai", "open-ai", "open_ai":
			return newOpenAI(args), nil
		case "ollama":
			return newOllama(args), nil
		case "gemini", "google":
			return newGemini(args), nil
		case "anthropic", "claude":
			return newAnthropic(args), nil
		}
		return nil, fmt.Errorf("unknown generator type: %q", typ)
	}

	resolve := func(name string) (string, GeneratorArgs, error) {
		// user-defined first
		specs, err := getSpecs()
		if err != nil {
			return "", GeneratorArgs{}, err
		}
		for _, spec := range specs {
			if spec.Name == name {
				return spec.Type, spec.GeneratorArgs, nil
			}
		}

		// provider:model
		if provider, model, ok := strings.Cut(name, ":"); ok {
			switch strings.ToLower(provider) {
			case "ollama", "openrouter", "deepseek", "openai", "gemini", "anthropic":
				return provider, GeneratorArgs{
					Model: model,
				}, nil
			}
		}

		// built-ins
		switch name {
		case "flash", "gemini-flash":
			return "gemini", GeneratorArgs{
				Model:             "gemini-flash-latest",
				MaxGenerateTokens: vars.PtrTo(32 * K),
				Temperature:       vars.PtrTo(float32(0.1)),
			}, nil
		case "pro", "gemini-pro":
			return "gemini", GeneratorArgs{
				Model:             "gemini-pro-latest",
				MaxGenerateTokens: vars.PtrTo(32 * K),
				Temperature:       vars.PtrTo(float32(0.1)),
			}, nil
		case "sonnet", "claude-sonnet":
			return "anthropic", GeneratorArgs{
				Model: "claude-sonnet-4-5",
			}, nil
		case "deepseek", "deepseek-chat":
			return "deepseek", GeneratorArgs{
				Model: "deepseek-chat",
			}, nil
		}

		return "", GeneratorArgs{}, fmt.Errorf("invalid model: %s", name)
	}

	return func(name string) (Generator, error) {
		typ, args, err := resolve(name)
		if err != nil {
			return nil, err
		}
		if args.APIKey == "" {
			key, err := getFileKey()
			if err != nil {
				return nil, err
			}
			args.APIKey = key
		}
		generator, err := build(typ, args)
		if err != nil {
			return nil, err
		}
		return newRetry(generator), nil
	}
}
