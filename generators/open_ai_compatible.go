package generators

import (
	"github.com/reusee/tairlm/configs"
	"github.com/reusee/tairlm/vars"
)

const (
	OpenAIBaseURL     = "https://api.openai.com/v1"
	OpenRouterBaseURL = "https://openrouter.ai/api/v1"
	DeepseekBaseURL   = "https://api.deepseek.com/"
	OllamaBaseURL     = "http://127.0.0.1:11434/v1"
)

type NewOpenRouter func(args GeneratorArgs) *OpenAI

func (Module) NewOpenRouter(
	newOpenAI NewOpenAI,
	apiKey OpenRouterAPIKey,
	loader configs.Loader,
) NewOpenRouter {
	return func(args GeneratorArgs) *OpenAI {
		args.BaseURL = vars.FirstNonZero(
			configs.First[string](loader, "openrouter_endpoint"),
			OpenRouterBaseURL,
		)
		args.IsOpenRouter = true
		return newOpenAI(
			args,
			vars.FirstNonZero(
				args.APIKey,
				string(apiKey),
			),
		)
	}
}

type NewDeepseek func(args GeneratorArgs) *OpenAI

func (Module) NewDeepseek(
	apiKey DeepseekAPIKey,
	newOpenAI NewOpenAI,
) NewDeepseek {
	return func(args GeneratorArgs) *OpenAI {
		args.BaseURL = DeepseekBaseURL
		return newOpenAI(
			args,
			vars.FirstNonZero(
				args.APIKey,
				string(apiKey),
			),
		)
	}
}

// NewOpenAIOfficial targets api.openai.com unless the args carry a base URL.
type NewOpenAIOfficial func(args GeneratorArgs) *OpenAI

func (Module) NewOpenAIOfficial(
	apiKey OpenAIAPIKey,
	newOpenAI NewOpenAI,
) NewOpenAIOfficial {
	return func(args GeneratorArgs) *OpenAI {
		args.BaseURL = vars.FirstNonZero(args.BaseURL, OpenAIBaseURL)
		return newOpenAI(
			args,
			vars.FirstNonZero(
				args.APIKey,
				string(apiKey),
			),
		)
	}
}

type NewOllama func(args GeneratorArgs) *OpenAI

func (Module) NewOllama(
	newOpenAI NewOpenAI,
) NewOllama {
	return func(args GeneratorArgs) *OpenAI {
		args.BaseURL = vars.FirstNonZero(args.BaseURL, OllamaBaseURL)
		return newOpenAI(args, args.APIKey)
	}
}
