package generators

import (
	"os"
	"strings"
	"sync"

	"github.com/reusee/tairlm/configs"
	"github.com/reusee/tairlm/vars"
)

type (
	GoogleAPIKey     string
	AnthropicAPIKey  string
	OpenAIAPIKey     string
	DeepseekAPIKey   string
	OpenRouterAPIKey string
)

func (GoogleAPIKey) ConfigExpr() string {
	return "google_api_key"
}

func (AnthropicAPIKey) ConfigExpr() string {
	return "anthropic_api_key"
}

func (OpenAIAPIKey) ConfigExpr() string {
	return "openai_api_key"
}

func (DeepseekAPIKey) ConfigExpr() string {
	return "deepseek_api_key"
}

func (OpenRouterAPIKey) ConfigExpr() string {
	return "openrouter_api_key"
}

var (
	_ configs.Configurable = GoogleAPIKey("")
	_ configs.Configurable = AnthropicAPIKey("")
	_ configs.Configurable = OpenAIAPIKey("")
	_ configs.Configurable = DeepseekAPIKey("")
	_ configs.Configurable = OpenRouterAPIKey("")
)

func (Module) GoogleAPIKey(
	loader configs.Loader,
) GoogleAPIKey {
	return vars.FirstNonZero(
		configs.Resolve[GoogleAPIKey](loader),
		GoogleAPIKey(os.Getenv("GEMINI_API_KEY")),
		GoogleAPIKey(os.Getenv("GOOGLE_API_KEY")),
	)
}

func (Module) AnthropicAPIKey(
	loader configs.Loader,
) AnthropicAPIKey {
	return vars.FirstNonZero(
		configs.Resolve[AnthropicAPIKey](loader),
		AnthropicAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
	)
}

func (Module) OpenAIAPIKey(
	loader configs.Loader,
) OpenAIAPIKey {
	return vars.FirstNonZero(
		configs.Resolve[OpenAIAPIKey](loader),
		OpenAIAPIKey(os.Getenv("OPENAI_API_KEY")),
	)
}

func (Module) DeepseekAPIKey(
	loader configs.Loader,
) DeepseekAPIKey {
	return vars.FirstNonZero(
		configs.Resolve[DeepseekAPIKey](loader),
		DeepseekAPIKey(os.Getenv("DEEPSEEK_API_KEY")),
	)
}

func (Module) OpenRouterAPIKey(
	loader configs.Loader,
) OpenRouterAPIKey {
	return vars.FirstNonZero(
		configs.Resolve[OpenRouterAPIKey](loader),
		configs.First[OpenRouterAPIKey](loader, "open_router_api_key"),
		OpenRouterAPIKey(os.Getenv("OPENROUTER_API_KEY")),
		OpenRouterAPIKey(os.Getenv("OPEN_ROUTER_API_KEY")),
	)
}

// GetFileAPIKey reads the key named by -api-key-file.
// It returns an empty key when the flag is not set.
type GetFileAPIKey func() (string, error)

func (Module) GetFileAPIKey() GetFileAPIKey {
	return sync.OnceValues(func() (string, error) {
		if *apiKeyFile == "" {
			return "", nil
		}
		content, err := os.ReadFile(*apiKeyFile)
		if err != nil {
			return "", wrap(err)
		}
		return strings.TrimSpace(string(content)), nil
	})
}
