// Package generators talks to language models: it holds the conversation state,
// the backends (OpenAI-compatible, Gemini, Anthropic) and model selection by name.
package generators

import (
	"github.com/reusee/dscope"
	"github.com/reusee/tairlm/configs"
	"github.com/reusee/tairlm/debugs"
	"github.com/reusee/tairlm/logs"
	"github.com/reusee/tairlm/nets"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Debugs  debugs.Module
	Logs    logs.Module
	Nets    nets.Module
}
