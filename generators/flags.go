package generators

import "github.com/reusee/tairlm/cmds"

var (
	debugOpenAI     = cmds.Switch("-debug-openai", "log OpenAI-compatible requests and stream chunks")
	tapOpenAI       = cmds.Switch("-tap-openai", "open an inspector before each OpenAI-compatible request")
	temperatureFlag = cmds.Var[float32]("-temperature", "sampling temperature override")
	apiKeyFile      = cmds.Var[string]("-api-key-file", "read the model API key from a file")
)
