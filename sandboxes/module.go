package sandboxes

import (
	"github.com/reusee/dscope"
	"github.com/reusee/tairlm/configs"
	"github.com/reusee/tairlm/logs"
	"github.com/reusee/tairlm/tokens"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Logs    logs.Module
	Tokens  tokens.Module
}
