// Package nets provides the HTTP client shared by the model backends.
// Remote hosts go through the configured proxy, local ones are dialed directly.
package nets

import (
	"github.com/reusee/dscope"
	"github.com/reusee/tairlm/configs"
	"github.com/reusee/tairlm/logs"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Logs    logs.Module
}
