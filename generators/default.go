package generators

import (
	"github.com/reusee/tairlm/cmds"
	"github.com/reusee/tairlm/configs"
	"github.com/reusee/tairlm/logs"
	"github.com/reusee/tairlm/vars"
)

type GetDefaultGenerator func() (Generator, error)

func (Module) GetDefaultGenerator(
	name DefaultModelName,
	get GetGenerator,
) GetDefaultGenerator {
	return func() (Generator, error) {
		return get(string(name))
	}
}

var defaultModelName = cmds.Var[string]("-model", "model name or provider:model")

type DefaultModelName string

var _ configs.Configurable = DefaultModelName("")

func (DefaultModelName) ConfigExpr() string {
	return "model"
}

func (Module) DefaultModelName(
	loader configs.Loader,
	fallback FallbackModelName,
	logger logs.Logger,
) (ret DefaultModelName) {
	defer func() {
		logger.Info("default model", "name", ret)
	}()
	return vars.FirstNonZero(
		DefaultModelName(*defaultModelName),
		configs.Resolve[DefaultModelName](loader),
		configs.First[DefaultModelName](loader, "model_name"),
		DefaultModelName(fallback),
	)
}

type FallbackModelName string

func (Module) FallbackModelName() FallbackModelName {
	return "ollama:qwen3:30b"
}
