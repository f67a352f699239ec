package sandboxes

import (
	"github.com/reusee/tairlm/configs"
	"github.com/reusee/tairlm/logs"
	"github.com/reusee/tairlm/tokens"
)

type MaxSteps uint64

var _ configs.Configurable = MaxSteps(0)

func (MaxSteps) ConfigExpr() string {
	return "max_steps"
}

func (Module) MaxSteps(
	loader configs.Loader,
) MaxSteps {
	return configs.Resolve[MaxSteps](loader)
}

type BridgeWorkers int

var _ configs.Configurable = BridgeWorkers(0)

func (BridgeWorkers) ConfigExpr() string {
	return "bridge_workers"
}

func (Module) BridgeWorkers(
	loader configs.Loader,
) BridgeWorkers {
	if n := configs.Resolve[BridgeWorkers](loader); n > 0 {
		return n
	}
	return 1
}

type NewEnvironment func(initialContext any, bridge Asker) (*Environment, error)

func (Module) NewEnvironment(
	getTokenizer tokens.GetTokenizer,
	maxSteps MaxSteps,
	logger logs.Logger,
) NewEnvironment {
	return func(initialContext any, bridge Asker) (*Environment, error) {
		tokenizer, err := getTokenizer()
		if err != nil {
			return nil, err
		}
		env, err := New(initialContext, bridge, Config{
			Tokenizer: tokenizer,
			MaxSteps:  uint64(maxSteps),
		})
		if err != nil {
			return nil, err
		}
		logger.Debug("new environment", "max_steps", maxSteps)
		return env, nil
	}
}

type NewBridge func(model Model) *Bridge

func (Module) NewBridge(
	workers BridgeWorkers,
) NewBridge {
	return func(model Model) *Bridge {
		return StartBridge(model, int(workers))
	}
}
