package notebooks

import (
	"github.com/reusee/dscope"
	"github.com/reusee/tairlm/cmds"
	"github.com/reusee/tairlm/configs"
	"github.com/reusee/tairlm/logs"
	"github.com/reusee/tairlm/sandboxes"
	"github.com/reusee/tairlm/tokens"
	"github.com/reusee/tairlm/vars"
)

type Module struct {
	dscope.Module
	Configs   configs.Module
	Logs      logs.Module
	Sandboxes sandboxes.Module
	Tokens    tokens.Module
}

const DefaultOutputTokens = 200

type OutputTokens int

var _ configs.Configurable = OutputTokens(0)

func (OutputTokens) ConfigExpr() string {
	return "output_tokens"
}

var outputTokensFlag = cmds.Var[int]("-output-tokens", "maximum tokens of a stored step output")

func (Module) OutputTokens(
	loader configs.Loader,
) OutputTokens {
	return vars.FirstNonZero(
		OutputTokens(*outputTokensFlag),
		configs.Resolve[OutputTokens](loader),
		DefaultOutputTokens,
	)
}

type NewLedger func(prompt string, initialContext any, bridge sandboxes.Asker) (*Ledger, error)

func (Module) NewLedger(
	newEnv sandboxes.NewEnvironment,
	outputTokens OutputTokens,
	logger logs.Logger,
) NewLedger {
	return func(prompt string, initialContext any, bridge sandboxes.Asker) (*Ledger, error) {
		env, err := newEnv(initialContext, bridge)
		if err != nil {
			return nil, err
		}
		logger.Debug("new ledger", "output_tokens", outputTokens)
		return newLedger(prompt, nil, env, int(outputTokens)), nil
	}
}
