package agents

import (
	"io"

	"github.com/reusee/dscope"
	"github.com/reusee/tairlm/cmds"
	"github.com/reusee/tairlm/configs"
	"github.com/reusee/tairlm/generators"
	"github.com/reusee/tairlm/logs"
	"github.com/reusee/tairlm/notebooks"
	"github.com/reusee/tairlm/sandboxes"
	"github.com/reusee/tairlm/vars"
)

type Module struct {
	dscope.Module
	Configs    configs.Module
	Generators generators.Module
	Logs       logs.Module
	Notebooks  notebooks.Module
	Sandboxes  sandboxes.Module
}

const DefaultMaxIterations = 10

type MaxIterations int

var _ configs.Configurable = MaxIterations(0)

func (MaxIterations) ConfigExpr() string {
	return "max_iterations"
}

var maxIterationsFlag = cmds.Var[int]("-max-iterations", "maximum number of steps")

func (Module) MaxIterations(
	loader configs.Loader,
) MaxIterations {
	return vars.FirstNonZero(
		MaxIterations(*maxIterationsFlag),
		configs.Resolve[MaxIterations](loader),
		DefaultMaxIterations,
	)
}

// NewAgent builds an agent on the default generator.
// The returned close func stops the llm_query bridge.
type NewAgent func(prompt string, initialContext any, stream io.Writer) (*Agent, func(), error)

func (Module) NewAgent(
	getGenerator generators.GetDefaultGenerator,
	newLedger notebooks.NewLedger,
	newBridge sandboxes.NewBridge,
	logger logs.Logger,
) NewAgent {
	return func(prompt string, initialContext any, stream io.Writer) (*Agent, func(), error) {
		generator, err := getGenerator()
		if err != nil {
			return nil, nil, &InitError{Err: err}
		}
		bridge := newBridge(QueryModel(generator))
		ledger, err := newLedger(prompt, initialContext, bridge)
		if err != nil {
			bridge.Close()
			return nil, nil, &InitError{Err: err}
		}
		agent, err := FromLedger(GeneratorProvider{
			Generator: generator,
			Stream:    stream,
		}, ledger, Config{
			Logger: logger,
		})
		if err != nil {
			bridge.Close()
			return nil, nil, err
		}
		return agent, bridge.Close, nil
	}
}
