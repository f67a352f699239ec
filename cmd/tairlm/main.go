package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/reusee/dscope"
	"github.com/reusee/tairlm/agents"
	"github.com/reusee/tairlm/cmds"
	"github.com/reusee/tairlm/debugs"
	"github.com/reusee/tairlm/generators"
	"github.com/reusee/tairlm/inputs"
	"github.com/reusee/tairlm/logs"
	"github.com/reusee/tairlm/modes"
	"github.com/reusee/tairlm/notebooks"
	"github.com/reusee/tairlm/sandboxes"
	"github.com/reusee/tairlm/tokens"
)

var (
	promptFlag  = cmds.Var[string]("-prompt", "the query to answer")
	contextFlag = cmds.Var[string]("-context", "context file, - for stdin")
	saveFlag    = cmds.Var[string]("-save", "write the ledger to this file after the run")
	resumeFlag  = cmds.Var[string]("-resume", "continue a saved ledger")
	streamFlag  = cmds.Switch("-stream", "echo model replies as they arrive")
	inspectFlag = cmds.Switch("-inspect", "open a Starlark REPL over the notebook globals after the run")
	safeFlag    = cmds.Switch("-safe", "only allow writes beneath the working or save directory")
)

func main() {
	if err := cmds.Execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmds.PrintUsage()
		os.Exit(1)
	}
	if *promptFlag == "" && *resumeFlag == "" {
		fmt.Fprintln(os.Stderr, "Error: -prompt is required")
		cmds.PrintUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx)
	stop()
	os.Exit(code)
}

func run(ctx context.Context) (code int) {
	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	scope.Call(func(
		logger logs.Logger,
		newSpan logs.NewSpan,
		loadContext inputs.LoadContext,
		newAgent agents.NewAgent,
		maxIterations agents.MaxIterations,
		getGenerator generators.GetDefaultGenerator,
		getTokenizer tokens.GetTokenizer,
		maxSteps sandboxes.MaxSteps,
		outputTokens notebooks.OutputTokens,
		newBridge sandboxes.NewBridge,
		inspect debugs.Inspect,
	) {
		ctx, _ = newSpan(ctx, "", "prompt", *promptFlag, "resume", *resumeFlag)

		fail := func(err error) {
			logger.ErrorContext(ctx, "fatal", "error", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", logs.WrapSpan(ctx, err))
			code = 1
		}

		if *safeFlag {
			dir, err := writableDir()
			if err != nil {
				fail(err)
				return
			}
			if err := sandboxes.RestrictWrites(logger, dir); err != nil {
				fail(err)
				return
			}
		}

		var text string
		if *contextFlag != "" {
			var err error
			text, err = loadContext(*contextFlag)
			if err != nil {
				fail(fmt.Errorf("load context: %w", err))
				return
			}
		}

		var stream io.Writer
		if *streamFlag {
			stream = os.Stdout
		}

		var agent *agents.Agent
		var closeBridge func()
		var model string
		out := newPrinter(os.Stdout)

		if *resumeFlag != "" {
			generator, err := getGenerator()
			if err != nil {
				fail(&agents.InitError{Err: err})
				return
			}
			model = generator.Args().Model
			tokenizer, err := getTokenizer()
			if err != nil {
				fail(&agents.InitError{Err: err})
				return
			}
			bridge := newBridge(agents.QueryModel(generator))
			closeBridge = bridge.Close
			ledger, err := notebooks.Load(*resumeFlag, bridge, notebooks.Config{
				Sandbox: sandboxes.Config{
					Tokenizer: tokenizer,
					MaxSteps:  uint64(maxSteps),
				},
				OutputTokens: int(outputTokens),
			})
			if err != nil {
				closeBridge()
				fail(&agents.InitError{Err: err})
				return
			}
			if *promptFlag != "" && *promptFlag != ledger.Prompt() {
				logger.WarnContext(ctx, "resumed ledger keeps its own prompt",
					"prompt", ledger.Prompt(),
				)
			}
			if text != "" {
				if err := ledger.Environment().SetGlobal("context", text); err != nil {
					closeBridge()
					fail(&agents.InitError{Err: err})
					return
				}
			}
			failed, err := ledger.Replay(ctx)
			if err != nil {
				closeBridge()
				fail(&agents.InitError{Err: err})
				return
			}
			logger.InfoContext(ctx, "replayed",
				"steps", ledger.Len(),
				"failed", failed,
			)
			agent, err = agents.FromLedger(agents.GeneratorProvider{
				Generator: generator,
				Stream:    stream,
			}, ledger, agents.Config{
				Logger: logger,
			})
			if err != nil {
				closeBridge()
				fail(err)
				return
			}

		} else {
			var err error
			agent, closeBridge, err = newAgent(*promptFlag, text, stream)
			if err != nil {
				fail(err)
				return
			}
			if generator, err := getGenerator(); err == nil {
				model = generator.Args().Model
			}
		}
		defer closeBridge()

		out.header(header{
			Query:         agent.Ledger().Prompt(),
			Model:         model,
			MaxIterations: int(maxIterations),
			ContextSize:   len(text),
			Resumed:       *resumeFlag,
		})
		for _, step := range agent.Ledger().Steps() {
			out.step(step)
		}

		for step, err := range agent.Run(ctx, int(maxIterations)) {
			if err != nil {
				fail(err)
				break
			}
			out.step(step)
		}
		if agent.Reason() == agents.ReasonBudgetExhausted {
			out.exhausted()
		}

		if *saveFlag != "" {
			if err := agent.Ledger().Save(*saveFlag); err != nil {
				fail(fmt.Errorf("save: %w", err))
			} else {
				logger.InfoContext(ctx, "saved", "path", *saveFlag)
			}
		}

		if agent.Reason() != agents.ReasonFailed {
			out.final(agent.FinalOutput())
		}

		if *inspectFlag {
			inspect(ctx, "notebook", agent.Ledger().Environment().Globals())
		}
	})

	return
}

// writableDir is where -safe still permits writes.
func writableDir() (string, error) {
	if *saveFlag != "" {
		abs, err := filepath.Abs(*saveFlag)
		if err != nil {
			return "", err
		}
		return filepath.Dir(abs), nil
	}
	return os.Getwd()
}
