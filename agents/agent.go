package agents

import (
	"context"
	"iter"
	"log/slog"

	"github.com/reusee/tairlm/logs"
	"github.com/reusee/tairlm/notebooks"
	"github.com/reusee/tairlm/sandboxes"
)

// Provider proposes the next step from a read-only view of the ledger.
type Provider interface {
	Generate(ctx context.Context, ledger *notebooks.Ledger) (notebooks.Step, error)
}

type Reason int

const (
	ReasonNone Reason = iota
	ReasonCompleted
	ReasonBudgetExhausted
	ReasonFailed
)

func (r Reason) String() string {
	switch r {
	case ReasonCompleted:
		return "completed"
	case ReasonBudgetExhausted:
		return "budget exhausted"
	case ReasonFailed:
		return "failed"
	}
	return "running"
}

type Config struct {
	Ledger notebooks.Config
	Logger logs.Logger
	// OnStep is called after every executed step.
	OnStep func(round int, step notebooks.Step)
}

// Agent drives the ledger: one model proposal and one execution per round.
type Agent struct {
	provider Provider
	ledger   *notebooks.Ledger
	logger   logs.Logger
	onStep   func(int, notebooks.Step)
	round    int
	reason   Reason
}

func New(provider Provider, prompt string, initialContext any, bridge sandboxes.Asker, config Config) (*Agent, error) {
	if provider == nil {
		return nil, &InitError{Err: ErrNoProvider}
	}
	ledger, err := notebooks.New(prompt, initialContext, bridge, config.Ledger)
	if err != nil {
		return nil, &InitError{Err: err}
	}
	return FromLedger(provider, ledger, config)
}

// FromLedger continues from an existing ledger, such as one loaded from disk.
func FromLedger(provider Provider, ledger *notebooks.Ledger, config Config) (*Agent, error) {
	if provider == nil {
		return nil, &InitError{Err: ErrNoProvider}
	}
	if ledger.IsSnapshot() {
		return nil, &InitError{Err: notebooks.ErrSnapshot}
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Agent{
		provider: provider,
		ledger:   ledger,
		logger:   logger,
		onStep:   config.OnStep,
	}, nil
}

// Step runs one round and returns the executed step with the model's completion flag.
func (a *Agent) Step(ctx context.Context) (notebooks.Step, error) {
	a.round++
	round := a.round

	fail := func(err error) (notebooks.Step, error) {
		a.reason = ReasonFailed
		a.logger.ErrorContext(ctx, "step failed",
			"round", round,
			"error", err,
		)
		return notebooks.Step{}, &StepError{
			Round: round,
			Err:   err,
		}
	}

	snapshot, err := a.ledger.Snapshot()
	if err != nil {
		return fail(err)
	}

	proposed, err := a.provider.Generate(ctx, snapshot)
	if err != nil {
		return fail(err)
	}

	step, err := a.ledger.ExecuteStep(ctx, proposed.Comment, proposed.Code)
	if err != nil {
		return fail(err)
	}
	step.Final = proposed.Final
	if step.Final {
		if err := a.ledger.SetFinal(a.ledger.Len()-1, true); err != nil {
			return fail(err)
		}
	}

	outputSize := 0
	if step.Output != nil {
		outputSize = len(*step.Output)
	}
	a.logger.InfoContext(ctx, "step",
		"round", round,
		"final", step.Final,
		"output_size", outputSize,
	)

	if a.onStep != nil {
		a.onStep(round, step)
	}
	return step, nil
}

// Run yields up to maxIterations executed steps.
// It stops after the first final step and after the first error.
func (a *Agent) Run(ctx context.Context, maxIterations int) iter.Seq2[notebooks.Step, error] {
	return func(yield func(notebooks.Step, error) bool) {
		a.reason = ReasonNone
		for range maxIterations {
			if err := ctx.Err(); err != nil {
				a.round++
				a.reason = ReasonFailed
				yield(notebooks.Step{}, &StepError{
					Round: a.round,
					Err:   context.Cause(ctx),
				})
				return
			}
			step, err := a.Step(ctx)
			if err != nil {
				yield(step, err)
				return
			}
			if step.Final {
				a.reason = ReasonCompleted
				yield(step, nil)
				return
			}
			if !yield(step, nil) {
				return
			}
		}
		a.reason = ReasonBudgetExhausted
	}
}

// Done reports whether the last Run reached a terminal state.
func (a *Agent) Done() bool {
	return a.reason != ReasonNone
}

func (a *Agent) Reason() Reason {
	return a.reason
}

func (a *Agent) Rounds() int {
	return a.round
}

func (a *Agent) FinalOutput() *string {
	return a.ledger.FinalOutput()
}

func (a *Agent) Ledger() *notebooks.Ledger {
	return a.ledger
}
