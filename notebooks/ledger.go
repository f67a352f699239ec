package notebooks

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/reusee/tairlm/sandboxes"
	"github.com/reusee/tairlm/tokens"
)

const (
	TruncationMarker = "\n[truncated]"
	ErrorPrefix      = "Execution error: "
)

// Ledger is the notebook: a fixed prompt and the executed steps in order.
// It owns one Environment; at most one step executes at a time.
type Ledger struct {
	mu           sync.Mutex
	prompt       string
	steps        []Step
	env          *sandboxes.Environment
	outputTokens int
	snapshot     bool
}

type Config struct {
	Sandbox sandboxes.Config
	// OutputTokens bounds every stored output. Zero means DefaultOutputTokens.
	OutputTokens int
}

func New(prompt string, initialContext any, bridge sandboxes.Asker, config Config) (*Ledger, error) {
	env, err := sandboxes.New(initialContext, bridge, config.Sandbox)
	if err != nil {
		return nil, fmt.Errorf("new environment: %w", err)
	}
	return newLedger(prompt, nil, env, config.OutputTokens), nil
}

func newLedger(prompt string, steps []Step, env *sandboxes.Environment, outputTokens int) *Ledger {
	if outputTokens <= 0 {
		outputTokens = DefaultOutputTokens
	}
	return &Ledger{
		prompt:       prompt,
		steps:        steps,
		env:          env,
		outputTokens: outputTokens,
	}
}

// ExecuteStep runs code and appends the resulting step.
// Execution failures become the step output; they are not returned.
// On a snapshot the step is not appended and ErrSnapshot is returned with it.
func (l *Ledger) ExecuteStep(ctx context.Context, comment string, code string) (Step, error) {
	if l.snapshot {
		text := ErrorPrefix + ErrSnapshot.Error()
		return Step{
			Comment: comment,
			Code:    code,
			Output:  &text,
		}, ErrSnapshot
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	step := Step{
		Comment: comment,
		Code:    code,
		Output:  l.run(ctx, code),
	}
	l.steps = append(l.steps, step)
	return step.clone(), nil
}

func (l *Ledger) run(ctx context.Context, code string) *string {
	output, err := l.env.Eval(ctx, code)
	if err != nil {
		text := ErrorPrefix + err.Error()
		return &text
	}
	if output == nil {
		return nil
	}
	return l.bound(*output)
}

// bound keeps the raw output when the tokenizer is missing or fails.
func (l *Ledger) bound(output string) *string {
	tokenizer := l.env.Tokenizer()
	if tokenizer == nil {
		return &output
	}
	bounded, truncated, err := tokens.Bound(tokenizer, output, l.outputTokens)
	if err != nil || !truncated {
		return &output
	}
	bounded += TruncationMarker
	return &bounded
}

// SetFinal overwrites the completion flag of the step at index.
func (l *Ledger) SetFinal(index int, final bool) error {
	if l.snapshot {
		return ErrSnapshot
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if index < 0 || index >= len(l.steps) {
		return fmt.Errorf("step index out of range: %d", index)
	}
	l.steps[index].Final = final
	return nil
}

// Replay evaluates the code of every recorded step to rebuild globals.
// Stored outputs are kept. It returns how many steps failed.
func (l *Ledger) Replay(ctx context.Context) (failed int, err error) {
	if l.snapshot {
		return 0, ErrSnapshot
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, step := range l.steps {
		if ctx.Err() != nil {
			return failed, context.Cause(ctx)
		}
		if _, err := l.env.Eval(ctx, step.Code); err != nil {
			failed++
		}
	}
	return failed, nil
}

// Snapshot copies the prompt and steps onto a fresh environment with empty context.
// The snapshot is for rendering only and refuses to execute.
func (l *Ledger) Snapshot() (*Ledger, error) {
	l.mu.Lock()
	steps := cloneSteps(l.steps)
	l.mu.Unlock()

	env, err := sandboxes.New("", l.env.Bridge(), sandboxes.Config{
		Tokenizer: l.env.Tokenizer(),
	})
	if err != nil {
		return nil, fmt.Errorf("new environment: %w", err)
	}
	ret := newLedger(l.prompt, steps, env, l.outputTokens)
	ret.snapshot = true
	return ret, nil
}

func (l *Ledger) IsSnapshot() bool {
	return l.snapshot
}

func (l *Ledger) Prompt() string {
	return l.prompt
}

func (l *Ledger) Steps() []Step {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneSteps(l.steps)
}

func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.steps)
}

func (l *Ledger) OutputTokens() int {
	return l.outputTokens
}

// FinalOutput is the output of the last step.
func (l *Ledger) FinalOutput() *string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.steps) == 0 {
		return nil
	}
	return l.steps[len(l.steps)-1].clone().Output
}

func (l *Ledger) Environment() *sandboxes.Environment {
	return l.env
}

func cloneSteps(steps []Step) []Step {
	ret := slices.Clone(steps)
	for i, step := range ret {
		ret[i] = step.clone()
	}
	return ret
}
