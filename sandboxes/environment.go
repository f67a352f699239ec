package sandboxes

import (
	"context"
	"maps"
	"strings"
	"sync"

	"github.com/reusee/tairlm/tokens"
	starlarkjson "go.starlark.net/lib/json"
	starlarkmath "go.starlark.net/lib/math"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

const (
	ContextName    = "context"
	PrintName      = "print"
	QueryName      = "llm_query"
	TruncationName = "token_trunc"
)

// Environment is one interpreter state.
// Globals created by evaluated code survive across Eval calls.
type Environment struct {
	mu        sync.Mutex
	globals   starlark.StringDict
	bridge    Asker
	tokenizer tokens.Tokenizer
	maxSteps  uint64
	output    []string
}

type Config struct {
	Tokenizer tokens.Tokenizer
	// MaxSteps bounds the execution steps of one Eval. Zero means no bound.
	MaxSteps uint64
}

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
	Recursion:       true,
}

func New(initialContext any, bridge Asker, config Config) (*Environment, error) {
	contextValue, err := ToValue(initialContext)
	if err != nil {
		return nil, err
	}

	env := &Environment{
		bridge:    bridge,
		tokenizer: config.Tokenizer,
		maxSteps:  config.MaxSteps,
	}

	env.globals = starlark.StringDict{
		ContextName:    contextValue,
		PrintName:      starlark.NewBuiltin(PrintName, env.print),
		QueryName:      starlark.NewBuiltin(QueryName, env.query),
		TruncationName: starlark.NewBuiltin(TruncationName, env.truncate),
		"math":         starlarkmath.Module,
		"json":         starlarkjson.Module,
	}

	return env, nil
}

const threadContext = "tairlm.context"

// Eval runs source against the persistent globals and returns what it printed.
// Functions read globals when called, not when defined.
// A nil result means nothing was printed.
// After a failure the global bindings are restored to their state before the call.
func (e *Environment) Eval(ctx context.Context, source string) (*string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.output = e.output[:0]

	file, err := fileOptions.Parse(stepPath, source, 0)
	if err != nil {
		return nil, classify(err)
	}
	// resolving marks the tree, so the plan works on its own copy
	planned, err := fileOptions.Parse(stepPath, source, 0)
	if err != nil {
		return nil, classify(err)
	}
	assigned, err := planStatements(planned, e.globals)
	if err != nil {
		return nil, classify(err)
	}

	thread := &starlark.Thread{
		Name: "step",
	}
	if e.maxSteps > 0 {
		thread.SetMaxExecutionSteps(e.maxSteps)
	}

	// without a context, llm_query has nothing to run on
	if ctx != nil {
		thread.SetLocal(threadContext, ctx)
		done := make(chan struct{})
		defer close(done)
		go func() {
			select {
			case <-ctx.Done():
				thread.Cancel(context.Cause(ctx).Error())
			case <-done:
			}
		}()
	}

	saved := maps.Clone(e.globals)
	for i, stmt := range file.Stmts {
		if err := e.execStatement(thread, stmt, assigned[i]); err != nil {
			restoreGlobals(e.globals, saved)
			return nil, classify(err)
		}
	}

	if len(e.output) == 0 {
		return nil, nil
	}
	ret := strings.Join(e.output, "\n")
	return &ret, nil
}

func (e *Environment) Lookup(name string) (starlark.Value, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.globals[name]
	return v, ok
}

func (e *Environment) SetGlobal(name string, value any) error {
	v, err := ToValue(value)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.globals[name] = v
	return nil
}

// Globals returns a copy of the binding table.
func (e *Environment) Globals() starlark.StringDict {
	e.mu.Lock()
	defer e.mu.Unlock()
	return maps.Clone(e.globals)
}

// UserGlobals returns the bindings created by evaluated code.
func (e *Environment) UserGlobals() starlark.StringDict {
	ret := e.Globals()
	for _, name := range []string{PrintName, QueryName, TruncationName, "math", "json"} {
		delete(ret, name)
	}
	return ret
}

func (e *Environment) Bridge() Asker {
	return e.bridge
}

func (e *Environment) Tokenizer() tokens.Tokenizer {
	return e.tokenizer
}
