package sandboxes

import (
	"errors"
	"fmt"
	"regexp"

	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var (
	ErrSyntax    = errors.New("syntax error")
	ErrRuntime   = errors.New("runtime error")
	ErrTokenizer = errors.New("tokenizer error")
	ErrNoRuntime = errors.New("no runtime available for llm_query")
)

type ExecError struct {
	Kind  error
	Msg   string
	Cause error
}

var _ error = new(ExecError)

func (e *ExecError) Error() string {
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *ExecError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// uninitialized is how the interpreter reports a predeclared name missing at run time.
// A function body that reads a name no step has bound yet fails this way.
var uninitialized = regexp.MustCompile(`internal error: predeclared variable (\S+) is uninitialized`)

// classify maps interpreter errors to ExecError kinds.
// Undefined names outside function bodies are reported before execution and count as syntax errors.
func classify(err error) *ExecError {
	var syntaxErr syntax.Error
	if errors.As(err, &syntaxErr) {
		return &ExecError{
			Kind:  ErrSyntax,
			Msg:   syntaxErr.Error(),
			Cause: err,
		}
	}

	var resolveErrs resolve.ErrorList
	if errors.As(err, &resolveErrs) {
		return &ExecError{
			Kind:  ErrSyntax,
			Msg:   resolveErrs.Error(),
			Cause: err,
		}
	}

	kind := ErrRuntime
	switch {
	case errors.Is(err, ErrNoRuntime):
		kind = ErrNoRuntime
	case errors.Is(err, ErrTokenizer):
		kind = ErrTokenizer
	}

	var evalErr *starlark.EvalError
	if errors.As(err, &evalErr) {
		return &ExecError{
			Kind:  kind,
			Msg:   uninitialized.ReplaceAllString(evalErr.Backtrace(), "undefined: $1"),
			Cause: err,
		}
	}

	return &ExecError{
		Kind:  kind,
		Msg:   err.Error(),
		Cause: err,
	}
}
