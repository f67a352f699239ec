package sandboxes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/reusee/tairlm/tokens"
	"go.starlark.net/starlark"
)

func (e *Environment) print(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 {
		return nil, fmt.Errorf("%s: unexpected keyword arguments", b.Name())
	}
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, Stringify(arg))
	}
	e.output = append(e.output, strings.Join(parts, "\t"))
	return starlark.None, nil
}

func (e *Environment) query(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var prompt string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &prompt); err != nil {
		return nil, err
	}

	ctx, _ := thread.Local(threadContext).(context.Context)
	if ctx == nil || e.bridge == nil {
		return nil, ErrNoRuntime
	}

	text, err := e.bridge.Ask(ctx, prompt)
	if err != nil {
		if errors.Is(err, ErrNoRuntime) {
			return nil, err
		}
		return nil, fmt.Errorf("LLM query failed: %w", err)
	}
	return starlark.String(text), nil
}

func (e *Environment) truncate(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var text string
	var n int
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &text, &n); err != nil {
		return nil, err
	}
	if e.tokenizer == nil {
		return nil, fmt.Errorf("%w: no tokenizer", ErrTokenizer)
	}
	ret, _, err := tokens.Bound(e.tokenizer, text, n)
	if err != nil {
		return nil, errors.Join(ErrTokenizer, err)
	}
	return starlark.String(ret), nil
}
