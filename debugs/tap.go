package debugs

import (
	"context"
	"maps"
	"slices"

	"github.com/reusee/tairlm/logs"
	"github.com/reusee/tairlm/sandboxes"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Inspect opens an interactive session over globals on the terminal.
// Bindings made in the session are written back to globals.
type Inspect func(ctx context.Context, what string, globals starlark.StringDict)

func (Module) Inspect(
	logger logs.Logger,
) Inspect {
	return func(ctx context.Context, what string, globals starlark.StringDict) {
		names := slices.Sorted(maps.Keys(globals))
		logger.InfoContext(ctx, "inspect: "+what,
			"globals", names,
		)
		defer func() {
			logger.InfoContext(ctx, "inspect end: "+what)
		}()

		thread := &starlark.Thread{
			Name: "repl",
		}
		repl.REPLOptions(&syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
			GlobalReassign:  true,
		}, thread, globals)
	}
}

type Tap func(ctx context.Context, what string, values map[string]any)

func (Module) Tap(
	logger logs.Logger,
	inspect Inspect,
) Tap {
	return func(ctx context.Context, what string, values map[string]any) {
		globals := make(starlark.StringDict, len(values))
		for name, value := range values {
			v, err := sandboxes.ToValue(value)
			if err != nil {
				logger.WarnContext(ctx, "tap: skip value",
					"name", name,
					"error", err,
				)
				continue
			}
			globals[name] = v
		}
		inspect(ctx, what, globals)
	}
}
