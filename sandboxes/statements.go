package sandboxes

import (
	"maps"

	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Each top-level statement of a step compiles to its own module whose
// predeclared table is the environment's globals map itself.
// Names not assigned by the statement are looked up in that map when read,
// so a function sees the current binding, including names defined in a later step.

const stepPath = "step"

// seedPrefix marks temporary entries that carry a current value into a module slot.
// It cannot start an identifier, so sources never refer to it.
const seedPrefix = "$"

func predeclaredIn(has func(string) bool) func(string) bool {
	return func(name string) bool {
		return has(name) || !starlark.Universe.Has(name)
	}
}

// planStatements resolves every statement of file against the names known before it runs,
// and returns the module globals each statement assigns.
// Names read outside function bodies must be bound by then.
// Function bodies are not checked, since they may refer to names bound later.
func planStatements(file *syntax.File, globals starlark.StringDict) ([][]string, error) {
	known := make(map[string]bool, len(globals))
	for name := range globals {
		known[name] = true
	}
	isKnown := func(name string) bool {
		return known[name]
	}

	assigned := make([][]string, len(file.Stmts))
	var undefined resolve.ErrorList
	for i, stmt := range file.Stmts {
		single := &syntax.File{
			Path:    file.Path,
			Stmts:   []syntax.Stmt{stmt},
			Options: file.Options,
		}
		if err := resolve.File(single, predeclaredIn(isKnown), starlark.Universe.Has); err != nil {
			return nil, err
		}

		eagerIdents(stmt, func(id *syntax.Ident) {
			binding, ok := id.Binding.(*resolve.Binding)
			if ok && binding.Scope == resolve.Predeclared && !known[id.Name] {
				undefined = append(undefined, resolve.Error{
					Pos: id.NamePos,
					Msg: "undefined: " + id.Name,
				})
			}
		})

		for _, binding := range single.Module.(*resolve.Module).Globals {
			assigned[i] = append(assigned[i], binding.First.Name)
			known[binding.First.Name] = true
		}
	}

	if len(undefined) > 0 {
		return nil, undefined
	}
	return assigned, nil
}

// eagerIdents calls fn for the identifiers evaluated when n runs.
// Function bodies are skipped, parameter defaults are not.
func eagerIdents(n syntax.Node, fn func(*syntax.Ident)) {
	syntax.Walk(n, func(n syntax.Node) bool {
		switch n := n.(type) {
		case *syntax.Ident:
			fn(n)
		case *syntax.DefStmt:
			paramDefaults(n.Params, fn)
			return false
		case *syntax.LambdaExpr:
			paramDefaults(n.Params, fn)
			return false
		}
		return true
	})
}

func paramDefaults(params []syntax.Expr, fn func(*syntax.Ident)) {
	for _, param := range params {
		if expr, ok := param.(*syntax.BinaryExpr); ok && expr.Op == syntax.EQ {
			eagerIdents(expr.Y, fn)
		}
	}
}

// execStatement runs one top-level statement and merges the module globals it produced into e.globals.
// Assigned names that already have a value start from that value, so `x += 1` works across statements.
func (e *Environment) execStatement(thread *starlark.Thread, stmt syntax.Stmt, assigned []string) error {
	pos := syntax.Start(stmt)
	stmts := make([]syntax.Stmt, 0, len(assigned)+1)
	var seeds []string
	defer func() {
		for _, seed := range seeds {
			delete(e.globals, seed)
		}
	}()
	for _, name := range assigned {
		value, ok := e.globals[name]
		if !ok {
			continue
		}
		seed := seedPrefix + name
		e.globals[seed] = value
		seeds = append(seeds, seed)
		stmts = append(stmts, &syntax.AssignStmt{
			OpPos: pos,
			Op:    syntax.EQ,
			LHS: &syntax.Ident{
				NamePos: pos,
				Name:    name,
			},
			RHS: &syntax.Ident{
				NamePos: pos,
				Name:    seed,
			},
		})
	}
	stmts = append(stmts, stmt)

	program, err := starlark.FileProgram(&syntax.File{
		Path:    stepPath,
		Stmts:   stmts,
		Options: fileOptions,
	}, predeclaredIn(e.globals.Has))
	if err != nil {
		return err
	}

	// partial globals are returned on failure too
	globals, err := program.Init(thread, e.globals)
	maps.Copy(e.globals, globals)
	return err
}

// restoreGlobals resets globals to saved without replacing the map,
// since compiled functions hold it as their predeclared table.
func restoreGlobals(globals, saved starlark.StringDict) {
	for name := range globals {
		if _, ok := saved[name]; !ok {
			delete(globals, name)
		}
	}
	maps.Copy(globals, saved)
}
