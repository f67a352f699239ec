package generators

import (
	"context"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/tairlm/configs"
	"github.com/reusee/tairlm/modes"
)

func testScope(t *testing.T) dscope.Scope {
	return dscope.New(
		modes.ForTest(t),
		new(Module),
		dscope.Provide(configs.NewLoader(nil, "")),
	)
}

// scripted returns its replies in order, failing with errs when set.
type scripted struct {
	replies []string
	errs    []error
	calls   int
}

var _ Generator = new(scripted)

func (s *scripted) Args() GeneratorArgs {
	return GeneratorArgs{Model: "scripted"}
}

func (s *scripted) Generate(ctx context.Context, state State) (State, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return state, s.errs[i]
	}
	reply := ""
	if i < len(s.replies) {
		reply = s.replies[i]
	}
	return state.AppendContent(&Content{
		Role:  RoleAssistant,
		Parts: []Part{Text(reply)},
	})
}
