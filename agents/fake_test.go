package agents

import (
	"context"
	"testing"

	"github.com/reusee/tairlm/generators"
	"github.com/reusee/tairlm/notebooks"
	"github.com/reusee/tairlm/sandboxes"
)

type runes struct{}

func (runes) Encode(text string) (ret []uint, err error) {
	for _, r := range text {
		ret = append(ret, uint(r))
	}
	return
}

func (runes) Decode(ids []uint) (string, error) {
	rs := make([]rune, 0, len(ids))
	for _, id := range ids {
		rs = append(rs, rune(id))
	}
	return string(rs), nil
}

// script proposes steps in order and records the snapshots it was shown.
type script struct {
	steps []notebooks.Step
	errs  []error
	seen  []*notebooks.Ledger
}

var _ Provider = new(script)

func (s *script) Generate(ctx context.Context, ledger *notebooks.Ledger) (notebooks.Step, error) {
	i := len(s.seen)
	s.seen = append(s.seen, ledger)
	if i < len(s.errs) && s.errs[i] != nil {
		return notebooks.Step{}, s.errs[i]
	}
	if i < len(s.steps) {
		return s.steps[i], nil
	}
	return notebooks.Step{
		Comment: "idle",
		Code:    "x = 1",
	}, nil
}

// replies is a generator answering with fixed texts in order.
type replies struct {
	texts   []string
	prompts []string
}

var _ generators.Generator = new(replies)

func (r *replies) Args() generators.GeneratorArgs {
	return generators.GeneratorArgs{Model: "replies"}
}

func (r *replies) Generate(ctx context.Context, state generators.State) (generators.State, error) {
	contents := state.Contents()
	r.prompts = append(r.prompts, contents[len(contents)-1].Text())
	i := len(r.prompts) - 1
	text := ""
	if i < len(r.texts) {
		text = r.texts[i]
	}
	return state.AppendContent(&generators.Content{
		Role:  generators.RoleAssistant,
		Parts: []generators.Part{generators.Text(text)},
	})
}

func newTestAgent(t *testing.T, provider Provider, initialContext any, bridge sandboxes.Asker) *Agent {
	t.Helper()
	agent, err := New(provider, "Test prompt", initialContext, bridge, Config{
		Ledger: notebooks.Config{
			Sandbox: sandboxesConfig(),
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return agent
}

func sandboxesConfig() sandboxes.Config {
	return sandboxes.Config{
		Tokenizer: runes{},
	}
}
