package agents

import (
	"errors"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/tairlm/configs"
	"github.com/reusee/tairlm/generators"
	"github.com/reusee/tairlm/modes"
	"github.com/reusee/tairlm/notebooks"
	"github.com/reusee/tairlm/sandboxes"
)

func TestGeneratorProvider(t *testing.T) {
	gen := &replies{
		texts: []string{
			"<comment>peek</comment>\n<code>print(context[:3])</code>\n<final>false</final>",
			"<comment>done</comment><code>```python\nprint(\"answer\")\n```</code><final>yes</final>",
		},
	}
	var stream strings.Builder
	agent := newTestAgent(t, GeneratorProvider{
		Generator: gen,
		Stream:    &stream,
	}, "abcdef", nil)

	var steps []notebooks.Step
	for step, err := range agent.Run(t.Context(), 5) {
		if err != nil {
			t.Fatal(err)
		}
		steps = append(steps, step)
	}
	if len(steps) != 2 {
		t.Fatalf("got %d", len(steps))
	}
	if *steps[0].Output != "abc" {
		t.Fatalf("got %q", *steps[0].Output)
	}
	if *steps[1].Output != "answer" || !steps[1].Final {
		t.Fatalf("got %+v", steps[1])
	}

	// the second request carries the rendered first step
	if !strings.Contains(gen.prompts[1], "print(context[:3])") {
		t.Fatalf("got %q", gen.prompts[1])
	}
	if !strings.Contains(gen.prompts[0], "Test prompt") {
		t.Fatalf("got %q", gen.prompts[0])
	}
	if !strings.Contains(stream.String(), "<comment>peek</comment>") {
		t.Fatalf("got %q", stream.String())
	}
}

func TestGeneratorProviderParseError(t *testing.T) {
	gen := &replies{
		texts: []string{"no tags here"},
	}
	agent := newTestAgent(t, GeneratorProvider{
		Generator: gen,
	}, "", nil)
	_, err := agent.Step(t.Context())
	var parseErr *notebooks.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("got %v", err)
	}
	var stepErr *StepError
	if !errors.As(err, &stepErr) || stepErr.Round != 1 {
		t.Fatalf("got %v", err)
	}
}

func TestGeneratorProviderEmptyReply(t *testing.T) {
	agent := newTestAgent(t, GeneratorProvider{
		Generator: new(replies),
	}, "", nil)
	_, err := agent.Step(t.Context())
	if !errors.Is(err, generators.ErrNoOutput) {
		t.Fatalf("got %v", err)
	}
}

func TestQueryModel(t *testing.T) {
	gen := &replies{
		texts: []string{"pong"},
	}
	bridge := sandboxes.StartBridge(QueryModel(gen), 1)
	defer bridge.Close()

	agent := newTestAgent(t, &script{
		steps: []notebooks.Step{
			{Comment: "ask", Code: `print(llm_query("ping"))`, Final: true},
		},
	}, "", bridge)
	step, err := agent.Step(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	if *step.Output != "pong" {
		t.Fatalf("got %q", *step.Output)
	}
	if len(gen.prompts) != 1 || gen.prompts[0] != "ping" {
		t.Fatalf("got %v", gen.prompts)
	}
}

func TestNewAgentProvider(t *testing.T) {
	gen := &replies{
		texts: []string{"<comment>c</comment><code>print(len(context))</code><final>true</final>"},
	}
	dscope.New(
		modes.ForTest(t),
		new(Module),
		dscope.Provide(configs.NewLoader(nil, "")),
	).Fork(
		func() generators.GetDefaultGenerator {
			return func() (generators.Generator, error) {
				return gen, nil
			}
		},
	).Call(func(
		newAgent NewAgent,
		maxIterations MaxIterations,
	) {
		if maxIterations != DefaultMaxIterations {
			t.Fatalf("got %d", maxIterations)
		}
		agent, closeBridge, err := newAgent("prompt", "hello", nil)
		if err != nil {
			t.Fatal(err)
		}
		defer closeBridge()
		for _, err := range agent.Run(t.Context(), int(maxIterations)) {
			if err != nil {
				t.Fatal(err)
			}
		}
		if out := agent.FinalOutput(); out == nil || *out != "5" {
			t.Fatalf("got %v", out)
		}
	})
}
