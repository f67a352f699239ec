package generators

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestOutput(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		buf := new(bytes.Buffer)
		state := State(NewOutput(UserPrompt("system", "question"), buf, true))

		var err error
		state, err = state.AppendContent(&Content{
			Role:  RoleAssistant,
			Parts: []Part{Text("answer")},
		})
		if err != nil {
			t.Fatal(err)
		}
		if buf.String() != "answer" {
			t.Fatalf("got %q", buf.String())
		}
		if len(state.Contents()) != 2 {
			t.Fatalf("got %+v", state.Contents())
		}
		if state.SystemPrompt() != "system" {
			t.Fatalf("got %q", state.SystemPrompt())
		}
		if _, ok := state.Unwrap().(Prompts); !ok {
			t.Fatalf("got %T", state.Unwrap())
		}
	})

	t.Run("role separation", func(t *testing.T) {
		buf := new(bytes.Buffer)
		state := State(NewOutput(NewPrompts("", nil), buf, true))

		var err error
		state, err = state.AppendContent(&Content{
			Role:  RoleUser,
			Parts: []Part{Text("user msg")},
		})
		if err != nil {
			t.Fatal(err)
		}
		_, err = state.AppendContent(&Content{
			Role:  RoleModel,
			Parts: []Part{Text("model msg")},
		})
		if err != nil {
			t.Fatal(err)
		}
		if got := buf.String(); got != "user msg\n\nmodel msg" {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("thoughts", func(t *testing.T) {
		buf := new(bytes.Buffer)
		output := NewOutput(NewPrompts("", nil), buf, true)
		_, err := output.AppendContent(&Content{
			Role: RoleModel,
			Parts: []Part{
				Thought("thinking"),
				Text("answer"),
			},
		})
		if err != nil {
			t.Fatal(err)
		}
		if got := buf.String(); got != "<think>\nthinking\n</think>\nanswer" {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("hidden thoughts", func(t *testing.T) {
		buf := new(bytes.Buffer)
		output := NewOutput(NewPrompts("", nil), buf, false)
		_, err := output.AppendContent(&Content{
			Role: RoleModel,
			Parts: []Part{
				Thought("thinking"),
				Text("answer"),
			},
		})
		if err != nil {
			t.Fatal(err)
		}
		if got := buf.String(); got != "answer" {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("thought across appends", func(t *testing.T) {
		buf := new(bytes.Buffer)
		state := State(NewOutput(NewPrompts("", nil), buf, true))

		var err error
		state, err = state.AppendContent(&Content{
			Role:  RoleModel,
			Parts: []Part{Thought("thinking deep")},
		})
		if err != nil {
			t.Fatal(err)
		}
		if strings.Contains(buf.String(), "</think>") {
			t.Fatal("closed too early")
		}
		state, err = state.AppendContent(&Content{
			Role:  RoleModel,
			Parts: []Part{Text("final answer")},
		})
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "\n</think>\nfinal answer") {
			t.Fatalf("got %q", buf.String())
		}
	})

	t.Run("flush closes thought", func(t *testing.T) {
		buf := new(bytes.Buffer)
		state, err := NewOutput(NewPrompts("", nil), buf, true).AppendContent(&Content{
			Role:  RoleModel,
			Parts: []Part{Thought("hmm")},
		})
		if err != nil {
			t.Fatal(err)
		}
		if _, err := state.Flush(); err != nil {
			t.Fatal(err)
		}
		if got := buf.String(); got != "<think>\nhmm\n</think>\n\n\n" {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("terminal colors", func(t *testing.T) {
		buf := new(bytes.Buffer)
		output := Output{
			upstream:   NewPrompts("", nil),
			w:          buf,
			isTerminal: true,
		}
		_, err := output.AppendContent(&Content{
			Role:  RoleUser,
			Parts: []Part{Text("hello")},
		})
		if err != nil {
			t.Fatal(err)
		}
		if got := buf.String(); got != ColorUser+"hello"+ColorReset {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("log parts", func(t *testing.T) {
		buf := new(bytes.Buffer)
		state := State(NewOutput(NewPrompts("", nil), buf, true))
		for _, part := range []Part{
			FinishReason("stop"),
			Error{Error: errors.New("fail")},
		} {
			var err error
			state, err = state.AppendContent(&Content{
				Role:  RoleLog,
				Parts: []Part{part},
			})
			if err != nil {
				t.Fatal(err)
			}
		}
		got := buf.String()
		for _, expected := range []string{"[Finish: stop]", "[Error: fail]"} {
			if !strings.Contains(got, expected) {
				t.Fatalf("got %q", got)
			}
		}
	})

	t.Run("empty role", func(t *testing.T) {
		output := NewOutput(NewPrompts("", nil), new(bytes.Buffer), true)
		if _, err := output.AppendContent(&Content{}); err == nil {
			t.Fatal("expected error")
		}
	})
}
