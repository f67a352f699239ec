package modes

import (
	"testing"

	"github.com/reusee/dscope"
)

func TestForProduction(t *testing.T) {
	dscope.New(ForProduction()).Call(func(
		got *testing.T,
		mode Mode,
	) {
		if got != nil {
			t.Fatal("production has no test")
		}
		if mode != ModeProduction {
			t.Fatalf("got %s", mode)
		}
	})
}

func TestForTest(t *testing.T) {
	dscope.New(ForTest(t)).Call(func(
		got *testing.T,
		mode Mode,
	) {
		if got != t {
			t.Fatal("wrong test")
		}
		if mode != ModeDevelopment {
			t.Fatalf("got %s", mode)
		}
	})
}
