package notebooks

import (
	"testing"

	"github.com/reusee/tairlm/sandboxes"
)

// runes uses one unit per code point.
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

func newTestLedger(t *testing.T, prompt string, initialContext any, outputTokens int) *Ledger {
	t.Helper()
	ledger, err := New(prompt, initialContext, nil, Config{
		Sandbox: sandboxes.Config{
			Tokenizer: runes{},
		},
		OutputTokens: outputTokens,
	})
	if err != nil {
		t.Fatal(err)
	}
	return ledger
}

func ptr(s string) *string {
	return &s
}
