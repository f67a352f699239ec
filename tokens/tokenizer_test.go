package tokens

import (
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/tairlm/configs"
	"github.com/reusee/tairlm/modes"
)

func TestGetTokenizer(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(Module),
		dscope.Provide(configs.NewLoader(nil, "")),
	).Call(func(
		encoding Encoding,
		get GetTokenizer,
	) {
		if encoding != DefaultEncoding {
			t.Fatalf("got %v", encoding)
		}
		tokenizer, err := get()
		if err != nil {
			t.Fatal(err)
		}
		ids, err := tokenizer.Encode("hello world")
		if err != nil {
			t.Fatal(err)
		}
		if len(ids) != 2 {
			t.Fatalf("got %v", ids)
		}
		text, err := tokenizer.Decode(ids)
		if err != nil {
			t.Fatal(err)
		}
		if text != "hello world" {
			t.Fatalf("got %q", text)
		}
	})
}

func TestUnknownEncoding(t *testing.T) {
	_, err := NewCodec("no-such-encoding")
	if err == nil {
		t.Fatal("should fail")
	}
}
