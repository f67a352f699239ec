package generators

import (
	"testing"
)

func TestGetDefaultGenerator(t *testing.T) {
	testScope(t).Call(func(
		get GetDefaultGenerator,
		name DefaultModelName,
	) {
		if name != "ollama:qwen3:30b" {
			t.Fatalf("got %q", name)
		}
		generator, err := get()
		if err != nil {
			t.Fatal(err)
		}
		if args := generator.Args(); args.Model != "qwen3:30b" || args.BaseURL != OllamaBaseURL {
			t.Fatalf("got %+v", args)
		}
	})
}
