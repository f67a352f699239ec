package generators

import (
	"context"
	"strings"
)

// Complete runs one generation from state and returns the text the model added.
func Complete(ctx context.Context, generator Generator, state State) (string, error) {
	old := state.Contents()
	ret, err := generator.Generate(ctx, state)
	if err != nil {
		return "", err
	}

	contents := ret.Contents()
	start := len(old)
	var prefix string
	if start > 0 && old[start-1].Role.IsModel() {
		// the first new content may be merged into the last old one
		start--
		prefix = old[start].Text()
	}

	var b strings.Builder
	for i := start; i < len(contents); i++ {
		if contents[i].Role.IsModel() {
			b.WriteString(contents[i].Text())
		}
	}

	text := strings.TrimPrefix(b.String(), prefix)
	if strings.TrimSpace(text) == "" {
		return "", ErrNoOutput
	}
	return text, nil
}
