package generators

import (
	"fmt"
	"slices"
)

// Prompts is the base state: a system prompt and the conversation so far.
type Prompts struct {
	systemPrompt string
	contents     []*Content
}

func NewPrompts(systemPrompt string, contents []*Content) Prompts {
	return Prompts{
		systemPrompt: systemPrompt,
		contents:     contents,
	}
}

// UserPrompt is a state with one user message.
func UserPrompt(systemPrompt string, text string) Prompts {
	return NewPrompts(systemPrompt, []*Content{
		{
			Role:  RoleUser,
			Parts: []Part{Text(text)},
		},
	})
}

var _ State = Prompts{}

func (p Prompts) AppendContent(content *Content) (State, error) {
	if content.Role == "" {
		return nil, fmt.Errorf("empty role: %+v", content)
	}

	ret := p
	ret.contents = slices.Clone(p.contents)

	if len(ret.contents) > 0 {
		if merged, ok := ret.contents[len(ret.contents)-1].Merge(content); ok {
			ret.contents[len(ret.contents)-1] = merged
			return ret, nil
		}
	}

	ret.contents = append(ret.contents, content)
	return ret, nil
}

func (p Prompts) Contents() []*Content {
	return p.contents
}

func (p Prompts) SystemPrompt() string {
	return p.systemPrompt
}

func (p Prompts) Flush() (State, error) {
	return p, nil
}

func (p Prompts) Unwrap() State {
	return nil
}
