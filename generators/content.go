package generators

import "strings"

type Content struct {
	Role  Role
	Parts []Part
}

// Merge joins two contents of the same role, concatenating adjacent text or thought parts.
func (c Content) Merge(c2 *Content) (*Content, bool) {
	if c.Role != c2.Role {
		return nil, false
	}
	var parts []Part
	for _, part := range c.Parts {
		parts = appendPart(parts, part)
	}
	for _, part := range c2.Parts {
		parts = appendPart(parts, part)
	}
	return &Content{
		Role:  c.Role,
		Parts: parts,
	}, true
}

func appendPart(parts []Part, part Part) []Part {
	if len(parts) > 0 {
		switch prev := parts[len(parts)-1].(type) {
		case Text:
			if text, ok := part.(Text); ok {
				parts[len(parts)-1] = prev + text
				return parts
			}
		case Thought:
			if thought, ok := part.(Thought); ok {
				parts[len(parts)-1] = prev + thought
				return parts
			}
		}
	}
	return append(parts, part)
}

// Text concatenates the text parts.
func (c Content) Text() string {
	var b strings.Builder
	for _, part := range c.Parts {
		if text, ok := part.(Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}
