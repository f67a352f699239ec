package generators

// OpenAIParser groups streamed deltas into contents.
// Text and reasoning are flushed in chunks so a wrapping Output can stream them.
type OpenAIParser struct {
	current *Content
}

const openAIFlushSize = 64

func (o *OpenAIParser) Input(delta ChatCompletionStreamChoiceDelta) (ret []*Content) {
	if deltaIsEmpty(delta) {
		return nil
	}

	if o.current == nil {
		o.current = &Content{
			Role: Role(delta.Role),
		}
	} else if delta.Role != "" && o.current.Role != Role(delta.Role) {
		if len(o.current.Parts) > 0 {
			ret = append(ret, o.current)
		}
		o.current = &Content{
			Role: Role(delta.Role),
		}
	}
	if o.current.Role == "" {
		o.current.Role = RoleAssistant
	}

	if delta.ReasoningContent != "" {
		ret = append(ret, o.add(Thought(delta.ReasoningContent))...)
	}
	if delta.Content != "" {
		ret = append(ret, o.add(Text(delta.Content))...)
	}

	return
}

func (o *OpenAIParser) add(part Part) (ret []*Content) {
	o.current.Parts = appendPart(o.current.Parts, part)
	var size int
	switch last := o.current.Parts[len(o.current.Parts)-1].(type) {
	case Text:
		size = len(last)
	case Thought:
		size = len(last)
	}
	if size > openAIFlushSize {
		ret = append(ret, o.current)
		o.current = &Content{
			Role: o.current.Role,
		}
	}
	return
}

func (o *OpenAIParser) End() (ret []*Content) {
	if o.current != nil && len(o.current.Parts) > 0 {
		ret = append(ret, o.current)
	}
	o.current = nil
	return
}

func deltaIsEmpty(delta ChatCompletionStreamChoiceDelta) bool {
	return delta.Content == "" &&
		delta.Role == "" &&
		delta.ReasoningContent == ""
}
