package generators

import (
	"reflect"
	"strings"
	"testing"
)

func TestOpenAIParserEmptyDelta(t *testing.T) {
	parser := new(OpenAIParser)
	if contents := parser.Input(ChatCompletionStreamChoiceDelta{
		Content: "foo",
		Role:    string(RoleAssistant),
	}); len(contents) != 0 {
		t.Fatalf("got %+v", contents)
	}
	if contents := parser.Input(ChatCompletionStreamChoiceDelta{}); len(contents) != 0 {
		t.Fatalf("got %+v", contents)
	}
	contents := parser.End()
	if len(contents) != 1 {
		t.Fatalf("got %+v", contents)
	}
	if contents[0].Role != RoleAssistant {
		t.Fatalf("got %+v", contents)
	}
	if contents[0].Text() != "foo" {
		t.Fatalf("got %q", contents[0].Text())
	}
}

func TestOpenAIParserEmptyRole(t *testing.T) {
	parser := new(OpenAIParser)
	parser.Input(ChatCompletionStreamChoiceDelta{
		Content: "foo",
	})
	parser.Input(ChatCompletionStreamChoiceDelta{
		Content: "bar",
	})
	contents := parser.End()
	if len(contents) != 1 {
		t.Fatalf("got %+v", contents)
	}
	if contents[0].Role != RoleAssistant {
		t.Fatalf("got %+v", contents)
	}
	if !reflect.DeepEqual(contents[0].Parts, []Part{Text("foobar")}) {
		t.Fatalf("got %+v", contents[0].Parts)
	}
}

func TestOpenAIParserRoleOnly(t *testing.T) {
	parser := new(OpenAIParser)
	parser.Input(ChatCompletionStreamChoiceDelta{
		Role: string(RoleAssistant),
	})
	if contents := parser.End(); len(contents) != 0 {
		t.Fatalf("got %+v", contents)
	}
}

func TestOpenAIParserReasoningContent(t *testing.T) {
	parser := new(OpenAIParser)
	parser.Input(ChatCompletionStreamChoiceDelta{
		Role:             string(RoleAssistant),
		ReasoningContent: "think",
	})
	parser.Input(ChatCompletionStreamChoiceDelta{
		Content: "answer",
	})
	contents := parser.End()
	if len(contents) != 1 {
		t.Fatalf("got %+v", contents)
	}
	if !reflect.DeepEqual(contents[0].Parts, []Part{Thought("think"), Text("answer")}) {
		t.Fatalf("got %+v", contents[0].Parts)
	}
}

func TestOpenAIParserFlushLongText(t *testing.T) {
	parser := new(OpenAIParser)
	long := strings.Repeat("x", openAIFlushSize+1)
	contents := parser.Input(ChatCompletionStreamChoiceDelta{
		Role:    string(RoleAssistant),
		Content: long,
	})
	if len(contents) != 1 {
		t.Fatalf("got %+v", contents)
	}
	if contents[0].Text() != long {
		t.Fatalf("got %q", contents[0].Text())
	}
	parser.Input(ChatCompletionStreamChoiceDelta{
		Content: "tail",
	})
	contents = parser.End()
	if len(contents) != 1 || contents[0].Text() != "tail" {
		t.Fatalf("got %+v", contents)
	}
	if contents[0].Role != RoleAssistant {
		t.Fatalf("got %+v", contents)
	}
}

func TestOpenAIParserRoleChange(t *testing.T) {
	parser := new(OpenAIParser)
	parser.Input(ChatCompletionStreamChoiceDelta{
		Role:    string(RoleAssistant),
		Content: "a",
	})
	contents := parser.Input(ChatCompletionStreamChoiceDelta{
		Role:    string(RoleTool),
		Content: "b",
	})
	if len(contents) != 1 || contents[0].Role != RoleAssistant {
		t.Fatalf("got %+v", contents)
	}
	contents = parser.End()
	if len(contents) != 1 || contents[0].Role != RoleTool {
		t.Fatalf("got %+v", contents)
	}
}
