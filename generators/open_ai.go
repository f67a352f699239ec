package generators

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/reusee/dscope"
	"github.com/reusee/tairlm/debugs"
	"github.com/reusee/tairlm/logs"
	"github.com/reusee/tairlm/nets"
	"github.com/reusee/tairlm/vars"
)

// OpenAI speaks the streaming chat completions protocol shared by many providers.
type OpenAI struct {
	args   GeneratorArgs
	apiKey string
	client nets.HTTPClient

	Logger dscope.Inject[logs.Logger]
	Tap    dscope.Inject[debugs.Tap]
}

var _ Generator = new(OpenAI)

func (o *OpenAI) Args() GeneratorArgs {
	return o.args
}

func (o *OpenAI) Generate(ctx context.Context, state State) (ret State, err error) {
	ret = state

	messages := stateToOpenAIMessages(ret)

	if *debugOpenAI {
		jsonText, err := json.Marshal(messages)
		if err != nil {
			return nil, err
		}
		o.Logger().InfoContext(ctx, "open ai messages to send",
			"messages", jsonText,
		)
	}

	if *tapOpenAI {
		o.Tap()(ctx, "before chat completion", map[string]any{
			"messages": messages,
			"args":     o.args,
		})
	}

	o.Logger().InfoContext(ctx, "generating",
		"model", o.args.Model,
	)

	req := ChatCompletionRequest{
		Model:               o.args.Model,
		Messages:            messages,
		Stream:              true,
		MaxCompletionTokens: vars.DerefOrZero(o.args.MaxGenerateTokens),
		Temperature:         vars.DerefOrZero(o.args.temperature()),
	}
	if o.args.IsOpenRouter {
		req.Reasoning = &Reasoning{
			Effort: "high",
		}
	}

	bodyBytes, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimSuffix(o.args.BaseURL, "/")+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, err
	}
	if o.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return ret, OpenAIError{
			Err:     err,
			Request: req,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ret, openAIStatusError(resp, req)
	}

	parser := new(OpenAIParser)
	appendContents := func(contents []*Content) error {
		for _, content := range contents {
			if *debugOpenAI {
				o.Logger().InfoContext(ctx, "OpenAI content",
					"details", content,
				)
			}
			if ret, err = ret.AppendContent(content); err != nil {
				return err
			}
		}
		return nil
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*K), 4*K*K)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "data: [DONE]") {
			break
		}
		data, ok := strings.CutPrefix(line, "data: ")
		if !ok {
			continue
		}

		var streamResp ChatCompletionStreamResponse
		if err := json.Unmarshal([]byte(data), &streamResp); err != nil {
			return ret, fmt.Errorf("error unmarshalling stream response: %w", err)
		}
		if streamResp.Error != nil {
			return ret, OpenAIError{
				Err:     streamResp.Error,
				Request: req,
			}
		}

		if *debugOpenAI {
			o.Logger().InfoContext(ctx, "OpenAI response",
				"details", streamResp,
			)
		}

		if len(streamResp.Choices) == 0 {
			continue
		}

		if err := appendContents(parser.Input(streamResp.Choices[0].Delta)); err != nil {
			return ret, err
		}

		if reason := streamResp.Choices[0].FinishReason; reason != "" {
			if err := appendContents(parser.End()); err != nil {
				return ret, err
			}
			if ret, err = ret.AppendContent(&Content{
				Role:  RoleLog,
				Parts: []Part{FinishReason(reason)},
			}); err != nil {
				return ret, err
			}
			if reason == "error" {
				return ret, errors.Join(errors.New(reason), ErrRetryable)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return ret, fmt.Errorf("error reading stream: %w", err)
	}

	if err := appendContents(parser.End()); err != nil {
		return ret, err
	}

	if ret, err = ret.Flush(); err != nil {
		return ret, err
	}

	return ret, nil
}

func openAIStatusError(resp *http.Response, req ChatCompletionRequest) error {
	body, _ := io.ReadAll(resp.Body)
	var err error
	var errResp ErrorResponse
	if json.Unmarshal(body, &errResp) == nil && errResp.Error != nil {
		errResp.Error.HTTPStatusCode = resp.StatusCode
		err = errResp.Error
	} else {
		err = fmt.Errorf("bad status: %d, body: %s", resp.StatusCode, string(body))
	}
	if retryableStatus(resp.StatusCode) {
		err = errors.Join(err, ErrRetryable)
	}
	return OpenAIError{
		Err:     err,
		Request: req,
	}
}

func stateToOpenAIMessages(state State) (messages []ChatCompletionMessage) {
	if state.SystemPrompt() != "" {
		messages = append(messages, ChatCompletionMessage{
			Role:    string(RoleSystem),
			Content: state.SystemPrompt(),
		})
	}

	for _, content := range state.Contents() {
		role := content.Role
		switch role {
		case RoleLog:
			continue
		case RoleModel:
			role = RoleAssistant
		}

		var b strings.Builder
		for _, part := range content.Parts {
			switch part := part.(type) {
			case Text:
				b.WriteString(string(part))
			case Thought:
				if len(part) > 0 {
					b.WriteString("<thought>" + string(part) + "</thought>")
				}
			}
		}
		if b.Len() == 0 {
			continue
		}

		if len(messages) > 0 && messages[len(messages)-1].Role == string(role) {
			messages[len(messages)-1].Content += b.String()
			continue
		}
		messages = append(messages, ChatCompletionMessage{
			Role:    string(role),
			Content: b.String(),
		})
	}

	return
}

type NewOpenAI func(args GeneratorArgs, apiKey string) *OpenAI

func (Module) NewOpenAI(
	inject dscope.InjectStruct,
	client nets.HTTPClient,
) NewOpenAI {
	return func(args GeneratorArgs, apiKey string) *OpenAI {
		ret := &OpenAI{
			args:   args,
			client: client,
			apiKey: apiKey,
		}
		inject(&ret)
		return ret
	}
}

type ChatCompletionRequest struct {
	Model               string                  `json:"model"`
	Messages            []ChatCompletionMessage `json:"messages"`
	Stream              bool                    `json:"stream"`
	Reasoning           *Reasoning              `json:"reasoning,omitempty"`
	MaxCompletionTokens int                     `json:"max_completion_tokens,omitempty"`
	Temperature         float32                 `json:"temperature,omitempty"`
}

type Reasoning struct {
	Effort string `json:"effort,omitempty"`
}

type ChatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionStreamResponse struct {
	Choices []ChatCompletionStreamChoice `json:"choices"`
	Error   *APIError                    `json:"error,omitempty"`
}

type ChatCompletionStreamChoice struct {
	Delta        ChatCompletionStreamChoiceDelta `json:"delta"`
	FinishReason string                          `json:"finish_reason"`
}

type ChatCompletionStreamChoiceDelta struct {
	Content          string `json:"content,omitempty"`
	Role             string `json:"role,omitempty"`
	ReasoningContent string `json:"reasoning_content,omitempty"`
}

type ErrorResponse struct {
	Error *APIError `json:"error,omitempty"`
}

type APIError struct {
	Code           any    `json:"code,omitempty"`
	Message        string `json:"message,omitempty"`
	Type           string `json:"type,omitempty"`
	HTTPStatusCode int    `json:"-"`
}

func (e *APIError) Error() string {
	return e.Message
}
