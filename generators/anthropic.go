package generators

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/reusee/dscope"
	"github.com/reusee/tairlm/logs"
	"github.com/reusee/tairlm/nets"
	"github.com/reusee/tairlm/vars"
)

const defaultAnthropicMaxTokens = 8 * K

type Anthropic struct {
	args   GeneratorArgs
	client anthropic.Client

	Logger dscope.Inject[logs.Logger]
}

var _ Generator = new(Anthropic)

func (a *Anthropic) Args() GeneratorArgs {
	return a.args
}

func (a *Anthropic) Generate(ctx context.Context, state State) (ret State, err error) {
	ret = state

	var messages []anthropic.MessageParam
	for _, content := range state.Contents() {
		text := content.Text()
		if text == "" {
			continue
		}
		switch content.Role {
		case RoleUser:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(text)))
		case RoleModel, RoleAssistant:
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(text)))
		}
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.args.Model),
		MaxTokens: int64(vars.FirstNonZero(vars.DerefOrZero(a.args.MaxGenerateTokens), defaultAnthropicMaxTokens)),
		Messages:  messages,
	}
	if system := state.SystemPrompt(); system != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: system},
		}
	}
	if temperature := a.args.temperature(); temperature != nil {
		params.Temperature = anthropic.Float(float64(*temperature))
	}

	a.Logger().InfoContext(ctx, "generating",
		"model", a.args.Model,
	)

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return ret, wrap(err)
	}

	content := &Content{
		Role: RoleAssistant,
	}
	for _, block := range msg.Content {
		switch block.Type {
		case "text":
			content.Parts = appendPart(content.Parts, Text(block.Text))
		case "thinking":
			content.Parts = appendPart(content.Parts, Thought(block.Thinking))
		}
	}
	if len(content.Parts) > 0 {
		if ret, err = ret.AppendContent(content); err != nil {
			return ret, err
		}
	}
	if msg.StopReason != "" {
		if ret, err = ret.AppendContent(&Content{
			Role:  RoleLog,
			Parts: []Part{FinishReason(msg.StopReason)},
		}); err != nil {
			return ret, err
		}
	}

	return ret.Flush()
}

type NewAnthropic func(args GeneratorArgs) *Anthropic

func (Module) NewAnthropic(
	inject dscope.InjectStruct,
	httpClient nets.HTTPClient,
	apiKey AnthropicAPIKey,
) NewAnthropic {
	return func(args GeneratorArgs) *Anthropic {
		options := []option.RequestOption{
			option.WithAPIKey(vars.FirstNonZero(args.APIKey, string(apiKey))),
			option.WithHTTPClient(httpClient),
		}
		if args.BaseURL != "" {
			options = append(options, option.WithBaseURL(args.BaseURL))
		}
		ret := &Anthropic{
			args:   args,
			client: anthropic.NewClient(options...),
		}
		inject(&ret)
		return ret
	}
}
