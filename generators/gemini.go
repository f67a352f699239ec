package generators

import (
	"context"
	"sync"

	"github.com/reusee/dscope"
	"github.com/reusee/tairlm/logs"
	"github.com/reusee/tairlm/nets"
	"github.com/reusee/tairlm/vars"
	"google.golang.org/genai"
)

type Gemini struct {
	args GeneratorArgs

	Logger    dscope.Inject[logs.Logger]
	GetClient dscope.Inject[GetGeminiClient]
}

var _ Generator = new(Gemini)

func (g *Gemini) Args() GeneratorArgs {
	return g.args
}

func (g *Gemini) Generate(ctx context.Context, state State) (ret State, err error) {
	ret = state

	client, err := g.GetClient()(ctx, g.args.APIKey)
	if err != nil {
		return ret, err
	}

	var contents []*genai.Content
	for _, content := range state.Contents() {
		var role genai.Role
		switch content.Role {
		case RoleUser:
			role = genai.RoleUser
		case RoleModel, RoleAssistant:
			role = genai.RoleModel
		default:
			continue
		}
		if text := content.Text(); text != "" {
			contents = append(contents, genai.NewContentFromText(text, role))
		}
	}

	config := &genai.GenerateContentConfig{
		Temperature:     g.args.temperature(),
		MaxOutputTokens: int32(vars.DerefOrZero(g.args.MaxGenerateTokens)),
	}
	if system := state.SystemPrompt(); system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	g.Logger().InfoContext(ctx, "generating",
		"model", g.args.Model,
	)

	resp, err := client.Models.GenerateContent(ctx, g.args.Model, contents, config)
	if err != nil {
		return ret, wrap(err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ret, ErrNoOutput
	}
	candidate := resp.Candidates[0]

	content := &Content{
		Role: RoleModel,
	}
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Text == "" {
			continue
		}
		if part.Thought {
			content.Parts = appendPart(content.Parts, Thought(part.Text))
		} else {
			content.Parts = appendPart(content.Parts, Text(part.Text))
		}
	}
	if len(content.Parts) > 0 {
		if ret, err = ret.AppendContent(content); err != nil {
			return ret, err
		}
	}
	if candidate.FinishReason != "" {
		if ret, err = ret.AppendContent(&Content{
			Role:  RoleLog,
			Parts: []Part{FinishReason(candidate.FinishReason)},
		}); err != nil {
			return ret, err
		}
	}

	return ret.Flush()
}

type NewGemini func(args GeneratorArgs) *Gemini

func (Module) NewGemini(
	inject dscope.InjectStruct,
) NewGemini {
	return func(args GeneratorArgs) *Gemini {
		ret := &Gemini{
			args: args,
		}
		inject(&ret)
		return ret
	}
}

type GetGeminiClient func(ctx context.Context, key string) (*genai.Client, error)

func (Module) GetGeminiClient(
	httpClient nets.HTTPClient,
	apiKey GoogleAPIKey,
) GetGeminiClient {
	var clients sync.Map // key -> *genai.Client
	return func(ctx context.Context, key string) (*genai.Client, error) {
		key = vars.FirstNonZero(
			key,
			string(apiKey),
		)
		if v, ok := clients.Load(key); ok {
			return v.(*genai.Client), nil
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:     key,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, wrap(err)
		}
		v, _ := clients.LoadOrStore(key, client)
		return v.(*genai.Client), nil
	}
}
