package tokens

import (
	"fmt"
	"strings"
	"sync"

	"github.com/reusee/tairlm/cmds"
	"github.com/reusee/tairlm/configs"
	"github.com/reusee/tairlm/logs"
	"github.com/reusee/tairlm/vars"
	"github.com/tiktoken-go/tokenizer"
)

// Tokenizer splits text into units and joins them back.
// Decoding a prefix of an encoding must yield a prefix of the text.
type Tokenizer interface {
	Encode(text string) ([]uint, error)
	Decode(ids []uint) (string, error)
}

type Codec struct {
	codec tokenizer.Codec
}

var _ Tokenizer = new(Codec)

func NewCodec(encoding Encoding) (*Codec, error) {
	codec, err := tokenizer.Get(tokenizer.Encoding(encoding))
	if err != nil {
		return nil, fmt.Errorf("get tokenizer %s: %w", encoding, err)
	}
	return &Codec{
		codec: codec,
	}, nil
}

func (c *Codec) Encode(text string) ([]uint, error) {
	ids, _, err := c.codec.Encode(text)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (c *Codec) Decode(ids []uint) (string, error) {
	return c.codec.Decode(ids)
}

func (c *Codec) Count(text string) (int, error) {
	return c.codec.Count(text)
}

type Encoding string

const DefaultEncoding Encoding = Encoding(tokenizer.P50kBase)

var _ configs.Configurable = Encoding("")

func (Encoding) ConfigExpr() string {
	return "encoding"
}

var encodingFlag = cmds.Var[string]("-encoding", "tokenizer encoding used for output bounds")

func (Module) Encoding(
	loader configs.Loader,
) Encoding {
	return vars.FirstNonZero(
		Encoding(strings.TrimSpace(*encodingFlag)),
		configs.Resolve[Encoding](loader),
		DefaultEncoding,
	)
}

type GetTokenizer func() (Tokenizer, error)

func (Module) GetTokenizer(
	encoding Encoding,
	logger logs.Logger,
) GetTokenizer {
	return sync.OnceValues(func() (Tokenizer, error) {
		codec, err := NewCodec(encoding)
		if err != nil {
			return nil, err
		}
		logger.Debug("tokenizer", "encoding", encoding)
		return codec, nil
	})
}
