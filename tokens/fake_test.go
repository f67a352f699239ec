package tokens

import "errors"

// runes uses one unit per code point.
type runes struct{}

var _ Tokenizer = runes{}

func (runes) Encode(text string) (ret []uint, err error) {
	for _, r := range text {
		ret = append(ret, uint(r))
	}
	return
}

func (runes) Decode(ids []uint) (string, error) {
	rs := make([]rune, 0, len(ids))
	for _, id := range ids {
		rs = append(rs, rune(id))
	}
	return string(rs), nil
}

var errBroken = errors.New("broken")

type broken struct{}

func (broken) Encode(string) ([]uint, error) {
	return nil, errBroken
}

func (broken) Decode([]uint) (string, error) {
	return "", errBroken
}
