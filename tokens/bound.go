package tokens

// Bound keeps at most n leading units of text.
// truncated reports whether anything was cut.
func Bound(tokenizer Tokenizer, text string, n int) (ret string, truncated bool, err error) {
	ids, err := tokenizer.Encode(text)
	if err != nil {
		return "", false, err
	}
	if n < 0 {
		n = 0
	}
	if len(ids) <= n {
		return text, false, nil
	}
	ret, err = tokenizer.Decode(ids[:n])
	if err != nil {
		return "", false, err
	}
	return ret, true, nil
}
