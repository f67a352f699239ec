package notebooks

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

type Format int

const (
	FormatStructured Format = iota + 1
	FormatTagged
)

func (f Format) String() string {
	switch f {
	case FormatStructured:
		return "structured"
	case FormatTagged:
		return "tagged"
	}
	return "unknown"
}

// Parse turns a model response into an unexecuted step.
func Parse(raw string) (Step, error) {
	step, _, err := ParseFormat(raw)
	return step, err
}

// ParseFormat is Parse that also reports which format matched.
// A JSON object with string comment and code fields wins; tagged text is the fallback.
// A JSON object that lacks a field and carries no tags either reports the missing field.
func ParseFormat(raw string) (Step, Format, error) {
	step, isObject, structuredErr := parseStructured(raw)
	if isObject && structuredErr == nil {
		if err := validate(step); err != nil {
			return Step{}, FormatStructured, err
		}
		return step, FormatStructured, nil
	}
	step, err := parseTagged(raw)
	if err != nil {
		if isObject {
			return Step{}, FormatStructured, structuredErr
		}
		return Step{}, FormatTagged, err
	}
	return step, FormatTagged, nil
}

type structuredStep struct {
	Comment *string `json:"comment"`
	Code    *string `json:"code"`
	Output  *string `json:"output"`
	Final   bool    `json:"final"`
}

// parseStructured reports whether raw is a JSON object, and if so, the step it carries.
func parseStructured(raw string) (Step, bool, error) {
	data := bytes.TrimSpace([]byte(raw))
	if len(data) == 0 || data[0] != '{' {
		return Step{}, false, nil
	}
	var s structuredStep
	if err := json.Unmarshal(data, &s); err != nil {
		return Step{}, false, nil
	}
	if s.Comment == nil {
		return Step{}, true, &ParseError{Field: "comment", Reason: "missing comment field"}
	}
	if s.Code == nil {
		return Step{}, true, &ParseError{Field: "code", Reason: "missing code field"}
	}
	return Step{
		Comment: strings.TrimSpace(*s.Comment),
		Code:    stripFence(strings.TrimSpace(*s.Code)),
		Final:   s.Final,
	}, true, nil
}

var (
	commentPattern = regexp.MustCompile(`(?s)<comment>(.*?)</comment>`)
	codePattern    = regexp.MustCompile(`(?s)<code>(.*?)</code>`)
	finalPattern   = regexp.MustCompile(`(?s)<final>(.*?)</final>`)
)

func parseTagged(raw string) (Step, error) {
	comment, ok := tagContent(commentPattern, raw)
	if !ok {
		return Step{}, &ParseError{Field: "comment", Reason: "missing <comment> tag"}
	}
	code, ok := tagContent(codePattern, raw)
	if !ok {
		return Step{}, &ParseError{Field: "code", Reason: "missing <code> tag"}
	}
	step := Step{
		Comment: comment,
		Code:    stripFence(code),
	}
	if final, ok := tagContent(finalPattern, raw); ok {
		switch strings.ToLower(final) {
		case "true", "yes":
			step.Final = true
		}
	}
	if err := validate(step); err != nil {
		return Step{}, err
	}
	return step, nil
}

func tagContent(pattern *regexp.Regexp, raw string) (string, bool) {
	match := pattern.FindStringSubmatch(raw)
	if match == nil {
		return "", false
	}
	return strings.TrimSpace(match[1]), true
}

func validate(step Step) error {
	if step.Comment == "" {
		return &ParseError{Field: "comment", Reason: "empty"}
	}
	if step.Code == "" {
		return &ParseError{Field: "code", Reason: "empty"}
	}
	return nil
}

// stripFence removes a markdown code fence wrapping the whole code block.
func stripFence(code string) string {
	if !strings.HasPrefix(code, "```") || !strings.HasSuffix(code, "```") || len(code) < 6 {
		return code
	}
	body := strings.TrimSuffix(code, "```")
	newline := strings.IndexByte(body, '\n')
	if newline < 0 {
		return code
	}
	return strings.TrimSpace(body[newline+1:])
}
