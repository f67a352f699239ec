package generators

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Output writes content to w as it is appended, then forwards it upstream.
// Thought parts are wrapped in <think> tags; the tag state survives chunked appends.
type Output struct {
	upstream            State
	w                   io.Writer
	isTerminal          bool
	showThoughts        bool
	lastOutputRole      Role
	lastOutputIsThought bool
}

func NewOutput(upstream State, w io.Writer, showThoughts bool) Output {
	isTerminal := false
	if file, ok := w.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		isTerminal = true
	}
	return Output{
		upstream:     upstream,
		w:            w,
		isTerminal:   isTerminal,
		showThoughts: showThoughts,
	}
}

var _ State = Output{}

func (s Output) roleColor(role Role) string {
	if !s.isTerminal {
		return ""
	}
	switch role {
	case RoleUser:
		return ColorUser
	case RoleModel, RoleAssistant:
		return ColorReset
	case RoleTool:
		return ColorTool
	case RoleSystem:
		return ColorSystem
	case RoleLog:
		return ColorLog
	}
	return ""
}

func (s Output) AppendContent(content *Content) (_ State, err error) {
	ret := s
	roleColor := s.roleColor(content.Role)

	if s.lastOutputRole != "" && s.lastOutputRole != content.Role {
		if ret.lastOutputIsThought {
			if _, err := io.WriteString(s.w, "\n</think>\n"); err != nil {
				return nil, err
			}
			ret.lastOutputIsThought = false
		}
		if _, err := io.WriteString(s.w, "\n\n"); err != nil {
			return nil, err
		}
	}

	write := func(isThought bool, str string) error {
		switch {
		case !ret.lastOutputIsThought && isThought:
			if _, err := io.WriteString(s.w, "<think>\n"); err != nil {
				return err
			}
			ret.lastOutputIsThought = true
		case ret.lastOutputIsThought && !isThought:
			if _, err := io.WriteString(s.w, "\n</think>\n"); err != nil {
				return err
			}
			ret.lastOutputIsThought = false
		}

		color := roleColor
		if isThought && s.isTerminal {
			color = ColorThought
		}
		if color != "" {
			str = color + str + ColorReset
		}
		_, err := io.WriteString(s.w, str)
		return err
	}

	for _, part := range content.Parts {
		switch part := part.(type) {

		case Text:
			err = write(false, string(part))

		case Thought:
			if ret.showThoughts {
				err = write(true, string(part))
			}

		case FinishReason:
			err = write(false, fmt.Sprintf("[Finish: %s]", part))

		case Error:
			err = write(false, fmt.Sprintf("[Error: %v]", part.Error))

		}
		if err != nil {
			return nil, err
		}
	}

	ret.lastOutputRole = content.Role
	ret.upstream, err = s.upstream.AppendContent(content)
	if err != nil {
		return nil, err
	}

	return ret, nil
}

func (s Output) Contents() []*Content {
	return s.upstream.Contents()
}

func (s Output) SystemPrompt() string {
	return s.upstream.SystemPrompt()
}

func (s Output) Flush() (State, error) {
	ret := s
	if ret.lastOutputIsThought {
		if _, err := io.WriteString(s.w, "\n</think>\n"); err != nil {
			return nil, err
		}
		ret.lastOutputIsThought = false
	}
	if _, err := io.WriteString(s.w, "\n\n"); err != nil {
		return nil, err
	}
	var err error
	ret.upstream, err = s.upstream.Flush()
	if err != nil {
		return nil, err
	}
	ret.lastOutputRole = ""
	return ret, nil
}

func (s Output) Unwrap() State {
	return s.upstream
}
