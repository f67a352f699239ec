package inputs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/tairlm/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

type LoadContext func(path string) (string, error)

func (Module) LoadContext(
	logger logs.Logger,
) LoadContext {
	return func(path string) (string, error) {
		text, err := Load(path)
		if err != nil {
			return "", err
		}
		logger.Info("context loaded",
			"path", path,
			"size", len(text),
		)
		return text, nil
	}
}
