package rlmconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/tairlm/configs"
	"github.com/reusee/tairlm/logs"
)

//go:embed schema.cue
var Schema string

var FileNames = []string{
	"tairlm.cue",
	".tairlm.cue",
}

func (Module) ConfigsLoader(
	logger logs.Logger,
) configs.Loader {
	var dirs []string
	// working directory
	if dir, err := os.Getwd(); err == nil {
		dirs = append(dirs, dir)
	}
	// user config dir
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, dir)
	}
	// system wide dir
	dirs = append(dirs, "/etc")

	paths := FindFiles(dirs)
	if len(paths) > 0 {
		logger.Info("config file",
			"paths", paths,
		)
	}
	return configs.NewLoader(paths, Schema)
}

// FindFiles lists existing config files in dirs, earlier dirs first.
func FindFiles(dirs []string) (paths []string) {
	for _, dir := range dirs {
		for _, filename := range FileNames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}
	return
}
