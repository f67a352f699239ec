//go:build !linux

package sandboxes

import "github.com/reusee/tairlm/logs"

func RestrictWrites(logger logs.Logger, dir string) error {
	logger.Warn("write restriction is only supported on linux")
	return nil
}
