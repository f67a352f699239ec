package rlmconfigs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/tairlm/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}
