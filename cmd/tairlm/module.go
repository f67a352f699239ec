package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/tairlm/agents"
	"github.com/reusee/tairlm/debugs"
	"github.com/reusee/tairlm/inputs"
	"github.com/reusee/tairlm/rlmconfigs"
)

type Module struct {
	dscope.Module
	Agents  agents.Module
	Configs rlmconfigs.Module
	Debugs  debugs.Module
	Inputs  inputs.Module
}
