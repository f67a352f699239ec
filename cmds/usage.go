package cmds

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

func (p *Executor) PrintUsage() {
	p.WriteUsage(os.Stderr)
}

func (p *Executor) WriteUsage(w io.Writer) {
	var names []string
	for name, command := range p.commands {
		if command != nil && slices.Contains(command.Aliases, name) {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		writeCommandUsage(w, 0, name, p.commands[name])
	}
}

func writeCommandUsage(w io.Writer, depth int, name string, command *Command) {
	if command == nil || command.Hidden {
		return
	}
	indent := strings.Repeat("  ", depth)
	line := indent + name
	if len(command.Aliases) > 0 {
		line += " (" + strings.Join(command.Aliases, ", ") + ")"
	}
	if command.Func.IsValid() {
		for i := range command.Func.Type().NumIn() {
			line += fmt.Sprintf(" <%v>", command.Func.Type().In(i))
		}
	}
	if command.Description != "" {
		line += "\t" + command.Description
	}
	fmt.Fprintln(w, line)

	subNames := make([]string, 0, len(command.Subs))
	for subName := range command.Subs {
		subNames = append(subNames, subName)
	}
	slices.Sort(subNames)
	for _, subName := range subNames {
		writeCommandUsage(w, depth+1, subName, command.Subs[subName])
	}
}
