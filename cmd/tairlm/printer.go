package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/reusee/tairlm/notebooks"
	"golang.org/x/term"
)

const (
	bold  = "\033[1m"
	reset = "\033[0m"
)

var rule = strings.Repeat("─", 80)

type printer struct {
	w     io.Writer
	bold  bool
	steps int
}

func newPrinter(w io.Writer) *printer {
	p := &printer{
		w: w,
	}
	if file, ok := w.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		p.bold = true
	}
	return p
}

func (p *printer) strong(s string) string {
	if !p.bold {
		return s
	}
	return bold + s + reset
}

type header struct {
	Query         string
	Model         string
	MaxIterations int
	ContextSize   int
	Resumed       string
}

func (p *printer) header(h header) {
	fmt.Fprintln(p.w, "=== tairlm ===")
	fmt.Fprintf(p.w, "Query: %s\n", h.Query)
	fmt.Fprintf(p.w, "Model: %s\n", h.Model)
	fmt.Fprintf(p.w, "Max iterations: %d\n\n", h.MaxIterations)
	if h.Resumed != "" {
		fmt.Fprintf(p.w, "Resumed from: %s\n\n", h.Resumed)
	}
	if h.ContextSize > 0 {
		fmt.Fprintf(p.w, "Loaded context: %d characters\n\n", h.ContextSize)
	} else {
		fmt.Fprint(p.w, "No context file provided\n\n")
	}
	fmt.Fprint(p.w, "Starting execution...\n\n")
}

func (p *printer) step(step notebooks.Step) {
	if p.steps > 0 {
		fmt.Fprintf(p.w, "\n%s\n\n", rule)
	}
	p.steps++

	fmt.Fprintln(p.w, p.strong(step.Comment))
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, step.Code)
	fmt.Fprintln(p.w)
	output := "(no output)"
	if step.Output != nil {
		output = *step.Output
	}
	fmt.Fprintln(p.w, p.strong("→ "+output))

	if step.Final {
		fmt.Fprintln(p.w, "\n[Task completed - final flag set]")
	}
}

func (p *printer) exhausted() {
	fmt.Fprintln(p.w, "\n[Reached maximum iterations without completion]")
}

func (p *printer) final(output *string) {
	fmt.Fprintln(p.w, "\n=== Final Output ===")
	if output != nil {
		fmt.Fprintln(p.w, *output)
	} else {
		fmt.Fprintln(p.w, "No output from final step")
	}
}
