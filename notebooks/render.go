package notebooks

import "strings"

// Render formats the ledger as the document shown to the model.
func (l *Ledger) Render() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	var parts []string
	if l.prompt != "" {
		parts = append(parts, "Prompt:\n"+l.prompt+"\n")
	}

	for _, step := range l.steps {
		var stepParts []string
		if step.Comment != "" {
			stepParts = append(stepParts, "# "+step.Comment)
		}
		if step.Code != "" {
			stepParts = append(stepParts, "```\n"+step.Code+"\n```")
		}
		if step.Output != nil {
			stepParts = append(stepParts, "Output:\n```\n"+*step.Output+"\n```")
		}
		if len(stepParts) > 0 {
			parts = append(parts, strings.Join(stepParts, "\n")+"\n")
		}
	}

	return strings.Join(parts, "\n")
}
