package notebooks

// Step is one comment, code and output record.
// Output is nil before execution and for code that printed nothing.
type Step struct {
	Comment string  `json:"comment"`
	Code    string  `json:"code"`
	Output  *string `json:"output"`
	Final   bool    `json:"final"`
}

func (s Step) clone() Step {
	if s.Output != nil {
		output := *s.Output
		s.Output = &output
	}
	return s
}
