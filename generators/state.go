package generators

// State is an immutable conversation. Wrappers such as Output observe appends and delegate the rest.
type State interface {
	Contents() []*Content
	// AppendContent returns the state with content added; adjacent contents of one role may merge.
	AppendContent(*Content) (State, error)
	SystemPrompt() string
	// Flush ends the current reply.
	Flush() (State, error)
	// Unwrap returns the wrapped state, or nil for a base state.
	Unwrap() State
}
