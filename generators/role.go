package generators

type Role string

const (
	RoleUser      Role = "user"
	RoleSystem    Role = "system"
	RoleAssistant Role = "assistant" // for OpenAI
	RoleModel     Role = "model"     // for Gemini
	RoleTool      Role = "tool"
	// RoleLog contents are kept in the state but never sent to a model.
	RoleLog Role = "log"
)

// IsModel reports whether r is the model's side of the conversation in any backend.
func (r Role) IsModel() bool {
	return r == RoleModel || r == RoleAssistant
}
