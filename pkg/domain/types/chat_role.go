package types

// ChatRole is the author of a chat message
type ChatRole string

const (
	ChatRoleSystem    ChatRole = "system"
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// IsValid reports whether the role is one the upstream service understands.
// Unknown roles are still relayed; this is only used for diagnostics.
func (r ChatRole) IsValid() bool {
	switch r {
	case ChatRoleSystem,
		ChatRoleUser,
		ChatRoleAssistant:
		return true
	default:
		return false
	}
}

// String returns the string representation of the role
func (r ChatRole) String() string {
	return string(r)
}
