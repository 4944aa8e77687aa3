package memory

// Role identifies who produced a conversation turn. System prompts are
// injected at completion time and never stored as history.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single conversation turn. Content may be a synthetic
// annotation such as "[Photo sent]" for non-text media. Messages are
// immutable once created: the cache only appends and evicts, it never
// rewrites an entry.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
