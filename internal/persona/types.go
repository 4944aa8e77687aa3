package persona

import "time"

// Profile is the bot's persona: the system prompt injected into every
// completion call. It is mutable at any time through the admin API, so
// consumers must read it fresh on every turn and never cache it.
type Profile struct {
	SystemPrompt string    `json:"system_prompt"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DefaultSystemPrompt is used until an admin sets one.
const DefaultSystemPrompt = "You are Mia, a warm and playful companion. " +
	"Keep replies short and personal, like real chat messages. " +
	"Never mention that you are an AI."
