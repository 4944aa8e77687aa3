package model

// Scope carries the identity of the user a request acts on behalf of.
type Scope struct {
	UserID   string // "telegram_<id>" for bot users
	Username string
	ChatID   int64 // Telegram chat to reply into
}
