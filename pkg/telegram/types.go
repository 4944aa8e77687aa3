package telegram

// Update represents a Telegram incoming update.
type Update struct {
	UpdateID         int64             `json:"update_id"`
	Message          *Message          `json:"message,omitempty"`
	BusinessMessage  *Message          `json:"business_message,omitempty"`
	PreCheckoutQuery *PreCheckoutQuery `json:"pre_checkout_query,omitempty"`
}

// Message represents a Telegram message.
type Message struct {
	MessageID         int64              `json:"message_id"`
	From              *User              `json:"from,omitempty"`
	Chat              *Chat              `json:"chat"`
	Date              int64              `json:"date"`
	Text              string             `json:"text,omitempty"`
	Caption           string             `json:"caption,omitempty"`
	Photo             []PhotoSize        `json:"photo,omitempty"`
	Voice             *Voice             `json:"voice,omitempty"`
	SuccessfulPayment *SuccessfulPayment `json:"successful_payment,omitempty"`
}

// User represents a Telegram user.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

// Chat represents a Telegram chat.
type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// PhotoSize represents one size of a photo sent by a user. Telegram delivers
// several sizes; the last entry is the largest.
type PhotoSize struct {
	FileID   string `json:"file_id"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	FileSize int64  `json:"file_size,omitempty"`
}

// Voice represents a Telegram voice message.
type Voice struct {
	FileID   string `json:"file_id"`
	Duration int    `json:"duration"`
	MimeType string `json:"mime_type,omitempty"`
}

// PreCheckoutQuery is sent by Telegram before a Stars payment is finalized.
// It must be answered within 10 seconds or the payment fails.
type PreCheckoutQuery struct {
	ID             string `json:"id"`
	From           *User  `json:"from"`
	Currency       string `json:"currency"`
	TotalAmount    int64  `json:"total_amount"`
	InvoicePayload string `json:"invoice_payload"`
}

// SuccessfulPayment confirms a completed Stars payment.
type SuccessfulPayment struct {
	Currency                string `json:"currency"`
	TotalAmount             int64  `json:"total_amount"`
	InvoicePayload          string `json:"invoice_payload"`
	TelegramPaymentChargeID string `json:"telegram_payment_charge_id"`
}

// SendMessageRequest is the payload for Telegram sendMessage API.
type SendMessageRequest struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// sendMediaRequest is the payload for sendPhoto/sendVideo by file_id.
type sendMediaRequest struct {
	ChatID  int64  `json:"chat_id"`
	Photo   string `json:"photo,omitempty"`
	Video   string `json:"video,omitempty"`
	Caption string `json:"caption,omitempty"`
}

// LabeledPrice is one line item of an invoice. For Stars invoices the amount
// is the star count itself.
type LabeledPrice struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// sendInvoiceRequest is the payload for the sendInvoice API. Stars invoices
// use currency XTR and an empty provider token.
type sendInvoiceRequest struct {
	ChatID        int64          `json:"chat_id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Payload       string         `json:"payload"`
	ProviderToken string         `json:"provider_token"`
	Currency      string         `json:"currency"`
	Prices        []LabeledPrice `json:"prices"`
}

// answerPreCheckoutRequest is the payload for answerPreCheckoutQuery.
type answerPreCheckoutRequest struct {
	PreCheckoutQueryID string `json:"pre_checkout_query_id"`
	OK                 bool   `json:"ok"`
	ErrorMessage       string `json:"error_message,omitempty"`
}

// sendChatActionRequest is the payload for sendChatAction (e.g. "typing").
type sendChatActionRequest struct {
	ChatID int64  `json:"chat_id"`
	Action string `json:"action"`
}

// File describes a file stored on Telegram's servers, returned by getFile.
type File struct {
	FileID   string `json:"file_id"`
	FilePath string `json:"file_path"`
	FileSize int64  `json:"file_size,omitempty"`
}

// APIResponse is a generic Telegram Bot API response wrapper.
type APIResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

// fileResponse wraps the getFile result.
type fileResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
	Result      *File  `json:"result,omitempty"`
}
