package chat

import "companion-bot/internal/content"

// TextInput is a plain text turn from the user.
type TextInput struct {
	Text string
}

// PhotoInput is a photo turn. ImageURL is either an https URL or a data URI
// with the downloaded image bytes.
type PhotoInput struct {
	ImageURL string
	Caption  string
}

// VoiceInput is a voice-note turn, downloaded and ready for transcription.
type VoiceInput struct {
	Filename string
	Audio    []byte
}

// Output is the orchestrator's reply for one turn.
type Output struct {
	Reply string

	// Offer is set when the turn was classified as a content request and the
	// catalog produced a match; the delivery layer turns it into an invoice.
	Offer *content.Item

	// Fallback is true when Reply is the canned apology rather than a real
	// model output. Fallback replies are never recorded in history.
	Fallback bool
}
