package usecase

import (
	"context"

	"companion-bot/internal/chat/repository"
	"companion-bot/internal/content"
	"companion-bot/internal/memory"
	"companion-bot/internal/persona"
	"companion-bot/pkg/llmprovider"
	pkgLog "companion-bot/pkg/log"
)

const (
	replyTemperature = 0.8
	replyMaxTokens   = 500

	// photoAnnotation is what a photo turn looks like in stored history; the
	// image bytes themselves are never persisted.
	photoAnnotation = "[Photo sent]"
)

// Completer is the completion surface the orchestrator needs; satisfied by
// *llmprovider.Manager.
type Completer interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// Transcriber converts voice audio to text; satisfied by *openai.Client.
type Transcriber interface {
	TranscribeAudio(ctx context.Context, filename string, audio []byte) (string, error)
}

// Matcher finds sellable content for a user request; satisfied by the
// content UseCase. Nil disables the selling flow.
type Matcher interface {
	Match(ctx context.Context, query string) (content.Item, error)
}

type implUseCase struct {
	l           pkgLog.Logger
	mem         *memory.Store
	history     repository.HistoryRepository
	llm         Completer
	transcriber Transcriber
	personaSrc  persona.Source
	matcher     Matcher

	contextLimit  int
	fallbackReply string
}

// New creates a new chat UseCase instance.
func New(
	l pkgLog.Logger,
	mem *memory.Store,
	history repository.HistoryRepository,
	llm Completer,
	transcriber Transcriber,
	personaSrc persona.Source,
	matcher Matcher,
	contextLimit int,
	fallbackReply string,
) *implUseCase {
	return &implUseCase{
		l:             l,
		mem:           mem,
		history:       history,
		llm:           llm,
		transcriber:   transcriber,
		personaSrc:    personaSrc,
		matcher:       matcher,
		contextLimit:  contextLimit,
		fallbackReply: fallbackReply,
	}
}
