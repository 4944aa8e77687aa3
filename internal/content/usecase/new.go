package usecase

import (
	"context"

	"companion-bot/internal/content/repository"
	"companion-bot/pkg/llmprovider"
	pkgLog "companion-bot/pkg/log"
)

// Completer is the completion surface the matcher needs; satisfied by
// *llmprovider.Manager.
type Completer interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

type implUseCase struct {
	l    pkgLog.Logger
	repo repository.Repository
	llm  Completer
}

// New creates a new content UseCase instance.
func New(l pkgLog.Logger, repo repository.Repository, llm Completer) *implUseCase {
	return &implUseCase{
		l:    l,
		repo: repo,
		llm:  llm,
	}
}
