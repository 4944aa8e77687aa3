package usecase

import (
	"context"
	"fmt"
	"strings"

	"companion-bot/internal/content"
	"companion-bot/pkg/llmprovider"
)

const noMatchToken = "none"

// Match picks the catalog item that best fits the user's request. The whole
// step is a single completion call over the active catalog; there is no
// scoring of our own.
func (uc *implUseCase) Match(ctx context.Context, query string) (content.Item, error) {
	items, err := uc.repo.List(ctx, true)
	if err != nil {
		return content.Item{}, fmt.Errorf("failed to list catalog: %w", err)
	}
	if len(items) == 0 {
		return content.Item{}, content.ErrEmptyCatalog
	}

	var catalog strings.Builder
	for _, item := range items {
		fmt.Fprintf(&catalog, "- id=%s type=%s title=%q description=%q\n",
			item.ID, item.Type, item.Title, item.Description)
	}

	prompt := fmt.Sprintf(`You match a user's request against a content catalog.

Catalog:
%s
User request: %q

Reply with the single best matching catalog id, or %q if nothing fits. Reply with the id only, no other text.`,
		catalog.String(), query, noMatchToken)

	resp, err := uc.llm.GenerateContent(ctx, &llmprovider.Request{
		Messages:    []llmprovider.Message{{Role: "user", Content: prompt}},
		Temperature: 0, // deterministic pick
		MaxTokens:   64,
	})
	if err != nil {
		return content.Item{}, fmt.Errorf("content match failed: %w", err)
	}

	picked := strings.TrimSpace(strings.Trim(resp.Text, "\"'` \n"))
	if picked == "" || strings.EqualFold(picked, noMatchToken) {
		return content.Item{}, content.ErrNoMatch
	}

	for _, item := range items {
		if item.ID == picked {
			return item, nil
		}
	}

	uc.l.Warnf(ctx, "content: model picked unknown id %q", picked)
	return content.Item{}, content.ErrNoMatch
}
