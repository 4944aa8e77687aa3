package persona

import (
	"context"
	"errors"
)

// ErrNotFound indicates no persona has been stored yet.
var ErrNotFound = errors.New("persona not found")

// Source yields the current persona. Implementations must hit the backing
// store on every call; an admin may change the persona mid-conversation.
type Source interface {
	Current(ctx context.Context) (Profile, error)
}

// Repository is the durable persona store. It is also a Source.
type Repository interface {
	Source
	Set(ctx context.Context, p Profile) error
}
