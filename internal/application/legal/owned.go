package legal

import (
	"context"
	"time"

	"github.com/lawai/backend/internal/domain/shared"
)

// Clock returns the current time
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }

// loadOwned fetches an entity, maps a missing record to a NotFound error with
// the given message and checks that callerID owns it.
func loadOwned[T shared.Owned, ID any](
	ctx context.Context,
	find func(context.Context, ID) (T, error),
	id ID,
	callerID string,
	notFoundMessage string,
) (T, error) {
	var zero T
	entity, err := find(ctx, id)
	if err != nil {
		if shared.IsNotFound(err) {
			return zero, shared.NewNotFoundError(notFoundMessage)
		}
		return zero, err
	}
	if err := shared.AuthorizeOwned(entity, callerID); err != nil {
		return zero, err
	}
	return entity, nil
}

// Not-found messages shown to API users
const (
	msgClientNotFound   = "Cliente não encontrado"
	msgCaseNotFound     = "Processo não encontrado"
	msgDeadlineNotFound = "Prazo não encontrado"
	msgDocumentNotFound = "Documento não encontrado"
)
