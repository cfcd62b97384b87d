package repository

import (
	"context"

	"irregops-service/internal/domain/entity"
)

// CompletionRepository defines the interface for one call against the
// remote generative-text service. A non-nil error means the attempt could
// not be made at all (request building, transport, cancellation); HTTP
// level failures come back inside the attempt so the fallback sweep can
// classify them.
type CompletionRepository interface {
	Generate(ctx context.Context, candidate entity.CompletionCandidate, apiKey, prompt string) (*entity.CompletionAttempt, error)
}
