package usecase

import (
	"context"

	"irregops-service/internal/domain/entity"
)

// ModeHandler defines the interface for request-mode handlers
type ModeHandler interface {
	// CanHandle determines if this handler can process the given request mode
	CanHandle(mode string) bool

	// Process runs the pipeline for the request and returns the result
	Process(ctx context.Context, req *entity.ExtractRequest) (*entity.ExtractResult, error)
}

// ModeRouter routes requests to the appropriate handler based on mode
type ModeRouter interface {
	// Register registers a handler for specific request modes
	Register(handler ModeHandler)

	// GetHandler returns the appropriate handler for a given mode
	GetHandler(mode string) ModeHandler
}
