package router

import (
	"irregops-service/internal/usecase"
	"irregops-service/pkg/logger"
)

// ModeRouter routes requests to appropriate handlers based on request mode
type ModeRouter struct {
	handlers []usecase.ModeHandler
	logger   logger.Logger
}

// NewModeRouter creates a new mode router
func NewModeRouter(logger logger.Logger) *ModeRouter {
	return &ModeRouter{
		handlers: make([]usecase.ModeHandler, 0),
		logger:   logger,
	}
}

// Register registers a handler for specific request modes
func (r *ModeRouter) Register(handler usecase.ModeHandler) {
	r.handlers = append(r.handlers, handler)
	r.logger.Info("Registered handler", "handler", handler)
}

// GetHandler returns the appropriate handler for a given mode
func (r *ModeRouter) GetHandler(mode string) usecase.ModeHandler {
	for _, handler := range r.handlers {
		if handler.CanHandle(mode) {
			return handler
		}
	}
	return nil
}
