package templates

import (
	"context"

	"irregops-service/internal/domain/entity"
	"irregops-service/internal/usecase"
	"irregops-service/pkg/logger"
)

// TranslationHandler handles pure-translation requests
type TranslationHandler struct {
	processor *usecase.DisruptionProcessor
	logger    logger.Logger
}

// NewTranslationHandler creates a new translation handler
func NewTranslationHandler(processor *usecase.DisruptionProcessor, logger logger.Logger) *TranslationHandler {
	return &TranslationHandler{
		processor: processor,
		logger:    logger,
	}
}

// CanHandle determines if this handler can process the given request mode
func (h *TranslationHandler) CanHandle(mode string) bool {
	return mode == entity.ModeTranslate
}

// Process runs the translation-only pipeline for the request
func (h *TranslationHandler) Process(ctx context.Context, req *entity.ExtractRequest) (*entity.ExtractResult, error) {
	result, err := h.processor.Translate(ctx, req)
	if err != nil {
		h.logger.Error("Failed to translate notice", "error", err)
		return nil, err
	}
	return result, nil
}
