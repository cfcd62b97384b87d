package templates

import (
	"context"

	"irregops-service/internal/domain/entity"
	"irregops-service/internal/usecase"
	"irregops-service/pkg/logger"
)

// ExtractionHandler handles extraction requests, with or without
// translation augmentation
type ExtractionHandler struct {
	processor *usecase.DisruptionProcessor
	logger    logger.Logger
}

// NewExtractionHandler creates a new extraction handler
func NewExtractionHandler(processor *usecase.DisruptionProcessor, logger logger.Logger) *ExtractionHandler {
	return &ExtractionHandler{
		processor: processor,
		logger:    logger,
	}
}

// CanHandle determines if this handler can process the given request mode.
// An empty mode defaults to plain extraction.
func (h *ExtractionHandler) CanHandle(mode string) bool {
	return mode == "" || mode == entity.ModeExtract || mode == entity.ModeExtractTranslate
}

// Process runs the extraction pipeline for the request
func (h *ExtractionHandler) Process(ctx context.Context, req *entity.ExtractRequest) (*entity.ExtractResult, error) {
	result, err := h.processor.Process(ctx, req)
	if err != nil {
		h.logger.Error("Failed to process disruption notice", "error", err)
		return nil, err
	}
	return result, nil
}
