package usecase

import (
	"context"
	"strings"
	"time"

	"irregops-service/internal/domain/entity"
	"irregops-service/internal/domain/repository"
	"irregops-service/pkg/logger"
	"irregops-service/pkg/metrics"
	"irregops-service/pkg/utils"
)

// DisruptionProcessor is the pipeline coordinator: prompt construction,
// completion acquisition through the fallback orchestrator, tolerant JSON
// extraction, per-field normalization and record assembly. Each
// invocation is stateless relative to the others.
type DisruptionProcessor struct {
	orchestrator *CompletionOrchestrator
	airportRepo  repository.AirportRepository
	airlineRepo  repository.AirlineRepository
	recordRepo   repository.DisruptionRecordRepository
	logger       logger.Logger
	metrics      *metrics.Metrics
	apiKey       string
	defaultModel string
}

// NewDisruptionProcessor creates a new disruption processor. The API key
// is handed over explicitly here; repositories other than the
// orchestrator's are optional and may be nil.
func NewDisruptionProcessor(
	orchestrator *CompletionOrchestrator,
	airportRepo repository.AirportRepository,
	airlineRepo repository.AirlineRepository,
	recordRepo repository.DisruptionRecordRepository,
	apiKey string,
	defaultModel string,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *DisruptionProcessor {
	return &DisruptionProcessor{
		orchestrator: orchestrator,
		airportRepo:  airportRepo,
		airlineRepo:  airlineRepo,
		recordRepo:   recordRepo,
		logger:       logger,
		metrics:      metrics,
		apiKey:       apiKey,
		defaultModel: defaultModel,
	}
}

type completionOutcome struct {
	text      string
	candidate entity.CompletionCandidate
	err       error
}

// Process runs the full pipeline for one notice and always returns a
// record on success, possibly with missing optional fields; only input
// validation and completion exhaustion abort.
func (p *DisruptionProcessor) Process(ctx context.Context, req *entity.ExtractRequest) (*entity.ExtractResult, error) {
	started := time.Now()

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, entity.ErrEmptyText
	}

	apiKey := req.APIKey
	if apiKey == "" {
		apiKey = p.apiKey
	}
	model := req.PreferredModel
	if model == "" {
		model = p.defaultModel
	}

	withTranslation := req.Mode == entity.ModeExtractTranslate

	p.logger.Info("Starting disruption extraction",
		"textLength", len(text),
		"model", model,
		"withTranslation", withTranslation)

	// The extraction and translation completions are independent, so they
	// are the one fan-out/join in the pipeline. Both are awaited; a
	// failure in either fails the invocation.
	extractCh := make(chan completionOutcome, 1)
	go func() {
		completion, candidate, err := p.orchestrator.Complete(ctx, apiKey, model, BuildExtractionPrompt(text))
		extractCh <- completionOutcome{text: completion, candidate: candidate, err: err}
	}()

	var translateCh chan completionOutcome
	if withTranslation {
		translateCh = make(chan completionOutcome, 1)
		go func() {
			translation, candidate, err := p.orchestrator.Complete(ctx, apiKey, model, BuildTranslationPrompt(text))
			translateCh <- completionOutcome{text: translation, candidate: candidate, err: err}
		}()
	}

	extraction := <-extractCh
	translation := completionOutcome{}
	if translateCh != nil {
		translation = <-translateCh
	}

	if extraction.err != nil {
		p.observeError("extraction_completion")
		return nil, extraction.err
	}
	if translation.err != nil {
		p.observeError("translation_completion")
		return nil, translation.err
	}

	record := p.assembleRecord(ctx, text, extraction.text)
	record.TranslatedText = strings.TrimSpace(translation.text)
	// Provenance is the candidate that actually answered, which after a
	// fallback sweep need not be the requested model.
	record.Model = extraction.candidate.Model

	p.persistRecord(ctx, record)

	if p.metrics != nil {
		p.metrics.RecordsProcessed.Inc()
		p.metrics.ProcessingTime.Observe(time.Since(started).Seconds())
	}

	p.logger.Info("Disruption extraction completed",
		"flightNumber", record.FlightNumber,
		"date", record.Date,
		"type", record.Type)

	return &entity.ExtractResult{
		Record:         record,
		RawCompletion:  extraction.text,
		RawTranslation: translation.text,
	}, nil
}

// Translate runs only the translation completion, for pure-translation
// requests.
func (p *DisruptionProcessor) Translate(ctx context.Context, req *entity.ExtractRequest) (*entity.ExtractResult, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, entity.ErrEmptyText
	}

	apiKey := req.APIKey
	if apiKey == "" {
		apiKey = p.apiKey
	}
	model := req.PreferredModel
	if model == "" {
		model = p.defaultModel
	}

	translation, candidate, err := p.orchestrator.Complete(ctx, apiKey, model, BuildTranslationPrompt(text))
	if err != nil {
		p.observeError("translation_completion")
		return nil, err
	}

	record := &entity.DisruptionRecord{
		SourceText:     text,
		TranslatedText: strings.TrimSpace(translation),
		Model:          candidate.Model,
		CreatedAt:      time.Now(),
	}

	return &entity.ExtractResult{
		Record:         record,
		RawTranslation: translation,
	}, nil
}

// assembleRecord normalizes every extracted field. All failures in here
// are soft: a field that cannot be normalized is left empty or carries
// the best-effort value.
func (p *DisruptionProcessor) assembleRecord(ctx context.Context, sourceText, completion string) *entity.DisruptionRecord {
	obj := utils.ExtractJSON(completion)
	if len(obj) == 0 {
		p.logger.Warn("Completion carried no parseable JSON, assembling empty record")
		p.observeError("json_extraction")
	}

	newTime := utils.NormalizeTime(fieldValue(obj, "newTime"))
	newFlightNumber := utils.NormalizeDigits(fieldValue(obj, "newFlightNumber"))

	record := &entity.DisruptionRecord{
		Airline:         p.canonicalAirline(ctx, fieldValue(obj, "airline")),
		FlightNumber:    utils.NormalizeDigits(fieldValue(obj, "flightNumber")),
		Date:            p.normalizeDate(fieldValue(obj, "date")),
		Origin:          p.resolveAirport(ctx, fieldValue(obj, "origin")),
		Destination:     p.resolveAirport(ctx, fieldValue(obj, "destination")),
		Type:            utils.ClassifyDisruptionType(fieldValue(obj, "type"), newFlightNumber, newTime),
		OldTime:         utils.NormalizeTime(fieldValue(obj, "oldTime")),
		NewTime:         newTime,
		NewFlightNumber: newFlightNumber,
		NewAirline:      p.canonicalAirline(ctx, fieldValue(obj, "newAirline")),
		SourceText:      sourceText,
		CreatedAt:       time.Now(),
	}

	return record
}

// normalizeDate is field-local: a year outside the breakpoint table or an
// invalid day/month combination simply leaves the date absent.
func (p *DisruptionProcessor) normalizeDate(raw string) string {
	if raw == "" {
		return ""
	}
	normalized := utils.NormalizeDate(raw)
	if normalized == "" {
		p.logger.Warn("No normalized date for input", "date", raw)
		p.observeError("date_resolution")
	}
	return normalized
}

// resolveAirport runs the textual resolver and consults the airport
// reference table best-effort: a 3-letter result is confirmed by code, a
// longer one is matched on name or city. Misses keep the textual result.
func (p *DisruptionProcessor) resolveAirport(ctx context.Context, raw string) string {
	code := utils.ResolveAirportCode(raw)
	if code == "" || p.airportRepo == nil {
		return code
	}

	if len(code) == 3 {
		airport, err := p.airportRepo.GetByCode(ctx, code)
		if err != nil {
			p.logger.Debug("Airport code not in reference table", "code", code, "error", err)
			return code
		}
		return airport.Code
	}

	airport, err := p.airportRepo.FindByName(ctx, code)
	if err != nil {
		p.logger.Debug("Airport reference lookup missed", "text", code, "error", err)
		return code
	}
	return airport.Code
}

// canonicalAirline swaps a recognized carrier name for its reference
// spelling; unknown names pass through untouched. Short inputs are
// treated as IATA carrier codes rather than names.
func (p *DisruptionProcessor) canonicalAirline(ctx context.Context, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || p.airlineRepo == nil {
		return raw
	}

	if len(raw) <= 3 {
		airline, err := p.airlineRepo.GetByCode(ctx, strings.ToUpper(raw))
		if err != nil {
			return raw
		}
		return airline.Name
	}

	airline, err := p.airlineRepo.FindByName(ctx, raw)
	if err != nil {
		return raw
	}
	return airline.Name
}

// persistRecord writes to the audit store when one is configured. The
// store is diagnostics, not the product: failures are logged, never
// surfaced.
func (p *DisruptionProcessor) persistRecord(ctx context.Context, record *entity.DisruptionRecord) {
	if p.recordRepo == nil {
		return
	}
	if err := p.recordRepo.Insert(ctx, record); err != nil {
		p.logger.Error("Failed to store disruption record", "error", err)
		p.observeError("record_store")
	}
}

func (p *DisruptionProcessor) observeError(operation string) {
	if p.metrics != nil {
		p.metrics.ErrorsCount.WithLabelValues(operation).Inc()
	}
}
