package usecase

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"irregops-service/internal/domain/entity"
	"irregops-service/internal/domain/repository"
	"irregops-service/pkg/logger"
	"irregops-service/pkg/metrics"
)

// Fixed fallback order. The preferred model, when supplied, is prepended
// in raw and "-latest" form; these defaults follow.
var defaultModels = []string{
	"gemini-2.0-flash",
	"gemini-1.5-flash",
	"gemini-1.5-flash-latest",
	"gemini-1.5-pro",
}

// API versions are tried in this order for every model candidate.
var apiVersions = []string{"v1beta", "v1"}

// notFoundBody marks responses that mean the candidate itself does not
// exist or is not served, as opposed to a transient failure.
var notFoundBody = regexp.MustCompile(`(?i)not found|is not supported|unsupported`)

// sweepState tracks the candidate sweep.
type sweepState int

const (
	stateTrying sweepState = iota
	stateSucceeded
	stateExhausted
)

// CompletionOrchestrator obtains one completion text by walking an
// ordered (model, API version) candidate list sequentially. Calls are
// never issued in parallel; a worst-case sweep costs
// len(models) x len(apiVersions) requests, so callers bound the whole
// sweep with their context.
type CompletionOrchestrator struct {
	completionRepo repository.CompletionRepository
	logger         logger.Logger
	metrics        *metrics.Metrics
}

// NewCompletionOrchestrator creates a new completion orchestrator
func NewCompletionOrchestrator(
	completionRepo repository.CompletionRepository,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *CompletionOrchestrator {
	return &CompletionOrchestrator{
		completionRepo: completionRepo,
		logger:         logger,
		metrics:        metrics,
	}
}

// BuildCandidates constructs the ordered candidate list for one request.
func BuildCandidates(preferredModel string) []entity.CompletionCandidate {
	models := make([]string, 0, len(defaultModels)+2)

	preferredModel = strings.TrimSpace(preferredModel)
	if preferredModel != "" {
		models = append(models, preferredModel)
		if !strings.HasSuffix(preferredModel, "-latest") {
			models = append(models, preferredModel+"-latest")
		}
	}
	for _, m := range defaultModels {
		if !containsString(models, m) {
			models = append(models, m)
		}
	}

	candidates := make([]entity.CompletionCandidate, 0, len(models)*len(apiVersions))
	for _, model := range models {
		for _, version := range apiVersions {
			candidates = append(candidates, entity.CompletionCandidate{
				Model:      model,
				APIVersion: version,
			})
		}
	}
	return candidates
}

// Complete sweeps the candidate list until one attempt succeeds. A 404 or
// a "not found / unsupported" body exhausts the candidate; every other
// failure is remembered as the last error but still advances the sweep,
// so a flaky model never blocks a working one. On success the candidate
// that produced the text is returned with it, so callers can record true
// provenance after a fallback. When the whole list fails, the last
// observed status and body are surfaced.
func (o *CompletionOrchestrator) Complete(ctx context.Context, apiKey, preferredModel, prompt string) (string, entity.CompletionCandidate, error) {
	candidates := BuildCandidates(preferredModel)

	state := stateTrying
	text := ""
	won := entity.CompletionCandidate{}
	lastStatus := 0
	lastBody := ""

	for next := 0; state == stateTrying; next++ {
		if next == len(candidates) {
			state = stateExhausted
			break
		}
		if err := ctx.Err(); err != nil {
			return "", entity.CompletionCandidate{}, err
		}
		candidate := candidates[next]

		attempt, err := o.completionRepo.Generate(ctx, candidate, apiKey, prompt)
		if errors.Is(err, entity.ErrNoCredentials) {
			// Validation, not a transient failure: no candidate can fare
			// better without credentials.
			return "", entity.CompletionCandidate{}, err
		}
		if err != nil {
			o.logger.Warn("Completion attempt errored",
				"model", candidate.Model,
				"apiVersion", candidate.APIVersion,
				"error", err)
			o.observeAttempt(candidate, "error")
			lastBody = err.Error()
			continue
		}

		if attempt.Success {
			state = stateSucceeded
			text = attempt.Text
			won = candidate
			o.observeAttempt(candidate, "success")
			o.logger.Info("Completion succeeded",
				"model", candidate.Model,
				"apiVersion", candidate.APIVersion)
			continue
		}

		lastStatus = attempt.HTTPStatus
		lastBody = attempt.Body

		if attempt.HTTPStatus == http.StatusNotFound || notFoundBody.MatchString(attempt.Body) {
			o.observeAttempt(candidate, "not_found")
			o.logger.Debug("Candidate not served, advancing",
				"model", candidate.Model,
				"apiVersion", candidate.APIVersion)
			continue
		}

		o.observeAttempt(candidate, "failed")
		o.logger.Warn("Completion attempt failed, advancing",
			"model", candidate.Model,
			"apiVersion", candidate.APIVersion,
			"status", attempt.HTTPStatus)
	}

	if state == stateSucceeded {
		return text, won, nil
	}

	if o.metrics != nil {
		o.metrics.ErrorsCount.WithLabelValues("completion_exhausted").Inc()
	}
	return "", entity.CompletionCandidate{}, &entity.CompletionExhaustedError{
		HTTPStatus: lastStatus,
		Body:       lastBody,
	}
}

func (o *CompletionOrchestrator) observeAttempt(candidate entity.CompletionCandidate, outcome string) {
	if o.metrics != nil {
		o.metrics.CompletionAttempts.WithLabelValues(candidate.Model, candidate.APIVersion, outcome).Inc()
	}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
