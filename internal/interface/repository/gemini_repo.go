package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"irregops-service/internal/domain/entity"
	"irregops-service/internal/domain/repository"
	"irregops-service/pkg/logger"
)

// GeminiRepository calls the Google generative-language REST API. The
// model and API version are supplied per call so the fallback sweep can
// address any (model, version) pair; nothing here reads the environment.
type GeminiRepository struct {
	logger      logger.Logger
	baseURL     string
	httpClient  *http.Client
	tokenSource oauth2.TokenSource
}

// NewGeminiRepository creates a new completion repository. tokenSource is
// optional; it is only consulted when a request carries no API key.
func NewGeminiRepository(baseURL string, timeout time.Duration, tokenSource oauth2.TokenSource, logger logger.Logger) repository.CompletionRepository {
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	return &GeminiRepository{
		logger:      logger,
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: timeout},
		tokenSource: tokenSource,
	}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate performs one generateContent call for the given candidate.
// Sampling is deterministic (temperature 0). An HTTP failure is returned
// inside the attempt; the error return is reserved for requests that
// never reached the service.
func (r *GeminiRepository) Generate(ctx context.Context, candidate entity.CompletionCandidate, apiKey, prompt string) (*entity.CompletionAttempt, error) {
	reqBody := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{Temperature: 0},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/models/%s:generateContent", r.baseURL, candidate.APIVersion, candidate.Model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if apiKey != "" {
		req.Header.Set("X-Goog-Api-Key", apiKey)
	} else if r.tokenSource != nil {
		token, err := r.tokenSource.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to obtain access token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	} else {
		return nil, entity.ErrNoCredentials
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to %s/%s: %w", candidate.APIVersion, candidate.Model, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.Warn("Completion attempt failed",
			"model", candidate.Model,
			"apiVersion", candidate.APIVersion,
			"status", resp.StatusCode)
		return &entity.CompletionAttempt{
			Success:    false,
			HTTPStatus: resp.StatusCode,
			Body:       string(body),
		}, nil
	}

	var response generateResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return &entity.CompletionAttempt{
			Success:    false,
			HTTPStatus: resp.StatusCode,
			Body:       fmt.Sprintf("undecodable response: %v", err),
		}, nil
	}

	// Absent or empty candidates are an empty completion, not an error;
	// the fail-soft JSON extractor downstream handles it.
	text := ""
	if len(response.Candidates) > 0 && len(response.Candidates[0].Content.Parts) > 0 {
		text = response.Candidates[0].Content.Parts[0].Text
	}

	r.logger.Debug("Completion obtained",
		"model", candidate.Model,
		"apiVersion", candidate.APIVersion,
		"length", len(text))

	return &entity.CompletionAttempt{
		Success:    true,
		Text:       text,
		HTTPStatus: resp.StatusCode,
	}, nil
}
