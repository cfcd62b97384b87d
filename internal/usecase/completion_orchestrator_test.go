package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irregops-service/internal/domain/entity"
	"irregops-service/pkg/logger"
)

// fakeCompletionRepo replays scripted attempts in order.
type fakeCompletionRepo struct {
	attempts []*entity.CompletionAttempt
	errs     []error
	calls    []entity.CompletionCandidate
}

func (f *fakeCompletionRepo) Generate(ctx context.Context, candidate entity.CompletionCandidate, apiKey, prompt string) (*entity.CompletionAttempt, error) {
	i := len(f.calls)
	f.calls = append(f.calls, candidate)
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.attempts) {
		return f.attempts[i], nil
	}
	return &entity.CompletionAttempt{Success: false, HTTPStatus: 500, Body: "unscripted"}, nil
}

func TestBuildCandidates(t *testing.T) {
	t.Run("defaults only", func(t *testing.T) {
		candidates := BuildCandidates("")
		require.Len(t, candidates, 8)
		assert.Equal(t, entity.CompletionCandidate{Model: "gemini-2.0-flash", APIVersion: "v1beta"}, candidates[0])
		assert.Equal(t, entity.CompletionCandidate{Model: "gemini-2.0-flash", APIVersion: "v1"}, candidates[1])
		assert.Equal(t, entity.CompletionCandidate{Model: "gemini-1.5-pro", APIVersion: "v1"}, candidates[7])
	})

	t.Run("preferred model prepended with latest variant", func(t *testing.T) {
		candidates := BuildCandidates("gemini-exp")
		require.Len(t, candidates, 12)
		assert.Equal(t, "gemini-exp", candidates[0].Model)
		assert.Equal(t, "v1beta", candidates[0].APIVersion)
		assert.Equal(t, "gemini-exp-latest", candidates[2].Model)
		assert.Equal(t, "gemini-2.0-flash", candidates[4].Model)
	})

	t.Run("preferred already latest gets no extra variant", func(t *testing.T) {
		candidates := BuildCandidates("gemini-exp-latest")
		require.Len(t, candidates, 10)
		assert.Equal(t, "gemini-exp-latest", candidates[0].Model)
		assert.Equal(t, "gemini-2.0-flash", candidates[2].Model)
	})

	t.Run("preferred overlapping defaults is deduplicated", func(t *testing.T) {
		candidates := BuildCandidates("gemini-1.5-flash")
		require.Len(t, candidates, 8)
		assert.Equal(t, "gemini-1.5-flash", candidates[0].Model)
		assert.Equal(t, "gemini-1.5-flash-latest", candidates[2].Model)
		assert.Equal(t, "gemini-2.0-flash", candidates[4].Model)
		assert.Equal(t, "gemini-1.5-pro", candidates[6].Model)
	})
}

func TestCompleteAdvancesPast404(t *testing.T) {
	repo := &fakeCompletionRepo{
		attempts: []*entity.CompletionAttempt{
			{Success: false, HTTPStatus: 404, Body: "model not found"},
			{Success: false, HTTPStatus: 404, Body: "model not found"},
			{Success: true, Text: "OK"},
		},
	}
	o := NewCompletionOrchestrator(repo, logger.NewNopLogger(), nil)

	text, candidate, err := o.Complete(context.Background(), "key", "", "prompt")
	require.NoError(t, err)
	assert.Equal(t, "OK", text)
	assert.Len(t, repo.calls, 3)

	// The reported candidate is the one that answered, not the first tried.
	assert.Equal(t, repo.calls[2], candidate)
	assert.Equal(t, "gemini-1.5-flash", candidate.Model)
	assert.Equal(t, "v1beta", candidate.APIVersion)
}

func TestCompleteAdvancesPastUnsupportedBody(t *testing.T) {
	repo := &fakeCompletionRepo{
		attempts: []*entity.CompletionAttempt{
			{Success: false, HTTPStatus: 400, Body: "this model is not supported on v1beta"},
			{Success: true, Text: "fine"},
		},
	}
	o := NewCompletionOrchestrator(repo, logger.NewNopLogger(), nil)

	text, candidate, err := o.Complete(context.Background(), "key", "", "prompt")
	require.NoError(t, err)
	assert.Equal(t, "fine", text)
	assert.Len(t, repo.calls, 2)
	assert.Equal(t, repo.calls[1], candidate)
}

func TestCompleteExhaustionCarriesLastFailure(t *testing.T) {
	attempts := make([]*entity.CompletionAttempt, 8)
	for i := range attempts {
		attempts[i] = &entity.CompletionAttempt{Success: false, HTTPStatus: 404, Body: "not found"}
	}
	// The final candidate fails differently; its status and body must be
	// the ones surfaced.
	attempts[7] = &entity.CompletionAttempt{Success: false, HTTPStatus: 429, Body: "quota exceeded"}

	repo := &fakeCompletionRepo{attempts: attempts}
	o := NewCompletionOrchestrator(repo, logger.NewNopLogger(), nil)

	_, _, err := o.Complete(context.Background(), "key", "", "prompt")
	require.Error(t, err)
	assert.Len(t, repo.calls, 8)

	var exhausted *entity.CompletionExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 429, exhausted.HTTPStatus)
	assert.Equal(t, "quota exceeded", exhausted.Body)
}

func TestCompleteTransientFailureStillAdvances(t *testing.T) {
	repo := &fakeCompletionRepo{
		attempts: []*entity.CompletionAttempt{
			{Success: false, HTTPStatus: 503, Body: "temporarily overloaded"},
			{Success: true, Text: "recovered"},
		},
	}
	o := NewCompletionOrchestrator(repo, logger.NewNopLogger(), nil)

	text, candidate, err := o.Complete(context.Background(), "key", "", "prompt")
	require.NoError(t, err)
	assert.Equal(t, "recovered", text)
	assert.Len(t, repo.calls, 2)
	assert.Equal(t, repo.calls[1], candidate)
}

func TestCompleteAbortsWithoutCredentials(t *testing.T) {
	repo := &fakeCompletionRepo{
		errs: []error{entity.ErrNoCredentials},
	}
	o := NewCompletionOrchestrator(repo, logger.NewNopLogger(), nil)

	_, _, err := o.Complete(context.Background(), "", "", "prompt")
	require.ErrorIs(t, err, entity.ErrNoCredentials)
	assert.Len(t, repo.calls, 1)
}

func TestCompleteHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := &fakeCompletionRepo{}
	o := NewCompletionOrchestrator(repo, logger.NewNopLogger(), nil)

	_, _, err := o.Complete(ctx, "key", "", "prompt")
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, repo.calls)
}
