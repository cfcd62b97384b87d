package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irregops-service/internal/domain/entity"
	"irregops-service/pkg/logger"
)

// scriptedCompletionRepo answers extraction and translation prompts with
// fixed texts, succeeding on the first candidate. The extraction and
// translation sweeps run concurrently, hence the mutex.
type scriptedCompletionRepo struct {
	mu          sync.Mutex
	extraction  string
	translation string
	prompts     []string
}

func (s *scriptedCompletionRepo) Generate(ctx context.Context, candidate entity.CompletionCandidate, apiKey, prompt string) (*entity.CompletionAttempt, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()
	if strings.HasPrefix(prompt, "Translate") {
		return &entity.CompletionAttempt{Success: true, Text: s.translation}, nil
	}
	return &entity.CompletionAttempt{Success: true, Text: s.extraction}, nil
}

// memoryRecordRepo captures inserted records.
type memoryRecordRepo struct {
	inserted []*entity.DisruptionRecord
}

func (m *memoryRecordRepo) Insert(ctx context.Context, record *entity.DisruptionRecord) error {
	m.inserted = append(m.inserted, record)
	return nil
}

func (m *memoryRecordRepo) FindRecent(ctx context.Context, limit int) ([]*entity.DisruptionRecord, error) {
	return m.inserted, nil
}

func (m *memoryRecordRepo) FindByFlight(ctx context.Context, flightNumber, date string) ([]*entity.DisruptionRecord, error) {
	return nil, nil
}

func newTestProcessor(repo *scriptedCompletionRepo, recordRepo *memoryRecordRepo) *DisruptionProcessor {
	log := logger.NewNopLogger()
	orchestrator := NewCompletionOrchestrator(repo, log, nil)
	// A typed nil must not reach the interface-typed parameter.
	if recordRepo != nil {
		return NewDisruptionProcessor(orchestrator, nil, nil, recordRepo, "key", "", log, nil)
	}
	return NewDisruptionProcessor(orchestrator, nil, nil, nil, "key", "", log, nil)
}

func TestProcessAssemblesNormalizedRecord(t *testing.T) {
	completion := "```json\n" + `{
		"airline": "Mahan Air",
		"flightNumber": "W5 ` + "۱۱۵۲" + `",
		"date": "1404/07/26",
		"origin": "Tehran (IKA)",
		"destination": "MHD",
		"oldTime": "18.30",
		"newTime": "` + "۲۰:۱۵" + `"
	}` + "\n```"

	repo := &scriptedCompletionRepo{extraction: completion}
	records := &memoryRecordRepo{}
	p := newTestProcessor(repo, records)

	result, err := p.Process(context.Background(), &entity.ExtractRequest{Text: "some notice"})
	require.NoError(t, err)
	require.NotNil(t, result.Record)

	record := result.Record
	assert.Equal(t, "Mahan Air", record.Airline)
	assert.Equal(t, "W5 1152", record.FlightNumber)
	assert.Equal(t, "2025-10-18", record.Date)
	assert.Equal(t, "IKA", record.Origin)
	assert.Equal(t, "MHD", record.Destination)
	assert.Equal(t, "18:30", record.OldTime)
	assert.Equal(t, "20:15", record.NewTime)
	assert.Equal(t, entity.TypeDelay, record.Type)
	assert.Equal(t, "some notice", record.SourceText)
	assert.False(t, record.CreatedAt.IsZero())

	require.Len(t, records.inserted, 1)
	assert.Same(t, record, records.inserted[0])
}

func TestProcessResolvesFieldAliases(t *testing.T) {
	completion := `{"carrier": "Iran Air", "flight_no": "IR 452", "from": "THR", "to": "AWZ"}`
	repo := &scriptedCompletionRepo{extraction: completion}
	p := newTestProcessor(repo, nil)

	result, err := p.Process(context.Background(), &entity.ExtractRequest{Text: "notice"})
	require.NoError(t, err)

	assert.Equal(t, "Iran Air", result.Record.Airline)
	assert.Equal(t, "IR 452", result.Record.FlightNumber)
	assert.Equal(t, "THR", result.Record.Origin)
	assert.Equal(t, "AWZ", result.Record.Destination)
}

func TestProcessDegradesSoftlyOnGarbageCompletion(t *testing.T) {
	repo := &scriptedCompletionRepo{extraction: "I could not find any flight information."}
	p := newTestProcessor(repo, nil)

	result, err := p.Process(context.Background(), &entity.ExtractRequest{Text: "notice"})
	require.NoError(t, err)

	record := result.Record
	assert.Empty(t, record.FlightNumber)
	assert.Empty(t, record.Date)
	assert.Empty(t, record.Type)
	assert.Equal(t, "notice", record.SourceText)
}

func TestProcessLeavesUnresolvableDateAbsent(t *testing.T) {
	completion := `{"flightNumber": "W5 1152", "date": "1750/05/05"}`
	repo := &scriptedCompletionRepo{extraction: completion}
	p := newTestProcessor(repo, nil)

	result, err := p.Process(context.Background(), &entity.ExtractRequest{Text: "notice"})
	require.NoError(t, err)

	assert.Equal(t, "W5 1152", result.Record.FlightNumber)
	assert.Empty(t, result.Record.Date)
}

func TestProcessWithTranslation(t *testing.T) {
	repo := &scriptedCompletionRepo{
		extraction:  `{"flightNumber": "W5 1152"}`,
		translation: "  Flight W5 1152 is delayed.  ",
	}
	p := newTestProcessor(repo, nil)

	result, err := p.Process(context.Background(), &entity.ExtractRequest{
		Text: "notice",
		Mode: entity.ModeExtractTranslate,
	})
	require.NoError(t, err)

	assert.Equal(t, "Flight W5 1152 is delayed.", result.Record.TranslatedText)
	assert.Len(t, repo.prompts, 2)
}

// fakeAirportRepo serves a fixed reference table keyed by code and city.
type fakeAirportRepo struct {
	byCode map[string]*entity.Airport
	byCity map[string]*entity.Airport
}

func (f *fakeAirportRepo) GetByCode(ctx context.Context, code string) (*entity.Airport, error) {
	if a, ok := f.byCode[code]; ok {
		return a, nil
	}
	return nil, errors.New("record not found")
}

func (f *fakeAirportRepo) FindByName(ctx context.Context, name string) (*entity.Airport, error) {
	if a, ok := f.byCity[name]; ok {
		return a, nil
	}
	return nil, errors.New("record not found")
}

func TestProcessConsultsAirportReferenceTable(t *testing.T) {
	completion := `{"origin": "Tehran (IKA)", "destination": "Mashhad", "flightNumber": "W5 1152", "newTime": "20:00"}`
	repo := &scriptedCompletionRepo{extraction: completion}
	log := logger.NewNopLogger()
	airports := &fakeAirportRepo{
		byCode: map[string]*entity.Airport{"IKA": {Code: "IKA", CityName: "Tehran"}},
		byCity: map[string]*entity.Airport{"Mashhad": {Code: "MHD", CityName: "Mashhad"}},
	}
	p := NewDisruptionProcessor(NewCompletionOrchestrator(repo, log, nil), airports, nil, nil, "key", "", log, nil)

	result, err := p.Process(context.Background(), &entity.ExtractRequest{Text: "notice"})
	require.NoError(t, err)

	assert.Equal(t, "IKA", result.Record.Origin)
	assert.Equal(t, "MHD", result.Record.Destination)
}

func TestProcessKeepsCodeMissingFromReferenceTable(t *testing.T) {
	completion := `{"origin": "ZZZ", "newTime": "20:00"}`
	repo := &scriptedCompletionRepo{extraction: completion}
	log := logger.NewNopLogger()
	airports := &fakeAirportRepo{}
	p := NewDisruptionProcessor(NewCompletionOrchestrator(repo, log, nil), airports, nil, nil, "key", "", log, nil)

	result, err := p.Process(context.Background(), &entity.ExtractRequest{Text: "notice"})
	require.NoError(t, err)

	// Resolution stays soft: an unlisted code passes through untouched.
	assert.Equal(t, "ZZZ", result.Record.Origin)
}

// fallbackCompletionRepo rejects a named model so the sweep has to fall
// through to a default candidate.
type fallbackCompletionRepo struct {
	rejected string
	text     string
}

func (f *fallbackCompletionRepo) Generate(ctx context.Context, candidate entity.CompletionCandidate, apiKey, prompt string) (*entity.CompletionAttempt, error) {
	if strings.HasPrefix(candidate.Model, f.rejected) {
		return &entity.CompletionAttempt{Success: false, HTTPStatus: 404, Body: "model not found"}, nil
	}
	return &entity.CompletionAttempt{Success: true, Text: f.text}, nil
}

func TestProcessRecordsWinningModel(t *testing.T) {
	repo := &fallbackCompletionRepo{
		rejected: "gemini-exp",
		text:     `{"flightNumber": "W5 1152"}`,
	}
	log := logger.NewNopLogger()
	records := &memoryRecordRepo{}
	p := NewDisruptionProcessor(NewCompletionOrchestrator(repo, log, nil), nil, nil, records, "key", "", log, nil)

	result, err := p.Process(context.Background(), &entity.ExtractRequest{
		Text:           "notice",
		PreferredModel: "gemini-exp",
	})
	require.NoError(t, err)

	// The preferred model and its -latest variant were refused; the record
	// must name the default candidate that answered.
	assert.Equal(t, "gemini-2.0-flash", result.Record.Model)
	require.Len(t, records.inserted, 1)
	assert.Equal(t, "gemini-2.0-flash", records.inserted[0].Model)
}

func TestProcessRejectsEmptyText(t *testing.T) {
	p := newTestProcessor(&scriptedCompletionRepo{}, nil)

	_, err := p.Process(context.Background(), &entity.ExtractRequest{Text: "   "})
	require.ErrorIs(t, err, entity.ErrEmptyText)
}

func TestTranslateOnly(t *testing.T) {
	repo := &scriptedCompletionRepo{translation: "Flight cancelled."}
	p := newTestProcessor(repo, nil)

	result, err := p.Translate(context.Background(), &entity.ExtractRequest{
		Text: "پرواز لغو شد",
		Mode: entity.ModeTranslate,
	})
	require.NoError(t, err)

	assert.Equal(t, "Flight cancelled.", result.Record.TranslatedText)
	assert.Empty(t, result.Record.FlightNumber)
	assert.Len(t, repo.prompts, 1)
}

func TestTranslateRejectsEmptyText(t *testing.T) {
	p := newTestProcessor(&scriptedCompletionRepo{}, nil)

	_, err := p.Translate(context.Background(), &entity.ExtractRequest{Text: ""})
	require.ErrorIs(t, err, entity.ErrEmptyText)
}
