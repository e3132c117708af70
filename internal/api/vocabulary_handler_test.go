package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstreit/einbuerger-api/internal/domain"
	"github.com/dstreit/einbuerger-api/internal/service"
	"github.com/dstreit/einbuerger-api/internal/service/review"
	"github.com/dstreit/einbuerger-api/internal/store"
)

func newVocabularyRouter(
	vocabService service.VocabularyService,
	reviewService *mockReviewService,
) http.Handler {
	handler := NewVocabularyHandler(
		vocabService,
		reviewService,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	r := chi.NewRouter()
	r.Get("/vocabulary", handler.List)
	r.Post("/vocabulary", handler.Upsert)
	r.Get("/vocabulary/due", handler.Due)
	r.Get("/vocabulary/stats", handler.Stats)
	r.Get("/vocabulary/{id}", handler.Get)
	r.Put("/vocabulary/{id}", handler.Update)
	r.Delete("/vocabulary/{id}", handler.Delete)
	r.Post("/vocabulary/{id}/review", handler.RecordReview)
	r.Get("/vocabulary/{id}/records", handler.Records)
	return r
}

func unusedReviewService() *mockReviewService {
	return &mockReviewService{}
}

func TestUpsertHandlerCreates(t *testing.T) {
	t.Parallel()

	entry, err := domain.NewVocabularyEntry(domain.VocabularyFields{Word: "Gerechtigkeit"})
	require.NoError(t, err)

	vocabService := &mockVocabularyService{
		upsertFn: func(ctx context.Context, fields domain.VocabularyFields) (*domain.VocabularyEntry, bool, error) {
			assert.Equal(t, "Gerechtigkeit", fields.Word)
			return entry, true, nil
		},
	}
	router := newVocabularyRouter(vocabService, unusedReviewService())

	body := bytes.NewBufferString(`{"word":"Gerechtigkeit"}`)
	req := httptest.NewRequest(http.MethodPost, "/vocabulary", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp UpsertResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Created)
	assert.Equal(t, "Gerechtigkeit", resp.Entry.Word)
}

func TestUpsertHandlerMergeReturnsOK(t *testing.T) {
	t.Parallel()

	entry, err := domain.NewVocabularyEntry(domain.VocabularyFields{Word: "Freiheit"})
	require.NoError(t, err)

	vocabService := &mockVocabularyService{
		upsertFn: func(ctx context.Context, fields domain.VocabularyFields) (*domain.VocabularyEntry, bool, error) {
			return entry, false, nil
		},
	}
	router := newVocabularyRouter(vocabService, unusedReviewService())

	req := httptest.NewRequest(http.MethodPost, "/vocabulary", bytes.NewBufferString(`{"word":"Freiheit"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, "a merge is 200, not 201")
}

func TestUpsertHandlerRejectsMissingWord(t *testing.T) {
	t.Parallel()

	router := newVocabularyRouter(&mockVocabularyService{}, unusedReviewService())

	req := httptest.NewRequest(http.MethodPost, "/vocabulary", bytes.NewBufferString(`{"translation":"x"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpsertHandlerRejectsBadDifficulty(t *testing.T) {
	t.Parallel()

	router := newVocabularyRouter(&mockVocabularyService{}, unusedReviewService())

	body := bytes.NewBufferString(`{"word":"Haus","difficulty":"Z9"}`)
	req := httptest.NewRequest(http.MethodPost, "/vocabulary", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetHandlerNotFound(t *testing.T) {
	t.Parallel()

	vocabService := &mockVocabularyService{
		getFn: func(ctx context.Context, id uuid.UUID) (*domain.VocabularyEntry, error) {
			return nil, service.ErrVocabularyNotFound
		},
	}
	router := newVocabularyRouter(vocabService, unusedReviewService())

	req := httptest.NewRequest(http.MethodGet, "/vocabulary/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Vocabulary entry not found", resp["error"])
}

func TestGetHandlerMalformedID(t *testing.T) {
	t.Parallel()

	router := newVocabularyRouter(&mockVocabularyService{}, unusedReviewService())

	req := httptest.NewRequest(http.MethodGet, "/vocabulary/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListHandlerParsesFilter(t *testing.T) {
	t.Parallel()

	var gotFilter store.VocabularyFilter
	vocabService := &mockVocabularyService{
		listFn: func(ctx context.Context, filter store.VocabularyFilter) ([]*domain.VocabularyEntry, error) {
			gotFilter = filter
			return []*domain.VocabularyEntry{}, nil
		},
	}
	router := newVocabularyRouter(vocabService, unusedReviewService())

	req := httptest.NewRequest(http.MethodGet, "/vocabulary?difficulty=B2&limit=5&offset=10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotFilter.Difficulty)
	assert.Equal(t, domain.DifficultyB2, *gotFilter.Difficulty)
	assert.Equal(t, 5, gotFilter.Limit)
	assert.Equal(t, 10, gotFilter.Offset)
}

func TestListHandlerRejectsBadDifficulty(t *testing.T) {
	t.Parallel()

	router := newVocabularyRouter(&mockVocabularyService{}, unusedReviewService())

	req := httptest.NewRequest(http.MethodGet, "/vocabulary?difficulty=expert", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDueHandler(t *testing.T) {
	t.Parallel()

	var gotLimit int
	reviewService := &mockReviewService{
		getDueFn: func(ctx context.Context, limit int) ([]*domain.VocabularyEntry, error) {
			gotLimit = limit
			return []*domain.VocabularyEntry{
				{ID: uuid.New(), Word: "Wohnung", Difficulty: domain.DifficultyA2},
			}, nil
		},
	}
	router := newVocabularyRouter(&mockVocabularyService{}, reviewService)

	req := httptest.NewRequest(http.MethodGet, "/vocabulary/due?limit=3", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, gotLimit)

	var entries []*domain.VocabularyEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Wohnung", entries[0].Word)
}

func TestDueHandlerDefaultLimit(t *testing.T) {
	t.Parallel()

	var gotLimit int
	reviewService := &mockReviewService{
		getDueFn: func(ctx context.Context, limit int) ([]*domain.VocabularyEntry, error) {
			gotLimit = limit
			return nil, nil
		},
	}
	router := newVocabularyRouter(&mockVocabularyService{}, reviewService)

	req := httptest.NewRequest(http.MethodGet, "/vocabulary/due", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 20, gotLimit)
}

func TestRecordReviewHandler(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	entry := &domain.VocabularyEntry{ID: id, Word: "Verfassung", Difficulty: domain.DifficultyB1, ReviewCount: 1}

	reviewService := &mockReviewService{
		recordOutcomeFn: func(ctx context.Context, vocabularyID uuid.UUID, isCorrect bool) (*domain.VocabularyEntry, error) {
			assert.Equal(t, id, vocabularyID)
			assert.False(t, isCorrect)
			return entry, nil
		},
	}
	router := newVocabularyRouter(&mockVocabularyService{}, reviewService)

	body := bytes.NewBufferString(`{"is_correct":false}`)
	req := httptest.NewRequest(http.MethodPost, "/vocabulary/"+id.String()+"/review", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got domain.VocabularyEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 1, got.ReviewCount)
}

func TestRecordReviewHandlerRequiresIsCorrect(t *testing.T) {
	t.Parallel()

	router := newVocabularyRouter(&mockVocabularyService{}, unusedReviewService())

	req := httptest.NewRequest(http.MethodPost, "/vocabulary/"+uuid.NewString()+"/review",
		bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code,
		"a missing is_correct must not default to false")
}

func TestRecordsHandler(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	history := []*domain.StudyRecord{
		{ID: uuid.New(), VocabularyID: &id, IsCorrect: true, ReviewDate: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)},
	}
	reviewService := &mockReviewService{
		historyFn: func(ctx context.Context, gotID uuid.UUID, limit int) ([]*domain.StudyRecord, error) {
			assert.Equal(t, id, gotID)
			assert.Equal(t, 5, limit)
			return history, nil
		},
	}
	router := newVocabularyRouter(&mockVocabularyService{}, reviewService)

	req := httptest.NewRequest(http.MethodGet, "/vocabulary/"+id.String()+"/records?limit=5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []*domain.StudyRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, history[0].ID, got[0].ID)
	assert.True(t, got[0].IsCorrect)
}

func TestRecordsHandlerNotFound(t *testing.T) {
	t.Parallel()

	reviewService := &mockReviewService{
		historyFn: func(ctx context.Context, gotID uuid.UUID, limit int) ([]*domain.StudyRecord, error) {
			return nil, review.ErrVocabularyNotFound
		},
	}
	router := newVocabularyRouter(&mockVocabularyService{}, reviewService)

	req := httptest.NewRequest(http.MethodGet, "/vocabulary/"+uuid.NewString()+"/records", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteHandler(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	vocabService := &mockVocabularyService{
		deleteFn: func(ctx context.Context, gotID uuid.UUID) error {
			assert.Equal(t, id, gotID)
			return nil
		},
	}
	router := newVocabularyRouter(vocabService, unusedReviewService())

	req := httptest.NewRequest(http.MethodDelete, "/vocabulary/"+id.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestStatsHandler(t *testing.T) {
	t.Parallel()

	vocabService := &mockVocabularyService{
		statsFn: func(ctx context.Context) (*store.VocabularyStats, error) {
			return &store.VocabularyStats{Total: 7, DueForReview: 2}, nil
		},
	}
	router := newVocabularyRouter(vocabService, unusedReviewService())

	req := httptest.NewRequest(http.MethodGet, "/vocabulary/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var stats store.VocabularyStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 7, stats.Total)
	assert.Equal(t, 2, stats.DueForReview)
}
