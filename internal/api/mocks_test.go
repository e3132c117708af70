package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/dstreit/einbuerger-api/internal/domain"
	"github.com/dstreit/einbuerger-api/internal/service"
	"github.com/dstreit/einbuerger-api/internal/service/review"
	"github.com/dstreit/einbuerger-api/internal/store"
)

// mockVocabularyService implements service.VocabularyService with function
// fields, so each test wires only the calls it expects.
type mockVocabularyService struct {
	upsertFn func(ctx context.Context, fields domain.VocabularyFields) (*domain.VocabularyEntry, bool, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*domain.VocabularyEntry, error)
	listFn   func(ctx context.Context, filter store.VocabularyFilter) ([]*domain.VocabularyEntry, error)
	updateFn func(ctx context.Context, id uuid.UUID, fields domain.VocabularyFields) (*domain.VocabularyEntry, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
	statsFn  func(ctx context.Context) (*store.VocabularyStats, error)
}

var _ service.VocabularyService = (*mockVocabularyService)(nil)

func (m *mockVocabularyService) Upsert(
	ctx context.Context,
	fields domain.VocabularyFields,
) (*domain.VocabularyEntry, bool, error) {
	return m.upsertFn(ctx, fields)
}

func (m *mockVocabularyService) Get(ctx context.Context, id uuid.UUID) (*domain.VocabularyEntry, error) {
	return m.getFn(ctx, id)
}

func (m *mockVocabularyService) List(
	ctx context.Context,
	filter store.VocabularyFilter,
) ([]*domain.VocabularyEntry, error) {
	return m.listFn(ctx, filter)
}

func (m *mockVocabularyService) Update(
	ctx context.Context,
	id uuid.UUID,
	fields domain.VocabularyFields,
) (*domain.VocabularyEntry, error) {
	return m.updateFn(ctx, id, fields)
}

func (m *mockVocabularyService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func (m *mockVocabularyService) Stats(ctx context.Context) (*store.VocabularyStats, error) {
	return m.statsFn(ctx)
}

// mockReviewService implements review.ReviewService.
type mockReviewService struct {
	recordOutcomeFn func(ctx context.Context, vocabularyID uuid.UUID, isCorrect bool) (*domain.VocabularyEntry, error)
	getDueFn        func(ctx context.Context, limit int) ([]*domain.VocabularyEntry, error)
	historyFn       func(ctx context.Context, vocabularyID uuid.UUID, limit int) ([]*domain.StudyRecord, error)
}

var _ review.ReviewService = (*mockReviewService)(nil)

func (m *mockReviewService) RecordOutcome(
	ctx context.Context,
	vocabularyID uuid.UUID,
	isCorrect bool,
) (*domain.VocabularyEntry, error) {
	return m.recordOutcomeFn(ctx, vocabularyID, isCorrect)
}

func (m *mockReviewService) GetDueEntries(ctx context.Context, limit int) ([]*domain.VocabularyEntry, error) {
	return m.getDueFn(ctx, limit)
}

func (m *mockReviewService) History(
	ctx context.Context,
	vocabularyID uuid.UUID,
	limit int,
) ([]*domain.StudyRecord, error) {
	return m.historyFn(ctx, vocabularyID, limit)
}
