package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dstreit/einbuerger-api/internal/domain"
	"github.com/dstreit/einbuerger-api/internal/platform/logger"
	"github.com/dstreit/einbuerger-api/internal/store"
)

// QuestionService manages the citizenship exam question bank.
type QuestionService interface {
	// Create stores a new question built from the given fields.
	Create(ctx context.Context, fields domain.QuestionFields) (*domain.Question, error)

	// Get retrieves a question by ID. Returns ErrQuestionNotFound if absent.
	Get(ctx context.Context, id uuid.UUID) (*domain.Question, error)

	// List returns questions matching the filter, newest first.
	List(ctx context.Context, filter store.QuestionFilter) ([]*domain.Question, error)

	// Update applies the non-empty fields to an existing question.
	Update(ctx context.Context, id uuid.UUID, fields domain.QuestionFields) (*domain.Question, error)

	// Delete removes a question. Returns ErrQuestionNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// RecordAnswer appends a study record for an answered question. The
	// question bank has no scheduling; this only feeds the audit log.
	RecordAnswer(ctx context.Context, questionID uuid.UUID, isCorrect bool) error

	// Stats returns aggregate question bank counts.
	Stats(ctx context.Context) (*store.QuestionStats, error)
}

type questionService struct {
	questionStore store.QuestionStore
	recordStore   store.StudyRecordStore
	logger        *slog.Logger
	now           func() time.Time
}

var _ QuestionService = (*questionService)(nil)

// NewQuestionService creates a QuestionService backed by the given stores.
func NewQuestionService(
	questionStore store.QuestionStore,
	recordStore store.StudyRecordStore,
	log *slog.Logger,
) QuestionService {
	if questionStore == nil {
		panic("questionStore cannot be nil")
	}
	if recordStore == nil {
		panic("recordStore cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &questionService{
		questionStore: questionStore,
		recordStore:   recordStore,
		logger:        log.With(slog.String("component", "question_service")),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Create implements QuestionService.Create.
func (s *questionService) Create(ctx context.Context, fields domain.QuestionFields) (*domain.Question, error) {
	question, err := domain.NewQuestion(fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	if err := s.questionStore.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return question, nil
}

// Get implements QuestionService.Get.
func (s *questionService) Get(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	question, err := s.questionStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrQuestionNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return question, nil
}

// List implements QuestionService.List.
func (s *questionService) List(ctx context.Context, filter store.QuestionFilter) ([]*domain.Question, error) {
	questions, err := s.questionStore.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

// Update implements QuestionService.Update.
func (s *questionService) Update(
	ctx context.Context,
	id uuid.UUID,
	fields domain.QuestionFields,
) (*domain.Question, error) {
	question, err := s.questionStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrQuestionNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to load question: %w", err)
	}

	if err := question.Update(fields); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	if err := s.questionStore.Update(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}
	return question, nil
}

// Delete implements QuestionService.Delete.
func (s *questionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.questionStore.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrQuestionNotFound) {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("failed to delete question: %w", err)
	}
	return nil
}

// RecordAnswer implements QuestionService.RecordAnswer.
func (s *questionService) RecordAnswer(ctx context.Context, questionID uuid.UUID, isCorrect bool) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.questionStore.GetByID(ctx, questionID); err != nil {
		if errors.Is(err, store.ErrQuestionNotFound) {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("failed to load question: %w", err)
	}

	record, err := domain.NewQuestionStudyRecord(questionID, isCorrect, s.now())
	if err != nil {
		return fmt.Errorf("failed to build study record: %w", err)
	}
	if err := s.recordStore.Append(ctx, record); err != nil {
		return fmt.Errorf("failed to append study record: %w", err)
	}

	log.Debug("question answer recorded",
		slog.String("question_id", questionID.String()),
		slog.Bool("is_correct", isCorrect))
	return nil
}

// Stats implements QuestionService.Stats.
func (s *questionService) Stats(ctx context.Context) (*store.QuestionStats, error) {
	stats, err := s.questionStore.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get question stats: %w", err)
	}
	return stats, nil
}
