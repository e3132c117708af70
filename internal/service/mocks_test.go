package service

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dstreit/einbuerger-api/internal/domain"
	"github.com/dstreit/einbuerger-api/internal/store"
)

// memVocabularyStore is an in-memory store.VocabularyStore for service tests.
// It enforces the same uniqueness and not-found contracts as the Postgres
// implementation.
type memVocabularyStore struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*domain.VocabularyEntry

	// createErrOnce, when set, is returned by the next Create call and then
	// cleared. Used to simulate a concurrent insert racing past the lookup.
	createErrOnce error
	onCreateRace  func()

	// onWordLock, when set, runs once at the start of the next
	// GetByWordForUpdate call, while the store mutex is held. It models a
	// concurrent writer the row lock forced to commit before our snapshot.
	onWordLock func()
}

var _ store.VocabularyStore = (*memVocabularyStore)(nil)

func newMemVocabularyStore() *memVocabularyStore {
	return &memVocabularyStore{entries: make(map[uuid.UUID]*domain.VocabularyEntry)}
}

func cloneEntry(e *domain.VocabularyEntry) *domain.VocabularyEntry {
	c := *e
	return &c
}

func (m *memVocabularyStore) Create(ctx context.Context, entry *domain.VocabularyEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createErrOnce != nil {
		err := m.createErrOnce
		m.createErrOnce = nil
		if m.onCreateRace != nil {
			m.onCreateRace()
		}
		return err
	}

	for _, existing := range m.entries {
		if existing.Word == entry.Word {
			return store.ErrWordExists
		}
	}
	m.entries[entry.ID] = cloneEntry(entry)
	return nil
}

func (m *memVocabularyStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.VocabularyEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[id]
	if !ok {
		return nil, store.ErrVocabularyNotFound
	}
	return cloneEntry(entry), nil
}

func (m *memVocabularyStore) GetByWord(ctx context.Context, word string) (*domain.VocabularyEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, entry := range m.entries {
		if entry.Word == word {
			return cloneEntry(entry), nil
		}
	}
	return nil, store.ErrVocabularyNotFound
}

func (m *memVocabularyStore) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.VocabularyEntry, error) {
	return m.GetByID(ctx, id)
}

func (m *memVocabularyStore) GetByWordForUpdate(ctx context.Context, word string) (*domain.VocabularyEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.onWordLock != nil {
		hook := m.onWordLock
		m.onWordLock = nil
		hook()
	}

	for _, entry := range m.entries {
		if entry.Word == word {
			return cloneEntry(entry), nil
		}
	}
	return nil, store.ErrVocabularyNotFound
}

func (m *memVocabularyStore) Update(ctx context.Context, entry *domain.VocabularyEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[entry.ID]; !ok {
		return store.ErrVocabularyNotFound
	}
	m.entries[entry.ID] = cloneEntry(entry)
	return nil
}

func (m *memVocabularyStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[id]; !ok {
		return store.ErrVocabularyNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *memVocabularyStore) List(ctx context.Context, filter store.VocabularyFilter) ([]*domain.VocabularyEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*domain.VocabularyEntry
	for _, entry := range m.entries {
		if filter.Difficulty != nil && entry.Difficulty != *filter.Difficulty {
			continue
		}
		out = append(out, cloneEntry(entry))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memVocabularyStore) FindDue(ctx context.Context, limit int, now time.Time) ([]*domain.VocabularyEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var due []*domain.VocabularyEntry
	for _, entry := range m.entries {
		if entry.IsDue(now) {
			due = append(due, cloneEntry(entry))
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		a, b := due[i].LastReviewed, due[j].LastReviewed
		if a == nil {
			return b != nil
		}
		if b == nil {
			return false
		}
		return a.Before(*b)
	})
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (m *memVocabularyStore) Stats(ctx context.Context, now time.Time) (*store.VocabularyStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := &store.VocabularyStats{}
	for _, entry := range m.entries {
		stats.Total++
		switch entry.Difficulty {
		case domain.DifficultyA1:
			stats.A1++
		case domain.DifficultyA2:
			stats.A2++
		case domain.DifficultyB1:
			stats.B1++
		case domain.DifficultyB2:
			stats.B2++
		case domain.DifficultyC1:
			stats.C1++
		}
		if entry.IsDue(now) {
			stats.DueForReview++
		}
	}
	return stats, nil
}

func (m *memVocabularyStore) WithTx(tx *sql.Tx) store.VocabularyStore { return m }

// memQuestionStore is an in-memory store.QuestionStore.
type memQuestionStore struct {
	mu        sync.Mutex
	questions map[uuid.UUID]*domain.Question
}

var _ store.QuestionStore = (*memQuestionStore)(nil)

func newMemQuestionStore() *memQuestionStore {
	return &memQuestionStore{questions: make(map[uuid.UUID]*domain.Question)}
}

func cloneQuestion(q *domain.Question) *domain.Question {
	c := *q
	return &c
}

func (m *memQuestionStore) Create(ctx context.Context, question *domain.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.questions[question.ID] = cloneQuestion(question)
	return nil
}

func (m *memQuestionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	question, ok := m.questions[id]
	if !ok {
		return nil, store.ErrQuestionNotFound
	}
	return cloneQuestion(question), nil
}

func (m *memQuestionStore) Update(ctx context.Context, question *domain.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.questions[question.ID]; !ok {
		return store.ErrQuestionNotFound
	}
	m.questions[question.ID] = cloneQuestion(question)
	return nil
}

func (m *memQuestionStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.questions[id]; !ok {
		return store.ErrQuestionNotFound
	}
	delete(m.questions, id)
	return nil
}

func (m *memQuestionStore) List(ctx context.Context, filter store.QuestionFilter) ([]*domain.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*domain.Question
	for _, question := range m.questions {
		if filter.Category != "" && question.Category != filter.Category {
			continue
		}
		if filter.Difficulty != "" && question.Difficulty != filter.Difficulty {
			continue
		}
		out = append(out, cloneQuestion(question))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memQuestionStore) Stats(ctx context.Context) (*store.QuestionStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := &store.QuestionStats{}
	for _, question := range m.questions {
		stats.Total++
		if question.Category != "" {
			stats.Categorized++
		}
		switch question.Difficulty {
		case domain.QuestionEasy:
			stats.Easy++
		case domain.QuestionMedium:
			stats.Medium++
		case domain.QuestionHard:
			stats.Hard++
		}
	}
	return stats, nil
}

func (m *memQuestionStore) WithTx(tx *sql.Tx) store.QuestionStore { return m }

// memStudyRecordStore is an append-only in-memory store.StudyRecordStore.
type memStudyRecordStore struct {
	mu      sync.Mutex
	records []*domain.StudyRecord
}

var _ store.StudyRecordStore = (*memStudyRecordStore)(nil)

func newMemStudyRecordStore() *memStudyRecordStore {
	return &memStudyRecordStore{}
}

func (m *memStudyRecordStore) Append(ctx context.Context, record *domain.StudyRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *record
	m.records = append(m.records, &c)
	return nil
}

func (m *memStudyRecordStore) ListByVocabulary(
	ctx context.Context,
	vocabularyID uuid.UUID,
	limit int,
) ([]*domain.StudyRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*domain.StudyRecord
	for i := len(m.records) - 1; i >= 0; i-- {
		record := m.records[i]
		if record.VocabularyID != nil && *record.VocabularyID == vocabularyID {
			c := *record
			out = append(out, &c)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memStudyRecordStore) WithTx(tx *sql.Tx) store.StudyRecordStore { return m }
