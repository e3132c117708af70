// Package srs implements the spaced-repetition scheduling algorithm for
// vocabulary reviews: a fixed ascending interval table keyed off the review
// count, with a flat one-day reset on lapses. Intentionally simpler than
// statistical models like SM-2; there are no ease factors.
package srs

import (
	"sort"
	"time"

	"github.com/dstreit/einbuerger-api/internal/domain"
)

// calculateNextInterval returns the number of days until the next review.
//
// reviewCount is the entry's counter AFTER the current review has been
// counted, so the first correct review (count 1) lands on Intervals[0].
// Correct outcomes walk the table and cap at its last value; an incorrect
// outcome always resets to the lapse interval without consulting history.
func calculateNextInterval(reviewCount int, isCorrect bool, params *Params) int {
	if !isCorrect {
		return params.LapseIntervalDays
	}

	index := reviewCount - 1
	if index < 0 {
		index = 0
	}
	if index > len(params.Intervals)-1 {
		index = len(params.Intervals) - 1
	}
	return params.Intervals[index]
}

// Schedule computes the post-review state of a vocabulary entry without
// mutating the input. It returns a copy with LastReviewed set to now,
// ReviewCount incremented by one, and NextReview pushed out by the interval
// the table dictates for the outcome.
func Schedule(entry *domain.VocabularyEntry, isCorrect bool, now time.Time, params *Params) *domain.VocabularyEntry {
	updated := *entry

	updated.LastReviewed = &now
	updated.ReviewCount = entry.ReviewCount + 1

	days := calculateNextInterval(updated.ReviewCount, isCorrect, params)
	next := now.AddDate(0, 0, days)
	updated.NextReview = &next

	return &updated
}

// SortDueOrder orders due entries for retrieval: ascending by LastReviewed
// with never-reviewed entries first. This surfaces genuinely new words ahead
// of merely-overdue ones. The sort is stable so equal timestamps keep their
// incoming order. The Postgres store expresses the same ordering as
// ORDER BY last_reviewed ASC NULLS FIRST.
func SortDueOrder(entries []*domain.VocabularyEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].LastReviewed, entries[j].LastReviewed
		switch {
		case a == nil && b == nil:
			return false
		case a == nil:
			return true
		case b == nil:
			return false
		default:
			return a.Before(*b)
		}
	})
}

// FilterDue returns the entries due for review at now, in due-selection order,
// truncated to limit. A limit <= 0 yields an empty result. The primary due
// query lives in the store; this mirror exists for in-memory callers and makes
// the selection contract independently testable.
func FilterDue(entries []*domain.VocabularyEntry, now time.Time, limit int) []*domain.VocabularyEntry {
	if limit <= 0 {
		return nil
	}

	due := make([]*domain.VocabularyEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDue(now) {
			due = append(due, entry)
		}
	}
	SortDueOrder(due)

	if len(due) > limit {
		due = due[:limit]
	}
	return due
}
