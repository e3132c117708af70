package srs

import "errors"

// Params configures the review scheduler.
//
// Intervals is the ascending table of review gaps in whole days. After the
// N-th consecutive correct review the entry is scheduled Intervals[min(N-1,
// len-1)] days out, so the table caps at its last value. LapseIntervalDays is
// the gap applied after any incorrect review, regardless of history.
type Params struct {
	Intervals         []int
	LapseIntervalDays int
}

// Params validation errors.
var (
	ErrEmptyIntervals    = errors.New("interval table cannot be empty")
	ErrNonPositiveDays   = errors.New("interval days must be positive")
	ErrUnorderedInterval = errors.New("interval table must be ascending")
)

// NewDefaultParams returns the stock scheduling parameters: the
// [1, 3, 7, 14, 30, 90] day table with a one-day lapse interval. These values
// define the long-run review cadence and are relied on by callers; override
// them only through explicit configuration.
func NewDefaultParams() *Params {
	return &Params{
		Intervals:         []int{1, 3, 7, 14, 30, 90},
		LapseIntervalDays: 1,
	}
}

// Validate checks the params for internal consistency.
func (p *Params) Validate() error {
	if len(p.Intervals) == 0 {
		return ErrEmptyIntervals
	}
	if p.LapseIntervalDays <= 0 {
		return ErrNonPositiveDays
	}
	prev := 0
	for _, days := range p.Intervals {
		if days <= 0 {
			return ErrNonPositiveDays
		}
		if days < prev {
			return ErrUnorderedInterval
		}
		prev = days
	}
	return nil
}
