// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package tabeph

import (
	"errors"
	"fmt"
)

// Reasons a state lookup can fail. All of them mean "no usable ephemeris for this
// satellite at this epoch", so a batch process may skip the epoch and go on.
var (
	ErrNotFound               = errors.New("ephemeris not found")
	ErrInsufficientDataBefore = errors.New("inadequate data before requested time")
	ErrInsufficientDataAfter  = errors.New("inadequate data after requested time")
	ErrDataGapTooWide         = errors.New("data gap too wide")
	ErrIntervalTooWide        = errors.New("interpolation interval too wide")
)

// LookupError carries the satellite and epoch of a failed lookup
type LookupError struct {
	Err  error // One of the Err* kinds above
	Sat  SatType
	Time GTime
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: sat=%s, t=%s", e.Err.Error(), e.Sat, e.Time)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

func lookupError(kind error, sat SatType, t GTime) error {
	return &LookupError{Err: kind, Sat: sat, Time: t}
}

// IsMissingData reports whether err is an expected lookup failure rather than a bug
func IsMissingData(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInsufficientDataBefore) ||
		errors.Is(err, ErrInsufficientDataAfter) ||
		errors.Is(err, ErrDataGapTooWide) ||
		errors.Is(err, ErrIntervalTooWide)
}

// Label used in logs and metrics for a lookup outcome
func errorKind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInsufficientDataBefore):
		return "insufficient_before"
	case errors.Is(err, ErrInsufficientDataAfter):
		return "insufficient_after"
	case errors.Is(err, ErrDataGapTooWide):
		return "data_gap"
	case errors.Is(err, ErrIntervalTooWide):
		return "interval"
	default:
		return "other"
	}
}
