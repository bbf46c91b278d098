package types

import (
	"errors"
	"fmt"
)

// Input errors. Both are fatal for a run; the recovery path is to fix the
// snapshot and run again.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrDataConsistency = errors.New("inconsistent data")
)

// InvalidInputError reports input the allocator or the report parser cannot
// accept. AbstractID is zero when the offending abstract is not known, Line
// is zero when the input is not line oriented.
type InvalidInputError struct {
	AbstractID int
	Line       int
	Reason     string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s%s", ErrInvalidInput, location(e.AbstractID, e.Line), e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// DataConsistencyError reports records that disagree with each other, such
// as two rows for the same abstract carrying different titles.
type DataConsistencyError struct {
	AbstractID int
	Line       int
	Reason     string
}

func (e *DataConsistencyError) Error() string {
	return fmt.Sprintf("%s: %s%s", ErrDataConsistency, location(e.AbstractID, e.Line), e.Reason)
}

// Unwrap lets errors.Is match ErrDataConsistency.
func (e *DataConsistencyError) Unwrap() error { return ErrDataConsistency }

func location(abstractID, line int) string {
	switch {
	case line > 0 && abstractID > 0:
		return fmt.Sprintf("line %d: abstract %d: ", line, abstractID)
	case line > 0:
		return fmt.Sprintf("line %d: ", line)
	case abstractID > 0:
		return fmt.Sprintf("abstract %d: ", abstractID)
	}
	return ""
}
