// Package errors provides common domain error types for the mintel application.
//
// This package defines sentinel errors for conditions that callers are expected
// to branch on, like "meeting not found" or "unknown analysis kind". Using typed
// errors enables consistent handling with errors.Is() checks across packages.
//
// Usage:
//
//	import mterrors "github.com/otherjamesbrown/mintel-cli/pkg/errors"
//
//	// Return a domain error
//	return nil, mterrors.ErrNotFound
//
//	// Check for domain errors
//	if mterrors.IsNotFound(err) {
//	    // handle not found case
//	}
package errors

import "errors"

// Domain errors - common sentinel errors for domain conditions.
var (
	// ErrSnapshotUnreadable indicates the raw snapshot file was missing or corrupt.
	// Loading recovers by substituting an empty dataset; this sentinel is for
	// diagnostics only and never surfaces to load callers.
	ErrSnapshotUnreadable = errors.New("snapshot unreadable")

	// ErrRecordParse indicates a single raw record failed structural assumptions.
	// Normalization skips the record and continues.
	ErrRecordParse = errors.New("record parse error")

	// ErrNotFound indicates the requested meeting, transcript, or document was not found.
	ErrNotFound = errors.New("not found")

	// ErrNoMeetings indicates an analysis matched zero meetings. This is a
	// distinct, reportable outcome rather than an empty table.
	ErrNoMeetings = errors.New("no meetings match")

	// ErrUnknownAnalysisKind indicates an analysis kind outside the supported set.
	ErrUnknownAnalysisKind = errors.New("unknown analysis kind")

	// ErrValidation indicates invalid input or validation failure.
	ErrValidation = errors.New("validation error")
)

// IsSnapshotUnreadable reports whether any error in err's chain is ErrSnapshotUnreadable.
func IsSnapshotUnreadable(err error) bool {
	return errors.Is(err, ErrSnapshotUnreadable)
}

// IsRecordParse reports whether any error in err's chain is ErrRecordParse.
func IsRecordParse(err error) bool {
	return errors.Is(err, ErrRecordParse)
}

// IsNotFound reports whether any error in err's chain is ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsNoMeetings reports whether any error in err's chain is ErrNoMeetings.
func IsNoMeetings(err error) bool {
	return errors.Is(err, ErrNoMeetings)
}

// IsUnknownAnalysisKind reports whether any error in err's chain is ErrUnknownAnalysisKind.
func IsUnknownAnalysisKind(err error) bool {
	return errors.Is(err, ErrUnknownAnalysisKind)
}

// IsValidation reports whether any error in err's chain is ErrValidation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
