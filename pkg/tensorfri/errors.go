package tensorfri

import "github.com/vybium/tensorfri/internal/tensorfri/errs"

// ErrorCode classifies a tensorfri failure.
type ErrorCode = errs.Code

// Error is the concrete error type every fallible tensorfri operation
// returns.
type Error = errs.Error

const (
	// ErrUnknown is never returned deliberately; its presence signals a bug.
	ErrUnknown = errs.Unknown

	// ErrSerialization marks a field-element/byte conversion failure.
	ErrSerialization = errs.Serialization

	// ErrTranscriptOverflow marks the Fiat-Shamir round counter overflowing.
	ErrTranscriptOverflow = errs.TranscriptOverflow

	// ErrDomainSizeOverflow marks a query domain larger than can be indexed.
	ErrDomainSizeOverflow = errs.DomainSizeOverflow

	// ErrShapeMismatch marks a length mismatch: path length, oracle count,
	// and similar structural checks.
	ErrShapeMismatch = errs.ShapeMismatch

	// ErrConsistency marks a verifier-side rejection: initial claim,
	// sum-check relation, fold consistency, Merkle path, or final folded
	// value.
	ErrConsistency = errs.Consistency
)
