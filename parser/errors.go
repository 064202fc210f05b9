package parser

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies a ParseError so callers can react programmatically
// instead of matching on message text.
type ErrorKind int

const (
	// InvalidArgument means a nil/empty input was supplied where one is
	// required.
	InvalidArgument ErrorKind = iota

	// ShortInput means a read returned fewer bytes than requested.
	ShortInput

	// InvalidSignature means the header signature was not "SCCA".
	InvalidSignature

	// UnsupportedVersion means format_version was not one of 17, 23, 26.
	UnsupportedVersion

	// OffsetOutOfBounds means a decoded offset+length escaped its
	// containing region.
	OffsetOutOfBounds

	// MalformedStringTable means a string table had an odd byte length
	// or a truncated UTF-16 sequence.
	MalformedStringTable

	// InconsistentCounts means a declared count disagreed with a parsed
	// count. Non-fatal: recorded as a warning on the model.
	InconsistentCounts

	// ReadFailed means the ByteReader returned a lower level failure.
	ReadFailed

	// Aborted means cooperative cancellation was observed.
	Aborted

	// OutOfMemory means an allocation failed.
	OutOfMemory

	// IndexOutOfRange means a query accessor was given an index outside
	// the bounds of the collection it addresses.
	IndexOutOfRange
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidArgument:
		return "InvalidArgument"
	case ShortInput:
		return "ShortInput"
	case InvalidSignature:
		return "InvalidSignature"
	case UnsupportedVersion:
		return "UnsupportedVersion"
	case OffsetOutOfBounds:
		return "OffsetOutOfBounds"
	case MalformedStringTable:
		return "MalformedStringTable"
	case InconsistentCounts:
		return "InconsistentCounts"
	case ReadFailed:
		return "ReadFailed"
	case Aborted:
		return "Aborted"
	case OutOfMemory:
		return "OutOfMemory"
	case IndexOutOfRange:
		return "IndexOutOfRange"
	default:
		return "Unknown"
	}
}

// ParseError is the structured error type returned by every decoder in
// this package. Op names the decoding step that failed ("HeaderDecoder",
// "VolumeBlockDecoder.file_references", ...); Cause, when present, is
// wrapped with a stack trace via github.com/pkg/errors so failures deep
// inside a nested volume block are still diagnosable at the top.
type ParseError struct {
	Kind  ErrorKind
	Op    string
	Cause error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// newError builds a ParseError with no wrapped cause.
func newError(op string, kind ErrorKind) error {
	return &ParseError{Op: op, Kind: kind}
}

// wrapError attaches a stack-tracing cause to a ParseError.
func wrapError(op string, kind ErrorKind, cause error) error {
	if cause == nil {
		return newError(op, kind)
	}
	return &ParseError{Op: op, Kind: kind, Cause: errors.WithStack(cause)}
}

// KindOf extracts the ErrorKind from err if it (or something it wraps)
// is a *ParseError. The second return value is false if no ParseError is
// found in the chain.
func KindOf(err error) (ErrorKind, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return 0, false
}
