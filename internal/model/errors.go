package model

import "github.com/pkg/errors"

// ErrorKind classifies a load failure so the driver can choose a
// human-readable message without string-matching the underlying error.
type ErrorKind int

const (
	ErrorKindNone ErrorKind = iota
	ErrorKindFile
	ErrorKindReadIO
	ErrorKindTruncated
	ErrorKindInvalidFormat
	ErrorKindUnrecognisedFormat
	ErrorKindWriteIO
	ErrorKindAlloc
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindFile:
		return "file error"
	case ErrorKindReadIO:
		return "I/O read error"
	case ErrorKindTruncated:
		return "truncated model file"
	case ErrorKindInvalidFormat:
		return "invalid model syntax"
	case ErrorKindUnrecognisedFormat:
		return "unrecognised model format"
	case ErrorKindWriteIO:
		return "I/O write error"
	case ErrorKindAlloc:
		return "storage allocation error"
	default:
		return "(unspecified error)"
	}
}

// LoadError wraps an underlying cause with the ErrorKind the driver
// switches on, while still preserving a stack trace via pkg/errors for
// diagnostic logging.
type LoadError struct {
	Kind ErrorKind
	Err  error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Err.Error()
	}
	return e.Kind.String()
}

func (e *LoadError) Unwrap() error { return e.Err }

func wrapErr(kind ErrorKind, err error, context string) error {
	if err == nil {
		return nil
	}
	return &LoadError{Kind: kind, Err: errors.Wrap(err, context)}
}

func newErr(kind ErrorKind, context string) error {
	return &LoadError{Kind: kind, Err: errors.New(context)}
}

// KindOf extracts the ErrorKind from err, if it (or something it wraps)
// is a *LoadError; otherwise returns ErrorKindNone.
func KindOf(err error) ErrorKind {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Kind
	}
	return ErrorKindNone
}
