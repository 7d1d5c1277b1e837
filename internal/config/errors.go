package config

import (
	"errors"
	"fmt"
)

// Kind classifies store failures.
type Kind int

const (
	// KindUnknown is reported by KindOf for errors that did not come from the store.
	KindUnknown Kind = iota
	// KindSerialization means settings could not be encoded or decoded.
	KindSerialization
	// KindFilesystem means a file could not be opened, created, read or written.
	KindFilesystem
	// KindEnvironment means the environment lacks something the store needs, such as a home directory.
	KindEnvironment
)

var (
	// ErrSerialization matches any *Error of KindSerialization via errors.Is.
	ErrSerialization = errors.New("settings serialization failed")
	// ErrFilesystem matches any *Error of KindFilesystem via errors.Is.
	ErrFilesystem = errors.New("settings file access failed")
	// ErrEnvironment matches any *Error of KindEnvironment via errors.Is.
	ErrEnvironment = errors.New("settings environment unavailable")

	// ErrHomeDirNotFound is wrapped when the user's home directory cannot be resolved.
	ErrHomeDirNotFound = errors.New("home directory not found")
	// ErrSettingsNotSet is returned when nil settings are passed to Save.
	ErrSettingsNotSet = errors.New("settings are not set")

	// errNoCandidates is wrapped when a path provider returns an empty list.
	errNoCandidates = errors.New("no settings locations configured")
)

// Error is the single error type returned by the store.
type Error struct {
	// Kind classifies the failure.
	Kind Kind
	// Op is the failed step, e.g. "read", "decode", "resolve home".
	Op string
	// Path is the file involved, if any.
	Path string
	// Err is the underlying cause.
	Err error
}

// String returns a short name of the kind.
func (k Kind) String() string {
	switch k {
	case KindSerialization:
		return "serialization"
	case KindFilesystem:
		return "filesystem"
	case KindEnvironment:
		return "environment"
	default:
		return "unknown"
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}

	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel of this error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrSerialization:
		return e.Kind == KindSerialization
	case ErrFilesystem:
		return e.Kind == KindFilesystem
	case ErrEnvironment:
		return e.Kind == KindEnvironment
	default:
		return false
	}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var storeErr *Error
	if errors.As(err, &storeErr) {
		return storeErr.Kind
	}

	return KindUnknown
}

func newError(kind Kind, op, path string, err error) *Error {
	return &Error{
		Kind: kind,
		Op:   op,
		Path: path,
		Err:  err,
	}
}
