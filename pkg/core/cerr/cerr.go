// Package cerr provides the categorized error type which is returned
// by the core use cases and the storage adapter. Each error carries a
// Kind which callers can branch on, using the KindOf helper, in order
// to decide between re-prompting (for the recoverable validation
// kinds) and reporting a storage problem distinctly.
package cerr

import (
	"errors"
	"fmt"
)

// Kind enumerates the error categories of the system.
type Kind int

// Error categories. KindUnknown is reserved for errors which were not
// created by this package.
const (
	KindUnknown Kind = iota
	KindInvalidFormat
	KindDuplicateCar
	KindCarNotRegistered
	KindInvalidServiceSelection
	KindStorageRead
	KindStorageWrite
)

// String returns a stable machine-readable name of the k kind.
func (k Kind) String() string {
	switch k {
	case KindInvalidFormat:
		return "invalid-format"
	case KindDuplicateCar:
		return "duplicate-car"
	case KindCarNotRegistered:
		return "car-not-registered"
	case KindInvalidServiceSelection:
		return "invalid-service-selection"
	case KindStorageRead:
		return "storage-read"
	case KindStorageWrite:
		return "storage-write"
	default:
		return "unknown"
	}
}

// Error wraps an underlying error with a Kind category.
type Error struct {
	Err  error
	Kind Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Kind, e.Err.Error())
}

// KindOf returns the Kind of the first *Error in the err chain, or
// KindUnknown if no such error is found (including for a nil err).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func InvalidFormat(err error) *Error {
	return &Error{Err: err, Kind: KindInvalidFormat}
}

func DuplicateCar(err error) *Error {
	return &Error{Err: err, Kind: KindDuplicateCar}
}

func CarNotRegistered(err error) *Error {
	return &Error{Err: err, Kind: KindCarNotRegistered}
}

func InvalidServiceSelection(err error) *Error {
	return &Error{Err: err, Kind: KindInvalidServiceSelection}
}

func StorageRead(err error) *Error {
	return &Error{Err: err, Kind: KindStorageRead}
}

func StorageWrite(err error) *Error {
	return &Error{Err: err, Kind: KindStorageWrite}
}
