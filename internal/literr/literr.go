// Package literr defines the error taxonomy used across the lit engine.
package literr

import (
	"errors"
	"fmt"
)

// Kind identifies one of the error categories the engine and dispatcher
// distinguish on. It is never the thing compared for equality directly by
// callers outside this package — use Is/KindOf instead.
type Kind int

const (
	_ Kind = iota
	RepositoryExists
	RepositoryMissing
	BranchNotFound
	BranchAlreadyExists
	BranchProtected
	CommitNotOnBranch
	CommitNotFound
	InvalidMove
	ReadonlyViolation
	TagNotFound
	TagAlreadyExists
	MalformedObject
	MissingObject
	IOFailure
	RebaseConflict
	UnknownArgument
	MissingArgument
)

var kindNames = map[Kind]string{
	RepositoryExists:   "RepositoryExists",
	RepositoryMissing:  "RepositoryMissing",
	BranchNotFound:     "BranchNotFound",
	BranchAlreadyExists: "BranchAlreadyExists",
	BranchProtected:    "BranchProtected",
	CommitNotOnBranch:  "CommitNotOnBranch",
	CommitNotFound:     "CommitNotFound",
	InvalidMove:        "InvalidMove",
	ReadonlyViolation:  "ReadonlyViolation",
	TagNotFound:        "TagNotFound",
	TagAlreadyExists:   "TagAlreadyExists",
	MalformedObject:    "MalformedObject",
	MissingObject:      "MissingObject",
	IOFailure:          "IOFailure",
	RebaseConflict:     "RebaseConflict",
	UnknownArgument:    "UnknownArgument",
	MissingArgument:    "MissingArgument",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// Error is the engine's error type: a Kind, the operation that raised it, a
// human-readable message, and an optional wrapped cause.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Op, e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs an *Error for op with the given kind and message.
func New(op string, kind Kind, msg string) *Error {
	return &Error{Op: op, Kind: kind, Msg: msg}
}

// Wrap constructs an *Error that chains an underlying cause.
func Wrap(op string, kind Kind, msg string, err error) *Error {
	return &Error{Op: op, Kind: kind, Msg: msg, Err: err}
}

// Is reports whether err (or any error it wraps) is a *Error of kind k.
func Is(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}

// KindOf extracts the Kind of err if it is (or wraps) a *Error, and a zero
// Kind and false otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
