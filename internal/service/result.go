// Package service holds what the page-level services share.
package service

import (
	apperrors "github.com/jwalitptl/clinicdesk/pkg/errors"
)

// Result is the outcome handed to a page. Error is display-ready: the
// backend message when one came back, the operation fallback otherwise.
type Result[T any] struct {
	Success bool
	Data    T
	Error   string
}

func OK[T any](v T) Result[T] {
	return Result[T]{Success: true, Data: v}
}

// Failed converts err into a failed result.
func Failed[T any](err error, fallback string) Result[T] {
	return Result[T]{Error: apperrors.Message(err, fallback)}
}
