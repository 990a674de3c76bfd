package service

import (
	"errors"
	"fmt"
)

var (
	// ErrForbidden means the session's scope does not cover the target.
	ErrForbidden = errors.New("forbidden")

	// ErrAIUnavailable marks a failed pipeline call the citizen may retry.
	ErrAIUnavailable = errors.New("ai service unavailable")

	// ErrLocationUnresolved marks a failed reverse-geocode lookup.
	ErrLocationUnresolved = errors.New("location could not be resolved")
)

// ValidationError reports a malformed request; nothing was persisted.
type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string {
	return e.Msg
}

// RejectedError reports the image relevance gate declining a submission.
// The ticket is not persisted and the reason goes back to the citizen.
type RejectedError struct {
	Reason string
}

func (e RejectedError) Error() string {
	return fmt.Sprintf("submission rejected: %s", e.Reason)
}
