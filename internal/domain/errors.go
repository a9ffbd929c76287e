package domain

import "errors"

var (
	// ErrUnauthenticated is returned when an operation needs a stored
	// credential and none exists.
	ErrUnauthenticated = errors.New("not logged in")
	// ErrLoginFailed is returned when the auth endpoint rejects the
	// supplied credentials.
	ErrLoginFailed = errors.New("login failed")
	// ErrSessionRejected indicates the server refused to create or start
	// a game session.
	ErrSessionRejected = errors.New("game session rejected")
	// ErrAnswerLocked is returned when a second answer is attempted on an
	// already-locked question.
	ErrAnswerLocked = errors.New("answer already locked")
	// ErrOptionNotFound indicates a selected option ID is not part of the
	// current question.
	ErrOptionNotFound = errors.New("option not found")
)
