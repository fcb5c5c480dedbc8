package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrForbidden is returned when the acting user lacks the role for an action.
	ErrForbidden = errors.New("forbidden")
	// ErrNoSession is returned by session-scoped operations when nobody is logged in.
	ErrNoSession = errors.New("no active session")

	// ErrDuplicateEmail is returned when registering an email already on file.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrAuthenticationFailure is returned when logging in with an unknown email.
	ErrAuthenticationFailure = errors.New("user not found for email")

	// ErrMuted is returned when a muted user tries to send a chat message.
	ErrMuted = errors.New("você foi silenciado por um professor e não pode enviar mensagens")
	// ErrEmptyMessage is returned for blank chat content.
	ErrEmptyMessage = errors.New("message content is empty")

	// ErrNotConfigured is returned when the content generator has no usable credentials.
	ErrNotConfigured = errors.New("content generator not configured")
	// ErrGenerationFailure is returned when the generator fails or returns no content.
	ErrGenerationFailure = errors.New("content generation failed")
)
