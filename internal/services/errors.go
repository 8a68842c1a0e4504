package services

import "errors"

// Sentinel errors surfaced by the service layer. Handlers match them with
// errors.Is to pick the HTTP status.
var (
	// ErrNotFound covers both records that do not exist and records owned
	// by another user; callers cannot tell the two apart.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidCredentials never reveals which of email/password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrEmailRequired = errors.New("email address is required")
	ErrEmailTaken    = errors.New("email already registered")

	// ErrUnknownAttribute is returned when a recipe references a tag or
	// ingredient ID that does not exist for the calling user.
	ErrUnknownAttribute = errors.New("unknown tag or ingredient")

	// ErrInvalidImage is returned for uploads that are not decodable images
	// or carry an unsupported file extension.
	ErrInvalidImage = errors.New("invalid image upload")
)
