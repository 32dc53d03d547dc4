package subdl

import "errors"

var (
	// ErrUnauthorized indicates the API key or upload token was rejected.
	ErrUnauthorized = errors.New("unauthorized: invalid or expired SubDL credential")

	// ErrRejected indicates SubDL refused an upload step.
	ErrRejected = errors.New("upload rejected by SubDL")

	// ErrUnavailable indicates SubDL could not be reached or answered
	// with a transient failure.
	ErrUnavailable = errors.New("subdl unavailable")

	// ErrTokenExpired indicates the upload token's exp claim has passed.
	ErrTokenExpired = errors.New("upload token expired")
)
