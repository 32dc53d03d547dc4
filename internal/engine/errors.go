package engine

import "errors"

var (
	// ErrUnauthorized indicates the upload credential was rejected.
	// This halts the run; the operator must refresh the credential.
	ErrUnauthorized = errors.New("upload credential rejected")

	// ErrUploadRejected indicates the catalog refused the upload for a
	// reason other than authorization. Also run-fatal.
	ErrUploadRejected = errors.New("upload rejected by catalog")

	// ErrCatalogUnavailable indicates a transient search or upload
	// transport failure. Item-scoped: the item is retried next run.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrInvalidTransition indicates a bug in the per-item state machine.
	ErrInvalidTransition = errors.New("invalid status transition")
)
