package arr

import "errors"

var (
	// ErrUnavailable indicates the media manager could not be reached.
	// Listing calls happen before any item is processed, so this is a
	// fail-fast condition for the run.
	ErrUnavailable = errors.New("media manager unavailable")

	// ErrInvalidAPIKey indicates the media manager rejected the API key.
	ErrInvalidAPIKey = errors.New("invalid media manager api key")
)
