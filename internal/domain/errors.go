package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrFetchFailed is returned when a page could not be retrieved (network error or non-200)
	ErrFetchFailed = errors.New("page fetch failed")

	// ErrSiteUnknown is returned when no adapter is registered for a site identifier
	ErrSiteUnknown = errors.New("no adapter registered for site")
)
