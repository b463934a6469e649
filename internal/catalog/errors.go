package catalog

import "errors"

// Failure taxonomy for catalogue operations. Handlers classify with errors.Is
// and map to HTTP status codes; the wrapped detail is only ever logged.
var (
	// ErrInvalidRequest marks malformed or missing identifiers. No dependency
	// is touched once a request fails validation.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrBookNotFound marks a lookup for a book id with no catalogue entry.
	ErrBookNotFound = errors.New("book not found")

	// ErrBookExists marks an insert for an id already in the catalogue.
	ErrBookExists = errors.New("book already exists")

	// ErrStoreUnavailable marks a store-level failure (connectivity,
	// throttling), distinct from an absent row.
	ErrStoreUnavailable = errors.New("book store unavailable")

	// ErrTranslationFailed marks a translation provider failure: timeout,
	// quota, unsupported language pair. Nothing is persisted when it occurs.
	ErrTranslationFailed = errors.New("translation provider failed")
)
