package wcif

import "fmt"

// FetchError is returned when the WCIF document could not be retrieved.
// Fetches are never retried; the error is surfaced to the caller as-is.
type FetchError struct {
	URL    string
	Status string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetching %s: unexpected status %s", e.URL, e.Status)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NotFoundError is returned when a model query references an id that does
// not exist in the competition document. It indicates a malformed document
// or a derivation bug, not a user-correctable condition.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found in competition document", e.Kind, e.ID)
}
