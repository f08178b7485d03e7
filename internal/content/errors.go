package content

import "fmt"

// EmptyContentError reports a fetch that succeeded at the transport
// level but yielded no usable text.
type EmptyContentError struct {
	Source string
	URL    string
}

func (e *EmptyContentError) Error() string {
	return fmt.Sprintf("no content extracted from %s source %q", e.Source, e.URL)
}

// FetchError reports a non-success status from an upstream extractor.
type FetchError struct {
	Source     string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s extractor returned status %d", e.Source, e.StatusCode)
}
