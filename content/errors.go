package content

import (
	"errors"
	"fmt"
)

// ErrNoToken is returned by write operations on a client without an API token.
var ErrNoToken = errors.New("content: write requires an API token")

// NetworkError is a transport-level failure reaching the content store.
type NetworkError struct {
	Query string
	Err   error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("content: query %s: %v", e.Query, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// RemoteError is a non-2xx answer from the content store.
type RemoteError struct {
	Query       string
	Status      int
	Type        string
	Description string
}

func (e *RemoteError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("content: query %s: status %d", e.Query, e.Status)
	}
	return fmt.Sprintf("content: query %s: status %d: %s", e.Query, e.Status, e.Description)
}

// InvalidReferenceError means an image reference has no usable asset id.
type InvalidReferenceError struct {
	Ref string
}

func (e *InvalidReferenceError) Error() string {
	if e.Ref == "" {
		return "content: image reference has no asset"
	}
	return fmt.Sprintf("content: malformed image asset id %q", e.Ref)
}

// DecodeError describes one record that failed to decode or validate.
type DecodeError struct {
	Type string
	ID   string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("content: decode %s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("content: decode %s %s: %v", e.Type, e.ID, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
