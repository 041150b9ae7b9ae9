package core

import (
	"errors"
	"fmt"

	"github.com/autopeer-io/inventory/internal/inventory/core/model"
)

var (
	// ErrCacheUnavailable wraps every failure of the local store. Callers treat
	// it as an empty cache.
	ErrCacheUnavailable = errors.New("local cache unavailable")

	// ErrNotFound is returned when a vehicle is neither in memory nor cached.
	ErrNotFound = errors.New("vehicle not found")

	// ErrClosed is returned by operations started after Close.
	ErrClosed = errors.New("inventory service closed")

	// ErrNotPersisted is returned when an operation needs a server-assigned id.
	ErrNotPersisted = errors.New("vehicle has no server-assigned id")
)

// TransportError is a network failure or a non-success status without a
// structured error body. StatusCode is zero when no response was received.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + ": transport error"
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError carries the backend's (or the local draft check's)
// per-field messages. The first reported field is the headline.
type ValidationError struct {
	Op         string
	StatusCode int
	Fields     *model.FieldErrors
}

func (e *ValidationError) Error() string {
	if e.Fields.Empty() {
		return e.Op + ": validation failed"
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Fields.Headline())
}

// Field returns the messages reported for name.
func (e *ValidationError) Field(name string) []string {
	if e.Fields == nil {
		return nil
	}
	return e.Fields.Messages[name]
}

// UploadError reports that a batch of assets was rejected. The vehicle it was
// meant for exists remotely; only the upload stage needs retrying.
type UploadError struct {
	VehicleID  int64
	Files      int
	StatusCode int
	Err        error
}

func (e *UploadError) Error() string {
	msg := fmt.Sprintf("upload of %d image(s) for vehicle %d failed", e.Files, e.VehicleID)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *UploadError) Unwrap() error { return e.Err }

// StatusCode extracts the HTTP status from a TransportError, ValidationError
// or UploadError anywhere in err's chain. It returns 0 otherwise.
func StatusCode(err error) int {
	var te *TransportError
	if errors.As(err, &te) {
		return te.StatusCode
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.StatusCode
	}
	var ue *UploadError
	if errors.As(err, &ue) {
		return ue.StatusCode
	}
	return 0
}
