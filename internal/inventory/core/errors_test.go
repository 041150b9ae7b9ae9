package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/autopeer-io/inventory/internal/inventory/core/model"
)

func TestTransportErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *TransportError
		want string
	}{
		{"status only", &TransportError{Op: "list vehicles", StatusCode: 500}, "list vehicles: status 500"},
		{"cause only", &TransportError{Op: "list vehicles", Err: errors.New("dial tcp: refused")}, "list vehicles: dial tcp: refused"},
		{"both", &TransportError{Op: "delete vehicle 3", StatusCode: 502, Err: errors.New("bad gateway")}, "delete vehicle 3: status 502: bad gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationErrorHeadline(t *testing.T) {
	fields := &model.FieldErrors{}
	fields.Add("vin", "Ensure this field has no more than 17 characters.")
	fields.Add("marke", "This field may not be blank.")
	fields.Add("vin", "Invalid checksum.")

	err := &ValidationError{Op: "create vehicle", StatusCode: 400, Fields: fields}

	want := "create vehicle: vin: Ensure this field has no more than 17 characters., Invalid checksum."
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if got := err.Field("marke"); len(got) != 1 {
		t.Errorf("Field(marke) = %v", got)
	}
}

func TestStatusCode(t *testing.T) {
	wrapped := fmt.Errorf("load: %w", &TransportError{Op: "list", StatusCode: 503})
	if got := StatusCode(wrapped); got != 503 {
		t.Errorf("StatusCode(transport) = %d", got)
	}
	if got := StatusCode(&UploadError{VehicleID: 7, StatusCode: 413}); got != 413 {
		t.Errorf("StatusCode(upload) = %d", got)
	}
	if got := StatusCode(errors.New("plain")); got != 0 {
		t.Errorf("StatusCode(plain) = %d", got)
	}
}

func TestUploadErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := &UploadError{VehicleID: 7, Files: 2, Err: cause}
	if !errors.Is(err, cause) {
		t.Error("UploadError should unwrap to its cause")
	}
	want := "upload of 2 image(s) for vehicle 7 failed: connection reset"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
