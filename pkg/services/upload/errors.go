package upload

import (
	"errors"
	"fmt"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

var (
	ErrNoFileSelected   = errors.New("no file selected")
	ErrUploadInProgress = errors.New("an upload is already in progress")
	ErrNetwork          = errors.New("network error")
	ErrServer           = errors.New("server error")
	ErrResponseTooLarge = errors.New("response too large")
	ErrInvalidPayload   = domain.ErrInvalidPayload
)

// ServerError is a non-2xx answer from the analysis service. Message is
// taken from the response body when it carries one.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return e.Message
}

func (e *ServerError) Is(target error) bool {
	return target == ErrServer
}

// NetworkError is a transport failure: no response was received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// Message renders an upload failure for the user.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNoFileSelected) {
		return "Please select a file to upload."
	}
	if errors.Is(err, ErrUploadInProgress) {
		return "An upload is already in progress."
	}
	return fmt.Sprintf("Failed to upload file: %s", err.Error())
}
