package genredna

import (
	"errors"
	"fmt"
)

var (
	// ErrInputMissing is returned by the remote backend when Predict gets
	// neither a file nor a sample id. No request is sent.
	ErrInputMissing = errors.New("please provide an audio file or select a sample")

	// ErrRemoteRequestFailed matches every failed request to the prediction API,
	// including transport failures.
	ErrRemoteRequestFailed = errors.New("remote request failed")

	// ErrTransportUnreachable matches network-level failures (DNS, refused
	// connections, transport timeouts).
	ErrTransportUnreachable = errors.New("prediction API unreachable")
)

const (
	unknownErrorMessage  = "Unknown error"
	predictFailedMessage = "Failed to predict genre"
	samplesFailedMessage = "Failed to fetch sample files"
)

// RemoteError is a non-2xx answer from the prediction API. Message is the
// server's detail, or a generic text when the body could not be parsed.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return e.Message
}

func (e *RemoteError) Is(target error) bool {
	return target == ErrRemoteRequestFailed
}

// TransportError wraps a failure to reach the prediction API.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransportUnreachable || target == ErrRemoteRequestFailed
}
