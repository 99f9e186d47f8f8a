//go:build !js && !wasm

package main

// ErrorResponse is the error body of every endpoint.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

const (
	msgInputMissing    = "Please provide an audio file or select a sample"
	msgInvalidFileType = "Invalid file type. Please upload an audio file."
	msgSampleNotFound  = "Sample file not found"
	msgInvalidForm     = "Invalid form data"
	msgFileTooLarge    = "File too large"
)
