package llm

import "errors"

var (
	// ErrUnavailable indicates the endpoint could not be reached.
	ErrUnavailable = errors.New("advice endpoint unavailable")

	// ErrTimeout indicates the caller's deadline expired.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates a response without candidates[0].content.parts[0].text.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)
