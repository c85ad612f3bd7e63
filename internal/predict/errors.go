package predict

import "errors"

var (
	// ErrNetwork indicates the request failed in transport or the
	// endpoint answered with a non-2xx status.
	ErrNetwork = errors.New("prediction request failed")

	// ErrParse indicates the response body was not {"predicted_yield": number}.
	ErrParse = errors.New("prediction response malformed")
)
