// Package types holds the wire envelopes shared by the API surface.
package types

// SuccessEnvelope wraps every successful response body under "data".
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public error shape: a stable code, a safe message, and
// optional structured details (validation fields, the offending chat text).
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
