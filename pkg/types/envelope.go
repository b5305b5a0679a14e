package types

// Envelope is embedded in every success response body.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrorEnvelope is the body of every error response. Errors carries
// field-level messages when the failure allows them.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

// OK returns the success envelope with an optional message.
func OK(message string) Envelope {
	return Envelope{Success: true, Message: message}
}
