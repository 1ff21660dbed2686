package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// envelopeVersion is the wire envelope version. Bumped only for breaking
// envelope shape changes; payload fields evolve additively instead.
const envelopeVersion = 1

// Envelope is the uniform response wrapper. Success responses carry the
// payload under "data"; failures carry a short "error" string plus the
// structured code/message/details triple the client branches on.
type Envelope struct {
	V       int    `json:"v" doc:"Envelope version"`
	Success bool   `json:"success" doc:"Whether the call succeeded"`
	Data    any    `json:"data,omitempty" doc:"Success payload"`
	Error   string `json:"error,omitempty" doc:"Human-readable failure summary"`
	Code    string `json:"code,omitempty" doc:"Machine-readable failure code"`
	Message string `json:"message,omitempty" doc:"Human-readable failure message"`
	Details any    `json:"details,omitempty" doc:"Additional failure details"`
}

// EnvelopeTransformer wraps every response body in the envelope. Registered
// as a huma transformer so handlers return bare payloads.
func EnvelopeTransformer(_ huma.Context, _ string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		return &Envelope{
			V:       envelopeVersion,
			Success: false,
			Error:   apiErr.Message,
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		}, nil
	}

	return &Envelope{
		V:       envelopeVersion,
		Success: true,
		Data:    v,
	}, nil
}
