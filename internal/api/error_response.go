package api

// ErrorResponse is the envelope for every non-2xx response. Error is only
// populated on internal failures.
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
