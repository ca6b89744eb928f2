package api

// swagger:model api.LoginResponse
type LoginResponse struct {
	Success bool   `json:"success" example:"true"`
	Token   string `json:"token" example:"eyJhbGciOi..."`
}
