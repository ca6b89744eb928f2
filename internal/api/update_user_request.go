package api

// swagger:model api.UpdateUserRequest
type UpdateUserRequest struct {
	Email string `json:"email" validate:"required,email" example:"alice@example.com"`
	Name  string `json:"name" validate:"required" example:"Alice"`
	Role  string `json:"role" validate:"required,oneof=USER ADMIN" example:"USER"`
}
