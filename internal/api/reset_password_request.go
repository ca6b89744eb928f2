package api

// swagger:model api.ResetPasswordRequest
type ResetPasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required" example:"OldSecret123!"`
	NewPassword     string `json:"newPassword" validate:"required" example:"NewSecret456?!"`
}
