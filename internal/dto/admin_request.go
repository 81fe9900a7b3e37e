// File: internal/dto/admin_request.go
package dto

// swagger:model dto.BlockUserRequest
type BlockUserRequest struct {
	Blocked *bool `json:"blocked" validate:"required" example:"true"`
}
