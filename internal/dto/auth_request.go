// File: internal/dto/auth_request.go
package dto

// RegisterRequest 註冊只接受 email 與密碼，角色一律為 user
// swagger:model dto.RegisterRequest
type RegisterRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email" example:"kunde@meisterverbund.at"`
	Password string `json:"password" form:"password" validate:"required,min=6" example:"Secret123!"`
}

// LoginRequest username 即 email
// swagger:model dto.LoginRequest
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required" example:"kunde@meisterverbund.at"`
	Password string `json:"password" form:"password" validate:"required" example:"Secret123!"`
}
