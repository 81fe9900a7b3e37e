// File: internal/dto/review_request.go
package dto

// CreateReviewRequest 作者由 session 決定，body 中的 userId 不會被讀取
// swagger:model dto.CreateReviewRequest
type CreateReviewRequest struct {
	CompanyID int    `json:"companyId" validate:"required,gt=0" example:"1"`
	Stars     int    `json:"stars" validate:"required,min=1,max=5" example:"5"`
	Comment   string `json:"comment" validate:"required" example:"Pünktlich und sauber gearbeitet."`
}
