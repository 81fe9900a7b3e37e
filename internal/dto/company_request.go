// File: internal/dto/company_request.go
package dto

import "meisterverbund/internal/model"

// swagger:model dto.CreateCompanyRequest
type CreateCompanyRequest struct {
	Name             string  `json:"name" validate:"required" example:"Tischlerei Huber"`
	Description      string  `json:"description" validate:"required" example:"Massivholzmöbel nach Maß"`
	Category         string  `json:"category" validate:"required" example:"Tischler"`
	Address          string  `json:"address" validate:"required" example:"Annenstraße 12"`
	City             string  `json:"city" validate:"required" example:"Graz"`
	State            string  `json:"state" validate:"required" example:"Steiermark"`
	Website          *string `json:"website" example:"https://tischlerei-huber.at"`
	Phone            *string `json:"phone" example:"+43 316 123456"`
	ImageURL         *string `json:"imageUrl"`
	IsMasterVerified bool    `json:"isMasterVerified" example:"true"`
}

func (r CreateCompanyRequest) ToModel() *model.Company {
	return &model.Company{
		Name:             r.Name,
		Description:      r.Description,
		Category:         r.Category,
		Address:          r.Address,
		City:             r.City,
		State:            r.State,
		Website:          r.Website,
		Phone:            r.Phone,
		ImageURL:         r.ImageURL,
		IsMasterVerified: r.IsMasterVerified,
	}
}

// UpdateCompanyRequest 部分更新，未提供的欄位保持不變
// swagger:model dto.UpdateCompanyRequest
type UpdateCompanyRequest struct {
	Name             *string `json:"name" validate:"omitnil,min=1"`
	Description      *string `json:"description" validate:"omitnil,min=1"`
	Category         *string `json:"category" validate:"omitnil,min=1"`
	Address          *string `json:"address" validate:"omitnil,min=1"`
	City             *string `json:"city" validate:"omitnil,min=1"`
	State            *string `json:"state" validate:"omitnil,min=1"`
	Website          *string `json:"website"`
	Phone            *string `json:"phone"`
	ImageURL         *string `json:"imageUrl"`
	IsMasterVerified *bool   `json:"isMasterVerified"`
}

func (r UpdateCompanyRequest) ToModel() model.CompanyUpdate {
	return model.CompanyUpdate{
		Name:             r.Name,
		Description:      r.Description,
		Category:         r.Category,
		Address:          r.Address,
		City:             r.City,
		State:            r.State,
		Website:          r.Website,
		Phone:            r.Phone,
		ImageURL:         r.ImageURL,
		IsMasterVerified: r.IsMasterVerified,
	}
}
