// File: internal/dto/post_request.go
package dto

import "meisterverbund/internal/model"

// swagger:model dto.CreatePostRequest
type CreatePostRequest struct {
	Title           string `json:"title" validate:"required" example:"Willkommen"`
	Slug            string `json:"slug" validate:"required,slug" example:"willkommen"`
	ContentMarkdown string `json:"contentMarkdown" validate:"required" example:"# Hallo"`
	Type            string `json:"type" validate:"required,oneof=news bericht" example:"news"`
	Published       bool   `json:"published" example:"false"`
}

func (r CreatePostRequest) ToModel(authorID int) *model.Post {
	return &model.Post{
		Title:           r.Title,
		Slug:            r.Slug,
		ContentMarkdown: r.ContentMarkdown,
		Type:            model.PostType(r.Type),
		Published:       r.Published,
		AuthorID:        authorID,
	}
}

// UpdatePostRequest 部分更新，作者不可修改
// swagger:model dto.UpdatePostRequest
type UpdatePostRequest struct {
	Title           *string `json:"title" validate:"omitnil,min=1"`
	Slug            *string `json:"slug" validate:"omitnil,slug"`
	ContentMarkdown *string `json:"contentMarkdown" validate:"omitnil,min=1"`
	Type            *string `json:"type" validate:"omitnil,oneof=news bericht"`
	Published       *bool   `json:"published"`
}

func (r UpdatePostRequest) ToModel() model.PostUpdate {
	upd := model.PostUpdate{
		Title:           r.Title,
		Slug:            r.Slug,
		ContentMarkdown: r.ContentMarkdown,
		Published:       r.Published,
	}
	if r.Type != nil {
		t := model.PostType(*r.Type)
		upd.Type = &t
	}
	return upd
}
