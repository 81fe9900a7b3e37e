// File: internal/model/post.go
package model

import "time"

type PostType string

const (
	PostTypeNews    PostType = "news"
	PostTypeBericht PostType = "bericht"
)

type Post struct {
	ID              int       `db:"id" json:"id"`
	Title           string    `db:"title" json:"title"`
	Slug            string    `db:"slug" json:"slug"`
	ContentMarkdown string    `db:"content_markdown" json:"contentMarkdown"`
	Type            PostType  `db:"type" json:"type"`
	Published       bool      `db:"published" json:"published"`
	AuthorID        int       `db:"author_id" json:"authorId"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// PostUpdate 部分更新，nil 欄位保持不變；作者不可變更
type PostUpdate struct {
	Title           *string
	Slug            *string
	ContentMarkdown *string
	Type            *PostType
	Published       *bool
}
