// File: internal/model/review.go
package model

import "time"

type Review struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"userId"`
	CompanyID int       `db:"company_id" json:"companyId"`
	Stars     int       `db:"stars" json:"stars"`
	Comment   string    `db:"comment" json:"comment"`
	Deleted   bool      `db:"deleted" json:"deleted"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type ReviewAuthor struct {
	Email string `json:"email"`
}

// ReviewWithUser 列表顯示用，附上作者 email
type ReviewWithUser struct {
	Review
	User ReviewAuthor `json:"user"`
}
