package store

import (
	"context"
	"fmt"

	"meisterverbund/internal/database"
	"meisterverbund/internal/model"
)

// ListReviews 回傳公司未刪除的評論 (含作者 email)，新到舊
func ListReviews(ctx context.Context, db database.DB, companyID int) ([]model.ReviewWithUser, error) {
	rows, err := db.Query(ctx,
		`SELECT r.id, r.user_id, r.company_id, r.stars, r.comment, r.deleted,
		        r.created_at, r.updated_at, u.email
		 FROM reviews r
		 JOIN users u ON u.id = r.user_id
		 WHERE r.company_id = $1 AND r.deleted = FALSE
		 ORDER BY r.created_at DESC, r.id DESC`,
		companyID,
	)
	if err != nil {
		return nil, wrapErr("ListReviews", err)
	}
	defer rows.Close()

	reviews := []model.ReviewWithUser{}
	for rows.Next() {
		var rw model.ReviewWithUser
		if err := rows.Scan(
			&rw.ID,
			&rw.UserID,
			&rw.CompanyID,
			&rw.Stars,
			&rw.Comment,
			&rw.Deleted,
			&rw.CreatedAt,
			&rw.UpdatedAt,
			&rw.User.Email,
		); err != nil {
			return nil, wrapErr("ListReviews", err)
		}
		reviews = append(reviews, rw)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("ListReviews", err)
	}
	return reviews, nil
}

// CreateReview 公司或使用者不存在時回傳 ErrInvalidReference
func CreateReview(ctx context.Context, db database.DB, r *model.Review) (*model.Review, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO reviews (user_id, company_id, stars, comment)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, deleted, created_at, updated_at`,
		r.UserID,
		r.CompanyID,
		r.Stars,
		r.Comment,
	)
	if err := row.Scan(&r.ID, &r.Deleted, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, wrapErr("CreateReview", err)
	}
	return r, nil
}

// SoftDeleteReview 標記為刪除，資料列保留；已刪除或不存在時回傳 ErrNotFound
func SoftDeleteReview(ctx context.Context, db database.DB, id int) error {
	tag, err := db.Exec(ctx,
		`UPDATE reviews SET deleted = TRUE, updated_at = NOW()
		 WHERE id = $1 AND deleted = FALSE`,
		id,
	)
	if err != nil {
		return wrapErr("SoftDeleteReview", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("SoftDeleteReview: %w", ErrNotFound)
	}
	return nil
}
