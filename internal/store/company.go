package store

import (
	"context"
	"fmt"
	"strings"

	"meisterverbund/internal/database"
	"meisterverbund/internal/model"
)

// CompanyFilter 列表篩選條件；State、Category 為空字串或 "all" 代表不篩選，Search 只去除前後空白
type CompanyFilter struct {
	Search   string
	State    string
	Category string
}

const filterAll = "all"

func filterValue(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, filterAll) {
		return ""
	}
	return v
}

// escapeLike 跳脫 ILIKE 的萬用字元
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// 評分只計入未刪除的評論，沒有評論時平均為 0
const companyWithRatingSelect = `
SELECT c.id, c.name, c.description, c.category, c.address, c.city, c.state,
       c.website, c.phone, c.image_url, c.is_master_verified, c.created_at, c.updated_at,
       COALESCE(AVG(r.stars) FILTER (WHERE r.deleted = FALSE), 0)::float8 AS average_rating,
       COUNT(r.id) FILTER (WHERE r.deleted = FALSE) AS review_count
FROM companies c
LEFT JOIN reviews r ON r.company_id = c.id`

func scanCompanyWithRating(row interface{ Scan(...any) error }) (*model.CompanyWithRating, error) {
	cw := &model.CompanyWithRating{}
	if err := row.Scan(
		&cw.ID,
		&cw.Name,
		&cw.Description,
		&cw.Category,
		&cw.Address,
		&cw.City,
		&cw.State,
		&cw.Website,
		&cw.Phone,
		&cw.ImageURL,
		&cw.IsMasterVerified,
		&cw.CreatedAt,
		&cw.UpdatedAt,
		&cw.AverageRating,
		&cw.ReviewCount,
	); err != nil {
		return nil, err
	}
	return cw, nil
}

// ListCompanies 回傳符合條件的公司與其即時評分，依名稱排序
func ListCompanies(ctx context.Context, db database.DB, f CompanyFilter) ([]model.CompanyWithRating, error) {
	var (
		where []string
		args  []any
	)
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+escapeLike(s)+"%")
		where = append(where, fmt.Sprintf("c.name ILIKE $%d", len(args)))
	}
	if s := filterValue(f.State); s != "" {
		args = append(args, s)
		where = append(where, fmt.Sprintf("c.state = $%d", len(args)))
	}
	if s := filterValue(f.Category); s != "" {
		args = append(args, s)
		where = append(where, fmt.Sprintf("c.category = $%d", len(args)))
	}

	query := companyWithRatingSelect
	if len(where) > 0 {
		query += "\nWHERE " + strings.Join(where, " AND ")
	}
	query += "\nGROUP BY c.id\nORDER BY c.name, c.id"

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("ListCompanies", err)
	}
	defer rows.Close()

	companies := []model.CompanyWithRating{}
	for rows.Next() {
		cw, err := scanCompanyWithRating(rows)
		if err != nil {
			return nil, wrapErr("ListCompanies", err)
		}
		companies = append(companies, *cw)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("ListCompanies", err)
	}
	return companies, nil
}

// GetCompany 單筆查詢，不存在時回傳 ErrNotFound
func GetCompany(ctx context.Context, db database.DB, id int) (*model.CompanyWithRating, error) {
	row := db.QueryRow(ctx,
		companyWithRatingSelect+"\nWHERE c.id = $1\nGROUP BY c.id",
		id,
	)
	cw, err := scanCompanyWithRating(row)
	if err != nil {
		return nil, wrapErr("GetCompany", err)
	}
	return cw, nil
}

func CreateCompany(ctx context.Context, db database.DB, c *model.Company) (*model.Company, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO companies
		   (name, description, category, address, city, state, website, phone, image_url, is_master_verified)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at`,
		c.Name,
		c.Description,
		c.Category,
		c.Address,
		c.City,
		c.State,
		c.Website,
		c.Phone,
		c.ImageURL,
		c.IsMasterVerified,
	)
	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, wrapErr("CreateCompany", err)
	}
	return c, nil
}

// UpdateCompany 只更新非 nil 欄位並刷新 updated_at
func UpdateCompany(ctx context.Context, db database.DB, id int, upd model.CompanyUpdate) error {
	var (
		sets []string
		args []any
	)
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if upd.Name != nil {
		set("name", *upd.Name)
	}
	if upd.Description != nil {
		set("description", *upd.Description)
	}
	if upd.Category != nil {
		set("category", *upd.Category)
	}
	if upd.Address != nil {
		set("address", *upd.Address)
	}
	if upd.City != nil {
		set("city", *upd.City)
	}
	if upd.State != nil {
		set("state", *upd.State)
	}
	if upd.Website != nil {
		set("website", *upd.Website)
	}
	if upd.Phone != nil {
		set("phone", *upd.Phone)
	}
	if upd.ImageURL != nil {
		set("image_url", *upd.ImageURL)
	}
	if upd.IsMasterVerified != nil {
		set("is_master_verified", *upd.IsMasterVerified)
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	tag, err := db.Exec(ctx,
		fmt.Sprintf("UPDATE companies SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args)),
		args...,
	)
	if err != nil {
		return wrapErr("UpdateCompany", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateCompany: %w", ErrNotFound)
	}
	return nil
}

func CountCompanies(ctx context.Context, db database.DB) (int, error) {
	var n int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM companies`).Scan(&n); err != nil {
		return 0, wrapErr("CountCompanies", err)
	}
	return n, nil
}
