package store

import (
	"context"
	"fmt"
	"strings"

	"meisterverbund/internal/database"
	"meisterverbund/internal/model"
)

const postColumns = `id, title, slug, content_markdown, type, published, author_id, created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (*model.Post, error) {
	p := &model.Post{}
	if err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Slug,
		&p.ContentMarkdown,
		&p.Type,
		&p.Published,
		&p.AuthorID,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPosts 依建立時間新到舊；publishedOnly 時排除草稿
func ListPosts(ctx context.Context, db database.DB, publishedOnly bool) ([]model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts`
	if publishedOnly {
		query += ` WHERE published = TRUE`
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, wrapErr("ListPosts", err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, wrapErr("ListPosts", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("ListPosts", err)
	}
	return posts, nil
}

func GetPostBySlug(ctx context.Context, db database.DB, slug string) (*model.Post, error) {
	row := db.QueryRow(ctx,
		`SELECT `+postColumns+` FROM posts WHERE slug = $1`,
		slug,
	)
	p, err := scanPost(row)
	if err != nil {
		return nil, wrapErr("GetPostBySlug", err)
	}
	return p, nil
}

// CreatePost slug 重複時回傳 ErrConflict
func CreatePost(ctx context.Context, db database.DB, p *model.Post) (*model.Post, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO posts (title, slug, content_markdown, type, published, author_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		p.Title,
		p.Slug,
		p.ContentMarkdown,
		p.Type,
		p.Published,
		p.AuthorID,
	)
	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, wrapErr("CreatePost", err)
	}
	return p, nil
}

// UpdatePost 只更新非 nil 欄位，回傳更新後的文章
func UpdatePost(ctx context.Context, db database.DB, id int, upd model.PostUpdate) (*model.Post, error) {
	var (
		sets []string
		args []any
	)
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if upd.Title != nil {
		set("title", *upd.Title)
	}
	if upd.Slug != nil {
		set("slug", *upd.Slug)
	}
	if upd.ContentMarkdown != nil {
		set("content_markdown", *upd.ContentMarkdown)
	}
	if upd.Type != nil {
		set("type", *upd.Type)
	}
	if upd.Published != nil {
		set("published", *upd.Published)
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	row := db.QueryRow(ctx,
		fmt.Sprintf("UPDATE posts SET %s WHERE id = $%d RETURNING %s",
			strings.Join(sets, ", "), len(args), postColumns),
		args...,
	)
	p, err := scanPost(row)
	if err != nil {
		return nil, wrapErr("UpdatePost", err)
	}
	return p, nil
}

// SlugExists 檢查 slug 是否已被其他文章使用，excludeID 為 0 時不排除
func SlugExists(ctx context.Context, db database.DB, slug string, excludeID int) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1 AND id <> $2)`,
		slug,
		excludeID,
	).Scan(&exists)
	if err != nil {
		return false, wrapErr("SlugExists", err)
	}
	return exists, nil
}

func CountPosts(ctx context.Context, db database.DB) (int, error) {
	var n int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&n); err != nil {
		return 0, wrapErr("CountPosts", err)
	}
	return n, nil
}
