package store

import (
	"context"
	"strings"

	"meisterverbund/internal/database"
	"meisterverbund/internal/model"
)

const userColumns = `id, email, password_hash, role, blocked, created_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.Blocked,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return u, nil
}

func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, wrapErr("GetUserByID", err)
	}
	return u, nil
}

// GetUserByEmail 以小寫 email 查詢
func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		strings.ToLower(email),
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, wrapErr("GetUserByEmail", err)
	}
	return u, nil
}

// CreateUser 新增使用者，email 重複時回傳 ErrConflict
func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	if u.Role == "" {
		u.Role = model.RoleUser
	}
	u.Email = strings.ToLower(u.Email)
	row := db.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, role, blocked)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		u.Email,
		u.PasswordHash,
		u.Role,
		u.Blocked,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		return nil, wrapErr("CreateUser", err)
	}
	return u, nil
}

// ListUsers 依建立時間新到舊
func ListUsers(ctx context.Context, db database.DB) ([]model.User, error) {
	rows, err := db.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, wrapErr("ListUsers", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, wrapErr("ListUsers", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("ListUsers", err)
	}
	return users, nil
}

// SetUserBlocked 設定封鎖狀態並回傳更新後的使用者
func SetUserBlocked(ctx context.Context, db database.DB, userID int, blocked bool) (*model.User, error) {
	row := db.QueryRow(ctx,
		`UPDATE users SET blocked = $1 WHERE id = $2
		 RETURNING `+userColumns,
		blocked,
		userID,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, wrapErr("SetUserBlocked", err)
	}
	return u, nil
}
