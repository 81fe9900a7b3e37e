// File: internal/service/authentication.go
package service

import (
	"context"
	"errors"

	"meisterverbund/internal/database"
	"meisterverbund/internal/model"
	"meisterverbund/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserBlocked        = errors.New("account is blocked")
)

var getUserByEmail = store.GetUserByEmail

// AuthenticateUser 以 email 與明文密碼驗證使用者
// 封鎖檢查在比對密碼之前，被封鎖的帳號即使密碼正確也會被拒絕
func AuthenticateUser(ctx context.Context, db database.DB, email, password string) (*model.User, error) {
	user, err := getUserByEmail(ctx, db, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.Blocked {
		return nil, ErrUserBlocked
	}
	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
