package service

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"meisterverbund/internal/database"
	"meisterverbund/internal/model"
	"meisterverbund/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func restoreGlobals() {
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
	randRead = rand.Read
	jsonMarshal = json.Marshal
	jsonUnmarshal = json.Unmarshal
	timeNow = time.Now
	parseWithClaims = jwt.ParseWithClaims
	getUserByEmail = store.GetUserByEmail
}

func TestHashPassword(t *testing.T) {
	t.Cleanup(restoreGlobals)
	pwd := "secret"
	hash, err := HashPassword(pwd)
	require.NoError(t, err)
	require.NotEqual(t, pwd, hash)
	require.NoError(t, ComparePassword(hash, pwd))
	require.Error(t, ComparePassword(hash, "other"))

	bcryptGenerateFromPassword = func(_ []byte, _ int) ([]byte, error) {
		return nil, errors.New("gen")
	}
	_, err = HashPassword(pwd)
	require.Error(t, err)
}

func TestAuthenticateUser(t *testing.T) {
	t.Cleanup(restoreGlobals)
	ctx := context.Background()
	db := &database.FakeDB{}
	hash, err := HashPassword("pw")
	require.NoError(t, err)

	getUserByEmail = func(_ context.Context, _ database.DB, email string) (*model.User, error) {
		require.Equal(t, "a@b.at", email)
		return &model.User{ID: 1, Email: email, PasswordHash: hash}, nil
	}
	u, err := AuthenticateUser(ctx, db, "a@b.at", "pw")
	require.NoError(t, err)
	require.Equal(t, 1, u.ID)

	_, err = AuthenticateUser(ctx, db, "a@b.at", "bad")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// 被封鎖時不論密碼是否正確都拒絕
	getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
		return &model.User{ID: 1, PasswordHash: hash, Blocked: true}, nil
	}
	_, err = AuthenticateUser(ctx, db, "a@b.at", "pw")
	require.ErrorIs(t, err, ErrUserBlocked)
	_, err = AuthenticateUser(ctx, db, "a@b.at", "bad")
	require.ErrorIs(t, err, ErrUserBlocked)

	getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
		return nil, store.ErrNotFound
	}
	_, err = AuthenticateUser(ctx, db, "x@b.at", "pw")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	boom := errors.New("db down")
	getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
		return nil, boom
	}
	_, err = AuthenticateUser(ctx, db, "x@b.at", "pw")
	require.ErrorIs(t, err, boom)
}
