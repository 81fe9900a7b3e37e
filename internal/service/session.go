// File: internal/service/session.go
package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"meisterverbund/internal/cache"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

// SessionCookieName 瀏覽器端保存簽章 session 的 cookie 名稱
const SessionCookieName = "mv_session"

const sessionKeyPrefix = "session:"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidSession  = errors.New("invalid session token")
)

var (
	randRead        = rand.Read
	jsonMarshal     = json.Marshal
	jsonUnmarshal   = json.Unmarshal
	timeNow         = time.Now
	parseWithClaims = jwt.ParseWithClaims
)

// SessionConfig 簽章金鑰、有效期限與 cookie 的 Secure 旗標
type SessionConfig struct {
	Secret string
	TTL    time.Duration
	Secure bool
}

// SessionClaims cookie 內的 JWT 只帶 session id，身分以 Redis 內容為準
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// SessionData 存放在 Redis 的 session 內容
type SessionData struct {
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

// IssueSession 產生隨機 session id 寫入 Redis，回傳簽章後的 cookie 值
func IssueSession(ctx context.Context, c cache.Cache, sc SessionConfig, userID int) (string, error) {
	if sc.Secret == "" {
		return "", fmt.Errorf("session secret not set")
	}

	b := make([]byte, 32)
	if _, err := randRead(b); err != nil {
		return "", err
	}
	sid := base64.RawURLEncoding.EncodeToString(b)

	now := timeNow()
	data, err := jsonMarshal(SessionData{UserID: userID, CreatedAt: now})
	if err != nil {
		return "", err
	}
	if err := c.Set(ctx, sessionKey(sid), data, sc.TTL).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	claims := SessionClaims{
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sc.TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(sc.Secret))
}

// ValidateSession 驗證 cookie 簽章並從 Redis 取回 session，回傳內容與 session id
func ValidateSession(ctx context.Context, c cache.Cache, sc SessionConfig, token string) (*SessionData, string, error) {
	if sc.Secret == "" {
		return nil, "", fmt.Errorf("session secret not set")
	}

	parsed, err := parseWithClaims(token, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(sc.Secret), nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid || claims.SessionID == "" {
		return nil, "", ErrInvalidSession
	}

	val, err := c.Get(ctx, sessionKey(claims.SessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, "", ErrSessionNotFound
	}
	if err != nil {
		return nil, "", err
	}

	var data SessionData
	if err := jsonUnmarshal([]byte(val), &data); err != nil {
		return nil, "", err
	}
	return &data, claims.SessionID, nil
}

// RevokeSession 刪除 Redis 內的 session
func RevokeSession(ctx context.Context, c cache.Cache, sessionID string) error {
	return c.Del(ctx, sessionKey(sessionID)).Err()
}

// NewSessionCookie 建立帶有 session token 的 cookie
func NewSessionCookie(token string, sc SessionConfig) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sc.TTL.Seconds()),
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearSessionCookie 讓瀏覽器立即刪除 session cookie
func ClearSessionCookie(sc SessionConfig) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
