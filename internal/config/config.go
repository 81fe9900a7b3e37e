// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config 服務執行所需的全部設定，由環境變數 (與可選的 .env) 載入
type Config struct {
	HTTPAddr string
	Env      string
	LogLevel string

	DatabaseURL   string
	DBMaxConns    int32
	DBMaxIdleTime time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionSecret string
	SessionTTL    time.Duration
	AdminEmail    string
	AdminPassword string
}

// IsProduction 為 true 時 session cookie 加上 Secure
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

var dotenvLoad = godotenv.Load

// Load 讀取 .env (若存在) 後解析環境變數，必要欄位缺少或格式錯誤時回傳錯誤
func Load() (Config, error) {
	if err := dotenvLoad(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("載入 .env 失敗: %w", err)
	}

	cfg := Config{
		HTTPAddr:      get("HTTP_ADDR", ":8080"),
		Env:           get("APP_ENV", "development"),
		LogLevel:      get("LOG_LEVEL", "info"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		AdminEmail:    strings.ToLower(get("ADMIN_EMAIL", "admin@meisterverbund.at")),
		AdminPassword: get("ADMIN_PASSWORD", "admin123"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}
	if cfg.RedisAddr == "" {
		return Config{}, fmt.Errorf("環境變數 REDIS_ADDR 未設定")
	}
	if cfg.SessionSecret == "" {
		return Config{}, fmt.Errorf("環境變數 SESSION_SECRET 未設定")
	}
	// production 不使用預設的管理員密碼
	if cfg.IsProduction() && os.Getenv("ADMIN_PASSWORD") == "" {
		return Config{}, fmt.Errorf("production 環境必須設定 ADMIN_PASSWORD")
	}

	var err error
	if cfg.RedisDB, err = strconv.Atoi(get("REDIS_DB", "0")); err != nil || cfg.RedisDB < 0 {
		return Config{}, fmt.Errorf("無效的 REDIS_DB: %q", os.Getenv("REDIS_DB"))
	}

	maxConns, err := strconv.ParseInt(get("DB_MAX_CONNS", "10"), 10, 32)
	if err != nil || maxConns <= 0 {
		return Config{}, fmt.Errorf("無效的 DB_MAX_CONNS: %q", os.Getenv("DB_MAX_CONNS"))
	}
	cfg.DBMaxConns = int32(maxConns)

	if cfg.DBMaxIdleTime, err = time.ParseDuration(get("DB_MAX_IDLE_TIME", "15m")); err != nil {
		return Config{}, fmt.Errorf("無效的 DB_MAX_IDLE_TIME: %v", err)
	}
	if cfg.SessionTTL, err = time.ParseDuration(get("SESSION_TTL", "168h")); err != nil || cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("無效的 SESSION_TTL: %q", os.Getenv("SESSION_TTL"))
	}

	return cfg, nil
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
