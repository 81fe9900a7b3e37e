// @title        Meisterverbund API
// @version      1.0
// @description  Meisterbetriebe 目錄、評論與新聞的後端 API
// @host         localhost:8080
// @BasePath     /api
package main

import (
	"context"
	"fmt"
	"os"

	"meisterverbund/internal/cache"
	"meisterverbund/internal/config"
	"meisterverbund/internal/database"
	"meisterverbund/internal/dto"
	"meisterverbund/internal/handler"
	"meisterverbund/internal/logger"
	"meisterverbund/internal/router"
	"meisterverbund/internal/seed"
	"meisterverbund/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	_ "meisterverbund/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// NewCustomValidator 建立含自訂規則 (slug) 的 validator
func NewCustomValidator() (*CustomValidator, error) {
	v := validator.New()
	if err := dto.RegisterValidations(v); err != nil {
		return nil, err
	}
	return &CustomValidator{validator: v}, nil
}

var (
	loadConfig      = config.Load
	newLogger       = logger.New
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	rollbackFn      = database.RollbackAll
	seedFn          = seed.Run
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	exitFunc        = os.Exit
)

func sessionConfig(cfg config.Config) service.SessionConfig {
	return service.SessionConfig{
		Secret: cfg.SessionSecret,
		TTL:    cfg.SessionTTL,
		Secure: cfg.IsProduction(),
	}
}

func seedOptions(cfg config.Config) seed.Options {
	return seed.Options{AdminEmail: cfg.AdminEmail, AdminPassword: cfg.AdminPassword}
}

func poolOptions(cfg config.Config) database.PoolOptions {
	return database.PoolOptions{MaxConns: cfg.DBMaxConns, MaxIdleTime: cfg.DBMaxIdleTime}
}

// newServer 組裝 echo：validator、錯誤格式、request id、存取日誌、路由與 swagger
func newServer(cfg config.Config, db database.DB, cch cache.Cache, log *zap.Logger) (*echo.Echo, error) {
	cv, err := NewCustomValidator()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = cv
	e.HTTPErrorHandler = handler.ErrorHandler
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(logger.Middleware(log))
	e.Use(middleware.Recover())

	router.Setup(e, db, cch, sessionConfig(cfg))

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return e, nil
}

// runServe 連線 DB 與 Redis、執行 migration 與 seed 後啟動 HTTP 服務
func runServe(cfg config.Config, log *zap.Logger) error {
	ctx := context.Background()

	db, err := newPgxPool(ctx, cfg.DatabaseURL, poolOptions(cfg))
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	cch, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %w", err)
	}
	defer cch.Close()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}
	if err := seedFn(ctx, db, seedOptions(cfg), log); err != nil {
		return fmt.Errorf("Seed 執行失敗: %w", err)
	}

	e, err := newServer(cfg, db, cch, log)
	if err != nil {
		return err
	}
	log.Info("http server starting", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.Env))
	return startServer(e, cfg.HTTPAddr)
}

// runSeed 只連線 DB 並執行 seed
func runSeed(cfg config.Config, log *zap.Logger) error {
	ctx := context.Background()
	db, err := newPgxPool(ctx, cfg.DatabaseURL, poolOptions(cfg))
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	if err := seedFn(ctx, db, seedOptions(cfg), log); err != nil {
		return fmt.Errorf("Seed 執行失敗: %w", err)
	}
	log.Info("seed finished")
	return nil
}

func main() {
	exitFunc(execute(os.Args[1:]))
}
