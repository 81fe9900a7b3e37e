// File: internal/handler/ping.go
package handler

import (
	"net/http"
	"time"

	"meisterverbund/internal/cache"
	"meisterverbund/internal/database"
	"meisterverbund/internal/dto"
	"meisterverbund/internal/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const pingKey = "health:ping"

// PingResponse 健康檢查回應模型
// swagger:model PingResponse
type PingResponse struct {
	// 回應訊息
	Message string `json:"message" example:"pong"`
}

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong，並檢查資料庫與 Redis 連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} PingResponse
// @Failure     500 {object} dto.HTTPError
// @Router      /ping [get]
func PingHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := logger.FromContext(c)
		if err := db.Ping(ctx); err != nil {
			log.Error("database ping failed", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "database unhealthy"})
		}
		if err := cch.Set(ctx, pingKey, "pong", 10*time.Second).Err(); err != nil {
			log.Error("cache ping failed", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "cache unhealthy"})
		}
		return c.JSON(http.StatusOK, PingResponse{Message: "pong"})
	}
}
