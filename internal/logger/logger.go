// File: internal/logger/logger.go
package logger

import (
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ContextKey 為 echo.Context 中保存 request-scoped logger 的 key
const ContextKey = "logger"

// New 建立彩色 console 輸出的 zap logger，level 解析失敗時回傳錯誤
func New(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(os.Stdout),
		lvl,
	)
	return zap.New(core), nil
}

// FromContext 取出 request-scoped logger，未設定時回傳 no-op logger
func FromContext(c echo.Context) *zap.Logger {
	if l, ok := c.Get(ContextKey).(*zap.Logger); ok && l != nil {
		return l
	}
	return zap.NewNop()
}

// Middleware 把帶有 request id 的 logger 放進 context，並在請求結束時記錄一行存取日誌
// 需放在 middleware.RequestID 之後
func Middleware(base *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		BeforeNextFunc: func(c echo.Context) {
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			c.Set(ContextKey, base.With(zap.String("request_id", id)))
		},
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency.Round(time.Microsecond)),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				base.Error("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			base.Info("request", fields...)
			return nil
		},
	})
}
