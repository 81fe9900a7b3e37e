// File: internal/handler/errors.go
package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"meisterverbund/internal/dto"
	"meisterverbund/internal/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const internalErrorMessage = "internal server error"

// InternalError 記錄原始錯誤，回應固定的 500 訊息，不把內部細節回傳給客戶端
func InternalError(c echo.Context, err error) error {
	logger.FromContext(c).Error("request failed",
		zap.Error(err),
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
	)
	return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: internalErrorMessage})
}

// ErrorHandler 取代 echo 預設的錯誤輸出，統一為 {"message": ...}
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		_ = InternalError(c, err)
		return
	}
	if he.Code >= http.StatusInternalServerError {
		_ = InternalError(c, err)
		return
	}

	msg := fmt.Sprint(he.Message)
	if m, ok := he.Message.(string); ok {
		msg = m
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(he.Code)
		return
	}
	_ = c.JSON(he.Code, dto.HTTPError{Message: msg})
}

// ParseID 解析正整數路徑參數
func ParseID(c echo.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
