// File: internal/handler/reviews/reviews.go
package reviews

import (
	"errors"
	"net/http"
	"strconv"

	"meisterverbund/internal/database"
	"meisterverbund/internal/dto"
	"meisterverbund/internal/handler"
	"meisterverbund/internal/middleware"
	"meisterverbund/internal/model"
	"meisterverbund/internal/store"

	"github.com/labstack/echo/v4"
)

// 測試時替換
var (
	listReviews      = store.ListReviews
	createReview     = store.CreateReview
	softDeleteReview = store.SoftDeleteReview
)

type MessageResponse struct {
	Message string `json:"message" example:"review deleted"`
}

// ListReviewsHandler 列出公司未刪除的評論
// @Summary     評論列表
// @Tags        reviews
// @Produce     json
// @Param       companyId query    int true "公司 ID"
// @Success     200       {array}  model.ReviewWithUser
// @Failure     400       {object} dto.HTTPError
// @Failure     500       {object} dto.HTTPError
// @Router      /reviews [get]
func ListReviewsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		companyID, err := strconv.Atoi(c.QueryParam("companyId"))
		if err != nil || companyID <= 0 {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "companyId is required"})
		}
		list, err := listReviews(c.Request().Context(), db, companyID)
		if err != nil {
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}

// CreateReviewHandler 以目前登入的使用者身分新增評論
// @Summary     新增評論
// @Description userId 一律取自 session
// @Tags        reviews
// @Accept      json
// @Produce     json
// @Param       body body     dto.CreateReviewRequest true "評論內容"
// @Success     201  {object} model.Review
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     403  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /reviews [post]
func CreateReviewHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := middleware.CurrentUser(c)
		if user == nil {
			return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "authentication required"})
		}

		var req dto.CreateReviewRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
		}

		review, err := createReview(c.Request().Context(), db, &model.Review{
			UserID:    user.ID,
			CompanyID: req.CompanyID,
			Stars:     req.Stars,
			Comment:   req.Comment,
		})
		if errors.Is(err, store.ErrInvalidReference) {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "company does not exist"})
		}
		if err != nil {
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusCreated, review)
	}
}

// DeleteReviewHandler 軟刪除評論 (admin)，資料列保留但不再計入評分
// @Summary     刪除評論
// @Tags        reviews
// @Produce     json
// @Param       id  path     int true "評論 ID"
// @Success     200 {object} MessageResponse
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /reviews/{id} [delete]
func DeleteReviewHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParseID(c, "id")
		if !ok {
			return c.JSON(http.StatusNotFound, dto.HTTPError{Message: "review not found"})
		}
		err := softDeleteReview(c.Request().Context(), db, id)
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, dto.HTTPError{Message: "review not found"})
		}
		if err != nil {
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, MessageResponse{Message: "review deleted"})
	}
}
