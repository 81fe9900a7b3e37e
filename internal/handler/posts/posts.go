// File: internal/handler/posts/posts.go
package posts

import (
	"errors"
	"net/http"

	"meisterverbund/internal/database"
	"meisterverbund/internal/dto"
	"meisterverbund/internal/handler"
	"meisterverbund/internal/middleware"
	"meisterverbund/internal/store"

	"github.com/labstack/echo/v4"
)

// 測試時替換
var (
	listPosts     = store.ListPosts
	getPostBySlug = store.GetPostBySlug
	createPost    = store.CreatePost
	updatePost    = store.UpdatePost
	slugExists    = store.SlugExists
)

const slugTakenMessage = "slug already exists"

// ListPostsHandler 一般訪客只看到已發布文章，admin 也會看到草稿
// @Summary     文章列表
// @Tags        posts
// @Produce     json
// @Success     200 {array}  model.Post
// @Failure     500 {object} dto.HTTPError
// @Router      /posts [get]
func ListPostsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		publishedOnly := !middleware.CurrentUser(c).IsAdmin()
		list, err := listPosts(c.Request().Context(), db, publishedOnly)
		if err != nil {
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}

// GetPostHandler 以 slug 取得文章，草稿只對 admin 可見
// @Summary     文章內容
// @Tags        posts
// @Produce     json
// @Param       slug path     string true "文章 slug"
// @Success     200  {object} model.Post
// @Failure     404  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /posts/{slug} [get]
func GetPostHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		post, err := getPostBySlug(c.Request().Context(), db, c.Param("slug"))
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, dto.HTTPError{Message: "post not found"})
		}
		if err != nil {
			return handler.InternalError(c, err)
		}
		if !post.Published && !middleware.CurrentUser(c).IsAdmin() {
			return c.JSON(http.StatusNotFound, dto.HTTPError{Message: "post not found"})
		}
		return c.JSON(http.StatusOK, post)
	}
}

// CreatePostHandler 新增文章 (admin)，作者為目前使用者
// @Summary     新增文章
// @Tags        posts
// @Accept      json
// @Produce     json
// @Param       body body     dto.CreatePostRequest true "文章內容"
// @Success     201  {object} model.Post
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     403  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /posts [post]
func CreatePostHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := middleware.CurrentUser(c)
		if user == nil {
			return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "authentication required"})
		}

		var req dto.CreatePostRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
		}

		ctx := c.Request().Context()
		taken, err := slugExists(ctx, db, req.Slug, 0)
		if err != nil {
			return handler.InternalError(c, err)
		}
		if taken {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: slugTakenMessage})
		}

		post, err := createPost(ctx, db, req.ToModel(user.ID))
		if errors.Is(err, store.ErrConflict) {
			// 預檢後仍可能被並行請求搶先
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: slugTakenMessage})
		}
		if err != nil {
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusCreated, post)
	}
}

// UpdatePostHandler 部分更新文章 (admin)
// @Summary     更新文章
// @Tags        posts
// @Accept      json
// @Produce     json
// @Param       id   path     int                   true "文章 ID"
// @Param       body body     dto.UpdatePostRequest true "要更新的欄位"
// @Success     200  {object} model.Post
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     403  {object} dto.HTTPError
// @Failure     404  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /posts/{id} [put]
func UpdatePostHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParseID(c, "id")
		if !ok {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid post id"})
		}
		var req dto.UpdatePostRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
		}

		ctx := c.Request().Context()
		if req.Slug != nil {
			taken, err := slugExists(ctx, db, *req.Slug, id)
			if err != nil {
				return handler.InternalError(c, err)
			}
			if taken {
				return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: slugTakenMessage})
			}
		}

		post, err := updatePost(ctx, db, id, req.ToModel())
		switch {
		case errors.Is(err, store.ErrNotFound):
			return c.JSON(http.StatusNotFound, dto.HTTPError{Message: "post not found"})
		case errors.Is(err, store.ErrConflict):
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: slugTakenMessage})
		case err != nil:
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, post)
	}
}
