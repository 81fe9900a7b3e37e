// File: internal/router/router.go
package router

import (
	"meisterverbund/internal/cache"
	"meisterverbund/internal/database"
	"meisterverbund/internal/handler"
	"meisterverbund/internal/handler/admin"
	"meisterverbund/internal/handler/auth"
	"meisterverbund/internal/handler/companies"
	"meisterverbund/internal/handler/posts"
	"meisterverbund/internal/handler/reviews"
	"meisterverbund/internal/middleware"
	"meisterverbund/internal/service"

	"github.com/labstack/echo/v4"
)

// Setup 註冊所有路由與中介層
// /api 底下每個請求都先經過 Session，取得最新的使用者狀態
func Setup(e *echo.Echo, db database.DB, cch cache.Cache, sc service.SessionConfig) {
	api := e.Group("/api", middleware.Session(db, cch, sc))

	// 健康檢查
	api.GET("/ping", handler.PingHandler(db, cch))

	// 註冊、登入、登出
	api.POST("/auth/register", auth.RegisterHandler(db, cch, sc))
	api.POST("/auth/login", auth.LoginHandler(db, cch, sc))
	api.POST("/auth/logout", auth.LogoutHandler(cch, sc), middleware.RequireAuth)
	api.GET("/auth/me", auth.MeHandler(), middleware.RequireAuth)

	// 公司目錄：公開讀取，admin 維護
	api.GET("/companies", companies.ListCompaniesHandler(db))
	api.GET("/companies/:id", companies.GetCompanyHandler(db))
	api.POST("/companies", companies.CreateCompanyHandler(db), middleware.RequireAdmin)
	api.PUT("/companies/:id", companies.UpdateCompanyHandler(db), middleware.RequireAdmin)

	// 評論
	api.GET("/reviews", reviews.ListReviewsHandler(db))
	api.POST("/reviews", reviews.CreateReviewHandler(db), middleware.RequireAuth)
	api.DELETE("/reviews/:id", reviews.DeleteReviewHandler(db), middleware.RequireAdmin)

	// 文章
	api.GET("/posts", posts.ListPostsHandler(db))
	api.GET("/posts/:slug", posts.GetPostHandler(db))
	api.POST("/posts", posts.CreatePostHandler(db), middleware.RequireAdmin)
	api.PUT("/posts/:id", posts.UpdatePostHandler(db), middleware.RequireAdmin)

	// 管理員
	apiAdmin := api.Group("/admin", middleware.RequireAdmin)
	apiAdmin.GET("/users", admin.ListUsersHandler(db))
	apiAdmin.PATCH("/users/:id/block", admin.BlockUserHandler(db))
}
