// File: internal/handler/companies/companies.go
package companies

import (
	"errors"
	"net/http"

	"meisterverbund/internal/database"
	"meisterverbund/internal/dto"
	"meisterverbund/internal/handler"
	"meisterverbund/internal/model"
	"meisterverbund/internal/store"

	"github.com/labstack/echo/v4"
)

// 測試時替換
var (
	listCompanies = store.ListCompanies
	getCompany    = store.GetCompany
	createCompany = store.CreateCompany
	updateCompany = store.UpdateCompany
)

// ListCompaniesHandler 列出公司與即時評分
// @Summary     公司列表
// @Description search 比對名稱 (不分大小寫)；state/category 為 all 或空白時不篩選
// @Tags        companies
// @Produce     json
// @Param       search   query string false "名稱關鍵字"
// @Param       state    query string false "Bundesland"
// @Param       category query string false "Gewerk"
// @Success     200 {array}  model.CompanyWithRating
// @Failure     500 {object} dto.HTTPError
// @Router      /companies [get]
func ListCompaniesHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		filter := store.CompanyFilter{
			Search:   c.QueryParam("search"),
			State:    c.QueryParam("state"),
			Category: c.QueryParam("category"),
		}
		list, err := listCompanies(c.Request().Context(), db, filter)
		if err != nil {
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}

// GetCompanyHandler 取得單一公司與評分
// @Summary     公司詳細資料
// @Tags        companies
// @Produce     json
// @Param       id  path     int true "公司 ID"
// @Success     200 {object} model.CompanyWithRating
// @Failure     400 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /companies/{id} [get]
func GetCompanyHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParseID(c, "id")
		if !ok {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid company id"})
		}
		company, err := getCompany(c.Request().Context(), db, id)
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, dto.HTTPError{Message: "company not found"})
		}
		if err != nil {
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, company)
	}
}

// CreateCompanyHandler 新增公司 (admin)
// @Summary     新增公司
// @Tags        companies
// @Accept      json
// @Produce     json
// @Param       body body     dto.CreateCompanyRequest true "公司資料"
// @Success     201  {object} model.CompanyWithRating
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     403  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /companies [post]
func CreateCompanyHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.CreateCompanyRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
		}

		created, err := createCompany(c.Request().Context(), db, req.ToModel())
		if err != nil {
			return handler.InternalError(c, err)
		}
		// 新公司尚無評論
		return c.JSON(http.StatusCreated, model.CompanyWithRating{Company: *created})
	}
}

// UpdateCompanyHandler 部分更新公司 (admin)
// @Summary     更新公司
// @Description 只修改請求中出現的欄位
// @Tags        companies
// @Accept      json
// @Produce     json
// @Param       id   path     int                      true "公司 ID"
// @Param       body body     dto.UpdateCompanyRequest true "要更新的欄位"
// @Success     200  {object} model.CompanyWithRating
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     403  {object} dto.HTTPError
// @Failure     404  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /companies/{id} [put]
func UpdateCompanyHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParseID(c, "id")
		if !ok {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid company id"})
		}
		var req dto.UpdateCompanyRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: err.Error()})
		}

		ctx := c.Request().Context()
		err := updateCompany(ctx, db, id, req.ToModel())
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, dto.HTTPError{Message: "company not found"})
		}
		if err != nil {
			return handler.InternalError(c, err)
		}

		company, err := getCompany(ctx, db, id)
		if err != nil {
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, company)
	}
}
