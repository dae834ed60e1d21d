package handler

import (
	"errors"
	"net/http"

	"storefront/internal/client"
	"storefront/internal/middleware"
	"storefront/internal/search"

	"github.com/labstack/echo/v4"
)

// /products の公開API（上流への素通し＋サジェスト）
type ProductHandler struct {
	api       *client.Client
	suggester *search.Suggester
}

// DI
func NewProductHandler(api *client.Client, suggester *search.Suggester) *ProductHandler {
	return &ProductHandler{api: api, suggester: suggester}
}

// /products配下を登録
func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/products")
	g.Use(middleware.Session())

	g.GET("", h.list)
	g.GET("/suggest", h.suggest)
	g.GET("/:id", h.detail)
}

func (h *ProductHandler) list(c echo.Context) error {
	products, err := h.api.ListProducts(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, DataResponse{Data: products})
}

func (h *ProductHandler) detail(c echo.Context) error {
	product, err := h.api.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, DataResponse{Data: product})
}

// 入力ごとのサジェスト。同一セッションの古い問い合わせはlatest winsで破棄される。
func (h *ProductHandler) suggest(c echo.Context) error {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	products, err := h.suggester.Query(c.Request().Context(), sessionID, c.QueryParam("q"))
	if err != nil {
		//追い越された応答は何も適用しない
		if errors.Is(err, search.ErrSuperseded) {
			return c.NoContent(http.StatusNoContent)
		}
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, DataResponse{Data: products})
}
