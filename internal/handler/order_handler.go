package handler

import (
	"net/http"

	"storefront/internal/client"
	"storefront/internal/config"
	"storefront/internal/middleware"

	"github.com/labstack/echo/v4"
)

// /ordersのHTTP。注文はこのコアの所有データではないので上流へ素通しする。
type OrderHandler struct {
	api *client.Client
}

// DI
func NewOrderHandler(api *client.Client) *OrderHandler {
	return &OrderHandler{api: api}
}

// /orders配下を登録
func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("/history", h.history)
	g.GET("/current", h.current)
	g.PUT("/:id/cancel", h.cancel)
}

func (h *OrderHandler) history(c echo.Context) error {
	token, ok := middleware.GetAuthToken(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orders, err := h.api.OrderHistory(c.Request().Context(), token)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, DataResponse{Data: orders})
}

func (h *OrderHandler) current(c echo.Context) error {
	token, ok := middleware.GetAuthToken(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orders, err := h.api.CurrentOrders(c.Request().Context(), token)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, DataResponse{Data: orders})
}

func (h *OrderHandler) cancel(c echo.Context) error {
	token, ok := middleware.GetAuthToken(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.api.CancelOrder(c.Request().Context(), token, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, DataResponse{Data: out})
}
