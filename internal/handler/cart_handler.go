package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cartのHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type ReorderRequest struct {
	Items []usecase.AddItemInput `json:"items"`
}

type CartCountResponse struct {
	Count int64 `json:"count"`
}

// /cart配下を登録
func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/cart")
	g.Use(middleware.Session())

	g.GET("", h.getCart)
	g.DELETE("", h.clearCart)
	g.POST("/items", h.addItem)
	g.PATCH("/items/:productId", h.updateQuantity)
	g.DELETE("/items/:productId", h.removeItem)
	g.POST("/reorder", h.reorder)
	g.GET("/count", h.count)
	g.GET("/events", h.events)
}

func (h *CartHandler) getCart(c echo.Context) error {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	return c.JSON(http.StatusOK, h.uc.Get(c.Request().Context(), sessionID))
}

func (h *CartHandler) addItem(c echo.Context) error {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req usecase.AddItemInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	return c.JSON(http.StatusOK, h.uc.AddItem(c.Request().Context(), sessionID, req))
}

type UpdateQuantityRequest struct {
	Quantity int64 `json:"quantity"`
}

func (h *CartHandler) updateQuantity(c echo.Context) error {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out := h.uc.UpdateQuantity(c.Request().Context(), sessionID, c.Param("productId"), req.Quantity)
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) removeItem(c echo.Context) error {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out := h.uc.RemoveItem(c.Request().Context(), sessionID, c.Param("productId"))
	return c.JSON(http.StatusOK, out)
}

// 注文履歴からの再注文
func (h *CartHandler) reorder(c echo.Context) error {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req ReorderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	return c.JSON(http.StatusOK, h.uc.AddItems(c.Request().Context(), sessionID, req.Items))
}

func (h *CartHandler) clearCart(c echo.Context) error {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	return c.JSON(http.StatusOK, h.uc.Clear(c.Request().Context(), sessionID))
}

func (h *CartHandler) count(c echo.Context) error {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	return c.JSON(http.StatusOK, CartCountResponse{Count: h.uc.ItemCount(c.Request().Context(), sessionID)})
}

// カート変更のserver-sent eventsストリーム。
// バッジ等のUIがポーリングせずに追従するための口（cartUpdated相当）。
func (h *CartHandler) events(c echo.Context) error {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	events, cancel := h.uc.Subscribe()
	defer cancel()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			//他セッションの変更は流さない
			if ev.SessionID != sessionID {
				continue
			}

			raw, err := json.Marshal(ev.Cart)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(res, "event: cartUpdated\ndata: %s\n\n", raw); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}
