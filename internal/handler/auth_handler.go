package handler

import (
	"net/http"

	"storefront/internal/client"
	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/middleware"

	"github.com/labstack/echo/v4"
)

// /authのHTTP。認証本体は上流APIとSupabaseが持つ。
type AuthHandler struct {
	api *client.Client
}

// DI
func NewAuthHandler(api *client.Client) *AuthHandler {
	return &AuthHandler{api: api}
}

type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	SupabaseID string `json:"supabaseId"`
}

type RegisterRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	SupabaseID string `json:"supabaseId"`
}

// /auth配下を登録
func (h *AuthHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/auth")

	g.POST("/login", h.login)
	g.POST("/register", h.register)

	p := g.Group("/profile")
	p.Use(middleware.AuthJWT(cfg))
	p.GET("", h.profile)
	p.PUT("", h.updateProfile)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	session, err := h.api.Login(c.Request().Context(), req.Email, req.Password, req.SupabaseID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, DataResponse{Data: session})
}

func (h *AuthHandler) register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.api.Register(c.Request().Context(), req.Name, req.Email, req.Password, req.SupabaseID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, DataResponse{Data: "registered"})
}

func (h *AuthHandler) profile(c echo.Context) error {
	token, ok := middleware.GetAuthToken(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	user, err := h.api.Profile(c.Request().Context(), token)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, DataResponse{Data: user})
}

func (h *AuthHandler) updateProfile(c echo.Context) error {
	token, ok := middleware.GetAuthToken(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req model.User
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	user, err := h.api.UpdateProfile(c.Request().Context(), token, req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, DataResponse{Data: user})
}
