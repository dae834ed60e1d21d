package server

import (
	"storefront/internal/config"
	"storefront/internal/handler"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(
	e *echo.Echo,
	cfg config.Config,
	cartH *handler.CartHandler,
	checkoutH *handler.CheckoutHandler,
	productH *handler.ProductHandler,
	authH *handler.AuthHandler,
	orderH *handler.OrderHandler,
) {
	cartH.RegisterRoutes(e)
	checkoutH.RegisterRoutes(e)
	productH.RegisterRoutes(e)
	authH.RegisterRoutes(e, cfg)
	orderH.RegisterRoutes(e, cfg)
}
