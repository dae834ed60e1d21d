package server

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// ハンドラ一式を登録したechoを作る
func New(
	cfg config.Config,
	cartH *handler.CartHandler,
	checkoutH *handler.CheckoutHandler,
	productH *handler.ProductHandler,
	authH *handler.AuthHandler,
	orderH *handler.OrderHandler,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	//疎通確認用
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "storefront is running"})
	})

	RegisterRoutes(e, cfg, cartH, checkoutH, productH, authH, orderH)
	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
