package handler

import (
	"errors"
	"net/http"

	"storefront/internal/client"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//上流APIのエラーはステータスごと返す
	var ae *client.APIError
	if errors.As(err, &ae) {
		return c.JSON(ae.Status, ErrorResponse{Error: ae.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// 上流の封筒形式に合わせる
type DataResponse struct {
	Data any `json:"data"`
}
