package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	commonhttp "github.com/rupiksha/go-ppob-transaction/internal/common/http"
)

func (m *AppMiddleware) InternalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		secretKey := c.Request().Header.Get("X-Secret-Key")
		if secretKey == "" {
			return commonhttp.RestErrorResponse(c, http.StatusUnauthorized, fmt.Errorf("required secret key"))
		}

		if secretKey != m.conf.SecretKey {
			return commonhttp.RestErrorResponse(c, http.StatusUnauthorized, fmt.Errorf("invalid secret key"))
		}

		return next(c)
	}
}
