package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/rupiksha/go-ppob-transaction/internal/common/log"
)

// Context attaches the request id to the request context so every log entry
// of the request carries it.
func (m *AppMiddleware) Context() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)
			ctx := log.ContextWithFields(c.Request().Context(),
				log.String("correlationId", requestID))
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
