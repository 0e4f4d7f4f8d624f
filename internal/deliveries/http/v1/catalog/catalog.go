package catalog

import (
	nethttp "net/http"

	"github.com/labstack/echo/v4"

	"github.com/rupiksha/go-ppob-transaction/internal/common/http"
	"github.com/rupiksha/go-ppob-transaction/internal/models"
	"github.com/rupiksha/go-ppob-transaction/internal/services"
)

type catalogHandler struct {
	resolverSvc services.ResolverService
}

// New catalog handler will initialize the catalog/ resources endpoint
func New(app *echo.Group, resolverSvc services.ResolverService) {
	handler := catalogHandler{
		resolverSvc: resolverSvc,
	}
	api := app.Group("/catalog")
	api.GET("/:category/providers", handler.listProviders)
	api.GET("/providers/:id", handler.getProvider)
}

func (h *catalogHandler) listProviders(c echo.Context) error {
	category := models.ProviderCategory(c.Param("category"))

	providers, err := h.resolverSvc.ListProviders(c.Request().Context(), category)
	if err != nil {
		return http.RestDomainErrorResponse(c, err)
	}

	return http.RestSuccessResponse(c, nethttp.StatusOK, providers)
}

func (h *catalogHandler) getProvider(c echo.Context) error {
	provider, err := h.resolverSvc.GetProvider(c.Request().Context(), c.Param("id"))
	if err != nil {
		return http.RestDomainErrorResponse(c, err)
	}

	return http.RestSuccessResponse(c, nethttp.StatusOK, provider)
}
