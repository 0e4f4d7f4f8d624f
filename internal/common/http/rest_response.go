package http

import (
	"errors"
	"net/http"

	"github.com/hashicorp/go-multierror"
	"github.com/labstack/echo/v4"

	"github.com/rupiksha/go-ppob-transaction/internal/common"
	"github.com/rupiksha/go-ppob-transaction/internal/models"
)

type (
	RestErrorResponseModel struct {
		Status  string      `json:"status" example:"error"`
		Code    interface{} `json:"code"`
		Message string      `json:"message" example:"error"`
	}

	RestErrorValidationResponseModel struct {
		Status  string      `json:"status" example:"error"`
		Message string      `json:"message" example:"validation error"`
		Errors  interface{} `json:"errors"`
	}
)

func RestSuccessResponse(c echo.Context, code int, in interface{}) error {
	return c.JSON(code, in)
}

func RestErrorResponse(c echo.Context, statusCode int, err error) error {
	res := RestErrorResponseModel{
		Status:  "error",
		Code:    statusCode,
		Message: err.Error(),
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		res.Code = echoErr.Code
		res.Message = echoErr.Message.(string)
	}

	var data models.ErrorDetail
	if errors.As(err, &data) {
		res.Code = data.Code
		res.Message = data.ErrorMessage.Error()
	}
	return c.JSON(statusCode, res)
}

func RestErrorValidationResponse(c echo.Context, errs interface{}) error {
	res := RestErrorValidationResponseModel{
		Status:  "error",
		Message: common.ErrValidation.Error(),
	}
	if data, ok := errs.(*multierror.Error); ok {
		res.Errors = data.Errors
	}
	if data, ok := errs.([]models.FieldViolation); ok {
		res.Errors = data
	}

	return c.JSON(http.StatusUnprocessableEntity, res)
}

// RestDomainErrorResponse maps the engine's sentinel errors onto HTTP
// statuses.
func RestDomainErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrSessionNotFound),
		errors.Is(err, common.ErrDataNotFound),
		errors.Is(err, common.ErrProviderNotFound):
		return RestErrorResponse(c, http.StatusNotFound, err)
	case errors.Is(err, common.ErrValidation),
		errors.Is(err, common.ErrInvalidCategory),
		errors.Is(err, common.ErrFetchNotSupported):
		return RestErrorResponse(c, http.StatusUnprocessableEntity, err)
	case errors.Is(err, common.ErrSubmissionInFlight),
		errors.Is(err, common.ErrAwaitingReconcile),
		errors.Is(err, common.ErrNotRetrySafe),
		errors.Is(err, common.ErrTerminalState),
		errors.Is(err, common.ErrNotInSubmittableState):
		return RestErrorResponse(c, http.StatusConflict, err)
	default:
		return RestErrorResponse(c, http.StatusInternalServerError, err)
	}
}
