package session

import (
	nethttp "net/http"

	"github.com/labstack/echo/v4"

	"github.com/rupiksha/go-ppob-transaction/internal/common"
	"github.com/rupiksha/go-ppob-transaction/internal/common/http"
	"github.com/rupiksha/go-ppob-transaction/internal/common/validation"
	"github.com/rupiksha/go-ppob-transaction/internal/models"
	"github.com/rupiksha/go-ppob-transaction/internal/services"
)

type sessionHandler struct {
	srv *services.Services
}

// New session handler will initialize the sessions/ resources endpoint. One
// session is one transaction flow.
func New(app *echo.Group, srv *services.Services) {
	handler := sessionHandler{srv: srv}
	api := app.Group("/sessions")
	api.POST("", handler.createSession)
	api.GET("/:id", handler.getState)
	api.DELETE("/:id", handler.closeSession)
	api.PATCH("/:id/fields", handler.updateField)
	api.PUT("/:id/provider", handler.selectProvider)
	api.POST("/:id/fetch", handler.requestFetch)
	api.POST("/:id/pay", handler.confirmAndPay)
	api.POST("/:id/retry", handler.retry)
	api.POST("/:id/reconcile", handler.reconcile)
	api.POST("/:id/reset", handler.reset)
}

type (
	CreateSessionRequest struct {
		Category string `json:"category" validate:"required"`
		UserID   string `json:"userId" validate:"required"`
	}

	CreateSessionResponse struct {
		SessionID string                   `json:"sessionId"`
		State     models.OrchestratorState `json:"state"`
	}

	UpdateFieldRequest struct {
		Field string `json:"field" validate:"required"`
		Value string `json:"value"`
	}

	SelectProviderRequest struct {
		ProviderID string `json:"providerId" validate:"required"`
	}

	StateResponse struct {
		RequestID string                   `json:"requestId"`
		State     models.OrchestratorState `json:"state"`
	}
)

func (h *sessionHandler) createSession(c echo.Context) error {
	req := new(CreateSessionRequest)

	if err := c.Bind(req); err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}

	if err := validation.ValidateStruct(req); err != nil {
		return http.RestErrorValidationResponse(c, err)
	}

	sess, err := h.srv.Sessions.Create(c.Request().Context(), models.ProviderCategory(req.Category), req.UserID)
	if err != nil {
		return http.RestDomainErrorResponse(c, err)
	}

	return http.RestSuccessResponse(c, nethttp.StatusCreated, CreateSessionResponse{
		SessionID: sess.ID,
		State:     sess.Orchestrator.State(),
	})
}

func (h *sessionHandler) session(c echo.Context) (*services.Session, error) {
	return h.srv.Sessions.Get(c.Request().Context(), c.Param("id"))
}

func (h *sessionHandler) stateResponse(c echo.Context, sess *services.Session) error {
	return http.RestSuccessResponse(c, nethttp.StatusOK, StateResponse{
		RequestID: sess.Orchestrator.RequestID(),
		State:     sess.Orchestrator.State(),
	})
}

func (h *sessionHandler) getState(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return http.RestDomainErrorResponse(c, err)
	}
	return h.stateResponse(c, sess)
}

func (h *sessionHandler) closeSession(c echo.Context) error {
	if err := h.srv.Sessions.Remove(c.Request().Context(), c.Param("id")); err != nil {
		return http.RestDomainErrorResponse(c, err)
	}
	return c.NoContent(nethttp.StatusNoContent)
}

func (h *sessionHandler) updateField(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return http.RestDomainErrorResponse(c, err)
	}

	req := new(UpdateFieldRequest)
	if err := c.Bind(req); err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}
	if err := validation.ValidateStruct(req); err != nil {
		return http.RestErrorValidationResponse(c, err)
	}

	if err := sess.Orchestrator.UpdateField(c.Request().Context(), req.Field, req.Value); err != nil {
		if err == common.ErrValidation {
			return http.RestErrorValidationResponse(c, sess.Orchestrator.State().Violations)
		}
		return http.RestDomainErrorResponse(c, err)
	}
	return h.stateResponse(c, sess)
}

func (h *sessionHandler) selectProvider(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return http.RestDomainErrorResponse(c, err)
	}

	req := new(SelectProviderRequest)
	if err := c.Bind(req); err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}
	if err := validation.ValidateStruct(req); err != nil {
		return http.RestErrorValidationResponse(c, err)
	}

	if err := sess.Orchestrator.SelectProvider(c.Request().Context(), req.ProviderID); err != nil {
		return http.RestDomainErrorResponse(c, err)
	}
	return h.stateResponse(c, sess)
}

func (h *sessionHandler) requestFetch(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return http.RestDomainErrorResponse(c, err)
	}

	if err := sess.Orchestrator.RequestFetch(c.Request().Context()); err != nil {
		if err == common.ErrValidation {
			return http.RestErrorValidationResponse(c, sess.Orchestrator.State().Violations)
		}
		return http.RestDomainErrorResponse(c, err)
	}
	return h.stateResponse(c, sess)
}

// confirmAndPay reads a fresh wallet snapshot and submits. The snapshot is
// read here, immediately before confirmation, never earlier in the flow.
func (h *sessionHandler) confirmAndPay(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return http.RestDomainErrorResponse(c, err)
	}

	ctx := c.Request().Context()
	snapshot, err := h.srv.WalletRepo().GetSnapshot(ctx, sess.Orchestrator.Request().UserID)
	if err != nil {
		return http.RestDomainErrorResponse(c, err)
	}

	if err := sess.Orchestrator.ConfirmAndPay(ctx, snapshot); err != nil {
		if err == common.ErrValidation {
			return http.RestErrorValidationResponse(c, sess.Orchestrator.State().Violations)
		}
		return http.RestDomainErrorResponse(c, err)
	}
	return h.stateResponse(c, sess)
}

func (h *sessionHandler) retry(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return http.RestDomainErrorResponse(c, err)
	}

	ctx := c.Request().Context()
	snapshot, err := h.srv.WalletRepo().GetSnapshot(ctx, sess.Orchestrator.Request().UserID)
	if err != nil {
		return http.RestDomainErrorResponse(c, err)
	}

	if err := sess.Orchestrator.Retry(ctx, snapshot); err != nil {
		return http.RestDomainErrorResponse(c, err)
	}
	return h.stateResponse(c, sess)
}

func (h *sessionHandler) reconcile(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return http.RestDomainErrorResponse(c, err)
	}

	if _, err := sess.Orchestrator.Reconcile(c.Request().Context()); err != nil {
		return http.RestDomainErrorResponse(c, err)
	}
	return h.stateResponse(c, sess)
}

func (h *sessionHandler) reset(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return http.RestDomainErrorResponse(c, err)
	}

	if err := sess.Orchestrator.Reset(c.Request().Context()); err != nil {
		return http.RestDomainErrorResponse(c, err)
	}
	return h.stateResponse(c, sess)
}
