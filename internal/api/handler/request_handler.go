package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anrssnbv/flight-requests-backend/internal/api/metrics"
	"github.com/anrssnbv/flight-requests-backend/internal/core/domain"
	"github.com/anrssnbv/flight-requests-backend/internal/core/ports"
)

// RequestHandler handles HTTP requests for flight-request operations.
type RequestHandler struct {
	service ports.RequestService
}

func NewRequestHandler(service ports.RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

// List returns the requests visible to the caller: clients see their own,
// admins see everything. The role dispatch happens here, once, on the
// identity resolved at the authorization boundary.
//
// @Summary      List flight requests
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.FlightRequest
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/requests [get]
func (h *RequestHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var requests []*domain.FlightRequest
	switch identity.Role {
	case domain.RoleAdmin:
		requests, err = h.service.ListForAdmin(c.Request().Context(), identity)
	case domain.RoleClient:
		requests, err = h.service.ListForClient(c.Request().Context(), identity)
	default:
		return c.JSON(http.StatusForbidden, errorResponse{Error: "forbidden"})
	}
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return c.JSON(http.StatusForbidden, errorResponse{Error: "forbidden"})
		}
		return err
	}

	return c.JSON(http.StatusOK, requests)
}

// Create submits a new flight request for the authenticated client.
//
// @Summary      Submit a flight request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRequestRequest  true  "Flight request details"
// @Success      201   {object}  domain.FlightRequest
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/requests [post]
func (h *RequestHandler) Create(c echo.Context) error {
	var req createRequestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	created, err := h.service.Submit(c.Request().Context(), identity, ports.SubmitInput{
		Date:        req.Date,
		Time:        req.Time,
		Area:        req.Area,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrForbidden):
			return c.JSON(http.StatusForbidden, errorResponse{Error: "forbidden"})
		}
		return err
	}

	metrics.RequestsSubmittedTotal.Inc()
	return c.JSON(http.StatusCreated, created)
}

// Decide applies an admin decision to a pending request.
//
// @Summary      Accept or decline a flight request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Request id"
// @Param        body  body      decideRequest  true  "Decision"
// @Success      200   {object}  domain.FlightRequest
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/requests/{id} [patch]
func (h *RequestHandler) Decide(c echo.Context) error {
	var req decideRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	updated, err := h.service.Decide(c.Request().Context(), identity, c.Param("id"), ports.DecideInput{
		Status:   domain.RequestStatus(req.Status),
		Feedback: req.Feedback,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRequestNotFound):
			return c.JSON(http.StatusNotFound, errorResponse{Error: "request not found"})
		case errors.Is(err, domain.ErrAlreadyDecided):
			metrics.DecisionConflictsTotal.Inc()
			return c.JSON(http.StatusConflict, errorResponse{Error: "request already decided"})
		case errors.Is(err, domain.ErrFeedbackRequired):
			return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "feedback is required when declining"})
		case errors.Is(err, domain.ErrForbidden):
			return c.JSON(http.StatusForbidden, errorResponse{Error: "forbidden"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return err
	}

	metrics.DecisionsTotal.WithLabelValues(string(updated.Status)).Inc()
	return c.JSON(http.StatusOK, updated)
}
