package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sgpa-dev/sgpa-api/internal/models"
	"github.com/sgpa-dev/sgpa-api/internal/service"
	appErrors "github.com/sgpa-dev/sgpa-api/pkg/errors"
	"github.com/sgpa-dev/sgpa-api/pkg/response"
)

// RequestHandler wires HTTP endpoints to the request service.
type RequestHandler struct {
	service *service.RequestService
}

// NewRequestHandler creates a new handler.
func NewRequestHandler(svc *service.RequestService) *RequestHandler {
	return &RequestHandler{service: svc}
}

// Submit godoc
// @Summary Submit a request to the reviewing authority
// @Description Runs the staffing gate first. When the caller has no helper form registered the submission is blocked and an advisory is returned instead of a request.
// @Tags Requests
// @Accept json
// @Produce json
// @Param payload body service.SubmitRequestRequest true "Request payload"
// @Success 200 {object} response.Envelope "Blocked submission with advisory"
// @Success 201 {object} response.Envelope "Accepted request"
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /requests [post]
func (h *RequestHandler) Submit(c *gin.Context) {
	var req service.SubmitRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid request payload"))
		return
	}

	outcome, err := h.service.Submit(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	if outcome.Blocked {
		response.Blocked(c, outcome.Advisory)
		return
	}
	response.Created(c, outcome.Request)
}

// Approve godoc
// @Summary Approve a request
// @Tags Requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /requests/{id}/approve [post]
func (h *RequestHandler) Approve(c *gin.Context) {
	if err := h.service.Approve(c.Request.Context(), c.Param("id"), claimsFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Reject godoc
// @Summary Reject a request
// @Tags Requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /requests/{id}/reject [post]
func (h *RequestHandler) Reject(c *gin.Context) {
	if err := h.service.Reject(c.Request.Context(), c.Param("id"), claimsFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Advise godoc
// @Summary Answer a request with guidance
// @Tags Requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /requests/{id}/advise [post]
func (h *RequestHandler) Advise(c *gin.Context) {
	if err := h.service.Advise(c.Request.Context(), c.Param("id"), claimsFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Get godoc
// @Summary Get request by id
// @Tags Requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /requests/{id} [get]
func (h *RequestHandler) Get(c *gin.Context) {
	request, err := h.service.Get(c.Request.Context(), c.Param("id"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, request, nil)
}

// List godoc
// @Summary List requests visible to the caller
// @Tags Requests
// @Produce json
// @Param status query string false "Filter by status (PENDING, APPROVED, REJECTED, ADVISED)"
// @Success 200 {object} response.Envelope
// @Router /requests [get]
func (h *RequestHandler) List(c *gin.Context) {
	var status *models.RequestStatus
	if raw := c.Query("status"); raw != "" {
		s := models.RequestStatus(raw)
		status = &s
	}

	requests, err := h.service.List(c.Request.Context(), status, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, requests, nil)
}
