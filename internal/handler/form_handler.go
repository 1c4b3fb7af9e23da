package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sgpa-dev/sgpa-api/internal/models"
	"github.com/sgpa-dev/sgpa-api/internal/service"
	appErrors "github.com/sgpa-dev/sgpa-api/pkg/errors"
	"github.com/sgpa-dev/sgpa-api/pkg/response"
)

// FormHandler wires HTTP endpoints to the helper form service.
type FormHandler struct {
	service *service.FormService
}

// NewFormHandler creates a new handler.
func NewFormHandler(svc *service.FormService) *FormHandler {
	return &FormHandler{service: svc}
}

// Register godoc
// @Summary Register a helper form
// @Description Registers one staffing assignment against a project owned by the caller
// @Tags Forms
// @Accept json
// @Produce json
// @Param payload body service.RegisterFormRequest true "Form payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /forms [post]
func (h *FormHandler) Register(c *gin.Context) {
	var req service.RegisterFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid form payload"))
		return
	}

	form, err := h.service.Register(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, form)
}

// Approve godoc
// @Summary Approve a helper form
// @Tags Forms
// @Produce json
// @Param id path string true "Form ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /forms/{id}/approve [post]
func (h *FormHandler) Approve(c *gin.Context) {
	if err := h.service.Approve(c.Request.Context(), c.Param("id"), claimsFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Reject godoc
// @Summary Reject a helper form
// @Tags Forms
// @Produce json
// @Param id path string true "Form ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /forms/{id}/reject [post]
func (h *FormHandler) Reject(c *gin.Context) {
	if err := h.service.Reject(c.Request.Context(), c.Param("id"), claimsFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// List godoc
// @Summary List helper forms visible to the caller
// @Tags Forms
// @Produce json
// @Param status query string false "Filter by status (PENDING, APPROVED, REJECTED)"
// @Success 200 {object} response.Envelope
// @Router /forms [get]
func (h *FormHandler) List(c *gin.Context) {
	var status *models.FormStatus
	if raw := c.Query("status"); raw != "" {
		s := models.FormStatus(raw)
		status = &s
	}

	forms, err := h.service.List(c.Request.Context(), status, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, forms, nil)
}
