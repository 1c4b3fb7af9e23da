package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sgpa-dev/sgpa-api/internal/service"
	"github.com/sgpa-dev/sgpa-api/pkg/response"
)

// WorkflowHandler exposes the aggregated workflow state.
type WorkflowHandler struct {
	workflow *service.WorkflowService
	quota    *service.QuotaService
}

// NewWorkflowHandler creates a new handler.
func NewWorkflowHandler(workflow *service.WorkflowService, quota *service.QuotaService) *WorkflowHandler {
	return &WorkflowHandler{workflow: workflow, quota: quota}
}

// Summary godoc
// @Summary Workflow summary for the calling director
// @Description Project, form and request counts plus whether the staffing gate currently passes
// @Tags Workflow
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /workflow/summary [get]
func (h *WorkflowHandler) Summary(c *gin.Context) {
	summary, err := h.workflow.Summary(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// EvaluateQuotas godoc
// @Summary Evaluate staffing quotas across all projects
// @Description Notifies the owner of every under-staffed project and reports the sweep results
// @Tags Workflow
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /quota/evaluate [post]
func (h *WorkflowHandler) EvaluateQuotas(c *gin.Context) {
	report, err := h.quota.Sweep(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}
