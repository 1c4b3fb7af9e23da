package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sgpa-dev/sgpa-api/internal/service"
	"github.com/sgpa-dev/sgpa-api/pkg/response"
)

// ExportHandler streams rendered reports.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler creates a new handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Forms godoc
// @Summary Export helper forms
// @Tags Exports
// @Produce text/csv
// @Param format query string false "Export format (csv or pdf)" default(csv)
// @Success 200 {file} file
// @Failure 403 {object} response.Envelope
// @Router /exports/forms [get]
func (h *ExportHandler) Forms(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))

	result, err := h.service.ExportForms(c.Request.Context(), format, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.serve(c, result)
}

// Requests godoc
// @Summary Export requests
// @Tags Exports
// @Produce text/csv
// @Param format query string false "Export format (csv or pdf)" default(csv)
// @Success 200 {file} file
// @Failure 403 {object} response.Envelope
// @Router /exports/requests [get]
func (h *ExportHandler) Requests(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))

	result, err := h.service.ExportRequests(c.Request.Context(), format, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.serve(c, result)
}

func (h *ExportHandler) serve(c *gin.Context, result *service.ExportResult) {
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
