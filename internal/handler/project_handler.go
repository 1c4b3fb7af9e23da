package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sgpa-dev/sgpa-api/internal/service"
	appErrors "github.com/sgpa-dev/sgpa-api/pkg/errors"
	"github.com/sgpa-dev/sgpa-api/pkg/response"
)

// ProjectHandler wires HTTP endpoints to the project service.
type ProjectHandler struct {
	service          *service.ProjectService
	maxDocumentBytes int64
}

// NewProjectHandler creates a new handler.
func NewProjectHandler(svc *service.ProjectService, maxDocumentBytes int64) *ProjectHandler {
	if maxDocumentBytes <= 0 {
		maxDocumentBytes = 1 << 20
	}
	return &ProjectHandler{service: svc, maxDocumentBytes: maxDocumentBytes}
}

// Create godoc
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Param payload body service.CreateProjectRequest true "Project payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req service.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid project payload"))
		return
	}

	project, err := h.service.Create(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, project)
}

// Update godoc
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param payload body service.CreateProjectRequest true "Project payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	var req service.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid project payload"))
		return
	}

	project, err := h.service.Update(c.Request.Context(), c.Param("id"), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, project, nil)
}

// List godoc
// @Summary List projects visible to the caller
// @Tags Projects
// @Produce json
// @Param search query string false "Search by name or code"
// @Success 200 {object} response.Envelope
// @Router /projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.service.List(c.Request.Context(), c.Query("search"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, projects, nil)
}

// Get godoc
// @Summary Get project by id
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /projects/{id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.service.Get(c.Request.Context(), c.Param("id"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, project, nil)
}

// ExtractHelperCount godoc
// @Summary Extract the required helper count from a staffing document
// @Description Reads the uploaded planning document and returns the helper count found next to the configured label
// @Tags Projects
// @Accept octet-stream
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /projects/extract-helper-count [post]
func (h *ProjectHandler) ExtractHelperCount(c *gin.Context) {
	document, err := io.ReadAll(io.LimitReader(c.Request.Body, h.maxDocumentBytes))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "no se pudo leer el documento"))
		return
	}

	count, err := h.service.ExtractHelperCount(c.Request.Context(), document, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"required_helpers": count}, nil)
}
