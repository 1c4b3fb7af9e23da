package service

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/sgpa-dev/sgpa-api/internal/authz"
	"github.com/sgpa-dev/sgpa-api/internal/models"
	appErrors "github.com/sgpa-dev/sgpa-api/pkg/errors"
	"github.com/sgpa-dev/sgpa-api/pkg/export"
)

// ExportFormat enumerates the supported export renderings.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

type datasetRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ExportResult carries rendered bytes plus the metadata the handler needs to
// set response headers.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders helper forms and requests as downloadable reports.
type ExportService struct {
	forms    formRepository
	requests requestRepository
	csv      datasetRenderer
	pdf      datasetRenderer
	enabled  bool
	logger   *zap.Logger
}

// NewExportService creates an instance of ExportService.
func NewExportService(forms formRepository, requests requestRepository, enabled bool, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		forms:    forms,
		requests: requests,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		enabled:  enabled,
		logger:   logger,
	}
}

// ExportForms renders every helper form in the requested format. Reviewer
// only.
func (s *ExportService) ExportForms(ctx context.Context, format ExportFormat, claims *models.JWTClaims) (*ExportResult, error) {
	if err := s.authorize(claims); err != nil {
		return nil, err
	}

	forms, err := s.forms.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list helper forms")
	}

	dataset := export.Dataset{
		Title:   "Formularios de Ayudantes",
		Headers: []string{"ID", "Proyecto", "Ayudante", "Cédula", "Facultad", "Cantidad", "Estado"},
	}
	for _, form := range forms {
		dataset.Rows = append(dataset.Rows, []string{
			form.ID,
			form.ProjectID,
			form.HelperFullName(),
			form.NationalID,
			form.Faculty,
			strconv.Itoa(form.HelperCount),
			string(form.Status),
		})
	}

	return s.render(dataset, format, "formularios")
}

// ExportRequests renders every request in the requested format. Reviewer
// only.
func (s *ExportService) ExportRequests(ctx context.Context, format ExportFormat, claims *models.JWTClaims) (*ExportResult, error) {
	if err := s.authorize(claims); err != nil {
		return nil, err
	}

	requests, err := s.requests.ListAll(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list requests")
	}

	dataset := export.Dataset{
		Title:   "Solicitudes a Jefatura",
		Headers: []string{"ID", "Fecha", "Asunto", "Solicitante", "Tipo", "Estado"},
	}
	for _, request := range requests {
		dataset.Rows = append(dataset.Rows, []string{
			request.ID,
			request.Date.Format("2006-01-02"),
			request.Subject,
			request.RequesterID,
			string(request.Kind),
			string(request.Status),
		})
	}

	return s.render(dataset, format, "solicitudes")
}

func (s *ExportService) authorize(claims *models.JWTClaims) error {
	if !s.enabled {
		return appErrors.Clone(appErrors.ErrNotFound, "la exportación de reportes está deshabilitada")
	}
	if claims == nil {
		return appErrors.ErrUnauthorized
	}
	if !authz.Allows(claims.Role, authz.OpExport) {
		return appErrors.ErrForbidden
	}
	return nil
}

func (s *ExportService) render(dataset export.Dataset, format ExportFormat, baseName string) (*ExportResult, error) {
	switch format {
	case FormatCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportResult{Content: content, ContentType: "text/csv", Filename: baseName + ".csv"}, nil
	case FormatPDF:
		content, err := s.pdf.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportResult{Content: content, ContentType: "application/pdf", Filename: baseName + ".pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "formato de exportación no soportado")
	}
}
