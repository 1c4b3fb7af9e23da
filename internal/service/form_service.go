package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sgpa-dev/sgpa-api/internal/authz"
	"github.com/sgpa-dev/sgpa-api/internal/models"
	"github.com/sgpa-dev/sgpa-api/internal/quota"
	appErrors "github.com/sgpa-dev/sgpa-api/pkg/errors"
)

type formRepository interface {
	Create(ctx context.Context, form *models.HelperForm) error
	UpdateStatus(ctx context.Context, id string, status models.FormStatus) error
	FindByID(ctx context.Context, id string) (*models.HelperForm, error)
	ListByProject(ctx context.Context, projectID string) ([]models.HelperForm, error)
	ListByStatus(ctx context.Context, status models.FormStatus) ([]models.HelperForm, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.HelperForm, error)
	ListAll(ctx context.Context) ([]models.HelperForm, error)
}

type projectReader interface {
	FindByID(ctx context.Context, id string) (*models.Project, error)
}

type notificationWriter interface {
	Create(ctx context.Context, notification *models.Notification) error
}

// RegisterFormRequest represents payload for registering a helper form.
type RegisterFormRequest struct {
	ProjectID     string `json:"project_id" validate:"required"`
	HelperCount   int    `json:"helper_count" validate:"required,min=1"`
	HelperName    string `json:"helper_name" validate:"required"`
	HelperSurname string `json:"helper_surname" validate:"required"`
	NationalID    string `json:"national_id" validate:"required"`
	Faculty       string `json:"faculty" validate:"required"`
}

// FormService owns the helper form lifecycle: registration by directors and
// review by the reviewing authority.
type FormService struct {
	repo          formRepository
	projects      projectReader
	notifications notificationWriter
	cache         *CacheService
	metrics       *MetricsService
	validator     *validator.Validate
	logger        *zap.Logger
}

// NewFormService creates an instance of FormService.
func NewFormService(repo formRepository, projects projectReader, notifications notificationWriter, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *FormService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &FormService{
		repo:          repo,
		projects:      projects,
		notifications: notifications,
		cache:         cache,
		metrics:       metrics,
		validator:     validate,
		logger:        logger,
	}
}

// Register validates and persists a new helper form with status Pending.
// The project must exist and belong to the calling director.
func (s *FormService) Register(ctx context.Context, req RegisterFormRequest, claims *models.JWTClaims) (*models.HelperForm, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if !authz.Allows(claims.Role, authz.OpRegisterForm) {
		return nil, appErrors.ErrForbidden
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "todos los campos del ayudante son requeridos")
	}

	form := &models.HelperForm{
		ProjectID:     req.ProjectID,
		HelperCount:   req.HelperCount,
		HelperName:    req.HelperName,
		HelperSurname: req.HelperSurname,
		NationalID:    req.NationalID,
		Faculty:       req.Faculty,
		Status:        models.FormPending,
	}
	if !form.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "todos los campos del ayudante son requeridos")
	}
	if !form.ValidNationalID() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "la cédula del ayudante debe tener entre 7 y 10 dígitos")
	}

	project, err := s.projects.FindByID(ctx, req.ProjectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "el proyecto seleccionado no existe")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch project")
	}
	if project.OwnerID != claims.UserID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "no tiene permiso para agregar formularios a este proyecto")
	}

	if err := s.repo.Create(ctx, form); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create helper form")
	}
	s.metrics.RecordFormRegistered()
	s.cache.Invalidate(ctx, workflowSummaryKey(claims.UserID))

	s.evaluateQuota(ctx, project)

	return form, nil
}

// Approve overwrites the form status to Approved. The overwrite is
// unconditional: re-approving an already reviewed form is allowed, matching
// the legacy lifecycle.
func (s *FormService) Approve(ctx context.Context, formID string, claims *models.JWTClaims) error {
	if claims == nil {
		return appErrors.ErrUnauthorized
	}
	if !authz.Allows(claims.Role, authz.OpApproveForm) {
		return appErrors.ErrForbidden
	}
	return s.setStatus(ctx, formID, models.FormApproved)
}

// Reject overwrites the form status to Rejected. Reviewers may reject any
// form; directors may reject forms on projects they own (legacy override).
func (s *FormService) Reject(ctx context.Context, formID string, claims *models.JWTClaims) error {
	if claims == nil {
		return appErrors.ErrUnauthorized
	}
	if !authz.Allows(claims.Role, authz.OpRejectForm) {
		return appErrors.ErrForbidden
	}

	if claims.Role == models.RoleDirector {
		form, err := s.repo.FindByID(ctx, formID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.ErrNotFound
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch helper form")
		}
		project, err := s.projects.FindByID(ctx, form.ProjectID)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch project")
		}
		if project.OwnerID != claims.UserID {
			return appErrors.Clone(appErrors.ErrForbidden, "solo puede rechazar formularios de sus propios proyectos")
		}
	}

	return s.setStatus(ctx, formID, models.FormRejected)
}

// List returns forms visible to the caller: every form (optionally filtered
// by status) for reviewers, own-project forms for directors.
func (s *FormService) List(ctx context.Context, status *models.FormStatus, claims *models.JWTClaims) ([]models.HelperForm, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}

	if authz.Allows(claims.Role, authz.OpReadAll) {
		if status != nil {
			forms, err := s.repo.ListByStatus(ctx, *status)
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list helper forms")
			}
			return forms, nil
		}
		forms, err := s.repo.ListAll(ctx)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list helper forms")
		}
		return forms, nil
	}

	if !authz.Allows(claims.Role, authz.OpReadOwn) {
		return nil, appErrors.ErrForbidden
	}
	forms, err := s.repo.ListByOwner(ctx, claims.UserID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list helper forms")
	}
	return forms, nil
}

func (s *FormService) setStatus(ctx context.Context, formID string, status models.FormStatus) error {
	if _, err := s.repo.FindByID(ctx, formID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrNotFound
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch helper form")
	}

	if err := s.repo.UpdateStatus(ctx, formID, status); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update helper form status")
	}
	return nil
}

// evaluateQuota re-checks the project staffing after a form mutation and
// notifies the owner when helpers are still missing. Notification emission
// is fire-and-forget: failures are logged, never surfaced to the caller.
func (s *FormService) evaluateQuota(ctx context.Context, project *models.Project) {
	forms, err := s.repo.ListByProject(ctx, project.ID)
	if err != nil {
		s.logger.Warn("quota evaluation skipped", zap.String("project_id", project.ID), zap.Error(err))
		return
	}

	draft := quota.Evaluate(project, forms)
	if draft == nil {
		return
	}
	if err := s.notifications.Create(ctx, draft); err != nil {
		s.logger.Warn("failed to persist quota notification", zap.String("project_id", project.ID), zap.Error(err))
		return
	}
	s.metrics.RecordNotificationEmitted()
}
