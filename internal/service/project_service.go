package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sgpa-dev/sgpa-api/internal/authz"
	"github.com/sgpa-dev/sgpa-api/internal/models"
	appErrors "github.com/sgpa-dev/sgpa-api/pkg/errors"
	"github.com/sgpa-dev/sgpa-api/pkg/extract"
)

type projectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	FindByID(ctx context.Context, id string) (*models.Project, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Project, error)
	ListAll(ctx context.Context) ([]models.Project, error)
	Search(ctx context.Context, text string) ([]models.Project, error)
}

// CreateProjectRequest represents payload for registering a project.
type CreateProjectRequest struct {
	Name            string     `json:"name" validate:"required"`
	Code            string     `json:"code" validate:"required"`
	Description     string     `json:"description"`
	Type            string     `json:"type"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	RequiredHelpers int        `json:"required_helpers" validate:"min=0"`
}

// ProjectService handles project registration and lookup for directors and
// reviewers.
type ProjectService struct {
	repo             projectRepository
	validator        *validator.Validate
	logger           *zap.Logger
	helperCountLabel string
}

// NewProjectService creates an instance of ProjectService.
func NewProjectService(repo projectRepository, validate *validator.Validate, logger *zap.Logger, helperCountLabel string) *ProjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if helperCountLabel == "" {
		helperCountLabel = "Numero de Ayudantes"
	}
	return &ProjectService{repo: repo, validator: validate, logger: logger, helperCountLabel: helperCountLabel}
}

// Create registers a project owned by the calling director.
func (s *ProjectService) Create(ctx context.Context, req CreateProjectRequest, claims *models.JWTClaims) (*models.Project, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if !authz.Allows(claims.Role, authz.OpCreateProject) {
		return nil, appErrors.ErrForbidden
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid project payload")
	}

	project := &models.Project{
		Name:            req.Name,
		Code:            req.Code,
		Description:     req.Description,
		Type:            req.Type,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		RequiredHelpers: req.RequiredHelpers,
		OwnerID:         claims.UserID,
	}
	if !project.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "el proyecto tiene campos inválidos")
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create project")
	}
	return project, nil
}

// Update modifies a project owned by the calling director. Invariants are
// not re-validated on update, matching construction-only validation in the
// legacy system.
func (s *ProjectService) Update(ctx context.Context, id string, req CreateProjectRequest, claims *models.JWTClaims) (*models.Project, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if !authz.Allows(claims.Role, authz.OpUpdateProject) {
		return nil, appErrors.ErrForbidden
	}

	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "el proyecto seleccionado no existe")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch project")
	}
	if project.OwnerID != claims.UserID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "no tiene permiso para modificar este proyecto")
	}

	project.Name = req.Name
	project.Code = req.Code
	project.Description = req.Description
	project.Type = req.Type
	project.StartDate = req.StartDate
	project.EndDate = req.EndDate
	project.RequiredHelpers = req.RequiredHelpers

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update project")
	}
	return project, nil
}

// List returns the caller's projects, or every project for reviewers. The
// search filter applies to the reviewer listing only.
func (s *ProjectService) List(ctx context.Context, search string, claims *models.JWTClaims) ([]models.Project, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}

	if authz.Allows(claims.Role, authz.OpReadAll) {
		if search != "" {
			projects, err := s.repo.Search(ctx, search)
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to search projects")
			}
			return projects, nil
		}
		projects, err := s.repo.ListAll(ctx)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list projects")
		}
		return projects, nil
	}

	if !authz.Allows(claims.Role, authz.OpReadOwn) {
		return nil, appErrors.ErrForbidden
	}
	projects, err := s.repo.ListByOwner(ctx, claims.UserID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list projects")
	}
	return projects, nil
}

// Get returns a single project visible to the caller.
func (s *ProjectService) Get(ctx context.Context, id string, claims *models.JWTClaims) (*models.Project, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}

	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "el proyecto seleccionado no existe")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch project")
	}
	if project.OwnerID != claims.UserID && !authz.Allows(claims.Role, authz.OpReadAll) {
		return nil, appErrors.ErrForbidden
	}
	return project, nil
}

// ExtractHelperCount pulls the required helper count out of an uploaded
// planning document's text. The extracted value is untrusted: it must parse
// as a non-negative integer or the extraction fails with a validation error.
func (s *ProjectService) ExtractHelperCount(ctx context.Context, document []byte, claims *models.JWTClaims) (int, error) {
	if claims == nil {
		return 0, appErrors.ErrUnauthorized
	}
	if !authz.Allows(claims.Role, authz.OpCreateProject) {
		return 0, appErrors.ErrForbidden
	}

	count, err := extract.HelperCount(document, s.helperCountLabel)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			"no se pudo extraer el número de ayudantes del documento")
	}
	return count, nil
}
