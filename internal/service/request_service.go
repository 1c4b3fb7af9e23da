package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sgpa-dev/sgpa-api/internal/authz"
	"github.com/sgpa-dev/sgpa-api/internal/models"
	"github.com/sgpa-dev/sgpa-api/internal/quota"
	appErrors "github.com/sgpa-dev/sgpa-api/pkg/errors"
)

// BlockedAdvisory is the message a director receives when submitting a
// request without any helper form on record. Inherited wording, kept
// verbatim.
const BlockedAdvisory = "ATENCIÓN: Debe llenar un formulario de ayudantes en uno de sus proyectos " +
	"antes de enviar una solicitud a Jefatura. Revise sus notificaciones."

type requestRepository interface {
	Create(ctx context.Context, request *models.Request) error
	UpdateStatus(ctx context.Context, id string, status models.RequestStatus, reviewerID *string) error
	FindByID(ctx context.Context, id string) (*models.Request, error)
	ListByRequester(ctx context.Context, requesterID string) ([]models.Request, error)
	ListAll(ctx context.Context, status *models.RequestStatus) ([]models.Request, error)
}

type projectLister interface {
	ListByOwner(ctx context.Context, ownerID string) ([]models.Project, error)
}

type formCounter interface {
	ListByProject(ctx context.Context, projectID string) ([]models.HelperForm, error)
}

// SubmitRequestRequest represents payload for submitting a request.
type SubmitRequestRequest struct {
	Subject      string             `json:"subject" validate:"required"`
	Body         string             `json:"body"`
	Kind         models.RequestKind `json:"kind" validate:"omitempty,oneof=GENERIC PERMIT DOCUMENT"`
	PermitCode   *string            `json:"permit_code,omitempty"`
	DocumentType *string            `json:"document_type,omitempty"`
}

// SubmitOutcome is the result of a submission attempt. Exactly one branch is
// populated: Request on acceptance, Advisory on the blocked path. A blocked
// submission is a valid outcome of the workflow, not an error.
type SubmitOutcome struct {
	Request  *models.Request `json:"request,omitempty"`
	Blocked  bool            `json:"blocked"`
	Advisory string          `json:"advisory,omitempty"`
}

// RequestService owns the request lifecycle: gated submission by directors
// and review by the reviewing authority.
type RequestService struct {
	repo          requestRepository
	projects      projectLister
	forms         formCounter
	notifications notificationWriter
	cache         *CacheService
	metrics       *MetricsService
	validator     *validator.Validate
	logger        *zap.Logger
}

// NewRequestService creates an instance of RequestService.
func NewRequestService(repo requestRepository, projects projectLister, forms formCounter, notifications notificationWriter, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *RequestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &RequestService{
		repo:          repo,
		projects:      projects,
		forms:         forms,
		notifications: notifications,
		cache:         cache,
		metrics:       metrics,
		validator:     validate,
		logger:        logger,
	}
}

// Submit runs the staffing gate and, when it passes, persists a Pending
// request. When the director has no helper form registered on any of their
// projects the submission is blocked: one notification is persisted for the
// director and the advisory is returned instead of a request. The gate counts
// forms in any status.
func (s *RequestService) Submit(ctx context.Context, req SubmitRequestRequest, claims *models.JWTClaims) (*SubmitOutcome, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if !authz.Allows(claims.Role, authz.OpSubmitRequest) {
		return nil, appErrors.ErrForbidden
	}
	if strings.TrimSpace(req.Subject) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "el asunto de la solicitud no puede estar vacío")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "la solicitud no es válida")
	}

	kind := req.Kind
	if kind == "" {
		kind = models.KindGeneric
	}
	request := &models.Request{
		Date:         time.Now().UTC(),
		Subject:      req.Subject,
		Body:         req.Body,
		Status:       models.RequestPending,
		RequesterID:  claims.UserID,
		Kind:         kind,
		PermitCode:   req.PermitCode,
		DocumentType: req.DocumentType,
	}
	if !request.ValidDetail() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "el detalle de la solicitud no corresponde con su tipo")
	}

	projects, err := s.projects.ListByOwner(ctx, claims.UserID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list projects")
	}

	passed, understaffed, err := s.runGate(ctx, projects)
	if err != nil {
		return nil, err
	}
	if !passed {
		s.notifyBlocked(ctx, claims.UserID, understaffed)
		s.metrics.RecordSubmissionBlocked()
		s.logger.Info("request submission blocked",
			zap.String("requester_id", claims.UserID),
			zap.Int("projects", len(projects)),
		)
		return &SubmitOutcome{Blocked: true, Advisory: BlockedAdvisory}, nil
	}

	if err := s.repo.Create(ctx, request); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create request")
	}
	s.metrics.RecordRequestCreated()
	s.cache.Invalidate(ctx, workflowSummaryKey(claims.UserID))

	return &SubmitOutcome{Request: request}, nil
}

// runGate checks whether at least one helper form exists across the owned
// projects. It also reports the draft notification of the first under-staffed
// project, which the blocked path reuses so the director learns which quota
// is missing.
func (s *RequestService) runGate(ctx context.Context, projects []models.Project) (bool, *models.Notification, error) {
	passed := false
	var understaffed *models.Notification
	for i := range projects {
		forms, err := s.forms.ListByProject(ctx, projects[i].ID)
		if err != nil {
			return false, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list helper forms")
		}
		if len(forms) > 0 {
			passed = true
			break
		}
		if understaffed == nil {
			if draft := quota.Evaluate(&projects[i], forms); draft != nil {
				understaffed = draft
			}
		}
	}
	return passed, understaffed, nil
}

// notifyBlocked persists exactly one notification for a blocked submission:
// the quota draft when an owned project is under-staffed, a generic reminder
// otherwise. Persistence failures are logged and swallowed so the advisory
// still reaches the director.
func (s *RequestService) notifyBlocked(ctx context.Context, recipientID string, understaffed *models.Notification) {
	notification := understaffed
	if notification == nil {
		notification = &models.Notification{
			Date:        time.Now().UTC(),
			Message:     BlockedAdvisory,
			RecipientID: recipientID,
		}
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		s.logger.Warn("failed to persist blocked-submission notification",
			zap.String("recipient_id", recipientID), zap.Error(err))
		return
	}
	s.metrics.RecordNotificationEmitted()
}

// Approve overwrites the request status to Approved and records the
// reviewer. Unconditional overwrite, matching the legacy lifecycle.
func (s *RequestService) Approve(ctx context.Context, requestID string, claims *models.JWTClaims) error {
	return s.setStatus(ctx, requestID, models.RequestApproved, claims)
}

// Reject overwrites the request status to Rejected.
func (s *RequestService) Reject(ctx context.Context, requestID string, claims *models.JWTClaims) error {
	return s.setStatus(ctx, requestID, models.RequestRejected, claims)
}

// Advise overwrites the request status to Advised, meaning the reviewing
// authority answered with guidance rather than a verdict.
func (s *RequestService) Advise(ctx context.Context, requestID string, claims *models.JWTClaims) error {
	return s.setStatus(ctx, requestID, models.RequestAdvised, claims)
}

func (s *RequestService) setStatus(ctx context.Context, requestID string, status models.RequestStatus, claims *models.JWTClaims) error {
	if claims == nil {
		return appErrors.ErrUnauthorized
	}
	if !authz.Allows(claims.Role, authz.OpSetRequestStatus) {
		return appErrors.ErrForbidden
	}

	request, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrNotFound
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch request")
	}

	reviewerID := claims.UserID
	if err := s.repo.UpdateStatus(ctx, requestID, status, &reviewerID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update request status")
	}
	s.cache.Invalidate(ctx, workflowSummaryKey(request.RequesterID))
	return nil
}

// Get returns a request by identifier. Directors may only read their own
// requests.
func (s *RequestService) Get(ctx context.Context, requestID string, claims *models.JWTClaims) (*models.Request, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}

	request, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch request")
	}

	if !authz.Allows(claims.Role, authz.OpReadAll) && request.RequesterID != claims.UserID {
		return nil, appErrors.ErrForbidden
	}
	return request, nil
}

// List returns requests visible to the caller: every request (optionally
// filtered by status) for reviewers, own requests for directors.
func (s *RequestService) List(ctx context.Context, status *models.RequestStatus, claims *models.JWTClaims) ([]models.Request, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}

	if authz.Allows(claims.Role, authz.OpReadAll) {
		requests, err := s.repo.ListAll(ctx, status)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list requests")
		}
		return requests, nil
	}

	if !authz.Allows(claims.Role, authz.OpReadOwn) {
		return nil, appErrors.ErrForbidden
	}
	requests, err := s.repo.ListByRequester(ctx, claims.UserID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list requests")
	}
	return requests, nil
}
