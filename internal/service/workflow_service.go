package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sgpa-dev/sgpa-api/internal/authz"
	"github.com/sgpa-dev/sgpa-api/internal/models"
	appErrors "github.com/sgpa-dev/sgpa-api/pkg/errors"
)

type requestCounter interface {
	CountByRequester(ctx context.Context, requesterID string) (int, error)
}

type formOwnerLister interface {
	ListByOwner(ctx context.Context, ownerID string) ([]models.HelperForm, error)
}

// WorkflowSummary is the informative state a director sees on their
// dashboard: how much they own, how much they have escalated, and whether
// the staffing gate would currently let a submission through.
type WorkflowSummary struct {
	UserID         string `json:"user_id"`
	ProjectCount   int    `json:"project_count"`
	RequestCount   int    `json:"request_count"`
	FormCount      int    `json:"form_count"`
	CanSubmit      bool   `json:"can_submit"`
	GeneratedAtUTC string `json:"generated_at_utc"`
}

// WorkflowService aggregates the director-facing workflow state. Summaries
// are cached per director and invalidated by the mutating services.
type WorkflowService struct {
	projects projectLister
	forms    formOwnerLister
	requests requestCounter
	cache    *CacheService
	ttl      time.Duration
	logger   *zap.Logger
}

// NewWorkflowService creates an instance of WorkflowService.
func NewWorkflowService(projects projectLister, forms formOwnerLister, requests requestCounter, cache *CacheService, ttl time.Duration, logger *zap.Logger) *WorkflowService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkflowService{
		projects: projects,
		forms:    forms,
		requests: requests,
		cache:    cache,
		ttl:      ttl,
		logger:   logger,
	}
}

// Summary builds the workflow summary for the calling director.
func (s *WorkflowService) Summary(ctx context.Context, claims *models.JWTClaims) (*WorkflowSummary, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if !authz.Allows(claims.Role, authz.OpSubmitRequest) && !authz.Allows(claims.Role, authz.OpReadAll) {
		return nil, appErrors.ErrForbidden
	}

	key := workflowSummaryKey(claims.UserID)
	var cached WorkflowSummary
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	projects, err := s.projects.ListByOwner(ctx, claims.UserID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list projects")
	}
	forms, err := s.forms.ListByOwner(ctx, claims.UserID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list helper forms")
	}
	requestCount, err := s.requests.CountByRequester(ctx, claims.UserID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count requests")
	}

	summary := &WorkflowSummary{
		UserID:         claims.UserID,
		ProjectCount:   len(projects),
		RequestCount:   requestCount,
		FormCount:      len(forms),
		CanSubmit:      len(forms) > 0,
		GeneratedAtUTC: time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.cache.Set(ctx, key, summary, s.ttl); err != nil {
		s.logger.Warn("failed to cache workflow summary", zap.String("user_id", claims.UserID), zap.Error(err))
	}
	return summary, nil
}
