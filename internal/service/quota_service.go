package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/sgpa-dev/sgpa-api/internal/authz"
	"github.com/sgpa-dev/sgpa-api/internal/models"
	"github.com/sgpa-dev/sgpa-api/internal/quota"
	appErrors "github.com/sgpa-dev/sgpa-api/pkg/errors"
)

type projectScanner interface {
	ListAll(ctx context.Context) ([]models.Project, error)
}

// QuotaReport summarises one staffing sweep across every project.
type QuotaReport struct {
	ProjectsEvaluated int      `json:"projects_evaluated"`
	NotificationsSent int      `json:"notifications_sent"`
	UnderstaffedIDs   []string `json:"understaffed_project_ids"`
}

// QuotaService runs the reviewer-triggered staffing sweep: every project is
// evaluated and the owner of each under-staffed one gets a notification.
type QuotaService struct {
	projects      projectScanner
	forms         formCounter
	notifications notificationWriter
	metrics       *MetricsService
	logger        *zap.Logger
}

// NewQuotaService creates an instance of QuotaService.
func NewQuotaService(projects projectScanner, forms formCounter, notifications notificationWriter, metrics *MetricsService, logger *zap.Logger) *QuotaService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuotaService{
		projects:      projects,
		forms:         forms,
		notifications: notifications,
		metrics:       metrics,
		logger:        logger,
	}
}

// Sweep evaluates the staffing quota of every project. Reviewer only. The
// sweep keeps going past individual project failures and reports what it
// managed to evaluate.
func (s *QuotaService) Sweep(ctx context.Context, claims *models.JWTClaims) (*QuotaReport, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if !authz.Allows(claims.Role, authz.OpEvaluateQuota) {
		return nil, appErrors.ErrForbidden
	}

	projects, err := s.projects.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list projects")
	}

	report := &QuotaReport{}
	for i := range projects {
		forms, err := s.forms.ListByProject(ctx, projects[i].ID)
		if err != nil {
			s.logger.Warn("quota sweep: skipping project",
				zap.String("project_id", projects[i].ID), zap.Error(err))
			continue
		}
		report.ProjectsEvaluated++

		draft := quota.Evaluate(&projects[i], forms)
		if draft == nil {
			continue
		}
		report.UnderstaffedIDs = append(report.UnderstaffedIDs, projects[i].ID)

		if err := s.notifications.Create(ctx, draft); err != nil {
			s.logger.Warn("quota sweep: failed to notify owner",
				zap.String("project_id", projects[i].ID), zap.Error(err))
			continue
		}
		report.NotificationsSent++
		s.metrics.RecordNotificationEmitted()
	}

	s.logger.Info("quota sweep finished",
		zap.Int("projects_evaluated", report.ProjectsEvaluated),
		zap.Int("notifications_sent", report.NotificationsSent),
	)
	return report, nil
}
