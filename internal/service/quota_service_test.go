package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgpa-dev/sgpa-api/internal/models"
	appErrors "github.com/sgpa-dev/sgpa-api/pkg/errors"
)

func TestSweepNotifiesUnderstaffedOwners(t *testing.T) {
	projects := newFakeProjectRepo(
		&models.Project{ID: "proj-1", Name: "Alpha", Code: "A-1", RequiredHelpers: 2, OwnerID: "director-1"},
		&models.Project{ID: "proj-2", Name: "Beta", Code: "B-1", RequiredHelpers: 1, OwnerID: "director-2"},
	)
	// Beta meets its quota with one pending form; Alpha has nothing.
	forms := newFakeFormRepo(&models.HelperForm{ID: "form-1", ProjectID: "proj-2", Status: models.FormPending})
	notifications := &fakeNotificationRepo{}
	svc := NewQuotaService(projects, forms, notifications, nil, nil)

	report, err := svc.Sweep(context.Background(), reviewerClaims("reviewer-1"))
	require.NoError(t, err)
	assert.Equal(t, 2, report.ProjectsEvaluated)
	assert.Equal(t, 1, report.NotificationsSent)
	assert.Equal(t, []string{"proj-1"}, report.UnderstaffedIDs)

	require.Len(t, notifications.created, 1)
	assert.Equal(t, "director-1", notifications.created[0].RecipientID)
	assert.Contains(t, notifications.created[0].Message, "Alpha")
	assert.Contains(t, notifications.created[0].Message, "2")
}

func TestSweepCountsFormsInAnyStatus(t *testing.T) {
	projects := newFakeProjectRepo(
		&models.Project{ID: "proj-1", Name: "Alpha", Code: "A-1", RequiredHelpers: 1, OwnerID: "director-1"},
	)
	forms := newFakeFormRepo(&models.HelperForm{ID: "form-1", ProjectID: "proj-1", Status: models.FormRejected})
	notifications := &fakeNotificationRepo{}
	svc := NewQuotaService(projects, forms, notifications, nil, nil)

	report, err := svc.Sweep(context.Background(), reviewerClaims("reviewer-1"))
	require.NoError(t, err)
	assert.Zero(t, report.NotificationsSent)
	assert.Empty(t, notifications.created)
}

func TestSweepRejectsDirector(t *testing.T) {
	svc := NewQuotaService(newFakeProjectRepo(), newFakeFormRepo(), &fakeNotificationRepo{}, nil, nil)

	_, err := svc.Sweep(context.Background(), directorClaims("director-1"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}
