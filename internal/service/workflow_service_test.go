package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgpa-dev/sgpa-api/internal/models"
)

func TestWorkflowSummary(t *testing.T) {
	projects := newFakeProjectRepo(
		&models.Project{ID: "proj-1", Name: "Alpha", Code: "A-1", RequiredHelpers: 2, OwnerID: "director-1"},
		&models.Project{ID: "proj-2", Name: "Beta", Code: "B-1", RequiredHelpers: 1, OwnerID: "director-1"},
	)
	forms := newFakeFormRepo(&models.HelperForm{ID: "form-1", ProjectID: "proj-1", Status: models.FormPending})
	requests := newFakeRequestRepo(&models.Request{ID: "req-1", Status: models.RequestPending, RequesterID: "director-1"})
	svc := NewWorkflowService(projects, forms, requests, nil, 0, nil)

	summary, err := svc.Summary(context.Background(), directorClaims("director-1"))
	require.NoError(t, err)
	assert.Equal(t, 2, summary.ProjectCount)
	assert.Equal(t, 1, summary.RequestCount)
	assert.Equal(t, 1, summary.FormCount)
	assert.True(t, summary.CanSubmit)
}

func TestWorkflowSummaryCannotSubmitWithoutForms(t *testing.T) {
	projects := newFakeProjectRepo(
		&models.Project{ID: "proj-1", Name: "Alpha", Code: "A-1", RequiredHelpers: 2, OwnerID: "director-1"},
	)
	svc := NewWorkflowService(projects, newFakeFormRepo(), newFakeRequestRepo(), nil, 0, nil)

	summary, err := svc.Summary(context.Background(), directorClaims("director-1"))
	require.NoError(t, err)
	assert.False(t, summary.CanSubmit)
	assert.Zero(t, summary.RequestCount)
}
