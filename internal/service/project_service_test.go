package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgpa-dev/sgpa-api/internal/models"
	appErrors "github.com/sgpa-dev/sgpa-api/pkg/errors"
)

func TestCreateProjectOwnedByCaller(t *testing.T) {
	repo := newFakeProjectRepo()
	svc := NewProjectService(repo, nil, nil, "")

	project, err := svc.Create(context.Background(), CreateProjectRequest{
		Name: "Alpha", Code: "A-1", RequiredHelpers: 2,
	}, directorClaims("director-1"))
	require.NoError(t, err)
	assert.Equal(t, "director-1", project.OwnerID)
	assert.Equal(t, 2, project.RequiredHelpers)

	_, err = svc.Create(context.Background(), CreateProjectRequest{Name: "Beta", Code: "B-1"}, reviewerClaims("reviewer-1"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestUpdateProjectUnknownID(t *testing.T) {
	svc := NewProjectService(newFakeProjectRepo(), nil, nil, "")

	_, err := svc.Update(context.Background(), "missing", CreateProjectRequest{Name: "Alpha", Code: "A-1"}, directorClaims("director-1"))
	require.Error(t, err)
	fromErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, fromErr.Code)
	assert.Equal(t, "el proyecto seleccionado no existe", fromErr.Message)
}

func TestUpdateProjectOwnershipEnforced(t *testing.T) {
	repo := newFakeProjectRepo(&models.Project{ID: "proj-1", Name: "Alpha", Code: "A-1", OwnerID: "director-1"})
	svc := NewProjectService(repo, nil, nil, "")

	_, err := svc.Update(context.Background(), "proj-1", CreateProjectRequest{Name: "Alpha", Code: "A-1"}, directorClaims("director-2"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	updated, err := svc.Update(context.Background(), "proj-1", CreateProjectRequest{
		Name: "Alpha II", Code: "A-1", RequiredHelpers: 3,
	}, directorClaims("director-1"))
	require.NoError(t, err)
	assert.Equal(t, "Alpha II", updated.Name)
	assert.Equal(t, 3, updated.RequiredHelpers)
}

func TestListProjectsScopesByRole(t *testing.T) {
	repo := newFakeProjectRepo(
		&models.Project{ID: "proj-1", Name: "Alpha", Code: "A-1", OwnerID: "director-1"},
		&models.Project{ID: "proj-2", Name: "Beta", Code: "B-1", OwnerID: "director-2"},
	)
	svc := NewProjectService(repo, nil, nil, "")

	all, err := svc.List(context.Background(), "", reviewerClaims("reviewer-1"))
	require.NoError(t, err)
	assert.Len(t, all, 2)

	found, err := svc.List(context.Background(), "beta", reviewerClaims("reviewer-1"))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "proj-2", found[0].ID)

	own, err := svc.List(context.Background(), "", directorClaims("director-1"))
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "proj-1", own[0].ID)
}

func TestExtractHelperCountFromDocument(t *testing.T) {
	svc := NewProjectService(newFakeProjectRepo(), nil, nil, "Numero de Ayudantes")

	document := []byte("Proyecto: Alpha\nNumero de Ayudantes: 3\nFacultad: FIS\n")
	count, err := svc.ExtractHelperCount(context.Background(), document, directorClaims("director-1"))
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	_, err = svc.ExtractHelperCount(context.Background(), []byte("sin etiqueta"), directorClaims("director-1"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.ExtractHelperCount(context.Background(), document, reviewerClaims("reviewer-1"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}
