package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgpa-dev/sgpa-api/internal/models"
	appErrors "github.com/sgpa-dev/sgpa-api/pkg/errors"
)

func TestCreateUserChecksEmailUniqueness(t *testing.T) {
	repo := newFakeUserRepo(&models.User{ID: "u1", Email: "director@sgpa.edu", Role: models.RoleDirector, Active: true})
	svc := NewUserService(repo, nil, nil)

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Email: "director@sgpa.edu", FirstName: "Marta", LastName: "Gómez",
		Role: models.RoleDirector, Password: "secret123",
	}, reviewerClaims("reviewer-1"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)

	user, err := svc.Create(context.Background(), CreateUserRequest{
		Email: "nuevo@sgpa.edu", FirstName: "Luis", LastName: "Rojas",
		Role: models.RolePlain, Password: "secret123",
	}, reviewerClaims("reviewer-1"))
	require.NoError(t, err)
	assert.True(t, user.Active)
	assert.NotEqual(t, "secret123", user.PasswordHash)
}

func TestCreateUserForbiddenForDirector(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), nil, nil)

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Email: "x@sgpa.edu", FirstName: "A", LastName: "B",
		Role: models.RolePlain, Password: "secret123",
	}, directorClaims("director-1"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestGetUserSelfOrReviewer(t *testing.T) {
	repo := newFakeUserRepo(&models.User{ID: "u1", Email: "a@sgpa.edu", Role: models.RoleDirector, Active: true})
	svc := NewUserService(repo, nil, nil)

	_, err := svc.Get(context.Background(), "u1", directorClaims("u1"))
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), "u1", reviewerClaims("reviewer-1"))
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), "u1", directorClaims("u2"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestUpdateUserRoleImmutable(t *testing.T) {
	repo := newFakeUserRepo(&models.User{ID: "u1", Email: "a@sgpa.edu", FirstName: "A", LastName: "B", Role: models.RoleDirector, Active: true})
	svc := NewUserService(repo, nil, nil)

	inactive := false
	user, err := svc.Update(context.Background(), "u1", UpdateUserRequest{
		FirstName: "Ana", LastName: "Bravo", Active: &inactive,
	}, reviewerClaims("reviewer-1"))
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.FirstName)
	assert.False(t, user.Active)
	assert.Equal(t, models.RoleDirector, user.Role)
}

func TestDeleteUserAudited(t *testing.T) {
	repo := newFakeUserRepo(&models.User{ID: "u1", Email: "a@sgpa.edu", Role: models.RolePlain, Active: true})
	svc := NewUserService(repo, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), "u1", reviewerClaims("reviewer-1")))
	assert.Equal(t, []string{"u1"}, repo.deleted)
	require.Len(t, repo.auditLogs, 1)
	assert.Equal(t, models.AuditActionUserDelete, repo.auditLogs[0].Action)

	err := svc.Delete(context.Background(), "missing", reviewerClaims("reviewer-1"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
