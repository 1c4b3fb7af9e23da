package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgpa-dev/sgpa-api/internal/models"
	appErrors "github.com/sgpa-dev/sgpa-api/pkg/errors"
)

func newFormService(forms *fakeFormRepo, projects *fakeProjectRepo, notifications *fakeNotificationRepo) *FormService {
	return NewFormService(forms, projects, notifications, nil, nil, nil, nil)
}

func validRegisterRequest() RegisterFormRequest {
	return RegisterFormRequest{
		ProjectID:     "proj-1",
		HelperCount:   1,
		HelperName:    "Ana",
		HelperSurname: "Pérez",
		NationalID:    "1234567",
		Faculty:       "FIS",
	}
}

func TestRegisterCreatesPendingForm(t *testing.T) {
	projects := newFakeProjectRepo(&models.Project{
		ID: "proj-1", Name: "Alpha", Code: "A-1", RequiredHelpers: 1, OwnerID: "director-1",
	})
	forms := newFakeFormRepo()
	svc := newFormService(forms, projects, &fakeNotificationRepo{})

	form, err := svc.Register(context.Background(), validRegisterRequest(), directorClaims("director-1"))
	require.NoError(t, err)
	assert.Equal(t, models.FormPending, form.Status)
	assert.Equal(t, "Ana Pérez", form.HelperFullName())
	require.Len(t, forms.created, 1)
}

func TestRegisterNotifiesWhileQuotaUnmet(t *testing.T) {
	projects := newFakeProjectRepo(&models.Project{
		ID: "proj-1", Name: "Alpha", Code: "A-1", RequiredHelpers: 2, OwnerID: "director-1",
	})
	notifications := &fakeNotificationRepo{}
	svc := newFormService(newFakeFormRepo(), projects, notifications)

	// One form against a quota of two: the owner is reminded of the missing
	// helper.
	_, err := svc.Register(context.Background(), validRegisterRequest(), directorClaims("director-1"))
	require.NoError(t, err)
	require.Len(t, notifications.created, 1)
	assert.Contains(t, notifications.created[0].Message, "Alpha")
	assert.Equal(t, "director-1", notifications.created[0].RecipientID)
}

func TestRegisterQuotaMetStaysQuiet(t *testing.T) {
	projects := newFakeProjectRepo(&models.Project{
		ID: "proj-1", Name: "Alpha", Code: "A-1", RequiredHelpers: 1, OwnerID: "director-1",
	})
	notifications := &fakeNotificationRepo{}
	svc := newFormService(newFakeFormRepo(), projects, notifications)

	_, err := svc.Register(context.Background(), validRegisterRequest(), directorClaims("director-1"))
	require.NoError(t, err)
	assert.Empty(t, notifications.created)
}

func TestRegisterInvalidNationalID(t *testing.T) {
	projects := newFakeProjectRepo(&models.Project{
		ID: "proj-1", Name: "Alpha", Code: "A-1", RequiredHelpers: 1, OwnerID: "director-1",
	})
	svc := newFormService(newFakeFormRepo(), projects, &fakeNotificationRepo{})

	for _, id := range []string{"12", "12345678901", "12345ab"} {
		req := validRegisterRequest()
		req.NationalID = id
		_, err := svc.Register(context.Background(), req, directorClaims("director-1"))
		require.Error(t, err, "national id %q", id)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	}
}

func TestRegisterUnknownProject(t *testing.T) {
	svc := newFormService(newFakeFormRepo(), newFakeProjectRepo(), &fakeNotificationRepo{})

	_, err := svc.Register(context.Background(), validRegisterRequest(), directorClaims("director-1"))
	require.Error(t, err)
	fromErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, fromErr.Code)
	assert.Equal(t, "el proyecto seleccionado no existe", fromErr.Message)
}

func TestRegisterForeignProject(t *testing.T) {
	projects := newFakeProjectRepo(&models.Project{
		ID: "proj-1", Name: "Alpha", Code: "A-1", RequiredHelpers: 1, OwnerID: "director-2",
	})
	svc := newFormService(newFakeFormRepo(), projects, &fakeNotificationRepo{})

	_, err := svc.Register(context.Background(), validRegisterRequest(), directorClaims("director-1"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestRegisterRejectsReviewer(t *testing.T) {
	svc := newFormService(newFakeFormRepo(), newFakeProjectRepo(), &fakeNotificationRepo{})

	_, err := svc.Register(context.Background(), validRegisterRequest(), reviewerClaims("reviewer-1"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestApproveForm(t *testing.T) {
	forms := newFakeFormRepo(&models.HelperForm{ID: "form-1", ProjectID: "proj-1", Status: models.FormPending})
	svc := newFormService(forms, newFakeProjectRepo(), &fakeNotificationRepo{})

	require.NoError(t, svc.Approve(context.Background(), "form-1", reviewerClaims("reviewer-1")))
	assert.Equal(t, models.FormApproved, forms.forms["form-1"].Status)

	err := svc.Approve(context.Background(), "form-1", directorClaims("director-1"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestRejectFormByOwnerDirector(t *testing.T) {
	projects := newFakeProjectRepo(&models.Project{
		ID: "proj-1", Name: "Alpha", Code: "A-1", RequiredHelpers: 1, OwnerID: "director-1",
	})
	forms := newFakeFormRepo(&models.HelperForm{ID: "form-1", ProjectID: "proj-1", Status: models.FormPending})
	svc := newFormService(forms, projects, &fakeNotificationRepo{})

	require.NoError(t, svc.Reject(context.Background(), "form-1", directorClaims("director-1")))
	assert.Equal(t, models.FormRejected, forms.forms["form-1"].Status)

	// A director who does not own the project cannot reject.
	err := svc.Reject(context.Background(), "form-1", directorClaims("director-2"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestSetFormStatusUnknownForm(t *testing.T) {
	svc := newFormService(newFakeFormRepo(), newFakeProjectRepo(), &fakeNotificationRepo{})

	err := svc.Approve(context.Background(), "missing", reviewerClaims("reviewer-1"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestListFormsByStatus(t *testing.T) {
	forms := newFakeFormRepo(
		&models.HelperForm{ID: "form-1", ProjectID: "proj-1", Status: models.FormPending},
		&models.HelperForm{ID: "form-2", ProjectID: "proj-1", Status: models.FormApproved},
	)
	svc := newFormService(forms, newFakeProjectRepo(), &fakeNotificationRepo{})

	pending := models.FormPending
	got, err := svc.List(context.Background(), &pending, reviewerClaims("reviewer-1"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "form-1", got[0].ID)

	all, err := svc.List(context.Background(), nil, reviewerClaims("reviewer-1"))
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
