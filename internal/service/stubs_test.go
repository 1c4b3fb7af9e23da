package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/sgpa-dev/sgpa-api/internal/models"
)

// In-memory fakes for the repository interfaces. Tests seed the maps and
// inspect the recorded mutations.

type fakeProjectRepo struct {
	projects map[string]*models.Project
}

func newFakeProjectRepo(projects ...*models.Project) *fakeProjectRepo {
	repo := &fakeProjectRepo{projects: make(map[string]*models.Project)}
	for _, p := range projects {
		repo.projects[p.ID] = p
	}
	return repo
}

func (f *fakeProjectRepo) Create(_ context.Context, project *models.Project) error {
	if project.ID == "" {
		project.ID = "proj-" + string(rune('a'+len(f.projects)))
	}
	f.projects[project.ID] = project
	return nil
}

func (f *fakeProjectRepo) Update(_ context.Context, project *models.Project) error {
	f.projects[project.ID] = project
	return nil
}

func (f *fakeProjectRepo) Search(_ context.Context, text string) ([]models.Project, error) {
	var out []models.Project
	for _, p := range f.projects {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(text)) ||
			strings.Contains(strings.ToLower(p.Code), strings.ToLower(text)) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProjectRepo) FindByID(_ context.Context, id string) (*models.Project, error) {
	project, ok := f.projects[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return project, nil
}

func (f *fakeProjectRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Project, error) {
	var out []models.Project
	for _, p := range f.projects {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProjectRepo) ListAll(_ context.Context) ([]models.Project, error) {
	var out []models.Project
	for _, p := range f.projects {
		out = append(out, *p)
	}
	return out, nil
}

type fakeFormRepo struct {
	forms   map[string]*models.HelperForm
	created []*models.HelperForm
}

func newFakeFormRepo(forms ...*models.HelperForm) *fakeFormRepo {
	repo := &fakeFormRepo{forms: make(map[string]*models.HelperForm)}
	for _, form := range forms {
		repo.forms[form.ID] = form
	}
	return repo
}

func (f *fakeFormRepo) Create(_ context.Context, form *models.HelperForm) error {
	if form.ID == "" {
		form.ID = "form-" + string(rune('a'+len(f.created)))
	}
	f.forms[form.ID] = form
	f.created = append(f.created, form)
	return nil
}

func (f *fakeFormRepo) UpdateStatus(_ context.Context, id string, status models.FormStatus) error {
	if form, ok := f.forms[id]; ok {
		form.Status = status
	}
	return nil
}

func (f *fakeFormRepo) FindByID(_ context.Context, id string) (*models.HelperForm, error) {
	form, ok := f.forms[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return form, nil
}

func (f *fakeFormRepo) ListByProject(_ context.Context, projectID string) ([]models.HelperForm, error) {
	var out []models.HelperForm
	for _, form := range f.forms {
		if form.ProjectID == projectID {
			out = append(out, *form)
		}
	}
	return out, nil
}

func (f *fakeFormRepo) ListByStatus(_ context.Context, status models.FormStatus) ([]models.HelperForm, error) {
	var out []models.HelperForm
	for _, form := range f.forms {
		if form.Status == status {
			out = append(out, *form)
		}
	}
	return out, nil
}

func (f *fakeFormRepo) ListByOwner(context.Context, string) ([]models.HelperForm, error) {
	var out []models.HelperForm
	for _, form := range f.forms {
		out = append(out, *form)
	}
	return out, nil
}

func (f *fakeFormRepo) ListAll(context.Context) ([]models.HelperForm, error) {
	var out []models.HelperForm
	for _, form := range f.forms {
		out = append(out, *form)
	}
	return out, nil
}

type fakeRequestRepo struct {
	requests map[string]*models.Request
	created  []*models.Request
}

func newFakeRequestRepo(requests ...*models.Request) *fakeRequestRepo {
	repo := &fakeRequestRepo{requests: make(map[string]*models.Request)}
	for _, r := range requests {
		repo.requests[r.ID] = r
	}
	return repo
}

func (f *fakeRequestRepo) Create(_ context.Context, request *models.Request) error {
	if request.ID == "" {
		request.ID = "req-" + string(rune('a'+len(f.created)))
	}
	f.requests[request.ID] = request
	f.created = append(f.created, request)
	return nil
}

func (f *fakeRequestRepo) UpdateStatus(_ context.Context, id string, status models.RequestStatus, reviewerID *string) error {
	if request, ok := f.requests[id]; ok {
		request.Status = status
		request.ReviewerID = reviewerID
	}
	return nil
}

func (f *fakeRequestRepo) FindByID(_ context.Context, id string) (*models.Request, error) {
	request, ok := f.requests[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return request, nil
}

func (f *fakeRequestRepo) ListByRequester(_ context.Context, requesterID string) ([]models.Request, error) {
	var out []models.Request
	for _, r := range f.requests {
		if r.RequesterID == requesterID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ListAll(_ context.Context, status *models.RequestStatus) ([]models.Request, error) {
	var out []models.Request
	for _, r := range f.requests {
		if status == nil || r.Status == *status {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) CountByRequester(_ context.Context, requesterID string) (int, error) {
	count := 0
	for _, r := range f.requests {
		if r.RequesterID == requesterID {
			count++
		}
	}
	return count, nil
}

type fakeNotificationRepo struct {
	created []*models.Notification
}

func (f *fakeNotificationRepo) Create(_ context.Context, notification *models.Notification) error {
	f.created = append(f.created, notification)
	return nil
}

func (f *fakeNotificationRepo) FindByID(_ context.Context, id string) (*models.Notification, error) {
	for _, n := range f.created {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeNotificationRepo) ListByRecipient(_ context.Context, recipientID string, unreadOnly bool) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range f.created {
		if n.RecipientID != recipientID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		out = append(out, *n)
	}
	return out, nil
}

func (f *fakeNotificationRepo) SetRead(_ context.Context, id string, read bool) error {
	for _, n := range f.created {
		if n.ID == id {
			n.Read = read
		}
	}
	return nil
}

type fakeUserRepo struct {
	users     map[string]*models.User
	auditLogs []*models.AuditLog
	deleted   []string
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (f *fakeUserRepo) List(context.Context, models.UserFilter) ([]models.User, int, error) {
	var out []models.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = "user-" + string(rune('a'+len(f.users)))
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(context.Context, string, time.Time) error {
	return nil
}

func (f *fakeUserRepo) CreateAuditLog(_ context.Context, log *models.AuditLog) error {
	f.auditLogs = append(f.auditLogs, log)
	return nil
}

func directorClaims(userID string) *models.JWTClaims {
	return &models.JWTClaims{UserID: userID, Role: models.RoleDirector}
}

func reviewerClaims(userID string) *models.JWTClaims {
	return &models.JWTClaims{UserID: userID, Role: models.RoleReviewer}
}
