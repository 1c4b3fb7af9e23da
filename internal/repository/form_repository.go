package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sgpa-dev/sgpa-api/internal/models"
)

// FormRepository provides database access for helper forms.
type FormRepository struct {
	db *sqlx.DB
}

// NewFormRepository creates a new instance of FormRepository.
func NewFormRepository(db *sqlx.DB) *FormRepository {
	return &FormRepository{db: db}
}

const formColumns = `id, project_id, helper_count, helper_name, helper_surname, national_id, faculty, status, created_at, updated_at`

// Create inserts a new helper form.
func (r *FormRepository) Create(ctx context.Context, form *models.HelperForm) error {
	if form.ID == "" {
		form.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if form.CreatedAt.IsZero() {
		form.CreatedAt = now
	}
	form.UpdatedAt = now

	const query = `INSERT INTO helper_forms (id, project_id, helper_count, helper_name, helper_surname, national_id, faculty, status, created_at, updated_at) VALUES (:id, :project_id, :helper_count, :helper_name, :helper_surname, :national_id, :faculty, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, form); err != nil {
		return fmt.Errorf("create helper form: %w", err)
	}
	return nil
}

// UpdateStatus overwrites the form status. The overwrite is unconditional;
// the lifecycle deliberately allows re-reviewing already reviewed forms.
func (r *FormRepository) UpdateStatus(ctx context.Context, id string, status models.FormStatus) error {
	const query = `UPDATE helper_forms SET status = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC()); err != nil {
		return fmt.Errorf("update helper form status: %w", err)
	}
	return nil
}

// FindByID returns a helper form by identifier.
func (r *FormRepository) FindByID(ctx context.Context, id string) (*models.HelperForm, error) {
	query := fmt.Sprintf(`SELECT %s FROM helper_forms WHERE id = $1 LIMIT 1`, formColumns)
	var form models.HelperForm
	if err := r.db.GetContext(ctx, &form, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find helper form by id: %w", err)
	}
	return &form, nil
}

// ListByProject returns every form registered against the project,
// regardless of status.
func (r *FormRepository) ListByProject(ctx context.Context, projectID string) ([]models.HelperForm, error) {
	query := fmt.Sprintf(`SELECT %s FROM helper_forms WHERE project_id = $1 ORDER BY created_at DESC`, formColumns)
	var forms []models.HelperForm
	if err := r.db.SelectContext(ctx, &forms, query, projectID); err != nil {
		return nil, fmt.Errorf("list helper forms by project: %w", err)
	}
	return forms, nil
}

// ListByStatus returns all forms in the given status.
func (r *FormRepository) ListByStatus(ctx context.Context, status models.FormStatus) ([]models.HelperForm, error) {
	query := fmt.Sprintf(`SELECT %s FROM helper_forms WHERE status = $1 ORDER BY created_at DESC`, formColumns)
	var forms []models.HelperForm
	if err := r.db.SelectContext(ctx, &forms, query, status); err != nil {
		return nil, fmt.Errorf("list helper forms by status: %w", err)
	}
	return forms, nil
}

// ListByOwner returns the forms across all projects owned by the director.
func (r *FormRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.HelperForm, error) {
	query := fmt.Sprintf(`SELECT f.%s FROM helper_forms f JOIN projects p ON p.id = f.project_id WHERE p.owner_id = $1 ORDER BY f.created_at DESC`,
		"id, f.project_id, f.helper_count, f.helper_name, f.helper_surname, f.national_id, f.faculty, f.status, f.created_at, f.updated_at")
	var forms []models.HelperForm
	if err := r.db.SelectContext(ctx, &forms, query, ownerID); err != nil {
		return nil, fmt.Errorf("list helper forms by owner: %w", err)
	}
	return forms, nil
}

// ListAll returns every registered helper form.
func (r *FormRepository) ListAll(ctx context.Context) ([]models.HelperForm, error) {
	query := fmt.Sprintf(`SELECT %s FROM helper_forms ORDER BY created_at DESC`, formColumns)
	var forms []models.HelperForm
	if err := r.db.SelectContext(ctx, &forms, query); err != nil {
		return nil, fmt.Errorf("list helper forms: %w", err)
	}
	return forms, nil
}

// CountByProject returns the number of forms registered against a project.
func (r *FormRepository) CountByProject(ctx context.Context, projectID string) (int, error) {
	const query = `SELECT COUNT(*) FROM helper_forms WHERE project_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, projectID); err != nil {
		return 0, fmt.Errorf("count helper forms by project: %w", err)
	}
	return count, nil
}
