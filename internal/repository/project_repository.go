package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sgpa-dev/sgpa-api/internal/models"
)

// ProjectRepository provides database access for projects.
type ProjectRepository struct {
	db *sqlx.DB
}

// NewProjectRepository creates a new instance of ProjectRepository.
func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, name, code, description, type, start_date, end_date, required_helpers, owner_id, created_at, updated_at`

// Create inserts a new project.
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}
	project.UpdatedAt = now

	const query = `INSERT INTO projects (id, name, code, description, type, start_date, end_date, required_helpers, owner_id, created_at, updated_at) VALUES (:id, :name, :code, :description, :type, :start_date, :end_date, :required_helpers, :owner_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, project); err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

// Update updates mutable fields of a project.
func (r *ProjectRepository) Update(ctx context.Context, project *models.Project) error {
	project.UpdatedAt = time.Now().UTC()
	const query = `UPDATE projects SET name = :name, code = :code, description = :description, type = :type, start_date = :start_date, end_date = :end_date, required_helpers = :required_helpers, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, project); err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

// FindByID returns a project by identifier.
func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*models.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE id = $1 LIMIT 1`, projectColumns)
	var project models.Project
	if err := r.db.GetContext(ctx, &project, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find project by id: %w", err)
	}
	return &project, nil
}

// ListByOwner returns all projects owned by the given director.
func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE owner_id = $1 ORDER BY created_at DESC`, projectColumns)
	var projects []models.Project
	if err := r.db.SelectContext(ctx, &projects, query, ownerID); err != nil {
		return nil, fmt.Errorf("list projects by owner: %w", err)
	}
	return projects, nil
}

// ListAll returns every registered project.
func (r *ProjectRepository) ListAll(ctx context.Context) ([]models.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects ORDER BY created_at DESC`, projectColumns)
	var projects []models.Project
	if err := r.db.SelectContext(ctx, &projects, query); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// Search returns projects whose name or code matches the given text.
func (r *ProjectRepository) Search(ctx context.Context, text string) ([]models.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE LOWER(name) LIKE $1 OR LOWER(code) LIKE $1 ORDER BY created_at DESC`, projectColumns)
	var projects []models.Project
	pattern := "%" + strings.ToLower(text) + "%"
	if err := r.db.SelectContext(ctx, &projects, query, pattern); err != nil {
		return nil, fmt.Errorf("search projects: %w", err)
	}
	return projects, nil
}
