package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgpa-dev/sgpa-api/internal/models"
)

func projectRows(projects ...models.Project) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "code", "description", "type", "start_date", "end_date", "required_helpers", "owner_id", "created_at", "updated_at"})
	for _, p := range projects {
		rows.AddRow(p.ID, p.Name, p.Code, p.Description, p.Type, p.StartDate, p.EndDate, p.RequiredHelpers, p.OwnerID, p.CreatedAt, p.UpdatedAt)
	}
	return rows
}

func TestProjectRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProjectRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO projects`)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	project := &models.Project{
		Name:            "Alpha",
		Code:            "PRJ-001",
		RequiredHelpers: 2,
		OwnerID:         "director-1",
	}
	require.NoError(t, repo.Create(context.Background(), project))
	assert.NotEmpty(t, project.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepositoryListByOwner(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProjectRepository(db)

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM projects WHERE owner_id = $1`)).
		WithArgs("director-1").
		WillReturnRows(projectRows(models.Project{
			ID: "project-1", Name: "Alpha", Code: "PRJ-001",
			RequiredHelpers: 2, OwnerID: "director-1",
			CreatedAt: now, UpdatedAt: now,
		}))

	projects, err := repo.ListByOwner(context.Background(), "director-1")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Alpha", projects[0].Name)
}

func TestProjectRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProjectRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT`)).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestProjectRepositorySearch(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProjectRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`LOWER(name) LIKE $1 OR LOWER(code) LIKE $1`)).
		WithArgs("%alpha%").
		WillReturnRows(projectRows())

	projects, err := repo.Search(context.Background(), "Alpha")
	require.NoError(t, err)
	assert.Empty(t, projects)
}
