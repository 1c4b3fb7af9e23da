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

func requestRows(requests ...models.Request) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "date", "subject", "body", "status", "requester_id", "reviewer_id", "kind", "permit_code", "document_type", "created_at", "updated_at"})
	for _, r := range requests {
		rows.AddRow(r.ID, r.Date, r.Subject, r.Body, r.Status, r.RequesterID, r.ReviewerID, r.Kind, r.PermitCode, r.DocumentType, r.CreatedAt, r.UpdatedAt)
	}
	return rows
}

func TestRequestRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRequestRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO requests`)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	request := &models.Request{
		Date:        time.Now().UTC(),
		Subject:     "Need travel permit",
		Status:      models.RequestPending,
		RequesterID: "director-1",
		Kind:        models.KindGeneric,
	}
	require.NoError(t, repo.Create(context.Background(), request))
	assert.NotEmpty(t, request.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepositoryUpdateStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRequestRepository(db)

	reviewer := "reviewer-1"
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE requests SET status = $2`)).
		WithArgs("request-1", models.RequestAdvised, &reviewer, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), "request-1", models.RequestAdvised, &reviewer))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRequestRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT`)).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestRequestRepositoryListByRequester(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRequestRepository(db)

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM requests WHERE requester_id = $1`)).
		WithArgs("director-1").
		WillReturnRows(requestRows(models.Request{
			ID: "request-1", Date: now, Subject: "Need travel permit",
			Status: models.RequestPending, RequesterID: "director-1",
			Kind: models.KindGeneric, CreatedAt: now, UpdatedAt: now,
		}))

	requests, err := repo.ListByRequester(context.Background(), "director-1")
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, models.RequestPending, requests[0].Status)
}

func TestRequestRepositoryListAllWithStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRequestRepository(db)

	status := models.RequestApproved
	mock.ExpectQuery(regexp.QuoteMeta(`FROM requests WHERE status = $1`)).
		WithArgs(status).
		WillReturnRows(requestRows())

	requests, err := repo.ListAll(context.Background(), &status)
	require.NoError(t, err)
	assert.Empty(t, requests)
}
