package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgpa-dev/sgpa-api/internal/models"
)

func TestNotificationRepositoryCreateStampsDate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewNotificationRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO notifications`)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	notification := &models.Notification{
		Message:     "Debe completar los formularios de ayudantes.",
		RecipientID: "director-1",
	}
	require.NoError(t, repo.Create(context.Background(), notification))
	assert.NotEmpty(t, notification.ID)
	assert.False(t, notification.Date.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepositoryListByRecipient(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewNotificationRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "date", "message", "recipient_id", "read", "created_at"}).
		AddRow("notif-1", now, "mensaje", "director-1", false, now)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM notifications WHERE recipient_id = $1`)).
		WithArgs("director-1").
		WillReturnRows(rows)

	notifications, err := repo.ListByRecipient(context.Background(), "director-1", false)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.False(t, notifications[0].Read)
}

func TestNotificationRepositoryListByRecipientUnreadOnly(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewNotificationRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "date", "message", "recipient_id", "read", "created_at"}).
		AddRow("notif-1", now, "mensaje", "director-1", false, now)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE recipient_id = $1 AND read = FALSE`)).
		WithArgs("director-1").
		WillReturnRows(rows)

	notifications, err := repo.ListByRecipient(context.Background(), "director-1", true)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
}

func TestNotificationRepositorySetRead(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewNotificationRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE notifications SET read = $2`)).
		WithArgs("notif-1", true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetRead(context.Background(), "notif-1", true))
	require.NoError(t, mock.ExpectationsWereMet())
}
