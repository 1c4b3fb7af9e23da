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

// RequestRepository provides database access for requests.
type RequestRepository struct {
	db *sqlx.DB
}

// NewRequestRepository creates a new instance of RequestRepository.
func NewRequestRepository(db *sqlx.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

const requestColumns = `id, date, subject, body, status, requester_id, reviewer_id, kind, permit_code, document_type, created_at, updated_at`

// Create inserts a new request.
func (r *RequestRepository) Create(ctx context.Context, request *models.Request) error {
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if request.CreatedAt.IsZero() {
		request.CreatedAt = now
	}
	request.UpdatedAt = now

	const query = `INSERT INTO requests (id, date, subject, body, status, requester_id, reviewer_id, kind, permit_code, document_type, created_at, updated_at) VALUES (:id, :date, :subject, :body, :status, :requester_id, :reviewer_id, :kind, :permit_code, :document_type, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, request); err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return nil
}

// UpdateStatus overwrites the request status. Unconditional, mirrors the
// form lifecycle.
func (r *RequestRepository) UpdateStatus(ctx context.Context, id string, status models.RequestStatus, reviewerID *string) error {
	const query = `UPDATE requests SET status = $2, reviewer_id = $3, updated_at = $4 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status, reviewerID, time.Now().UTC()); err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	return nil
}

// FindByID returns a request by identifier.
func (r *RequestRepository) FindByID(ctx context.Context, id string) (*models.Request, error) {
	query := fmt.Sprintf(`SELECT %s FROM requests WHERE id = $1 LIMIT 1`, requestColumns)
	var request models.Request
	if err := r.db.GetContext(ctx, &request, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find request by id: %w", err)
	}
	return &request, nil
}

// ListByRequester returns requests submitted by the given director.
func (r *RequestRepository) ListByRequester(ctx context.Context, requesterID string) ([]models.Request, error) {
	query := fmt.Sprintf(`SELECT %s FROM requests WHERE requester_id = $1 ORDER BY date DESC`, requestColumns)
	var requests []models.Request
	if err := r.db.SelectContext(ctx, &requests, query, requesterID); err != nil {
		return nil, fmt.Errorf("list requests by requester: %w", err)
	}
	return requests, nil
}

// ListAll returns every request, optionally filtered by status.
func (r *RequestRepository) ListAll(ctx context.Context, status *models.RequestStatus) ([]models.Request, error) {
	var requests []models.Request
	if status != nil {
		query := fmt.Sprintf(`SELECT %s FROM requests WHERE status = $1 ORDER BY date DESC`, requestColumns)
		if err := r.db.SelectContext(ctx, &requests, query, *status); err != nil {
			return nil, fmt.Errorf("list requests by status: %w", err)
		}
		return requests, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM requests ORDER BY date DESC`, requestColumns)
	if err := r.db.SelectContext(ctx, &requests, query); err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return requests, nil
}

// CountByRequester returns how many requests the director has submitted.
func (r *RequestRepository) CountByRequester(ctx context.Context, requesterID string) (int, error) {
	const query = `SELECT COUNT(*) FROM requests WHERE requester_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, requesterID); err != nil {
		return 0, fmt.Errorf("count requests by requester: %w", err)
	}
	return count, nil
}
