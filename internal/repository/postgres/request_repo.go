package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"eventadmission/internal/domain"
)

const requestSelect = `SELECT id, event_id, requester_id, status, created FROM participation_requests`

type requestRepository struct {
	DB *sql.DB
}

func NewRequestRepository(db *sql.DB) domain.RequestRepository {
	return &requestRepository{DB: db}
}

func scanRequest(s rowScanner) (*domain.Request, error) {
	req := &domain.Request{}
	if err := s.Scan(&req.ID, &req.EventID, &req.RequesterID, &req.Status, &req.Created); err != nil {
		return nil, err
	}
	return req, nil
}

func (r *requestRepository) Create(ctx context.Context, req *domain.Request) error {
	query := `
		INSERT INTO participation_requests (event_id, requester_id, status, created)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, req.EventID, req.RequesterID, req.Status, req.Created).Scan(&req.ID)
	return mapError(err)
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (*domain.Request, error) {
	return r.getOne(ctx, requestSelect+` WHERE id = $1`, id)
}

func (r *requestRepository) GetActiveByEventAndRequester(ctx context.Context, eventID, requesterID string) (*domain.Request, error) {
	return r.getOne(ctx, requestSelect+` WHERE event_id = $1 AND requester_id = $2 AND status <> 'CANCELED'`, eventID, requesterID)
}

func (r *requestRepository) getOne(ctx context.Context, query string, args ...any) (*domain.Request, error) {
	req, err := scanRequest(conn(ctx, r.DB).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, mapError(err)
	}
	return req, nil
}

func (r *requestRepository) ListByIDs(ctx context.Context, eventID string, ids []string) ([]*domain.Request, error) {
	return r.list(ctx, requestSelect+` WHERE event_id = $1 AND id = ANY($2::uuid[]) ORDER BY created, id`, eventID, pq.Array(ids))
}

func (r *requestRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Request, error) {
	return r.list(ctx, requestSelect+` WHERE event_id = $1 ORDER BY created, id`, eventID)
}

func (r *requestRepository) ListByRequester(ctx context.Context, requesterID string) ([]*domain.Request, error) {
	return r.list(ctx, requestSelect+` WHERE requester_id = $1 ORDER BY created, id`, requesterID)
}

func (r *requestRepository) ListPendingByEvent(ctx context.Context, eventID string) ([]*domain.Request, error) {
	return r.list(ctx, requestSelect+` WHERE event_id = $1 AND status = 'PENDING' ORDER BY created, id`, eventID)
}

func (r *requestRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Request, error) {
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	reqs := make([]*domain.Request, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

func (r *requestRepository) CountConfirmed(ctx context.Context, eventID string) (int, error) {
	var n int
	err := conn(ctx, r.DB).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM participation_requests WHERE event_id = $1 AND status = 'CONFIRMED'`,
		eventID,
	).Scan(&n)
	if err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

func (r *requestRepository) CountConfirmedByEvents(ctx context.Context, eventIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(eventIDs))
	if len(eventIDs) == 0 {
		return counts, nil
	}
	query := `
		SELECT event_id, COUNT(*)
		FROM participation_requests
		WHERE event_id = ANY($1::uuid[]) AND status = 'CONFIRMED'
		GROUP BY event_id
	`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, pq.Array(eventIDs))
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id string
			n  int
		)
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

// UpdateStatus sets status on every id. It fails with ErrNotFound unless all ids exist.
func (r *requestRepository) UpdateStatus(ctx context.Context, ids []string, status domain.RequestStatus) error {
	if len(ids) == 0 {
		return nil
	}
	result, err := conn(ctx, r.DB).ExecContext(ctx,
		`UPDATE participation_requests SET status = $1 WHERE id = ANY($2::uuid[])`,
		status, pq.Array(ids),
	)
	if err != nil {
		return mapError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update requests rows affected: %w", err)
	}
	if int(rows) != len(ids) {
		return fmt.Errorf("%w: updated %d of %d requests", domain.ErrNotFound, rows, len(ids))
	}
	return nil
}
