package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hadirly/hadir-backend-go/internal/domain/request"
	"github.com/hadirly/hadir-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const manualRequestColumns = `
	r.id, r.employee_id, r.date, r.check_in, r.check_out, r.reason, r.status,
	r.type, r.original_record_id, r.decision_remarks, r.decided_by, r.decided_at,
	r.created_at, r.updated_at
`

type manualRequestRepository struct {
	db *database.DB
}

func scanManualRequest(row pgx.Row) (request.ManualRequest, error) {
	var req request.ManualRequest
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.Date, &req.CheckIn, &req.CheckOut,
		&req.Reason, &req.Status, &req.Type, &req.OriginalRecordID,
		&req.DecisionRemarks, &req.DecidedBy, &req.DecidedAt,
		&req.CreatedAt, &req.UpdatedAt,
	)
	return req, err
}

// Create implements request.ManualRequestRepository.
func (m *manualRequestRepository) Create(ctx context.Context, req request.ManualRequest) (request.ManualRequest, error) {
	q := GetQuerier(ctx, m.db)

	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	query := `
		INSERT INTO manual_attendance_requests (
			id, employee_id, date, check_in, check_out, reason, status, type,
			original_record_id
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.ID,
		req.EmployeeID,
		req.Date,
		req.CheckIn,
		req.CheckOut,
		req.Reason,
		req.Status,
		req.Type,
		req.OriginalRecordID,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return request.ManualRequest{}, fmt.Errorf("failed to create manual request: %w", err)
	}

	return req, nil
}

// GetByID implements request.ManualRequestRepository.
func (m *manualRequestRepository) GetByID(ctx context.Context, id string) (request.ManualRequest, error) {
	q := GetQuerier(ctx, m.db)

	query := `
		SELECT ` + manualRequestColumns + `
		FROM manual_attendance_requests r
		WHERE r.id = $1
	`

	req, err := scanManualRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return request.ManualRequest{}, request.ErrRequestNotFound
		}
		return request.ManualRequest{}, fmt.Errorf("failed to get manual request by ID: %w", err)
	}

	return req, nil
}

// List implements request.ManualRequestRepository.
func (m *manualRequestRepository) List(ctx context.Context, filter request.RequestFilter) ([]request.ManualRequest, error) {
	q := GetQuerier(ctx, m.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND r.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND r.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		baseWhere += fmt.Sprintf(
			" AND (to_char(r.date, 'YYYY-MM-DD') ILIKE $%d OR r.reason ILIKE $%d OR r.status::text ILIKE $%d)",
			argIdx, argIdx, argIdx,
		)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	query := `
		SELECT ` + manualRequestColumns + `,
			   e.full_name AS employee_name
		FROM manual_attendance_requests r
		LEFT JOIN employees e ON e.id = r.employee_id
		WHERE ` + baseWhere + `
		ORDER BY r.created_at DESC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query manual requests: %w", err)
	}
	defer rows.Close()

	var requests []request.ManualRequest
	for rows.Next() {
		var req request.ManualRequest
		err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.Date, &req.CheckIn, &req.CheckOut,
			&req.Reason, &req.Status, &req.Type, &req.OriginalRecordID,
			&req.DecisionRemarks, &req.DecidedBy, &req.DecidedAt,
			&req.CreatedAt, &req.UpdatedAt,
			&req.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan manual request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, nil
}

// Decide implements request.ManualRequestRepository. The WHERE status =
// 'pending' clause is the concurrency guard: the losing side of two
// simultaneous decisions matches zero rows.
func (m *manualRequestRepository) Decide(ctx context.Context, id string, status request.RequestStatus, remarks *string, decidedBy string) (request.ManualRequest, error) {
	q := GetQuerier(ctx, m.db)

	query := `
		UPDATE manual_attendance_requests r
		SET status = $1,
			decision_remarks = $2,
			decided_by = $3,
			decided_at = $4,
			updated_at = $4
		WHERE r.id = $5 AND r.status = 'pending'
		RETURNING ` + manualRequestColumns + `
	`

	req, err := scanManualRequest(q.QueryRow(ctx, query, status, remarks, decidedBy, time.Now(), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return request.ManualRequest{}, m.classifyMissedUpdate(ctx, id)
		}
		return request.ManualRequest{}, fmt.Errorf("failed to decide manual request: %w", err)
	}

	return req, nil
}

// Cancel implements request.ManualRequestRepository.
func (m *manualRequestRepository) Cancel(ctx context.Context, id string) error {
	q := GetQuerier(ctx, m.db)

	query := `
		UPDATE manual_attendance_requests
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, request.StatusCancelled, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to cancel manual request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return m.classifyMissedUpdate(ctx, id)
	}

	return nil
}

// classifyMissedUpdate tells a missing row apart from one that already left
// pending, so callers get 404 vs 409 right.
func (m *manualRequestRepository) classifyMissedUpdate(ctx context.Context, id string) error {
	if _, err := m.GetByID(ctx, id); err != nil {
		return err
	}
	return request.ErrInvalidStateTransition
}

func NewManualRequestRepository(db *database.DB) request.ManualRequestRepository {
	return &manualRequestRepository{db: db}
}
