package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hadirly/hadir-backend-go/internal/domain/leave"
	"github.com/hadirly/hadir-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type leaveRepository struct {
	db *database.DB
}

// Create implements leave.LeaveRepository.
func (l *leaveRepository) Create(ctx context.Context, lv leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, l.db)

	if lv.ID == "" {
		lv.ID = uuid.NewString()
	}

	query := `
		INSERT INTO leaves (
			id, employee_id, start_date, end_date, type, status, reason, auto_generated
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		lv.ID,
		lv.EmployeeID,
		lv.StartDate,
		lv.EndDate,
		lv.Type,
		lv.Status,
		lv.Reason,
		lv.AutoGenerated,
	).Scan(&lv.CreatedAt, &lv.UpdatedAt)

	if err != nil {
		// unique violation on the auto-generated partial index
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return leave.Leave{}, leave.ErrDuplicateAutoDeduct
		}
		return leave.Leave{}, fmt.Errorf("failed to create leave: %w", err)
	}

	return lv, nil
}

// GetByID implements leave.LeaveRepository.
func (l *leaveRepository) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, employee_id, start_date, end_date, type, status, reason,
			   auto_generated, created_at, updated_at
		FROM leaves
		WHERE id = $1
	`

	var lv leave.Leave
	err := q.QueryRow(ctx, query, id).Scan(
		&lv.ID, &lv.EmployeeID, &lv.StartDate, &lv.EndDate, &lv.Type, &lv.Status,
		&lv.Reason, &lv.AutoGenerated, &lv.CreatedAt, &lv.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Leave{}, leave.ErrLeaveNotFound
		}
		return leave.Leave{}, fmt.Errorf("failed to get leave by ID: %w", err)
	}

	return lv, nil
}

// List implements leave.LeaveRepository.
func (l *leaveRepository) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.Leave, error) {
	q := GetQuerier(ctx, l.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND l.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND l.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.AutoGenerated != nil {
		baseWhere += fmt.Sprintf(" AND l.auto_generated = $%d", argIdx)
		args = append(args, *filter.AutoGenerated)
		argIdx++
	}

	query := `
		SELECT l.id, l.employee_id, l.start_date, l.end_date, l.type, l.status,
			   l.reason, l.auto_generated, l.created_at, l.updated_at,
			   e.full_name AS employee_name
		FROM leaves l
		LEFT JOIN employees e ON e.id = l.employee_id
		WHERE ` + baseWhere + `
		ORDER BY l.start_date DESC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaves: %w", err)
	}
	defer rows.Close()

	var leaves []leave.Leave
	for rows.Next() {
		var lv leave.Leave
		err := rows.Scan(
			&lv.ID, &lv.EmployeeID, &lv.StartDate, &lv.EndDate, &lv.Type, &lv.Status,
			&lv.Reason, &lv.AutoGenerated, &lv.CreatedAt, &lv.UpdatedAt,
			&lv.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave: %w", err)
		}
		leaves = append(leaves, lv)
	}

	return leaves, nil
}

// HasApprovedLeaveOn implements leave.LeaveRepository.
func (l *leaveRepository) HasApprovedLeaveOn(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leaves
			WHERE employee_id = $1
			  AND status = 'approved'
			  AND start_date <= $2
			  AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check approved leave: %w", err)
	}

	return exists, nil
}

// HasAutoDeductionOn implements leave.LeaveRepository.
func (l *leaveRepository) HasAutoDeductionOn(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leaves
			WHERE employee_id = $1
			  AND auto_generated
			  AND start_date <= $2
			  AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check auto-deduction: %w", err)
	}

	return exists, nil
}

// UpdateStatus implements leave.LeaveRepository.
func (l *leaveRepository) UpdateStatus(ctx context.Context, id string, status leave.LeaveStatus, remarks *string) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leaves
		SET status = $1,
			reason = CASE WHEN $2::text IS NULL THEN reason ELSE reason || ' | ' || $2 END,
			updated_at = $3
		WHERE id = $4
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, status, remarks, time.Now(), id).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrLeaveNotFound
		}
		return fmt.Errorf("failed to update leave status: %w", err)
	}

	return nil
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}
