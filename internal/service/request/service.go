package request

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hadirly/hadir-backend-go/internal/domain/attendance"
	"github.com/hadirly/hadir-backend-go/internal/domain/request"
	"github.com/hadirly/hadir-backend-go/internal/pkg/database"
	"github.com/hadirly/hadir-backend-go/internal/pkg/validator"
	"github.com/hadirly/hadir-backend-go/internal/repository/postgresql"
)

type RequestServiceImpl struct {
	request.ManualRequestRepository
	attendanceRepo attendance.AttendanceRepository
	location       *time.Location

	// runInTx wraps the approve path; the constructor binds it to a real
	// pgx transaction.
	runInTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewRequestService(
	db *database.DB,
	requestRepo request.ManualRequestRepository,
	attendanceRepo attendance.AttendanceRepository,
	location *time.Location,
) request.RequestService {
	return &RequestServiceImpl{
		ManualRequestRepository: requestRepo,
		attendanceRepo:          attendanceRepo,
		location:                location,
		runInTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
	}
}

func employeeIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	return employeeID, nil
}

// clockOnDate anchors an HH:MM[:SS] wall-clock value on the request's date.
func (s *RequestServiceImpl) clockOnDate(date time.Time, clock *string) *time.Time {
	if clock == nil || *clock == "" {
		return nil
	}

	parsed, ok := validator.IsValidClockTime(*clock)
	if !ok {
		return nil
	}

	anchored := time.Date(
		date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), parsed.Second(), 0,
		s.location,
	)
	return &anchored
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("15:04:05")
	return &formatted
}

func toResponse(req request.ManualRequest) request.ManualRequestResponse {
	return request.ManualRequestResponse{
		ID:               req.ID,
		EmployeeID:       req.EmployeeID,
		EmployeeName:     req.EmployeeName,
		Date:             req.Date.Format("2006-01-02"),
		CheckInTime:      timePtrToString(req.CheckIn),
		CheckOutTime:     timePtrToString(req.CheckOut),
		Reason:           req.Reason,
		Status:           string(req.Status),
		Type:             string(req.Type),
		OriginalRecordID: req.OriginalRecordID,
		DecisionRemarks:  req.DecisionRemarks,
		CreatedAt:        req.CreatedAt.Format(time.RFC3339),
	}
}

// Submit implements request.RequestService.
func (s *RequestServiceImpl) Submit(ctx context.Context, req request.SubmitRequest) (request.ManualRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return request.ManualRequestResponse{}, err
	}

	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return request.ManualRequestResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, s.location)

	reqType := request.RequestType(strings.ToLower(req.Type))
	if reqType == request.TypeEdit {
		if _, err := s.attendanceRepo.GetByID(ctx, *req.OriginalRecordID); err != nil {
			return request.ManualRequestResponse{}, err
		}
	}

	created, err := s.ManualRequestRepository.Create(ctx, request.ManualRequest{
		EmployeeID:       employeeID,
		Date:             date,
		CheckIn:          s.clockOnDate(date, req.CheckInTime),
		CheckOut:         s.clockOnDate(date, req.CheckOutTime),
		Reason:           req.Reason,
		Status:           request.StatusPending,
		Type:             reqType,
		OriginalRecordID: req.OriginalRecordID,
	})
	if err != nil {
		return request.ManualRequestResponse{}, err
	}

	return toResponse(created), nil
}

// Approve implements request.RequestService. The status transition and the
// attendance write commit or roll back together.
func (s *RequestServiceImpl) Approve(ctx context.Context, req request.ApproveRequest) (request.ManualRequestResponse, error) {
	decidedBy, err := employeeIDFromContext(ctx)
	if err != nil {
		return request.ManualRequestResponse{}, err
	}

	var decided request.ManualRequest
	err = s.runInTx(ctx, func(txCtx context.Context) error {
		decided, err = s.ManualRequestRepository.Decide(txCtx, req.ID, request.StatusApproved, req.Remarks, decidedBy)
		if err != nil {
			return err
		}

		return s.applyToAttendance(txCtx, decided)
	})
	if err != nil {
		return request.ManualRequestResponse{}, err
	}

	return toResponse(decided), nil
}

// applyToAttendance writes the requested times onto the attendance record,
// creating one for new-type requests and patching the referenced record for
// edits.
func (s *RequestServiceImpl) applyToAttendance(ctx context.Context, req request.ManualRequest) error {
	if req.Type == request.TypeEdit {
		return s.attendanceRepo.UpdateTimes(ctx, *req.OriginalRecordID, req.CheckIn, req.CheckOut)
	}

	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, req.Date)
	if err != nil {
		return fmt.Errorf("failed to check existing attendance: %w", err)
	}
	if existing != nil {
		// the day gained a record since submission, patch it instead
		return s.attendanceRepo.UpdateTimes(ctx, existing.ID, req.CheckIn, req.CheckOut)
	}

	_, err = s.attendanceRepo.Create(ctx, attendance.Attendance{
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Source:     attendance.SourceManual,
	})
	return err
}

// Reject implements request.RequestService.
func (s *RequestServiceImpl) Reject(ctx context.Context, req request.RejectRequest) (request.ManualRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return request.ManualRequestResponse{}, err
	}

	decidedBy, err := employeeIDFromContext(ctx)
	if err != nil {
		return request.ManualRequestResponse{}, err
	}

	decided, err := s.ManualRequestRepository.Decide(ctx, req.ID, request.StatusRejected, &req.Remarks, decidedBy)
	if err != nil {
		return request.ManualRequestResponse{}, err
	}

	return toResponse(decided), nil
}

// Cancel implements request.RequestService.
func (s *RequestServiceImpl) Cancel(ctx context.Context, id string) error {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return err
	}

	existing, err := s.ManualRequestRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.EmployeeID != employeeID {
		return request.ErrNotRequestOwner
	}

	return s.ManualRequestRepository.Cancel(ctx, id)
}

// ListMine implements request.RequestService.
func (s *RequestServiceImpl) ListMine(ctx context.Context, filter request.RequestFilter) ([]request.ManualRequestResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	filter.EmployeeID = &employeeID
	return s.List(ctx, filter)
}

// List implements request.RequestService.
func (s *RequestServiceImpl) List(ctx context.Context, filter request.RequestFilter) ([]request.ManualRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	requests, err := s.ManualRequestRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list manual requests: %w", err)
	}

	responses := make([]request.ManualRequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, toResponse(req))
	}

	return responses, nil
}
