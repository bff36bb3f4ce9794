package leave

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hadirly/hadir-backend-go/internal/domain/leave"
	"github.com/hadirly/hadir-backend-go/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	leave.LeaveRepository
	location *time.Location
}

func NewLeaveService(repo leave.LeaveRepository, location *time.Location) leave.LeaveService {
	return &LeaveServiceImpl{LeaveRepository: repo, location: location}
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

func toResponse(l leave.Leave) leave.LeaveResponse {
	return leave.LeaveResponse{
		ID:            l.ID,
		EmployeeID:    l.EmployeeID,
		EmployeeName:  l.EmployeeName,
		StartDate:     l.StartDate.Format("2006-01-02"),
		EndDate:       l.EndDate.Format("2006-01-02"),
		Type:          string(l.Type),
		Status:        string(l.Status),
		Reason:        l.Reason,
		AutoGenerated: l.AutoGenerated,
		CreatedAt:     l.CreatedAt.Format(time.RFC3339),
	}
}

// SubmitLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) SubmitLeave(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	created, err := s.LeaveRepository.Create(ctx, leave.Leave{
		EmployeeID: employeeID,
		StartDate:  time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, s.location),
		EndDate:    time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, s.location),
		Type:       leave.LeaveType(strings.ToLower(req.Type)),
		Status:     leave.LeaveStatusPending,
		Reason:     req.Reason,
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return toResponse(created), nil
}

// UpdateLeaveStatus implements leave.LeaveService.
func (s *LeaveServiceImpl) UpdateLeaveStatus(ctx context.Context, req leave.UpdateLeaveStatusRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	existing, err := s.LeaveRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if existing.Status != leave.LeaveStatusPending {
		return leave.LeaveResponse{}, leave.ErrLeaveAlreadyProcessed
	}

	status := leave.LeaveStatus(strings.ToLower(req.Status))
	if err := s.LeaveRepository.UpdateStatus(ctx, req.ID, status, req.Remarks); err != nil {
		return leave.LeaveResponse{}, err
	}

	updated, err := s.LeaveRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return toResponse(updated), nil
}

// GetMyLeaves implements leave.LeaveService.
func (s *LeaveServiceImpl) GetMyLeaves(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	filter.EmployeeID = &employeeID
	return s.ListLeaves(ctx, filter)
}

// ListLeaves implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaves(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveResponse, error) {
	leaves, err := s.LeaveRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}

	responses := make([]leave.LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		responses = append(responses, toResponse(l))
	}

	return responses, nil
}
