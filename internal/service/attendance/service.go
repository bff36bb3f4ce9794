package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hadirly/hadir-backend-go/internal/domain/attendance"
	"github.com/hadirly/hadir-backend-go/internal/domain/employee"
	"github.com/hadirly/hadir-backend-go/internal/domain/geofence"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	geoFenceService geofence.GeoFenceService
	policy          attendance.Policy
	wfhAccuracy     float64
	location        *time.Location
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	geoFenceService geofence.GeoFenceService,
	policy attendance.Policy,
	wfhAccuracy float64,
	location *time.Location,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		geoFenceService:      geoFenceService,
		policy:               policy,
		wfhAccuracy:          wfhAccuracy,
		location:             location,
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

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("2006-01-02 15:04:05")
	return &formatted
}

func (a *AttendanceServiceImpl) toResponse(att attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:             att.ID,
		EmployeeID:     att.EmployeeID,
		EmployeeName:   att.EmployeeName,
		Date:           att.Date.Format("2006-01-02"),
		CheckInTime:    timePtrToString(att.CheckIn),
		CheckOutTime:   timePtrToString(att.CheckOut),
		Status:         string(attendance.Classify(att.CheckIn, a.policy)),
		Latitude:       att.Latitude,
		Longitude:      att.Longitude,
		AccuracyMeters: att.AccuracyMeters,
		WithinFence:    att.WithinFence,
		FenceID:        att.FenceID,

		CheckOutLatitude:       att.CheckOutLatitude,
		CheckOutLongitude:      att.CheckOutLongitude,
		CheckOutAccuracyMeters: att.CheckOutAccuracyMeters,
		CheckOutWithinFence:    att.CheckOutWithinFence,
		CheckOutFenceID:        att.CheckOutFenceID,

		Source: string(att.Source),
	}

	if d, ok := attendance.WorkDuration(att.CheckIn, att.CheckOut); ok {
		hours := d.Hours()
		resp.WorkingHours = &hours
	}

	return resp
}

// captureLocation resolves the location evidence for one clock event. WFH
// employees get the active fence substituted for the device fix; everyone
// else gets the raw fix validated against the configured fences. An outside
// fix is still recorded, just flagged.
func (a *AttendanceServiceImpl) captureLocation(
	ctx context.Context,
	emp employee.Employee,
	event string,
	latitude, longitude, accuracyMeters float64,
) (geofence.Capture, error) {
	if emp.IsWfhEnabled {
		return a.geoFenceService.CaptureWFH(ctx, a.wfhAccuracy)
	}

	result, err := a.geoFenceService.ValidatePoint(ctx, geofence.Point{
		Latitude:       latitude,
		Longitude:      longitude,
		AccuracyMeters: accuracyMeters,
	})
	if err != nil {
		return geofence.Capture{}, err
	}

	if !result.WithinFence {
		slog.Warn("Clock event outside authorized zones",
			"event", event,
			"employee_id", emp.ID,
			"latitude", latitude,
			"longitude", longitude)
	}

	return geofence.Capture{
		Latitude:       latitude,
		Longitude:      longitude,
		AccuracyMeters: accuracyMeters,
		WithinFence:    result.WithinFence,
		FenceID:        result.FenceID,
	}, nil
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := time.Now().In(a.location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, a.location)

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check existing attendance: %w", err)
	}
	if existing != nil && existing.CheckIn != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	capture, err := a.captureLocation(ctx, emp, "check-in", req.Latitude, req.Longitude, req.AccuracyMeters)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att := attendance.Attendance{
		EmployeeID:     employeeID,
		Date:           today,
		CheckIn:        &now,
		Latitude:       &capture.Latitude,
		Longitude:      &capture.Longitude,
		AccuracyMeters: &capture.AccuracyMeters,
		WithinFence:    &capture.WithinFence,
		FenceID:        capture.FenceID,
		Source:         attendance.SourceDevice,
	}

	if existing != nil {
		att.ID = existing.ID
		att.CheckOut = existing.CheckOut
		if err := a.AttendanceRepository.Update(ctx, att); err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
		}
	} else {
		att, err = a.AttendanceRepository.Create(ctx, att)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
		}
	}

	return a.toResponse(att), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := time.Now().In(a.location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, a.location)

	att, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	if att == nil || att.CheckIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if att.CheckOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}
	if now.Before(*att.CheckIn) {
		return attendance.AttendanceResponse{}, attendance.ErrCheckOutBeforeCheckIn
	}

	capture, err := a.captureLocation(ctx, emp, "check-out", req.Latitude, req.Longitude, req.AccuracyMeters)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att.CheckOut = &now
	att.CheckOutLatitude = &capture.Latitude
	att.CheckOutLongitude = &capture.Longitude
	att.CheckOutAccuracyMeters = &capture.AccuracyMeters
	att.CheckOutWithinFence = &capture.WithinFence
	att.CheckOutFenceID = capture.FenceID
	if err := a.AttendanceRepository.Update(ctx, *att); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return a.toResponse(*att), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	filter.EmployeeID = &employeeID
	return a.ListAttendance(ctx, filter)
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, att := range records {
		responses = append(responses, a.toResponse(att))
	}

	return responses, nil
}
