package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hadirly/hadir-backend-go/internal/domain/attendance"
	"github.com/hadirly/hadir-backend-go/internal/domain/employee"
	"github.com/hadirly/hadir-backend-go/internal/domain/holiday"
	"github.com/hadirly/hadir-backend-go/internal/domain/leave"
)

// ReconciliationJobs owns the nightly attendance sweeps: converting missed
// days into auto-deducted leave and closing sessions left open overnight.
type ReconciliationJobs struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	leaveRepo      leave.LeaveRepository
	holidayRepo    holiday.HolidayRepository
	policy         attendance.Policy
	location       *time.Location
}

func NewReconciliationJobs(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRepository,
	holidayRepo holiday.HolidayRepository,
	policy attendance.Policy,
	location *time.Location,
) *ReconciliationJobs {
	return &ReconciliationJobs{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		leaveRepo:      leaveRepo,
		holidayRepo:    holidayRepo,
		policy:         policy,
		location:       location,
	}
}

func (j *ReconciliationJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddDailyJob("reconcile_absences", 1, j.ReconcileAbsences)
	scheduler.AddJob("auto_close_open_sessions", 1*time.Hour, j.AutoCloseOpenSessions)
}

// ReconcileAbsences sweeps the previous local calendar day and deducts leave
// for every active employee who never showed up.
func (j *ReconciliationJobs) ReconcileAbsences(ctx context.Context) error {
	yesterday := j.startOfDay(time.Now().In(j.location).AddDate(0, 0, -1))
	return j.ReconcileForDate(ctx, yesterday)
}

// ReconcileForDate runs the absence sweep for one calendar day. The day-level
// checks abort the whole run; per-employee failures are logged and skipped so
// one bad row cannot starve the rest of the roster.
func (j *ReconciliationJobs) ReconcileForDate(ctx context.Context, date time.Time) error {
	dateStr := date.Format("2006-01-02")

	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		slog.Info("Cron: Skipping absence reconciliation on weekend", "date", dateStr)
		return nil
	}

	hd, err := j.holidayRepo.GetByDate(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to check holiday: %w", err)
	}
	if hd != nil {
		slog.Info("Cron: Skipping absence reconciliation on holiday", "date", dateStr, "holiday", hd.Name)
		return nil
	}

	employees, err := j.employeeRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active employees: %w", err)
	}

	slog.Info("Cron: Starting absence reconciliation", "date", dateStr, "employee_count", len(employees))

	deducted := 0
	for _, emp := range employees {
		ok, err := j.reconcileEmployee(ctx, emp.ID, date)
		if err != nil {
			slog.Error("Cron: Failed to reconcile employee",
				"employee_id", emp.ID,
				"date", dateStr,
				"error", err)
			continue
		}
		if ok {
			deducted++
		}
	}

	slog.Info("Cron: Absence reconciliation completed", "date", dateStr, "deducted", deducted)
	return nil
}

// reconcileEmployee reports whether a deduction was written for the employee.
func (j *ReconciliationJobs) reconcileEmployee(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	att, err := j.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return false, fmt.Errorf("failed to get attendance: %w", err)
	}
	if att != nil && att.CheckIn != nil {
		return false, nil
	}

	onLeave, err := j.leaveRepo.HasApprovedLeaveOn(ctx, employeeID, date)
	if err != nil {
		return false, fmt.Errorf("failed to check approved leave: %w", err)
	}
	if onLeave {
		return false, nil
	}

	deducted, err := j.leaveRepo.HasAutoDeductionOn(ctx, employeeID, date)
	if err != nil {
		return false, fmt.Errorf("failed to check prior deduction: %w", err)
	}
	if deducted {
		return false, nil
	}

	_, err = j.leaveRepo.Create(ctx, leave.Leave{
		EmployeeID:    employeeID,
		StartDate:     date,
		EndDate:       date,
		Type:          leave.LeaveTypeCasual,
		Status:        leave.LeaveStatusApproved,
		Reason:        leave.AutoDeductReason,
		AutoGenerated: true,
	})
	if err != nil {
		// a concurrent run already wrote the deduction
		if errors.Is(err, leave.ErrDuplicateAutoDeduct) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create auto-deduction: %w", err)
	}

	return true, nil
}

// AutoCloseOpenSessions writes a synthetic checkout on today's sessions that
// are still open past the configured cutoff, and on anything left over from
// the previous day.
func (j *ReconciliationJobs) AutoCloseOpenSessions(ctx context.Context) error {
	now := time.Now().In(j.location)
	today := j.startOfDay(now)
	yesterday := today.AddDate(0, 0, -1)

	if err := j.AutoCloseForDate(ctx, yesterday, now); err != nil {
		return err
	}
	return j.AutoCloseForDate(ctx, today, now)
}

// AutoCloseForDate closes the date's open sessions when now has passed the
// auto-checkout moment for that date.
func (j *ReconciliationJobs) AutoCloseForDate(ctx context.Context, date, now time.Time) error {
	cutoff := j.policy.AutoCheckoutAt(date, j.location)
	if now.Before(cutoff) {
		return nil
	}

	sessions, err := j.attendanceRepo.ListOpenByDate(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to list open sessions: %w", err)
	}
	if len(sessions) == 0 {
		return nil
	}

	closed := 0
	for _, session := range sessions {
		out := cutoff
		if session.CheckIn != nil && out.Before(*session.CheckIn) {
			// late check-in past the cutoff gets a zero-length day,
			// never a negative one
			out = *session.CheckIn
		}
		session.CheckOut = &out

		if err := j.attendanceRepo.Update(ctx, session); err != nil {
			slog.Error("Cron: Failed to auto-close session",
				"attendance_id", session.ID,
				"employee_id", session.EmployeeID,
				"error", err)
			continue
		}
		closed++
	}

	slog.Info("Cron: Auto-closed open sessions", "date", date.Format("2006-01-02"), "count", closed)
	return nil
}

func (j *ReconciliationJobs) startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, j.location)
}
