package cron

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/hadirly/hadir-backend-go/internal/domain/attendance"
	"github.com/hadirly/hadir-backend-go/internal/domain/employee"
	"github.com/hadirly/hadir-backend-go/internal/domain/holiday"
	"github.com/hadirly/hadir-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance // employeeID|date
	updated []attendance.Attendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func attKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	f.records[attKey(att.EmployeeID, att.Date)] = att
	return att, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	for _, att := range f.records {
		if att.ID == id {
			return att, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	att, ok := f.records[attKey(employeeID, date)]
	if !ok {
		return nil, nil
	}
	return &att, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) error {
	f.records[attKey(att.EmployeeID, att.Date)] = att
	f.updated = append(f.updated, att)
	return nil
}

func (f *fakeAttendanceRepo) UpdateTimes(ctx context.Context, id string, checkIn, checkOut *time.Time) error {
	return nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range f.records {
		if att.Date.Equal(date) {
			out = append(out, att)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListOpenByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range f.records {
		if att.Date.Equal(date) && att.CheckIn != nil && att.CheckOut == nil {
			out = append(out, att)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.IsActive {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeLeaveRepo struct {
	leaves     []leave.Leave
	failCreate map[string]error // employeeID -> forced error
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{failCreate: make(map[string]error)}
}

func (f *fakeLeaveRepo) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	if err, ok := f.failCreate[l.EmployeeID]; ok {
		return leave.Leave{}, err
	}
	if l.AutoGenerated {
		for _, existing := range f.leaves {
			if existing.AutoGenerated && existing.EmployeeID == l.EmployeeID && existing.StartDate.Equal(l.StartDate) {
				return leave.Leave{}, leave.ErrDuplicateAutoDeduct
			}
		}
	}
	l.ID = fmt.Sprintf("leave-%d", len(f.leaves)+1)
	f.leaves = append(f.leaves, l)
	return l, nil
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	for _, l := range f.leaves {
		if l.ID == id {
			return l, nil
		}
	}
	return leave.Leave{}, leave.ErrLeaveNotFound
}

func (f *fakeLeaveRepo) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.Leave, error) {
	return f.leaves, nil
}

func (f *fakeLeaveRepo) HasApprovedLeaveOn(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	for _, l := range f.leaves {
		if l.EmployeeID == employeeID && l.Status == leave.LeaveStatusApproved && !l.AutoGenerated && l.Covers(date) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLeaveRepo) HasAutoDeductionOn(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	for _, l := range f.leaves {
		if l.EmployeeID == employeeID && l.AutoGenerated && l.Covers(date) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLeaveRepo) UpdateStatus(ctx context.Context, id string, status leave.LeaveStatus, remarks *string) error {
	return nil
}

func (f *fakeLeaveRepo) autoDeductions() []leave.Leave {
	var out []leave.Leave
	for _, l := range f.leaves {
		if l.AutoGenerated {
			out = append(out, l)
		}
	}
	return out
}

type fakeHolidayRepo struct {
	holidays []holiday.Holiday
}

func (f *fakeHolidayRepo) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	f.holidays = append(f.holidays, h)
	return h, nil
}

func (f *fakeHolidayRepo) List(ctx context.Context) ([]holiday.Holiday, error) {
	return f.holidays, nil
}

func (f *fakeHolidayRepo) GetByDate(ctx context.Context, date time.Time) (*holiday.Holiday, error) {
	for _, h := range f.holidays {
		if h.Date.Equal(date) {
			hd := h
			return &hd, nil
		}
	}
	return nil, nil
}

func (f *fakeHolidayRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func testPolicy() attendance.Policy {
	return attendance.Policy{
		LateThresholdHour:   9,
		LateThresholdMinute: 15,
		AutoCheckoutHour:    20,
		AutoCheckoutMinute:  0,
	}
}

func newTestJobs(att *fakeAttendanceRepo, emp *fakeEmployeeRepo, lv *fakeLeaveRepo, hol *fakeHolidayRepo) *ReconciliationJobs {
	return NewReconciliationJobs(att, emp, lv, hol, testPolicy(), time.UTC)
}

// Monday
var workday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func TestReconcileForDate_DeductsAbsentees(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "emp-1", FullName: "Asha", IsActive: true},
		{ID: "emp-2", FullName: "Bram", IsActive: true},
	}}
	lvRepo := newFakeLeaveRepo()

	// emp-2 showed up
	checkIn := workday.Add(9 * time.Hour)
	attRepo.records[attKey("emp-2", workday)] = attendance.Attendance{
		ID: "att-1", EmployeeID: "emp-2", Date: workday, CheckIn: &checkIn,
	}

	jobs := newTestJobs(attRepo, empRepo, lvRepo, &fakeHolidayRepo{})
	require.NoError(t, jobs.ReconcileForDate(context.Background(), workday))

	deductions := lvRepo.autoDeductions()
	require.Len(t, deductions, 1)
	got := deductions[0]
	assert.Equal(t, "emp-1", got.EmployeeID)
	assert.Equal(t, leave.LeaveTypeCasual, got.Type)
	assert.Equal(t, leave.LeaveStatusApproved, got.Status)
	assert.Equal(t, leave.AutoDeductReason, got.Reason)
	assert.True(t, got.StartDate.Equal(workday))
	assert.True(t, got.EndDate.Equal(workday))
}

func TestReconcileForDate_Idempotent(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "emp-1", IsActive: true},
	}}
	lvRepo := newFakeLeaveRepo()

	jobs := newTestJobs(attRepo, empRepo, lvRepo, &fakeHolidayRepo{})
	require.NoError(t, jobs.ReconcileForDate(context.Background(), workday))
	require.NoError(t, jobs.ReconcileForDate(context.Background(), workday))

	assert.Len(t, lvRepo.autoDeductions(), 1)
}

func TestReconcileForDate_SkipsWeekend(t *testing.T) {
	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "emp-1", IsActive: true},
	}}
	lvRepo := newFakeLeaveRepo()

	saturday := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	jobs := newTestJobs(newFakeAttendanceRepo(), empRepo, lvRepo, &fakeHolidayRepo{})
	require.NoError(t, jobs.ReconcileForDate(context.Background(), saturday))

	assert.Empty(t, lvRepo.leaves)
}

func TestReconcileForDate_SkipsHoliday(t *testing.T) {
	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "emp-1", IsActive: true},
	}}
	lvRepo := newFakeLeaveRepo()
	holRepo := &fakeHolidayRepo{holidays: []holiday.Holiday{
		{ID: "hol-1", Date: workday, Name: "Founders Day"},
	}}

	jobs := newTestJobs(newFakeAttendanceRepo(), empRepo, lvRepo, holRepo)
	require.NoError(t, jobs.ReconcileForDate(context.Background(), workday))

	assert.Empty(t, lvRepo.leaves)
}

func TestReconcileForDate_SkipsApprovedLeave(t *testing.T) {
	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "emp-1", IsActive: true},
	}}
	lvRepo := newFakeLeaveRepo()
	lvRepo.leaves = append(lvRepo.leaves, leave.Leave{
		ID:         "leave-existing",
		EmployeeID: "emp-1",
		StartDate:  workday.AddDate(0, 0, -2),
		EndDate:    workday.AddDate(0, 0, 2),
		Type:       leave.LeaveTypeCasual,
		Status:     leave.LeaveStatusApproved,
	})

	jobs := newTestJobs(newFakeAttendanceRepo(), empRepo, lvRepo, &fakeHolidayRepo{})
	require.NoError(t, jobs.ReconcileForDate(context.Background(), workday))

	assert.Empty(t, lvRepo.autoDeductions())
}

func TestReconcileForDate_PendingLeaveDoesNotProtect(t *testing.T) {
	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "emp-1", IsActive: true},
	}}
	lvRepo := newFakeLeaveRepo()
	lvRepo.leaves = append(lvRepo.leaves, leave.Leave{
		ID:         "leave-pending",
		EmployeeID: "emp-1",
		StartDate:  workday,
		EndDate:    workday,
		Type:       leave.LeaveTypeCasual,
		Status:     leave.LeaveStatusPending,
	})

	jobs := newTestJobs(newFakeAttendanceRepo(), empRepo, lvRepo, &fakeHolidayRepo{})
	require.NoError(t, jobs.ReconcileForDate(context.Background(), workday))

	assert.Len(t, lvRepo.autoDeductions(), 1)
}

func TestReconcileForDate_OneFailureDoesNotStopOthers(t *testing.T) {
	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "emp-1", IsActive: true},
		{ID: "emp-2", IsActive: true},
	}}
	lvRepo := newFakeLeaveRepo()
	lvRepo.failCreate["emp-1"] = fmt.Errorf("connection reset")

	jobs := newTestJobs(newFakeAttendanceRepo(), empRepo, lvRepo, &fakeHolidayRepo{})
	require.NoError(t, jobs.ReconcileForDate(context.Background(), workday))

	deductions := lvRepo.autoDeductions()
	require.Len(t, deductions, 1)
	assert.Equal(t, "emp-2", deductions[0].EmployeeID)
}

func TestAutoCloseForDate_ClosesAtCutoff(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	checkIn := workday.Add(9 * time.Hour)
	attRepo.records[attKey("emp-1", workday)] = attendance.Attendance{
		ID: "att-1", EmployeeID: "emp-1", Date: workday, CheckIn: &checkIn,
	}

	jobs := newTestJobs(attRepo, &fakeEmployeeRepo{}, newFakeLeaveRepo(), &fakeHolidayRepo{})

	now := workday.Add(21 * time.Hour)
	require.NoError(t, jobs.AutoCloseForDate(context.Background(), workday, now))

	require.Len(t, attRepo.updated, 1)
	got := attRepo.updated[0]
	require.NotNil(t, got.CheckOut)
	assert.True(t, got.CheckOut.Equal(workday.Add(20*time.Hour)))
}

func TestAutoCloseForDate_BeforeCutoffIsNoop(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	checkIn := workday.Add(9 * time.Hour)
	attRepo.records[attKey("emp-1", workday)] = attendance.Attendance{
		ID: "att-1", EmployeeID: "emp-1", Date: workday, CheckIn: &checkIn,
	}

	jobs := newTestJobs(attRepo, &fakeEmployeeRepo{}, newFakeLeaveRepo(), &fakeHolidayRepo{})

	now := workday.Add(19 * time.Hour)
	require.NoError(t, jobs.AutoCloseForDate(context.Background(), workday, now))

	assert.Empty(t, attRepo.updated)
}

func TestAutoCloseForDate_LateCheckInClampsToZero(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	checkIn := workday.Add(22 * time.Hour) // after the 20:00 cutoff
	attRepo.records[attKey("emp-1", workday)] = attendance.Attendance{
		ID: "att-1", EmployeeID: "emp-1", Date: workday, CheckIn: &checkIn,
	}

	jobs := newTestJobs(attRepo, &fakeEmployeeRepo{}, newFakeLeaveRepo(), &fakeHolidayRepo{})

	now := workday.Add(23 * time.Hour)
	require.NoError(t, jobs.AutoCloseForDate(context.Background(), workday, now))

	require.Len(t, attRepo.updated, 1)
	got := attRepo.updated[0]
	require.NotNil(t, got.CheckOut)
	assert.True(t, got.CheckOut.Equal(checkIn))
}
