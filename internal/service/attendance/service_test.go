package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hadirly/hadir-backend-go/internal/domain/attendance"
	"github.com/hadirly/hadir-backend-go/internal/domain/employee"
	"github.com/hadirly/hadir-backend-go/internal/domain/geofence"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func attKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	att.ID = "att-" + att.EmployeeID
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
	return nil
}

func (f *fakeAttendanceRepo) UpdateTimes(ctx context.Context, id string, checkIn, checkOut *time.Time) error {
	return nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range f.records {
		if filter.EmployeeID != nil && att.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, att)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) ListOpenByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

// fakeGeoFenceService validates against one fixed fence.
type fakeGeoFenceService struct {
	fence   *geofence.GeoFence
	noFence bool
}

func (f *fakeGeoFenceService) ValidatePoint(ctx context.Context, p geofence.Point) (geofence.MatchResult, error) {
	if f.noFence || f.fence == nil {
		return geofence.MatchResult{}, nil
	}
	return geofence.Match(p, []geofence.GeoFence{*f.fence}), nil
}

func (f *fakeGeoFenceService) CaptureWFH(ctx context.Context, accuracyMeters float64) (geofence.Capture, error) {
	if f.noFence || f.fence == nil || !f.fence.Active {
		return geofence.Capture{}, geofence.ErrNoActiveFence
	}
	id := f.fence.ID
	return geofence.Capture{
		Latitude:       f.fence.CenterLatitude,
		Longitude:      f.fence.CenterLongitude,
		AccuracyMeters: accuracyMeters,
		WithinFence:    true,
		FenceID:        &id,
	}, nil
}

func (f *fakeGeoFenceService) CreateFence(ctx context.Context, req geofence.CreateGeoFenceRequest) (geofence.GeoFenceResponse, error) {
	return geofence.GeoFenceResponse{}, nil
}

func (f *fakeGeoFenceService) UpdateFence(ctx context.Context, req geofence.UpdateGeoFenceRequest) (geofence.GeoFenceResponse, error) {
	return geofence.GeoFenceResponse{}, nil
}

func (f *fakeGeoFenceService) SetFenceActive(ctx context.Context, id string, active bool) error {
	return nil
}

func (f *fakeGeoFenceService) ListFences(ctx context.Context) ([]geofence.GeoFenceResponse, error) {
	return nil, nil
}

func (f *fakeGeoFenceService) GetFence(ctx context.Context, id string) (geofence.GeoFenceResponse, error) {
	return geofence.GeoFenceResponse{}, nil
}

var testFence = geofence.GeoFence{
	ID:              "fence-hq",
	Name:            "Head Office",
	CenterLatitude:  12.9716,
	CenterLongitude: 77.5946,
	RadiusMeters:    100,
	Active:          true,
}

func testPolicy() attendance.Policy {
	return attendance.Policy{
		LateThresholdHour:   9,
		LateThresholdMinute: 15,
		AutoCheckoutHour:    20,
		AutoCheckoutMinute:  0,
	}
}

func ctxWithEmployee(t *testing.T, employeeID string) context.Context {
	t.Helper()
	tok, err := jwt.NewBuilder().Claim("employee_id", employeeID).Build()
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func newTestService(attRepo *fakeAttendanceRepo, empRepo *fakeEmployeeRepo, geoSvc geofence.GeoFenceService) attendance.AttendanceService {
	return NewAttendanceService(attRepo, empRepo, geoSvc, testPolicy(), 15, time.UTC)
}

func TestCheckIn_InsideFence(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	empRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", FullName: "Asha", IsActive: true},
	}}
	svc := newTestService(attRepo, empRepo, &fakeGeoFenceService{fence: &testFence})

	resp, err := svc.CheckIn(ctxWithEmployee(t, "emp-1"), attendance.CheckInRequest{
		Latitude:       testFence.CenterLatitude,
		Longitude:      testFence.CenterLongitude,
		AccuracyMeters: 5,
	})
	require.NoError(t, err)

	require.NotNil(t, resp.WithinFence)
	assert.True(t, *resp.WithinFence)
	require.NotNil(t, resp.FenceID)
	assert.Equal(t, "fence-hq", *resp.FenceID)
	assert.NotNil(t, resp.CheckInTime)
	assert.Equal(t, "device", resp.Source)
}

func TestCheckIn_OutsideFenceIsRecordedAndFlagged(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	empRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", IsActive: true},
	}}
	svc := newTestService(attRepo, empRepo, &fakeGeoFenceService{fence: &testFence})

	resp, err := svc.CheckIn(ctxWithEmployee(t, "emp-1"), attendance.CheckInRequest{
		Latitude:       testFence.CenterLatitude + 0.05,
		Longitude:      testFence.CenterLongitude,
		AccuracyMeters: 5,
	})
	require.NoError(t, err)

	require.NotNil(t, resp.WithinFence)
	assert.False(t, *resp.WithinFence)
	assert.Nil(t, resp.FenceID)
	assert.NotNil(t, resp.CheckInTime)
}

func TestCheckIn_Twice(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	empRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", IsActive: true},
	}}
	svc := newTestService(attRepo, empRepo, &fakeGeoFenceService{fence: &testFence})

	ctx := ctxWithEmployee(t, "emp-1")
	req := attendance.CheckInRequest{
		Latitude:  testFence.CenterLatitude,
		Longitude: testFence.CenterLongitude,
	}

	_, err := svc.CheckIn(ctx, req)
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, req)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckIn_WFHSubstitution(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	empRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-wfh": {ID: "emp-wfh", IsWfhEnabled: true, IsActive: true},
	}}
	svc := newTestService(attRepo, empRepo, &fakeGeoFenceService{fence: &testFence})

	// device coordinates are nowhere near the fence, the substitution
	// ignores them entirely
	resp, err := svc.CheckIn(ctxWithEmployee(t, "emp-wfh"), attendance.CheckInRequest{
		Latitude:       -33.8688,
		Longitude:      151.2093,
		AccuracyMeters: 5,
	})
	require.NoError(t, err)

	require.NotNil(t, resp.WithinFence)
	assert.True(t, *resp.WithinFence)
	require.NotNil(t, resp.Latitude)
	assert.Equal(t, testFence.CenterLatitude, *resp.Latitude)
	require.NotNil(t, resp.AccuracyMeters)
	assert.Equal(t, float64(15), *resp.AccuracyMeters)
}

func TestCheckIn_WFHWithoutActiveFence(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	empRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-wfh": {ID: "emp-wfh", IsWfhEnabled: true, IsActive: true},
	}}
	svc := newTestService(attRepo, empRepo, &fakeGeoFenceService{noFence: true})

	_, err := svc.CheckIn(ctxWithEmployee(t, "emp-wfh"), attendance.CheckInRequest{
		Latitude:  1,
		Longitude: 1,
	})
	assert.ErrorIs(t, err, geofence.ErrNoActiveFence)

	today := time.Now().UTC()
	date := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	att, err := attRepo.GetByEmployeeAndDate(context.Background(), "emp-wfh", date)
	require.NoError(t, err)
	assert.Nil(t, att)
}

func TestCheckOut(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	empRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", IsActive: true},
	}}
	svc := newTestService(attRepo, empRepo, &fakeGeoFenceService{fence: &testFence})
	ctx := ctxWithEmployee(t, "emp-1")

	t.Run("before check-in", func(t *testing.T) {
		_, err := svc.CheckOut(ctx, attendance.CheckOutRequest{Latitude: 1, Longitude: 1})
		assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
	})

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{
		Latitude:  testFence.CenterLatitude,
		Longitude: testFence.CenterLongitude,
	})
	require.NoError(t, err)

	t.Run("closes the open record with its own location evidence", func(t *testing.T) {
		resp, err := svc.CheckOut(ctx, attendance.CheckOutRequest{
			Latitude:       testFence.CenterLatitude,
			Longitude:      testFence.CenterLongitude,
			AccuracyMeters: 8,
		})
		require.NoError(t, err)
		assert.NotNil(t, resp.CheckOutTime)
		assert.NotNil(t, resp.WorkingHours)

		require.NotNil(t, resp.CheckOutLatitude)
		assert.Equal(t, testFence.CenterLatitude, *resp.CheckOutLatitude)
		require.NotNil(t, resp.CheckOutAccuracyMeters)
		assert.Equal(t, float64(8), *resp.CheckOutAccuracyMeters)
		require.NotNil(t, resp.CheckOutWithinFence)
		assert.True(t, *resp.CheckOutWithinFence)
		require.NotNil(t, resp.CheckOutFenceID)
		assert.Equal(t, "fence-hq", *resp.CheckOutFenceID)
	})

	t.Run("twice", func(t *testing.T) {
		_, err := svc.CheckOut(ctx, attendance.CheckOutRequest{Latitude: 1, Longitude: 1})
		assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
	})
}

func TestCheckOut_OutsideFenceIsRecordedAndFlagged(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	empRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", IsActive: true},
	}}
	svc := newTestService(attRepo, empRepo, &fakeGeoFenceService{fence: &testFence})
	ctx := ctxWithEmployee(t, "emp-1")

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{
		Latitude:  testFence.CenterLatitude,
		Longitude: testFence.CenterLongitude,
	})
	require.NoError(t, err)

	resp, err := svc.CheckOut(ctx, attendance.CheckOutRequest{
		Latitude:  testFence.CenterLatitude + 0.05,
		Longitude: testFence.CenterLongitude,
	})
	require.NoError(t, err)

	assert.NotNil(t, resp.CheckOutTime)
	require.NotNil(t, resp.CheckOutWithinFence)
	assert.False(t, *resp.CheckOutWithinFence)
	assert.Nil(t, resp.CheckOutFenceID)

	// check-in evidence is untouched by the checkout fix
	require.NotNil(t, resp.WithinFence)
	assert.True(t, *resp.WithinFence)
}

func TestCheckOut_WFHSubstitution(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	empRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-wfh": {ID: "emp-wfh", IsWfhEnabled: true, IsActive: true},
	}}
	svc := newTestService(attRepo, empRepo, &fakeGeoFenceService{fence: &testFence})
	ctx := ctxWithEmployee(t, "emp-wfh")

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{Latitude: 1, Longitude: 1})
	require.NoError(t, err)

	resp, err := svc.CheckOut(ctx, attendance.CheckOutRequest{Latitude: -33.8688, Longitude: 151.2093})
	require.NoError(t, err)

	require.NotNil(t, resp.CheckOutLatitude)
	assert.Equal(t, testFence.CenterLatitude, *resp.CheckOutLatitude)
	require.NotNil(t, resp.CheckOutWithinFence)
	assert.True(t, *resp.CheckOutWithinFence)
}

func TestGetMyAttendance_ScopedToCaller(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	checkIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	attRepo.records[attKey("emp-1", date)] = attendance.Attendance{
		ID: "att-1", EmployeeID: "emp-1", Date: date, CheckIn: &checkIn, Source: attendance.SourceDevice,
	}
	attRepo.records[attKey("emp-2", date)] = attendance.Attendance{
		ID: "att-2", EmployeeID: "emp-2", Date: date, Source: attendance.SourceDevice,
	}

	empRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", IsActive: true},
	}}
	svc := newTestService(attRepo, empRepo, &fakeGeoFenceService{fence: &testFence})

	responses, err := svc.GetMyAttendance(ctxWithEmployee(t, "emp-1"), attendance.AttendanceFilter{})
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "emp-1", responses[0].EmployeeID)
	assert.Equal(t, "present", responses[0].Status)
}
