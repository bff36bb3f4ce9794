package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hadirly/hadir-backend-go/internal/config"
	"github.com/hadirly/hadir-backend-go/internal/domain/attendance"
	appHTTP "github.com/hadirly/hadir-backend-go/internal/handler/http"
	"github.com/hadirly/hadir-backend-go/internal/pkg/cron"
	"github.com/hadirly/hadir-backend-go/internal/pkg/database"
	"github.com/hadirly/hadir-backend-go/internal/pkg/jwt"
	"github.com/hadirly/hadir-backend-go/internal/repository/postgresql"
	attendanceService "github.com/hadirly/hadir-backend-go/internal/service/attendance"
	geofenceService "github.com/hadirly/hadir-backend-go/internal/service/geofence"
	holidayService "github.com/hadirly/hadir-backend-go/internal/service/holiday"
	leaveService "github.com/hadirly/hadir-backend-go/internal/service/leave"
	requestService "github.com/hadirly/hadir-backend-go/internal/service/request"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	location, err := time.LoadLocation(cfg.Attendance.Timezone)
	if err != nil {
		fmt.Println("Error loading timezone:", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	geoFenceRepo := postgresql.NewGeoFenceRepository(db)
	requestRepo := postgresql.NewManualRequestRepository(db)

	policy := attendance.Policy{
		LateThresholdHour:   cfg.Attendance.LateThresholdHour,
		LateThresholdMinute: cfg.Attendance.LateThresholdMinute,
		AutoCheckoutHour:    cfg.Attendance.AutoCheckoutHour,
		AutoCheckoutMinute:  cfg.Attendance.AutoCheckoutMinute,
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	geoFenceSvc := geofenceService.NewGeoFenceService(geoFenceRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		employeeRepo,
		geoFenceSvc,
		policy,
		cfg.Attendance.WFHAccuracyMeters,
		location,
	)
	requestSvc := requestService.NewRequestService(db, requestRepo, attendanceRepo, location)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, location)
	holidaySvc := holidayService.NewHolidayService(holidayRepo, location)

	router := appHTTP.NewRouter(cfg, jwtService, appHTTP.Handlers{
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Request:    appHTTP.NewRequestHandler(requestSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		GeoFence:   appHTTP.NewGeoFenceHandler(geoFenceSvc),
		Holiday:    appHTTP.NewHolidayHandler(holidaySvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeRepo),
	})

	scheduler := cron.NewScheduler(location)
	reconciliationJobs := cron.NewReconciliationJobs(
		attendanceRepo,
		employeeRepo,
		leaveRepo,
		holidayRepo,
		policy,
		location,
	)
	reconciliationJobs.RegisterJobs(scheduler)
	scheduler.Start()

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: addr, Handler: router}

	go func() {
		slog.Info("Server starting", "addr", addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("Shutting down...")
	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
}
