package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hr-attendance-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hr-attendance-go/internal/handler/http"
	"github.com/cmlabs-hris/hr-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hr-attendance-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hr-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hr-attendance-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hr-attendance-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/hr-attendance-go/internal/service/auth"
	leaveService "github.com/cmlabs-hris/hr-attendance-go/internal/service/leave"
	positionService "github.com/cmlabs-hris/hr-attendance-go/internal/service/position"
	scheduleService "github.com/cmlabs-hris/hr-attendance-go/internal/service/schedule"
	taskService "github.com/cmlabs-hris/hr-attendance-go/internal/service/task"
	userService "github.com/cmlabs-hris/hr-attendance-go/internal/service/user"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	logger := appHTTP.NewLogger(level, cfg.App.Env)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	if cfg.Database.ApplySchema {
		if err := postgresql.EnsureSchema(ctx, db); err != nil {
			return err
		}
	}

	clk := clock.FromMinutes(cfg.Attendance.UTCOffsetMinutes, nil)
	tx := postgresql.NewTransactor(db)

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	positionRepo := postgresql.NewPositionRepository(db)
	unitRepo := postgresql.NewUnitRepository(db)
	movementRepo := postgresql.NewMovementRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	revokedTokenRepo := postgresql.NewRevokedTokenRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	authService := serviceAuth.NewAuthService(userRepo, revokedTokenRepo, JWTService)
	userSvc := userService.NewUserService(userRepo, cfg.App.BcryptCost)
	leaveSvc := leaveService.NewLeaveService(clk, leaveRequestRepo, userRepo)
	scheduleSvc := scheduleService.NewScheduleService(tx, scheduleRepo, userRepo)
	attendanceSvc := attendanceService.NewAttendanceService(tx, clk, attendanceRepo, userRepo, leaveSvc, scheduleSvc)
	positionSvc := positionService.NewPositionService(tx, positionRepo, unitRepo, movementRepo, userRepo)
	taskSvc := taskService.NewTaskService(clk, taskRepo, userRepo)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{AllowedOrigins: cfg.App.AllowedOrigins, Logger: logger},
		JWTService,
		authService,
		appHTTP.NewAuthHandler(authService),
		appHTTP.NewUserHandler(userSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewLeaveHandler(leaveSvc),
		appHTTP.NewScheduleHandler(scheduleSvc),
		appHTTP.NewPositionHandler(positionSvc),
		appHTTP.NewTaskHandler(taskSvc),
	)

	scheduler := cron.NewScheduler()
	cron.NewTokenJobs(revokedTokenRepo, time.Now).RegisterJobs(scheduler, cfg.Cron.PruneInterval)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr, "utc_offset_minutes", cfg.Attendance.UTCOffsetMinutes)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
