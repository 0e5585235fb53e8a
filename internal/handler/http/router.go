package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hr-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	AllowedOrigins []string
	Logger         *slog.Logger
}

// NewLogger builds the JSON logger shared by the app and the request logger, using ECS field names.
func NewLogger(level slog.Level, env string) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-attendance"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	revocations middleware.RevocationChecker,
	authHandler AuthHandler,
	userHandler UserHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	scheduleHandler ScheduleHandler,
	positionHandler PositionHandler,
	taskHandler TaskHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = NewLogger(slog.LevelInfo, "development")
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	// source_ip of marks comes from the proxy headers
	r.Use(chiMiddleware.RealIP)

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Post("/auth/login", authHandler.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(revocations))

			r.Post("/auth/logout", authHandler.Logout)

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/", attendanceHandler.Mark)
				r.Get("/mine", attendanceHandler.ListMine)
				r.Get("/mine/summary", attendanceHandler.SummaryMine)
				// Summary of another user is also open to the user itself
				r.Get("/user/{id}/summary", attendanceHandler.SummaryForUser)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceManage))
					r.Get("/user/{id}", attendanceHandler.ListForUser)
					r.Post("/manual", attendanceHandler.CreateManual)
					r.Patch("/{id}/void", attendanceHandler.Void)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", leaveHandler.Create)
				r.Get("/mine", leaveHandler.ListMine)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveResolve))
					r.Get("/pending", leaveHandler.ListPending)
					r.Patch("/{id}/resolve", leaveHandler.Resolve)
				})
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/mine", taskHandler.ListMine)
				// The service lets the assignee through as well
				r.Patch("/{id}/status", taskHandler.ChangeStatus)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionTaskManage))
					r.Get("/", taskHandler.ListAll)
					r.Post("/", taskHandler.Create)
					r.Get("/assigned", taskHandler.ListAssignedByMe)
					r.Get("/user/{id}", taskHandler.ListForUser)
					r.Patch("/{id}", taskHandler.Update)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", userHandler.Me)
				r.Get("/{id}", userHandler.Get)
				r.Get("/{id}/schedule", scheduleHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionUserView))
					r.Get("/", userHandler.List)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionUserManage))
					r.Post("/", userHandler.Create)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionUserUpdate))
					r.Patch("/{id}", userHandler.Update)
					r.Delete("/{id}", userHandler.Deactivate)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionScheduleManage))
					r.Put("/{id}/schedule", scheduleHandler.Replace)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionPositionManage))
					r.Get("/{id}/movements", positionHandler.ListMovements)
					r.Post("/{id}/movements", positionHandler.RegisterMovement)
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionPositionManage))
				r.Get("/positions", positionHandler.ListPositions)
				r.Post("/positions", positionHandler.CreatePosition)
				r.Get("/units", positionHandler.ListUnits)
				r.Post("/units", positionHandler.CreateUnit)
			})
		})
	})
	return r
}
