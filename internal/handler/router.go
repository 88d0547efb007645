package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/saiyo-admin/internal/metrics"
	"github.com/hitoshi/saiyo-admin/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	HealthChecker     HealthChecker
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	MetricsRecorder   middleware.HTTPRecorder
	MetricsGatherer   prometheus.Gatherer

	// 大学・学部
	UniversityService UniversityServiceInterface
	UniversityBulk    UniversityBulkInterface
	FacultyService    FacultyServiceInterface
	FacultyBulk       FacultyBulkInterface

	// 面接官
	InterviewerService InterviewerServiceInterface
	InterviewerBulk    InterviewerBulkInterface

	// ユーザー・部署
	UserService       UserServiceInterface
	UserBulk          UserBulkInterface
	DepartmentService DepartmentServiceInterface

	// イベント
	EventService EventServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Metrics → Logging → Operator → RateLimit(General)
//
// ヘルスチェック（/health）とメトリクス（/metrics）はミドルウェアチェーンの外に配置する。
// バルク作成エンドポイントには専用レート制限を追加で適用する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	if deps.MetricsRecorder != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.MetricsRecorder))
	}
	r.Use(middleware.NewLoggingMiddleware(slog.Default()))

	universityHandler := NewUniversityHandler(deps.UniversityService, deps.UniversityBulk)
	facultyHandler := NewFacultyHandler(deps.FacultyService, deps.FacultyBulk)
	interviewerHandler := NewInterviewerHandler(deps.InterviewerService, deps.InterviewerBulk)
	userHandler := NewUserHandler(deps.UserService, deps.UserBulk)
	departmentHandler := NewDepartmentHandler(deps.DepartmentService)
	eventHandler := NewEventHandler(deps.EventService)
	healthHandler := NewHealthHandler(deps.HealthChecker)

	// --- 操作ユーザーIDが不要なルート ---

	r.Get("/health", healthHandler.Health)
	if deps.MetricsGatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.MetricsGatherer))
	}

	// --- 操作ユーザーIDが必要なルート ---
	// ミドルウェアスタック: Operator → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewOperatorMiddleware())
		r.Use(deps.RateLimiter.GeneralMiddleware())

		bulkLimit := deps.RateLimiter.BulkMiddleware()

		// 大学管理
		r.Route("/api/universities", func(r chi.Router) {
			r.Get("/", universityHandler.ListUniversities)
			r.Post("/", universityHandler.CreateUniversity)

			// POST /api/universities/bulk - 一括登録（専用レート制限を追加）
			r.With(bulkLimit).Post("/bulk", universityHandler.BulkCreateUniversity)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", universityHandler.GetUniversity)
				r.Put("/", universityHandler.UpdateUniversity)
				r.Delete("/", universityHandler.DeleteUniversity)

				// 大学配下の学部
				r.Get("/faculties", facultyHandler.ListFaculties)
				r.Post("/faculties", facultyHandler.CreateFaculty)
				r.With(bulkLimit).Post("/faculties/bulk", facultyHandler.BulkCreateFaculties)
			})
		})

		// 学部管理
		r.Route("/api/faculties/{id}", func(r chi.Router) {
			r.Get("/", facultyHandler.GetFaculty)
			r.Put("/", facultyHandler.UpdateFaculty)
			r.Delete("/", facultyHandler.DeleteFaculty)

			// 偏差値
			r.Post("/deviation-value", facultyHandler.CreateDeviationValue)
			r.Put("/deviation-value", facultyHandler.UpdateDeviationValue)
			r.Delete("/deviation-value", facultyHandler.DeleteDeviationValue)
		})

		// 面接官管理
		r.Route("/api/interviewers", func(r chi.Router) {
			r.Get("/", interviewerHandler.ListInterviewers)
			r.Post("/", interviewerHandler.CreateInterviewer)

			r.With(bulkLimit).Post("/bulk", interviewerHandler.BulkCreateInterviewers)
			r.With(bulkLimit).Put("/bulk", interviewerHandler.BulkUpdateInterviewers)

			r.Route("/{userId}", func(r chi.Router) {
				r.Get("/", interviewerHandler.GetInterviewer)
				r.Put("/", interviewerHandler.UpdateInterviewer)
				r.Delete("/", interviewerHandler.DeleteInterviewer)
			})
		})

		// ユーザー管理
		r.Route("/api/users", func(r chi.Router) {
			r.Get("/", userHandler.ListUsers)
			r.Post("/", userHandler.CreateUser)

			r.With(bulkLimit).Post("/bulk", userHandler.BulkCreateUsers)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", userHandler.GetUser)
				r.Put("/", userHandler.UpdateUser)
				r.Delete("/", userHandler.DeleteUser)
			})
		})

		// 部署管理
		r.Route("/api/departments", func(r chi.Router) {
			r.Get("/", departmentHandler.ListDepartments)
			r.Post("/", departmentHandler.CreateDepartment)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", departmentHandler.GetDepartment)
				r.Put("/", departmentHandler.UpdateDepartment)
				r.Delete("/", departmentHandler.DeleteDepartment)
			})
		})

		// イベント管理
		r.Route("/api/events", func(r chi.Router) {
			r.Get("/", eventHandler.ListEvents)
			r.Post("/", eventHandler.CreateEvent)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", eventHandler.GetEvent)
				r.Put("/", eventHandler.UpdateEvent)
				r.Delete("/", eventHandler.DeleteEvent)
			})
		})
	})

	return r
}
