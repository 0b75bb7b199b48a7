package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	"github.com/baharkarakas/legion/internal/api/handlers"
	"github.com/baharkarakas/legion/internal/auth"
	"github.com/baharkarakas/legion/internal/config"
	"github.com/baharkarakas/legion/internal/metrics"
	"github.com/baharkarakas/legion/internal/middleware"
	"github.com/baharkarakas/legion/internal/models"
	"github.com/baharkarakas/legion/internal/services"
)

type RouterDeps struct {
	Cfg      config.Config
	Tokens   *auth.TokenManager
	Members  *services.MemberService
	Workouts *services.WorkoutService
	Records  *services.RecordService
	Users    *services.UserService
	Auth     *services.AuthService
	Redis    redis.Cmdable // nil selects the in-process limiter
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics)
	if d.Redis != nil {
		r.Use(middleware.RedisRateLimit(d.Redis, d.Cfg.RateRPS))
	} else {
		r.Use(middleware.RateLimit(d.Cfg.RateRPS))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"X-Request-Id"},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	am := middleware.NewAuthMiddleware(d.Tokens)
	staff := []func(http.Handler) http.Handler{am.Auth, middleware.RequireRole(models.RoleCoach, models.RoleAdmin)}

	ah := handlers.NewAuthHandler(d.Auth)
	mh := handlers.NewMemberHandler(d.Members)
	wh := handlers.NewWorkoutHandler(d.Workouts, d.Records)
	rh := handlers.NewRecordHandler(d.Records)
	uh := handlers.NewUserHandler(d.Users)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthz", handlers.Health)

		// ---------- auth ----------
		r.Post("/auth/register", ah.Register)
		r.Post("/auth/login", ah.Login)
		r.Post("/auth/refresh", ah.Refresh)

		// ---------- workouts ----------
		r.Route("/workouts", func(r chi.Router) {
			r.Get("/", wh.List)
			r.Get("/random", wh.Random)
			r.Get("/{workoutId}", wh.Get)
			r.Get("/{workoutId}/records", wh.Records)
			r.With(staff...).Post("/", wh.Create)
			r.With(staff...).Patch("/{workoutId}", wh.Update)
			r.With(staff...).Delete("/{workoutId}", wh.Delete)
		})

		// ---------- members ----------
		r.Route("/members", func(r chi.Router) {
			r.Get("/", mh.List)
			r.Post("/", mh.Create)
			r.Get("/{memberId}", mh.Get)
			r.Patch("/{memberId}", mh.Update)
			r.Delete("/{memberId}", mh.Delete)
		})

		// ---------- records ----------
		r.Route("/records", func(r chi.Router) {
			r.Get("/", rh.List)
			r.Get("/{recordId}", rh.Get)
			r.With(staff...).Post("/", rh.Create)
			r.With(staff...).Patch("/{recordId}", rh.Update)
			r.With(staff...).Delete("/{recordId}", rh.Delete)
		})

		// ---------- users ----------
		r.Route("/users", func(r chi.Router) {
			r.Use(am.Auth, middleware.RequireRole(models.RoleAdmin))
			r.Get("/", uh.List)
			r.Post("/", uh.Create)
			r.Get("/{userId}", uh.Get)
			r.Patch("/{userId}", uh.Update)
			r.Delete("/{userId}", uh.Delete)
		})
	})

	return r
}
