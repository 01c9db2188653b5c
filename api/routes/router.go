package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mazirhx/outreach-backend/api/controllers"
	"github.com/mazirhx/outreach-backend/api/middleware"
	"github.com/mazirhx/outreach-backend/internal/auth"
	"github.com/mazirhx/outreach-backend/internal/campaigns"
	"github.com/mazirhx/outreach-backend/internal/dashboard"
	"github.com/mazirhx/outreach-backend/internal/leads"
	"github.com/mazirhx/outreach-backend/internal/users"
	"github.com/mazirhx/outreach-backend/pkg/auth/session"
	"github.com/mazirhx/outreach-backend/pkg/config"
	"github.com/mazirhx/outreach-backend/pkg/db"
	"github.com/mazirhx/outreach-backend/pkg/enums"
	"github.com/mazirhx/outreach-backend/pkg/logger"
	"github.com/mazirhx/outreach-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
}

type rateStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

type redisPinger interface {
	Ping(ctx context.Context) error
}

// Deps bundles everything the router mounts.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              db.Pinger
	Redis           *redis.Client
	Metrics         prometheus.Gatherer
	Sessions        sessionManager
	AuthService     auth.Service
	RegisterService auth.RegisterService
	UsersRepo       *users.Repository
	Memberships     middleware.MembershipChecker
	Campaigns       campaigns.Service
	Leads           leads.Service
	Dashboard       dashboard.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.CORS(),
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	var limiter rateStore
	var healthRedis redisPinger
	if deps.Redis != nil {
		limiter = deps.Redis
		healthRedis = deps.Redis
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, healthRedis))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, limiter, logg)).
			Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, limiter, logg)).
			Post("/register", controllers.AuthRegister(deps.RegisterService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.AuthService, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		r.Get("/users/me", controllers.UsersMe(deps.UsersRepo, logg))
		r.Get("/dashboard", controllers.DashboardOverview(deps.Dashboard, logg))

		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", controllers.CampaignList(deps.Campaigns, logg))
			r.Post("/", controllers.CampaignCreate(deps.Campaigns, logg))
			r.Route("/{campaignId}", func(r chi.Router) {
				r.Get("/", controllers.CampaignGet(deps.Campaigns, logg))
				r.Patch("/", controllers.CampaignUpdate(deps.Campaigns, logg))
				r.Delete("/", controllers.CampaignDelete(deps.Campaigns, logg))
				r.Post("/leads", controllers.LeadsUpload(deps.Leads, logg))
			})
		})

		r.Get("/leads", controllers.LeadsList(deps.Leads, logg))
		r.Get("/booked-leads", controllers.BookedLeadsList(deps.Leads, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.RequireMembershipRoles(deps.Memberships, logg, enums.MembershipRoleAdmin))

		r.Get("/users", controllers.AdminUsersList(deps.UsersRepo, logg))
	})

	return r
}
