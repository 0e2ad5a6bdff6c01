package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/Richyi/promosophia/api/controllers"
	"github.com/Richyi/promosophia/api/middleware"
	"github.com/Richyi/promosophia/internal/analytics"
	"github.com/Richyi/promosophia/internal/auth"
	"github.com/Richyi/promosophia/internal/deductions"
	"github.com/Richyi/promosophia/internal/goals"
	"github.com/Richyi/promosophia/internal/insights"
	"github.com/Richyi/promosophia/internal/optimizer"
	"github.com/Richyi/promosophia/internal/pos"
	"github.com/Richyi/promosophia/internal/products"
	"github.com/Richyi/promosophia/internal/promotions"
	"github.com/Richyi/promosophia/internal/retailers"
	"github.com/Richyi/promosophia/internal/tenants"
	"github.com/Richyi/promosophia/internal/users"
	"github.com/Richyi/promosophia/pkg/auth/session"
	"github.com/Richyi/promosophia/pkg/config"
	"github.com/Richyi/promosophia/pkg/enums"
	"github.com/Richyi/promosophia/pkg/logger"
	"github.com/Richyi/promosophia/pkg/metrics"
)

// Services bundles the domain services the router wires to handlers.
type Services struct {
	Auth       auth.Service
	Tenants    tenants.Service
	Users      users.Service
	Products   products.Service
	Retailers  retailers.Service
	Promotions promotions.Service
	Deductions deductions.Service
	Goals      goals.Service
	POS        pos.Service
	Analytics  analytics.Service
	Optimizer  optimizer.Service
	Insights   insights.Service
}

// NewRouter assembles the full HTTP surface.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	gormDB *gorm.DB,
	cache controllers.Pinger,
	sessions session.AccessSessionChecker,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(gormDB, cache, logg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.Login(svcs.Auth, logg))
		r.Post("/logout", controllers.Logout(svcs.Auth, cfg.JWT, logg))
		r.Post("/refresh", controllers.Refresh(svcs.Auth, logg))
		r.Post("/switch-tenant", controllers.SwitchTenant(svcs.Auth, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))

		r.Get("/me", controllers.Me(svcs.Auth, logg))
		r.Get("/nav", controllers.NavSections(logg))

		r.Route("/tenants", func(r chi.Router) {
			r.Get("/me", controllers.TenantGet(svcs.Tenants, logg))
			r.With(middleware.RequireRole(enums.UserRoleTenantAdmin, logg)).
				Put("/me/settings", controllers.TenantUpdateSettings(svcs.Tenants, logg))
			r.With(middleware.RequireRole(enums.UserRoleSuperAdmin, logg)).
				Get("/", controllers.TenantList(svcs.Tenants, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.UserRoleTenantAdmin, logg))
			r.Get("/", controllers.UserList(svcs.Users, logg))
			r.Post("/invite", controllers.UserInvite(svcs.Users, logg))
			r.Delete("/{userID}", controllers.UserDeactivate(svcs.Users, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(svcs.Products, logg))
			r.Post("/", controllers.ProductCreate(svcs.Products, logg))
			r.Get("/categories", controllers.CategoryList(svcs.Products, logg))
			r.Post("/categories", controllers.CategoryCreate(svcs.Products, logg))
			r.Get("/{productID}", controllers.ProductGet(svcs.Products, logg))
			r.Put("/{productID}", controllers.ProductUpdate(svcs.Products, logg))
			r.Delete("/{productID}", controllers.ProductDeactivate(svcs.Products, logg))
		})

		r.Route("/retailers", func(r chi.Router) {
			r.Get("/", controllers.RetailerList(svcs.Retailers, logg))
			r.Post("/", controllers.RetailerCreate(svcs.Retailers, logg))
			r.Get("/{retailerID}", controllers.RetailerGet(svcs.Retailers, logg))
			r.Put("/{retailerID}", controllers.RetailerUpdate(svcs.Retailers, logg))
			r.Delete("/{retailerID}", controllers.RetailerDeactivate(svcs.Retailers, logg))
		})

		r.Route("/promotions", func(r chi.Router) {
			r.Get("/", controllers.PromotionList(svcs.Promotions, logg))
			r.Post("/", controllers.PromotionCreate(svcs.Promotions, logg))
			r.Get("/{promotionID}", controllers.PromotionGet(svcs.Promotions, logg))
			r.Put("/{promotionID}", controllers.PromotionUpdate(svcs.Promotions, logg))
			r.Post("/{promotionID}/actions", controllers.PromotionAction(svcs.Promotions, logg))
			r.Post("/{promotionID}/actuals", controllers.PromotionRecordActuals(svcs.Promotions, logg))
			r.Get("/{promotionID}/lift", controllers.POSPromotionLift(svcs.POS, logg))
		})

		r.Route("/deductions", func(r chi.Router) {
			r.Get("/", controllers.DeductionList(svcs.Deductions, logg))
			r.Post("/", controllers.DeductionCreate(svcs.Deductions, logg))
			r.Get("/exposure", controllers.DeductionExposure(svcs.Deductions, logg))
			r.Get("/{deductionID}", controllers.DeductionGet(svcs.Deductions, logg))
			r.Post("/{deductionID}/actions", controllers.DeductionAction(svcs.Deductions, logg))
		})

		r.Route("/goals", func(r chi.Router) {
			r.Get("/", controllers.GoalList(svcs.Goals, logg))
			r.Post("/", controllers.GoalCreate(svcs.Goals, logg))
			r.Put("/{goalID}/progress", controllers.GoalUpdateProgress(svcs.Goals, logg))
		})

		r.Route("/pos", func(r chi.Router) {
			r.Post("/batch", controllers.POSIngest(svcs.POS, logg))
			r.Get("/summary", controllers.POSPeriodSummary(svcs.POS, svcs.Tenants, logg))
		})

		r.Get("/dashboard", controllers.Dashboard(svcs.Analytics, svcs.Tenants, logg))

		r.Route("/optimizer", func(r chi.Router) {
			r.Post("/run", controllers.OptimizerRun(svcs.Optimizer, logg))
			r.Get("/scenarios", controllers.ScenarioList(svcs.Optimizer, logg))
			r.Get("/scenarios/{scenarioID}", controllers.ScenarioGet(svcs.Optimizer, logg))
		})

		r.Get("/insights", controllers.InsightList(svcs.Insights, svcs.Tenants, logg))
	})

	return r
}
