package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"vendorhub/internal/metrics"
	"vendorhub/internal/mw"
)

type Services struct {
	Auth          AuthService
	Tokens        mw.TokenParser
	Orders        OrderService
	Menu          MenuService
	Profile       ProfileService
	Settings      SettingsService
	Analytics     AnalyticsService
	Notifications NotificationService
}

// NewRouter mounts the public and vendor-only API routes. assets serves
// GET /assets/*.
func NewRouter(svc Services, assets http.Handler, m *metrics.Registry) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(m.Middleware)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Authorization"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Public routes
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", m.Handler())
	r.Handle("/assets/*", assets)
	r.Post("/api/auth/register", RegisterHandler(svc.Auth))
	r.Post("/api/auth/login", LoginHandler(svc.Auth))

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(mw.AuthMiddleware(svc.Tokens))

		r.Get("/api/orders", ListOrdersHandler(svc.Orders))
		r.Get("/api/orders/{id}", GetOrderHandler(svc.Orders))
		r.Post("/api/orders/{id}/status", UpdateOrderStatusHandler(svc.Orders))

		r.Get("/api/menu", ListMenuHandler(svc.Menu))
		r.Post("/api/menu", CreateMenuItemHandler(svc.Menu))
		r.Get("/api/menu/categories", CategoriesHandler(svc.Menu))
		r.Get("/api/menu/{id}", GetMenuItemHandler(svc.Menu))
		r.Put("/api/menu/{id}", UpdateMenuItemHandler(svc.Menu))
		r.Delete("/api/menu/{id}", DeleteMenuItemHandler(svc.Menu))
		r.Patch("/api/menu/{id}/availability", SetAvailabilityHandler(svc.Menu))

		r.Get("/api/profile", GetProfileHandler(svc.Profile))
		r.Put("/api/profile", UpdateProfileHandler(svc.Profile))
		r.Post("/api/profile/logo", UploadLogoHandler(svc.Profile))

		r.Get("/api/settings", GetSettingsHandler(svc.Settings))
		r.Patch("/api/settings", UpdateSettingsHandler(svc.Settings))
		r.Get("/api/settings/bank-account", GetBankAccountHandler(svc.Settings))
		r.Put("/api/settings/bank-account", UpdateBankAccountHandler(svc.Settings))

		r.Get("/api/analytics", AnalyticsHandler(svc.Analytics))
		r.Get("/api/dashboard", DashboardHandler(svc.Analytics))

		r.Get("/api/notifications", ListNotificationsHandler(svc.Notifications))
		r.Post("/api/notifications/read-all", MarkAllNotificationsReadHandler(svc.Notifications))
		r.Post("/api/notifications/{id}/read", MarkNotificationReadHandler(svc.Notifications))
	})

	return r
}
