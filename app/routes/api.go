// Package routes declares the HTTP surface. Handlers live in
// app/controllers; cross-cutting behaviour is middleware.
package routes

import (
	"net/http"
	"time"

	"github.com/shringarlabs/shringar/app/controllers"
	"github.com/shringarlabs/shringar/app/listeners"
	"github.com/shringarlabs/shringar/pkg/metrics"
	"github.com/shringarlabs/shringar/pkg/middleware"
	"github.com/shringarlabs/shringar/pkg/rbac"
	"github.com/shringarlabs/shringar/pkg/reqid"
	"github.com/shringarlabs/shringar/pkg/router"
	"github.com/shringarlabs/shringar/pkg/ws"
)

// RegisterAPI mounts every route on r.
func RegisterAPI(r *router.Router) {
	auth := controllers.NewAuthController()
	products := controllers.NewProductController()
	orders := controllers.NewOrderController()
	payments := controllers.NewPaymentController()
	settings := controllers.NewSettingsController()
	stats := controllers.NewStatsController()
	health := controllers.NewHealthController()

	r.Use(
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		metrics.Middleware(),
		middleware.CORS(middleware.DefaultCORSOptions()),
	)

	r.Get("/healthz", "health", health.Check)
	r.HandleFunc("/metrics", metrics.Handler())

	api := r.Group("/api/v1")

	// Public storefront.
	api.Get("/products", "products.index", products.Index)
	api.Get("/products/featured", "products.featured", products.Featured)
	api.Get("/products/{slug}", "products.show", products.Show)
	api.Get("/settings/shipping", "settings.show", settings.Show)
	api.Post("/cart/quote", "cart.quote", orders.Quote)

	// Accounts.
	api.Post("/auth/register", "auth.register", auth.Register, middleware.RateLimit(10, time.Minute))
	api.Post("/auth/login", "auth.login", auth.Login, middleware.RateLimit(10, time.Minute))
	api.Get("/auth/me", "auth.me", auth.Me, middleware.Auth)

	// Checkout. Guests may place cash-on-delivery orders; a signed-in
	// caller gets the order attached to their account.
	api.Post("/orders", "orders.store", orders.Store, middleware.OptionalAuth)
	api.Get("/orders/{ref}", "orders.show", orders.Show)
	api.Get("/my/orders", "orders.mine", orders.Mine, middleware.Auth)

	// Online payment. Opening requires sign-in; verification is proven
	// by the gateway signature and sits behind a tight rate limit.
	api.Post("/payments/open", "payments.open", payments.Open, middleware.Auth)
	api.Post("/payments/reopen", "payments.reopen", payments.Reopen, middleware.Auth)
	api.Post("/payments/verify", "payments.verify", payments.Verify, middleware.RateLimit(15, time.Minute))

	// Back-office.
	admin := api.Group("/admin", middleware.Auth, rbac.Admin)
	admin.Get("/stats", "admin.stats", stats.Dashboard)
	admin.Get("/orders", "admin.orders.index", orders.Index)
	admin.Patch("/orders/{ref}/status", "admin.orders.status", orders.UpdateStatus)
	admin.Post("/products", "admin.products.store", products.Store)
	admin.Put("/products/{slug}", "admin.products.update", products.Update)
	admin.Patch("/products/{slug}/stock", "admin.products.stock", products.SetStock)
	admin.Post("/products/{slug}/image", "admin.products.image", products.UploadImage)
	admin.Delete("/products/{slug}", "admin.products.destroy", products.Destroy)
	admin.Patch("/settings/shipping", "admin.settings.update", settings.Update)

	// Live order feed for the admin dashboard.
	r.HandleFunc("/ws/admin/orders", func(w http.ResponseWriter, req *http.Request) {
		ws.Upgrade(w, req, listeners.OrderFeed)
	})
}
