package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nairmotors/dealerbook-backend/api/controllers"
	"github.com/nairmotors/dealerbook-backend/api/middleware"
	"github.com/nairmotors/dealerbook-backend/internal/auth"
	"github.com/nairmotors/dealerbook-backend/internal/capital"
	"github.com/nairmotors/dealerbook-backend/internal/inventory"
	"github.com/nairmotors/dealerbook-backend/internal/parties"
	"github.com/nairmotors/dealerbook-backend/internal/purchases"
	"github.com/nairmotors/dealerbook-backend/internal/sales"
	"github.com/nairmotors/dealerbook-backend/pkg/config"
	"github.com/nairmotors/dealerbook-backend/pkg/db"
	"github.com/nairmotors/dealerbook-backend/pkg/logger"
	"github.com/nairmotors/dealerbook-backend/pkg/redis"
)

// Services bundles everything the router mounts.
type Services struct {
	Auth      auth.Service
	Purchases purchases.Service
	Capital   capital.Service
	Sales     sales.Service
	Parties   parties.Service
	Inventory inventory.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbClient, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(svcs.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/purchases", func(r chi.Router) {
			r.Post("/", controllers.RecordPurchase(svcs.Purchases, logg))
			r.Get("/", controllers.ListPurchases(svcs.Purchases, logg))
			r.Get("/next-order-number", controllers.NextOrderNumber(svcs.Purchases, logg))
			r.Get("/{purchaseId}", controllers.GetPurchase(svcs.Purchases, logg))
			r.Get("/{purchaseId}/transactions", controllers.PurchaseTransactions(svcs.Parties, logg))
		})

		r.Get("/transactions/{transactionNo}", controllers.TransactionByNo(svcs.Parties, logg))

		r.Route("/capital", func(r chi.Router) {
			r.Get("/", controllers.CapitalBalances(svcs.Capital, logg))
			r.Get("/{capitalType}/entries", controllers.CapitalEntries(svcs.Capital, logg))

			// Manual ledger edits are an admin-only correction tool.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(logg, "admin"))
				r.Post("/{capitalType}/adjust", controllers.CapitalAdjust(svcs.Capital, logg))
				r.Post("/{capitalType}/set-balance", controllers.CapitalSetBalance(svcs.Capital, logg))
				r.Post("/{capitalType}/set-initial", controllers.CapitalSetInitial(svcs.Capital, logg))
			})
		})

		r.Route("/sales", func(r chi.Router) {
			r.Post("/payments", controllers.RecordSalePayment(svcs.Sales, logg))
		})

		r.Route("/parties", func(r chi.Router) {
			r.Post("/", controllers.CreateParty(svcs.Parties, logg))
			r.Get("/", controllers.ListPartiesByKind(svcs.Parties, logg))
			r.Get("/{partyId}/transactions", controllers.PartyTransactions(svcs.Parties, logg))
		})

		r.Route("/brands", func(r chi.Router) {
			r.Post("/", controllers.CreateBrand(svcs.Inventory, logg))
			r.Get("/", controllers.ListBrands(svcs.Inventory, logg))
			r.Get("/{brandId}", controllers.BrandDetail(svcs.Inventory, logg))
		})

		r.Get("/vehicles/{vehicleId}", controllers.GetVehicle(svcs.Inventory, logg))
	})

	return r
}
