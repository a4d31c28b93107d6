package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/minhvuongle/yenvang-backend/api/controllers"
	"github.com/minhvuongle/yenvang-backend/api/middleware"
	cartpkg "github.com/minhvuongle/yenvang-backend/internal/cart"
	"github.com/minhvuongle/yenvang-backend/internal/catalog"
	"github.com/minhvuongle/yenvang-backend/internal/notify"
	"github.com/minhvuongle/yenvang-backend/internal/orders"
	"github.com/minhvuongle/yenvang-backend/internal/pricing"
	"github.com/minhvuongle/yenvang-backend/pkg/config"
	"github.com/minhvuongle/yenvang-backend/pkg/logger"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	Pingers        map[string]controllers.Pinger
	CatalogService catalog.Service
	Resolver       *pricing.Resolver
	CartManager    *cartpkg.Manager
	OrderService   orders.Service
	Submitters     *orders.SubmitterPool
	Telegram       *notify.TelegramClient
	Metrics        prometheus.Gatherer
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.CORS(deps.Config.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.Pingers))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(deps.Logger))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.CatalogService, deps.Logger))
			r.Get("/{productID}", controllers.GetProduct(deps.CatalogService, deps.Logger))
			r.Post("/{productID}/quote", controllers.QuoteProduct(deps.CatalogService, deps.Resolver, deps.Logger))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(deps.CartManager, deps.Logger))
			r.Delete("/", controllers.ClearCart(deps.CartManager, deps.Logger))
			r.Post("/items", controllers.AddCartItem(deps.CartManager, deps.CatalogService, deps.Resolver, deps.Logger))
			r.Patch("/items/{itemID}", controllers.UpdateCartItem(deps.CartManager, deps.Logger))
			r.Delete("/items/{itemID}", controllers.RemoveCartItem(deps.CartManager, deps.Logger))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(deps.OrderService, deps.Logger))
			r.Post("/", controllers.CreateOrder(deps.OrderService, deps.CartManager, deps.Submitters, deps.Logger))
			r.Post("/direct", controllers.CreateDirectOrder(deps.OrderService, deps.CatalogService, deps.Resolver, deps.Submitters, deps.Logger))
			r.Get("/{orderID}", controllers.GetOrder(deps.OrderService, deps.Logger))
		})

		r.Post("/consultations", controllers.CreateConsultation(deps.Telegram, deps.Logger))
	})

	return r
}
