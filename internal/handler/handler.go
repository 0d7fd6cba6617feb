package handler

import (
	"net/http"
	"time"

	"fsanano/catalog-api/internal/auth"
	"fsanano/catalog-api/internal/logging"
	"fsanano/catalog-api/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Options struct {
	AllowedOrigins []string
	Tokens         auth.Issuer
	Logger         logging.Logger
}

type Handler struct {
	router *chi.Mux
	opts   Options

	catalog *CatalogHandler
	account *AccountHandler
	cart    *CartHandler
	upload  *UploadHandler
}

func NewHandler(opts Options, catalog *CatalogHandler, account *AccountHandler, cart *CartHandler, upload *UploadHandler) *Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(metrics.Instrument)
	router.Use(corsHandler(opts.AllowedOrigins))

	h := &Handler{
		router:  router,
		opts:    opts,
		catalog: catalog,
		account: account,
		cart:    cart,
		upload:  upload,
	}

	h.registerRoutes()
	return h
}

func (h *Handler) registerRoutes() {
	h.router.Get("/", h.Liveness)
	h.router.Method(http.MethodGet, "/metrics", metrics.Handler())

	h.router.Post("/upload", h.upload.Upload)
	h.router.Get("/images/{name}", h.upload.ServeImage)

	h.router.Post("/addproduct", h.catalog.AddProduct)
	h.router.Post("/removeproduct", h.catalog.RemoveProduct)
	h.router.Group(func(r chi.Router) {
		r.Use(Brotli)
		r.Get("/allproducts", h.catalog.AllProducts)
		r.Get("/product/{id}", h.catalog.GetProduct)
		r.Get("/newcollections", h.catalog.NewCollections)
		r.Get("/popularinwomen", h.catalog.PopularInWomen)
	})

	h.router.Post("/signup", h.account.Signup)
	h.router.Post("/login", h.account.Login)

	h.router.Group(func(r chi.Router) {
		r.Use(RequireUser(h.opts.Tokens, h.opts.Logger))
		r.Post("/addtocart", h.cart.AddToCart)
		r.Post("/removefromcart", h.cart.RemoveFromCart)
		r.Post("/getcart", h.cart.GetCart)
	})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("App is Running"))
}

// corsHandler allows credentialed requests from the configured origins only.
// An empty list allows no cross-origin callers.
func corsHandler(origins []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", TokenHeader},
		AllowCredentials: true,
		MaxAge:           int((12 * time.Hour).Seconds()),
	}
	if len(origins) == 0 {
		opts.AllowOriginFunc = func(r *http.Request, origin string) bool { return false }
	}
	return cors.Handler(opts)
}
