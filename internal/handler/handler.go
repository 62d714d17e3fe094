package handler

import (
	"net/http"

	"github.com/xenking/uto-pedidos/internal/domain/order"
	"github.com/xenking/uto-pedidos/pkg/httpmiddleware"
)

// DefaultMaxBodyBytes bounds submission bodies when HandlerConfig leaves it unset.
const DefaultMaxBodyBytes = 1 << 20

// HandlerConfig holds non-dependency configuration for the Handler.
type HandlerConfig struct {
	// MaxBodyBytes caps the decoded size of a submission body. Larger bodies
	// are rejected as malformed.
	MaxBodyBytes int64
}

// Handler serves the order form and the intake API, delegating business
// logic to the order service.
type Handler struct {
	orders       *order.Service
	maxBodyBytes int64
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(cfg HandlerConfig, orders *order.Service) *Handler {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &Handler{
		orders:       orders,
		maxBodyBytes: cfg.MaxBodyBytes,
	}
}

// Register binds the routes to mux. Middlewares in submit wrap only the order
// submission route.
func (h *Handler) Register(mux *http.ServeMux, submit ...httpmiddleware.Middleware) {
	mux.HandleFunc("GET /{$}", h.Form)
	mux.Handle("GET /static/", h.Static())
	mux.Handle("POST /api/pedidos", httpmiddleware.Wrap(http.HandlerFunc(h.SubmitOrder), submit...))
	mux.HandleFunc("GET /api/autores", h.ListAuthors)
}
