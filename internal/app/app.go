package app

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/uto-pedidos/internal/domain/order"
	"github.com/xenking/uto-pedidos/internal/handler"
	"github.com/xenking/uto-pedidos/internal/storage/memory"
	"github.com/xenking/uto-pedidos/pkg/health"
	"github.com/xenking/uto-pedidos/pkg/httpmiddleware"
)

const meterName = "github.com/xenking/uto-pedidos"

// Server is the wired intake service: its store, health state and the
// fully wrapped HTTP handler.
type Server struct {
	Store   *memory.OrderStore
	Health  *health.Health
	Handler http.Handler
}

// NewServer creates all dependencies and the HTTP handler. Background work
// started here (rate limiter cleanup) stops when ctx is done.
func NewServer(
	ctx context.Context,
	lg *zap.Logger,
	mp metric.MeterProvider,
	tp trace.TracerProvider,
	cfg *Config,
) (*Server, error) {
	store := memory.NewOrderStore()

	metrics, err := order.NewMetrics(mp.Meter(meterName), store)
	if err != nil {
		return nil, errors.Wrap(err, "create order metrics")
	}
	orders := order.NewService(store, metrics)

	healthSvc := health.New(lg.Named("health"))
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(cfg.Health.MaxGoroutines))
	healthSvc.AddLivenessCheck("gc-pause", time.Second, health.GCMaxPauseCheck(cfg.Health.MaxGCPause))

	h := handler.NewHandler(handler.HandlerConfig{MaxBodyBytes: cfg.MaxBodyBytes}, orders)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("GET /readyz", healthSvc.ReadyEndpoint)
	h.Register(mux,
		httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
			Rate:  cfg.RateLimit.Rate,
			Burst: cfg.RateLimit.Burst,
		}),
		httpmiddleware.Decompress(),
	)

	wrapped := httpmiddleware.Wrap(mux, requestMiddlewares(lg)...)

	return &Server{
		Store:  store,
		Health: healthSvc,
		Handler: otelhttp.NewHandler(wrapped, "pedidos-api",
			otelhttp.WithMeterProvider(mp),
			otelhttp.WithTracerProvider(tp),
		),
	}, nil
}

// requestMiddlewares is the chain applied to every route, outermost first.
// LogRequests sits outside Recovery so recovered panics are logged as 500s.
func requestMiddlewares(lg *zap.Logger) []httpmiddleware.Middleware {
	return []httpmiddleware.Middleware{
		httpmiddleware.InjectLogger(lg),
		httpmiddleware.RequestID(),
		httpmiddleware.LogRequests(),
		httpmiddleware.Recovery(),
	}
}

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	srv, err := NewServer(ctx, lg, m.MeterProvider(), m.TracerProvider(), cfg)
	if err != nil {
		return err
	}

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Handler:           srv.Handler,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return errors.Wrap(err, "listen")
	}

	srv.Health.Start(ctx, cfg.Health.Interval)
	defer srv.Health.Stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Info("Server listening", zap.Stringer("addr", ln.Addr()))
		srv.Health.SetReady(true)
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "serve")
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		srv.Health.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))

		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown")
		}
		lg.Info("Server stopped", zap.Int("orders", srv.Store.Len()))
		return nil
	})
	return g.Wait()
}
