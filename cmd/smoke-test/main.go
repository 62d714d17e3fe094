// Command smoke-test waits for a running intake service to become ready and
// submits one reference order, exiting non-zero unless it is admitted.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/xenking/uto-pedidos/internal/client"
	"github.com/xenking/uto-pedidos/pkg/health"
)

var referenceOrder = client.OrderRequest{
	Cliente:  "Tech Solutions S.A.S",
	Producto: "MacBook Pro M3",
	Cantidad: 5,
	Ciudad:   "Cartagena",
}

func main() {
	var (
		baseURL  string
		attempts uint
		interval time.Duration
		timeout  time.Duration
	)

	flag.StringVar(&baseURL, "base-url", "", "service base URL (or PEDIDOS_BASE_URL env)")
	flag.UintVar(&attempts, "attempts", 10, "readiness probe attempts")
	flag.DurationVar(&interval, "interval", 500*time.Millisecond, "initial delay between readiness probes")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "per-request timeout")
	flag.Parse()

	if baseURL == "" {
		baseURL = os.Getenv("PEDIDOS_BASE_URL")
	}
	if baseURL == "" {
		baseURL = "http://127.0.0.1:5000"
	}

	lg, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	c := client.New(baseURL, &http.Client{Timeout: timeout})
	if err := run(ctx, lg, c, health.WaitConfig{Attempts: attempts, Interval: interval}); err != nil {
		lg.Error("Smoke test failed", zap.Error(err))
		os.Exit(1)
	}
	lg.Info("Smoke test passed")
}

func run(ctx context.Context, lg *zap.Logger, c *client.Client, wait health.WaitConfig) error {
	lg.Info("Waiting for service readiness", zap.Uint("attempts", wait.Attempts))
	if err := c.WaitReady(ctx, wait); err != nil {
		return errors.Wrap(err, "service not ready")
	}

	resp, err := c.SubmitOrder(ctx, referenceOrder)
	if err != nil {
		return errors.Wrap(err, "submit order")
	}
	lg.Info("Order submitted",
		zap.Int("code", resp.Code),
		zap.String("status", resp.Status),
		zap.String("mensaje", resp.Mensaje),
	)
	if !resp.Accepted() {
		return errors.Errorf("order not admitted: %d %s", resp.Code, resp.Mensaje)
	}
	return nil
}
