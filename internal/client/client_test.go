package client

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap/zaptest"

	"github.com/xenking/uto-pedidos/internal/app"
	"github.com/xenking/uto-pedidos/pkg/health"
)

var reference = OrderRequest{
	Cliente:  "Tech Solutions S.A.S",
	Producto: "MacBook Pro M3",
	Cantidad: 5,
	Ciudad:   "Cartagena",
}

func startService(t *testing.T) (*Client, *app.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	srv, err := app.NewServer(ctx, zaptest.NewLogger(t),
		metricnoop.NewMeterProvider(), tracenoop.NewTracerProvider(),
		&app.Config{
			Addr:         "127.0.0.1:0",
			MaxBodyBytes: 1 << 20,
			Health: app.HealthConfig{
				Interval:      time.Hour,
				MaxGoroutines: 10000,
				MaxGCPause:    time.Second,
			},
		})
	require.NoError(t, err)
	srv.Health.SetReady(true)

	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return New(ts.URL, ts.Client()), srv
}

func TestClient_ReferenceOrder(t *testing.T) {
	c, srv := startService(t)

	resp, err := c.SubmitOrder(context.Background(), reference)
	require.NoError(t, err)
	assert.True(t, resp.Accepted())
	assert.Equal(t, "Recibido en Centro de Distribución", resp.Mensaje)
	assert.Equal(t, 1, srv.Store.Len())
}

func TestClient_QuantityAsString(t *testing.T) {
	c, srv := startService(t)

	resp, err := c.SubmitRaw(context.Background(),
		[]byte(`{"cliente":"Ana","producto":"Mouse","cantidad":"3","ciudad":"Bogotá"}`))
	require.NoError(t, err)
	assert.True(t, resp.Accepted())

	list, err := srv.Store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(3), list[0].Cantidad)
}

func TestClient_Rejections(t *testing.T) {
	for _, tt := range []struct {
		name    string
		body    string
		mensaje string
	}{
		{"ZeroQuantity", `{"cliente":"Ana","producto":"Mouse","cantidad":0,"ciudad":"Bogotá"}`, "Payload inválido"},
		{"MissingCiudad", `{"cliente":"Ana","producto":"Mouse","cantidad":2}`, "Payload inválido"},
		{"NotJSON", `not json`, "JSON inválido"},
		{"NotObject", `[1,2,3]`, "Payload inválido"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			c, srv := startService(t)

			resp, err := c.SubmitRaw(context.Background(), []byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, 400, resp.Code)
			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, tt.mensaje, resp.Mensaje)
			assert.False(t, resp.Accepted())
			assert.Zero(t, srv.Store.Len())
		})
	}
}

func TestClient_ConcurrentSubmissions(t *testing.T) {
	c, srv := startService(t)

	const n = 50
	var wg sync.WaitGroup
	for range n {
		wg.Go(func() {
			resp, err := c.SubmitOrder(context.Background(), reference)
			assert.NoError(t, err)
			assert.True(t, resp.Accepted())
		})
	}
	wg.Wait()
	assert.Equal(t, n, srv.Store.Len())
}

func TestClient_Authors(t *testing.T) {
	c, _ := startService(t)

	authors, err := c.Authors(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Julian Corredor", "Camila Assia", "Jose Otero"}, authors)
}

func TestClient_WaitReady(t *testing.T) {
	c, srv := startService(t)
	cfg := health.WaitConfig{Attempts: 3, Interval: time.Millisecond, MaxInterval: time.Millisecond}

	require.NoError(t, c.WaitReady(context.Background(), cfg))

	srv.Health.SetReady(false)
	require.Error(t, c.WaitReady(context.Background(), cfg))
}

func TestClient_Unreachable(t *testing.T) {
	ts := httptest.NewServer(nil)
	url := ts.URL
	ts.Close()

	_, err := New(url, nil).SubmitOrder(context.Background(), reference)
	require.Error(t, err)
}
