package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xenking/uto-pedidos/internal/client"
	"github.com/xenking/uto-pedidos/pkg/health"
)

func fakeService(t *testing.T, submitCode int, body string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /api/pedidos", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(submitCode)
		_, _ = w.Write([]byte(body))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

var fastWait = health.WaitConfig{Attempts: 3, Interval: time.Millisecond, MaxInterval: time.Millisecond}

func TestRun_Admitted(t *testing.T) {
	srv := fakeService(t, http.StatusOK, `{"status":"success","mensaje":"Recibido en Centro de Distribución"}`)

	err := run(context.Background(), zaptest.NewLogger(t), client.New(srv.URL, srv.Client()), fastWait)
	require.NoError(t, err)
}

func TestRun_Rejected(t *testing.T) {
	srv := fakeService(t, http.StatusBadRequest, `{"status":"error","mensaje":"Payload inválido"}`)

	err := run(context.Background(), zaptest.NewLogger(t), client.New(srv.URL, srv.Client()), fastWait)
	require.ErrorContains(t, err, "order not admitted")
}

func TestRun_NotReady(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	err := run(context.Background(), zaptest.NewLogger(t), client.New(srv.URL, srv.Client()), fastWait)
	require.ErrorContains(t, err, "service not ready")
}
