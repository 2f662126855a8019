package api

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goran-ethernal/TipJarIndexer/internal/common"
	"github.com/goran-ethernal/TipJarIndexer/internal/logger"
	"github.com/goran-ethernal/TipJarIndexer/pkg/config"
	ledgermocks "github.com/goran-ethernal/TipJarIndexer/pkg/ledger/mocks"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		config   *config.APIConfig
		validate func(t *testing.T, server *Server)
	}{
		{
			name: "create server with basic config",
			config: &config.APIConfig{
				Enabled:       true,
				ListenAddress: "localhost:8080",
				ReadTimeout:   common.Duration{Duration: 5 * time.Second},
				WriteTimeout:  common.Duration{Duration: 10 * time.Second},
				IdleTimeout:   common.Duration{Duration: 60 * time.Second},
			},
			validate: func(t *testing.T, server *Server) {
				t.Helper()

				require.NotNil(t, server.config)
				require.NotNil(t, server.store)
				require.NotNil(t, server.handler)
				require.NotNil(t, server.server)
				require.NotNil(t, server.log)
				require.Equal(t, "localhost:8080", server.server.Addr)
				require.Equal(t, 5*time.Second, server.server.ReadTimeout)
				require.Equal(t, 10*time.Second, server.server.WriteTimeout)
				require.Equal(t, 60*time.Second, server.server.IdleTimeout)
			},
		},
		{
			name: "create server with CORS enabled",
			config: &config.APIConfig{
				Enabled:       true,
				ListenAddress: ":9090",
				CORS: config.CORSConfig{
					Enabled:        true,
					AllowedOrigins: []string{"http://localhost:3000", "https://example.com"},
				},
			},
			validate: func(t *testing.T, server *Server) {
				t.Helper()

				require.True(t, server.config.CORS.Enabled)
				require.Len(t, server.config.CORS.AllowedOrigins, 2)
				require.Equal(t, ":9090", server.server.Addr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := NewServer(tt.config, ledgermocks.NewStore(t), nil, logger.NewNopLogger())
			require.NotNil(t, server)
			tt.validate(t, server)
		})
	}
}

func TestServer_StartDisabled(t *testing.T) {
	t.Parallel()

	cfg := &config.APIConfig{Enabled: false, ListenAddress: "127.0.0.1:0"}
	server := NewServer(cfg, ledgermocks.NewStore(t), nil, logger.NewNopLogger())

	done := make(chan error, 1)
	go func() { done <- server.Start(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("disabled server should return immediately")
	}
}

func TestServer_GracefulShutdown(t *testing.T) {
	t.Parallel()

	cfg := &config.APIConfig{Enabled: true, ListenAddress: "127.0.0.1:0"}
	cfg.ApplyDefaults()
	server := NewServer(cfg, ledgermocks.NewStore(t), nil, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancellation")
	}
}

func TestServer_BindFailure(t *testing.T) {
	t.Parallel()

	occupied, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer occupied.Close()

	cfg := &config.APIConfig{Enabled: true, ListenAddress: occupied.Addr().String()}
	cfg.ApplyDefaults()
	server := NewServer(cfg, ledgermocks.NewStore(t), nil, logger.NewNopLogger())

	err = server.Start(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to listen")
}

func TestServer_Routes(t *testing.T) {
	t.Parallel()

	cfg := &config.APIConfig{
		Enabled: true,
		CORS:    config.CORSConfig{Enabled: true, AllowedOrigins: []string{"*"}},
	}
	cfg.ApplyDefaults()
	h := NewServer(cfg, ledgermocks.NewStore(t), nil, logger.NewNopLogger()).Handler()

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{name: "health", method: http.MethodGet, path: "/health", expectedStatus: http.StatusOK},
		{name: "unknown route", method: http.MethodGet, path: "/api/v1/unknown", expectedStatus: http.StatusNotFound},
		{name: "write method rejected", method: http.MethodPost, path: "/api/v1/stats", expectedStatus: http.StatusMethodNotAllowed},
		{name: "preflight", method: http.MethodOptions, path: "/api/v1/stats", expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			require.Equal(t, tt.expectedStatus, w.Code)
			require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
