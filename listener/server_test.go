package listener

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loopbackAny = "127.0.0.1:0"

func get(t *testing.T, addr string) (int, string) {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://"+addr, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req) //nolint:gosec // G704: test code, URL from test server
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func startServer(t *testing.T, handler http.Handler, onServeErr func()) *Server {
	t.Helper()

	srv, err := NewServer("test", handler, Config{Address: loopbackAny}, onServeErr)
	require.NoError(t, err)
	require.NoError(t, srv.Start(context.Background()))

	return srv
}

func TestNewServer_SetsDefaults(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {})
	srv, err := NewServer("test", handler, Config{}, nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultAddress, srv.config.Address, "SetDefaults should have been called before Validate")
	assert.Equal(t, DefaultReadHeaderTimeout, srv.server.ReadHeaderTimeout)
	assert.Equal(t, "test", srv.Name())
	assert.Empty(t, srv.Addr(), "Addr should be empty before Start")
}

func TestNewServer_Errors(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {})

	testCases := []struct {
		name    string
		srvName string
		handler http.Handler
		cfg     Config
		wantErr error
	}{
		{name: "empty name", srvName: "", handler: handler, cfg: Config{}, wantErr: ErrEmptyName},
		{name: "nil handler", srvName: "test", handler: nil, cfg: Config{}, wantErr: ErrNilHandler},
		{
			name:    "negative timeout",
			srvName: "test",
			handler: handler,
			cfg:     Config{ReadHeaderTimeout: -time.Second},
			wantErr: ErrNegativeTimeout,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			srv, err := NewServer(testCase.srvName, testCase.handler, testCase.cfg, nil)

			require.ErrorIs(t, err, testCase.wantErr)
			assert.Nil(t, srv)
		})
	}
}

func TestServer_StartStop(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)

		_, _ = fmt.Fprint(w, "hello")
	})

	srv := startServer(t, handler, nil)
	addr := srv.Addr()
	require.NotEmpty(t, addr)
	assert.NotEqual(t, loopbackAny, addr, "Addr should report the bound port")

	status, body := get(t, addr)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "hello", body)

	require.NoError(t, srv.Stop(context.Background()))

	dialer := net.Dialer{Timeout: 100 * time.Millisecond}

	conn, dialErr := dialer.DialContext(context.Background(), "tcp", addr)
	if dialErr == nil {
		_ = conn.Close()
	}

	assert.Error(t, dialErr, "should not be able to connect after stop")
}

func TestServer_StartFailure(t *testing.T) {
	t.Parallel()

	listenCfg := net.ListenConfig{}

	ln, err := listenCfg.Listen(context.Background(), "tcp", loopbackAny)
	require.NoError(t, err)

	defer func() { _ = ln.Close() }()

	handler := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {})

	srv, err := NewServer("fail", handler, Config{Address: ln.Addr().String()}, nil)
	require.NoError(t, err)

	err = srv.Start(context.Background())
	require.ErrorIs(t, err, ErrListenFailed, "should fail when port is already in use")
	assert.Empty(t, srv.Addr())
}

func TestServer_ServeErrorCallsOnServeErr(t *testing.T) {
	t.Parallel()

	var called atomic.Bool

	handler := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {})
	srv := startServer(t, handler, func() {
		called.Store(true)
	})

	// Closing the listener directly forces a non-ErrServerClosed error.
	_ = srv.listener.Close()

	assert.Eventually(
		t, called.Load, time.Second, 10*time.Millisecond,
		"onServeErr callback should be called on serve error",
	)
}

func TestServer_ServeError_NilCallback(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {})
	srv := startServer(t, handler, nil)

	_ = srv.listener.Close()

	// Should not panic.
	time.Sleep(100 * time.Millisecond)
}

func TestServer_StopWithCancelledContext(t *testing.T) {
	t.Parallel()

	received := make(chan struct{})

	handler := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		close(received)
		<-r.Context().Done()
	})

	srv := startServer(t, handler, nil)

	reqCtx, reqCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer reqCancel()

	go func() {
		req, reqErr := http.NewRequestWithContext(reqCtx, http.MethodGet, "http://"+srv.Addr(), nil)
		if reqErr != nil {
			return
		}

		resp, doErr := http.DefaultClient.Do(req) //nolint:gosec // G704: test code, URL from test server
		if doErr == nil {
			_ = resp.Body.Close()
		}
	}()

	<-received

	// A cancelled context means Shutdown cannot wait for the in-flight request.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := srv.Stop(ctx)
	require.ErrorIs(t, err, ErrShutdownFailed)
}
