package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

type captureHandler struct {
	mu      sync.Mutex
	records []logRecord
}

func (h *captureHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

//nolint:varnamelen // r is conventional for slog.Record.
func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	rec := logRecord{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   make(map[string]any),
	}

	r.Attrs(func(a slog.Attr) bool {
		rec.Attrs[a.Key] = a.Value.Any()

		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()

	h.records = append(h.records, rec)

	return nil
}

func (h *captureHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(_ string) slog.Handler      { return h }

func (h *captureHandler) Records() []logRecord {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]logRecord(nil), h.records...)
}

func newCaptureLogger() (*slog.Logger, *captureHandler) {
	h := &captureHandler{}

	return slog.New(h), h
}

func serve(handler http.Handler, target string) *httptest.ResponseRecorder {
	return serveRequest(handler, httptest.NewRequest(http.MethodGet, target, nil))
}

func serveRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func TestLogging_LogFields(t *testing.T) {
	t.Parallel()

	logger, capture := newCaptureLogger()

	handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("done"))
	}))

	serve(handler, "/config/Db")

	records := capture.Records()
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "http request", rec.Message)
	assert.Equal(t, "GET", rec.Attrs["method"])
	assert.Equal(t, "/config/Db", rec.Attrs["path"])
	assert.EqualValues(t, http.StatusCreated, rec.Attrs["status"])
	assert.EqualValues(t, 4, rec.Attrs["bytes"])
	assert.Contains(t, rec.Attrs, "duration")
	assert.NotContains(t, rec.Attrs, "request_id")
}

func TestLogging_Levels(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		status int
		level  slog.Level
	}{
		{name: "2xx", status: http.StatusOK, level: slog.LevelInfo},
		{name: "3xx", status: http.StatusFound, level: slog.LevelInfo},
		{name: "4xx", status: http.StatusNotFound, level: slog.LevelWarn},
		{name: "5xx", status: http.StatusInternalServerError, level: slog.LevelError},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			logger, capture := newCaptureLogger()

			handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(testCase.status)
			}))

			serve(handler, "/")

			records := capture.Records()
			require.Len(t, records, 1)
			assert.Equal(t, testCase.level, records[0].Level)
		})
	}
}

func TestLogging_DurationTracking(t *testing.T) {
	t.Parallel()

	logger, capture := newCaptureLogger()

	handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(10 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))

	serve(handler, "/")

	records := capture.Records()
	require.Len(t, records, 1)

	duration, ok := records[0].Attrs["duration"].(time.Duration)
	require.True(t, ok)
	assert.GreaterOrEqual(t, duration, 10*time.Millisecond)
}

func TestLogging_ImplicitOKStatus(t *testing.T) {
	t.Parallel()

	logger, capture := newCaptureLogger()

	handler := Logging(logger)(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))

	rec := serve(handler, "/")

	assert.Equal(t, http.StatusOK, rec.Code)

	records := capture.Records()
	require.Len(t, records, 1)
	assert.EqualValues(t, http.StatusOK, records[0].Attrs["status"])
}

func TestLogging_IncludesRequestID(t *testing.T) {
	t.Parallel()

	logger, capture := newCaptureLogger()

	handler := Chain(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }),
		RequestID(),
		Logging(logger),
	)

	rec := serve(handler, "/")

	records := capture.Records()
	require.Len(t, records, 1)
	assert.Equal(t, rec.Header().Get(RequestIDHeader), records[0].Attrs["request_id"])
}

func TestLogging_NilLoggerUsesDefault(t *testing.T) { //nolint:paralleltest // modifies global slog default
	logger, capture := newCaptureLogger()

	oldDefault := slog.Default()
	slog.SetDefault(logger)

	t.Cleanup(func() { slog.SetDefault(oldDefault) })

	serve(Logging(nil)(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {})), "/")

	assert.Len(t, capture.Records(), 1)
}
