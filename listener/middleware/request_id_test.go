package middleware

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var uuidID = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestNewRequestID(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})

	for range 1000 {
		id := newRequestID()
		require.Regexp(t, uuidID, id)

		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)

		seen[id] = struct{}{}
	}
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		inbound string
		reuse   bool
	}{
		{name: "generates when missing", inbound: "", reuse: false},
		{name: "reuses valid id", inbound: "client-trace-42", reuse: true},
		{name: "rejects overly long id", inbound: strings.Repeat("a", maxRequestIDLength+1), reuse: false},
		{name: "rejects control characters", inbound: "bad\x01id", reuse: false},
		{name: "rejects non ascii", inbound: "idé", reuse: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var fromContext string

			handler := RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				fromContext = GetRequestID(r.Context())
			}))

			req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "/", nil)
			require.NoError(t, err)

			if testCase.inbound != "" {
				req.Header.Set(RequestIDHeader, testCase.inbound)
			}

			rec := serveRequest(handler, req)
			header := rec.Header().Get(RequestIDHeader)

			assert.Equal(t, header, fromContext)

			if testCase.reuse {
				assert.Equal(t, testCase.inbound, header)
			} else {
				assert.Regexp(t, uuidID, header)
			}
		})
	}
}

func TestGetRequestID_EmptyContext(t *testing.T) {
	t.Parallel()

	assert.Empty(t, GetRequestID(context.Background()))
}

func TestChain_Order(t *testing.T) {
	t.Parallel()

	var order []string

	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := Chain(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		order = append(order, "handler")
	}), tag("outer"), tag("inner"))

	serve(handler, "/")

	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}
