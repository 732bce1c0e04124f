package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Temutjin2k/fitness-connect/pkg/logger"
	wrap "github.com/Temutjin2k/fitness-connect/pkg/logger/wrapper"
	"github.com/Temutjin2k/fitness-connect/pkg/metrics"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func newTestMiddleware(buf io.Writer) *Middleware {
	return NewMiddleware("middleware-test", logger.New(buf, "middleware-test", logger.LevelDebug))
}

func TestRequestID_Generated(t *testing.T) {
	req := require.New(t)
	m := newTestMiddleware(io.Discard)

	var seen string
	h := m.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = wrap.FromContext(r.Context()).RequestID
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	req.NotEmpty(seen)
	_, err := uuid.Parse(seen)
	req.NoError(err)
	req.Equal(seen, rec.Header().Get(RequestIDHeader))
}

func TestRequestID_Propagated(t *testing.T) {
	req := require.New(t)
	m := newTestMiddleware(io.Discard)

	id := uuid.NewString()
	var seen string
	h := m.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = wrap.FromContext(r.Context()).RequestID
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, id)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	req.Equal(id, seen)
	req.Equal(id, rec.Header().Get(RequestIDHeader))
}

func TestRequestID_InvalidReplaced(t *testing.T) {
	m := newTestMiddleware(io.Discard)
	h := m.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, "not-a-uuid")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	require.NotEqual(t, "not-a-uuid", rec.Header().Get(RequestIDHeader))
}

func TestRecover(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer
	m := newTestMiddleware(&buf)

	h := m.Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	req.NotPanics(func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})

	req.Equal(http.StatusInternalServerError, rec.Code)
	req.Equal("close", rec.Header().Get("Connection"))
	req.Contains(buf.String(), "panic recovered")
	req.Contains(buf.String(), "boom")
}

func TestMetrics_LabelsByPattern(t *testing.T) {
	req := require.New(t)
	m := newTestMiddleware(io.Discard)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /sessions/{session_id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	h := Chain(mux, m.Metrics)

	counter := metrics.HttpRequestsTotal.WithLabelValues("middleware-test", http.MethodGet, "GET /sessions/{session_id}", "404")
	before := testutil.ToFloat64(counter)

	for range 2 {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/sessions/"+uuid.NewString(), nil))
	}

	req.Equal(before+2, testutil.ToFloat64(counter))
}

func TestLogging_RecordsStatus(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer
	m := newTestMiddleware(&buf)

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}), m.Logging, m.Metrics)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/tea", nil))

	req.Contains(buf.String(), "completed")
	req.Contains(buf.String(), "418")
}

func TestStatusRecorder_DefaultsAndHijack(t *testing.T) {
	req := require.New(t)

	rw := newStatusRecorder(httptest.NewRecorder())
	req.Equal(http.StatusOK, rw.Status())
	req.Same(rw, newStatusRecorder(rw))

	_, _, err := rw.Hijack()
	req.ErrorIs(err, http.ErrNotSupported)
}

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mw("a"), mw("b"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"a", "b", "handler"}, order)
}
