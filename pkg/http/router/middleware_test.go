package router

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/justinas/alice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func serve(h http.Handler, remoteAddr string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/maze", nil)
	req.RemoteAddr = remoteAddr
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestLimitBlocksAfterBurst(t *testing.T) {
	limit, err := NewLimit(0.001, 2, 16)
	require.NoError(t, err)
	h := limit(okHandler)

	assert.Equal(t, http.StatusOK, serve(h, "192.0.2.1:4000", nil).Code)
	assert.Equal(t, http.StatusOK, serve(h, "192.0.2.1:4001", nil).Code)
	rec := serve(h, "192.0.2.1:4002", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), errRateLimited.Error())

	// another client has its own bucket
	assert.Equal(t, http.StatusOK, serve(h, "192.0.2.2:4000", nil).Code)
}

func TestLimitIgnoresForwardingHeadersFromUntrustedPeers(t *testing.T) {
	forwarded, err := NewRealIP([]string{"10.0.0.1"})
	require.NoError(t, err)
	limit, err := NewLimit(0.001, 1, 16)
	require.NoError(t, err)
	h := alice.New(forwarded, limit).Then(okHandler)

	testCases := []struct {
		name    string
		headers map[string]string
	}{
		{name: "x-real-ip", headers: map[string]string{"X-Real-IP": "198.51.100.1"}},
		{name: "x-forwarded-for", headers: map[string]string{"X-Forwarded-For": "198.51.100.2, 10.0.0.1"}},
		{name: "both", headers: map[string]string{"X-Real-IP": "198.51.100.3", "X-Forwarded-For": "198.51.100.4"}},
	}

	assert.Equal(t, http.StatusOK, serve(h, "192.0.2.1:4000", nil).Code)
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusTooManyRequests, serve(h, "192.0.2.1:4000", tt.headers).Code)
		})
	}

	// clients behind the trusted proxy are told apart by the header
	for i := 1; i <= 3; i++ {
		headers := map[string]string{"X-Real-IP": fmt.Sprintf("203.0.113.%d", i)}
		assert.Equal(t, http.StatusOK, serve(h, "10.0.0.1:5000", headers).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests,
		serve(h, "10.0.0.1:5000", map[string]string{"X-Real-IP": "203.0.113.1"}).Code)
}

func TestRealIP(t *testing.T) {
	forwarded, err := NewRealIP([]string{"10.0.0.1", "172.16.0.0/12", " "})
	require.NoError(t, err)

	var got string
	h := forwarded(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.RemoteAddr
	}))

	testCases := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "untrusted peer keeps its address",
			remoteAddr: "192.0.2.1:4000",
			headers:    map[string]string{"X-Real-IP": "198.51.100.1"},
			want:       "192.0.2.1:4000",
		},
		{
			name:       "trusted ip",
			remoteAddr: "10.0.0.1:4000",
			headers:    map[string]string{"X-Real-IP": "198.51.100.1"},
			want:       "198.51.100.1",
		},
		{
			name:       "trusted cidr, first forwarded address",
			remoteAddr: "172.20.1.1:4000",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.7, 172.20.1.1"},
			want:       "198.51.100.7",
		},
		{
			name:       "trusted peer with a malformed header",
			remoteAddr: "10.0.0.1:4000",
			headers:    map[string]string{"X-Real-IP": "not-an-ip"},
			want:       "10.0.0.1:4000",
		},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			serve(h, tt.remoteAddr, tt.headers)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewRealIPRejectsBadEntries(t *testing.T) {
	_, err := NewRealIP([]string{"10.0.0.1", "proxy.local"})
	assert.ErrorIs(t, err, errBadTrustedProxy)
	_, err = NewRealIP([]string{"10.0.0.0/33"})
	assert.ErrorIs(t, err, errBadTrustedProxy)
}

func TestIPLimiterIsBounded(t *testing.T) {
	l, err := newIPLimiter(0.001, 1, 4)
	require.NoError(t, err)

	first := l.get("198.51.100.0")
	for i := 1; i < 100; i++ {
		l.get(fmt.Sprintf("198.51.100.%d", i))
	}
	assert.Equal(t, 4, l.limiters.Len())
	// the oldest client was evicted and starts with a fresh bucket
	assert.NotSame(t, first, l.get("198.51.100.0"))

	_, err = NewLimit(1, 1, 0)
	assert.Error(t, err)
}

func TestRecoverPanic(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	api := NewAPI(zap.New(core))

	h := api.recoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := serve(h, "192.0.2.1:4000", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "close", rec.Header().Get("Connection"))
	require.Equal(t, 1, logs.FilterMessage("panic while serving request").Len())
	assert.Equal(t, "/api/maze", logs.All()[0].ContextMap()["path"])

	// no panic passes through untouched
	assert.Equal(t, http.StatusOK, serve(api.recoverPanic(okHandler), "192.0.2.1:4000", nil).Code)
}
