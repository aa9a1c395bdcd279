package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func embedServer(t *testing.T, status int, headers map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		for k, v := range headers {
			w.Header().Set(k, v)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte("<html></html>"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestEmbedCheckFramingHeaders(t *testing.T) {
	cases := []struct {
		name       string
		status     int
		headers    map[string]string
		reachable  bool
		embeddable bool
	}{
		{name: "no headers", status: http.StatusOK, reachable: true, embeddable: true},
		{name: "deny", status: http.StatusOK, headers: map[string]string{"X-Frame-Options": "DENY"}, reachable: true},
		{name: "sameorigin elsewhere", status: http.StatusOK, headers: map[string]string{"X-Frame-Options": "sameorigin"}, reachable: true},
		{name: "csp none", status: http.StatusOK, headers: map[string]string{"Content-Security-Policy": "default-src 'self'; frame-ancestors 'none'"}, reachable: true},
		{name: "csp allows portal", status: http.StatusOK, headers: map[string]string{"Content-Security-Policy": "frame-ancestors https://*.gys.co.id"}, reachable: true, embeddable: true},
		{name: "csp wins over xfo", status: http.StatusOK, headers: map[string]string{"Content-Security-Policy": "frame-ancestors *", "X-Frame-Options": "DENY"}, reachable: true, embeddable: true},
		{name: "server error", status: http.StatusBadGateway},
	}

	svc := NewEmbedService(time.Second, "https://intranet.gys.co.id")
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := embedServer(t, tc.status, tc.headers)
			status, err := svc.Check(context.Background(), srv.URL+"/app")
			require.NoError(t, err)
			assert.Equal(t, tc.status, status.StatusCode)
			assert.Equal(t, tc.reachable, status.Reachable)
			assert.Equal(t, tc.embeddable, status.Embeddable)
			if !tc.embeddable {
				assert.NotEmpty(t, status.Reason)
			}
		})
	}
}

func TestEmbedCheckTimesOut(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	svc := NewEmbedService(50*time.Millisecond, "")
	_, err := svc.Check(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrEmbedTimeout)
}

func TestEmbedCheckRejectsNonHTTPURLs(t *testing.T) {
	svc := NewEmbedService(time.Second, "")
	for _, raw := range []string{"", "javascript:alert(1)", "ftp://files.example.com", "/relative"} {
		_, err := svc.Check(context.Background(), raw)
		assert.ErrorIs(t, err, ErrEmbedURLInvalid, raw)
	}
}

type failingDoer struct{ err error }

func (d failingDoer) Do(*http.Request) (*http.Response, error) { return nil, d.err }

func TestEmbedCheckReportsUnreachableHost(t *testing.T) {
	svc := NewEmbedService(time.Second, "")
	svc.SetHTTPClient(failingDoer{err: errors.New("connection refused")})

	status, err := svc.Check(context.Background(), "https://darwinbox.example.com")
	require.NoError(t, err)
	assert.False(t, status.Reachable)
	assert.Equal(t, "unreachable", status.Reason)
}

func TestMatchSource(t *testing.T) {
	origin := "https://intranet.gys.co.id"
	assert.True(t, matchSource("https://intranet.gys.co.id/", origin))
	assert.True(t, matchSource("*.gys.co.id", origin))
	assert.True(t, matchSource("intranet.gys.co.id", origin))
	assert.False(t, matchSource("http://intranet.gys.co.id", origin))
	assert.False(t, matchSource("*.example.com", origin))
}
