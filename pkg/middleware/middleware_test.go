package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ducktodo/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.RoundTripper) http.RoundTripper {
			return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.RoundTrip(r)
			})
		}
	}
	base := RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		order = append(order, "base")
		return &http.Response{StatusCode: http.StatusNoContent, Body: http.NoBody}, nil
	})

	req, err := http.NewRequest(http.MethodGet, "http://example.invalid/", nil)
	require.NoError(t, err)
	resp, err := Chain(base, mark("first"), mark("second")).RoundTrip(req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, []string{"first", "second", "base"}, order)
}

func TestRequestIDAndLogging(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get(HeaderRequestID))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	var logs bytes.Buffer
	log := logger.New(logger.Config{Level: logger.DEBUG, Format: logger.TEXT, Output: &logs})
	hc := &http.Client{Transport: Chain(nil, RequestID(), RequestLogging(log))}

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/tasks/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer secret-token")
	resp, err := hc.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	req, err = http.NewRequest(http.MethodGet, srv.URL+"/api/tasks/me", nil)
	require.NoError(t, err)
	req.Header.Set(HeaderRequestID, "fixed-id")
	resp, err = hc.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	require.Len(t, seen, 2)
	assert.Len(t, seen[0], 36)
	assert.Equal(t, "fixed-id", seen[1])

	out := logs.String()
	assert.Contains(t, out, "HTTP request completed")
	assert.Contains(t, out, "status=202")
	assert.Contains(t, out, "path=/api/tasks/me")
	assert.False(t, strings.Contains(out, "secret-token"))
}

func TestRequestLogging_TransportError(t *testing.T) {
	var logs bytes.Buffer
	log := logger.New(logger.Config{Level: logger.DEBUG, Format: logger.TEXT, Output: &logs})
	failing := RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return nil, assert.AnError
	})

	req, err := http.NewRequest(http.MethodPost, "http://example.invalid/api/tasks", nil)
	require.NoError(t, err)
	_, err = Chain(failing, RequestLogging(log)).RoundTrip(req)

	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, logs.String(), "HTTP request failed")
}
