package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"ducktodo/pkg/client"
	"ducktodo/pkg/logger"
	"ducktodo/pkg/navigation"
	"ducktodo/pkg/notify"
	"ducktodo/pkg/session"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	api    *API
	client *client.Client
	tokens *session.Tokens
	nav    *navigation.Router
	router *httprouter.Router
	calls  atomic.Int32

	mu       sync.Mutex
	messages []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{router: httprouter.New()}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		f.router.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	log := logger.Discard()
	f.tokens = session.NewTokens(session.NewStore(session.NewMemoryBackend(), log))
	f.nav = navigation.NewRouter(navigation.PathHome)
	notifier := notify.Func(func(msg string) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.messages = append(f.messages, msg)
	})

	c, err := client.New(client.Config{BaseURL: srv.URL + "/api"}, f.tokens, notifier, f.nav, log)
	require.NoError(t, err)
	f.client = c
	f.api = New(c, NewValidator(log), log)
	return f
}

func (f *fixture) notified() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages...)
}

func ok(data string) string {
	return `{"success":true,"code":200,"message":"ok","data":` + data + `}`
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, body)
}

// decodeBody reads the JSON request body into a generic map.
func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return body
}

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }
