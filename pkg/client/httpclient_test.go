package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	apperrors "ducktodo/pkg/errors"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTokens struct {
	mu    sync.Mutex
	token string
	saves []string
	clear int
}

func (m *memTokens) Current() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *memTokens) Save(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.saves = append(m.saves, token)
}

func (m *memTokens) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.clear++
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
}

func (n *recordingNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

type fakeNavigator struct {
	mu       sync.Mutex
	path     string
	replaced []string
}

func (f *fakeNavigator) CurrentPath() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.path
}

func (f *fakeNavigator) Replace(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.path = path
	f.replaced = append(f.replaced, path)
}

func (f *fakeNavigator) ReplaceUnless(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.path == path {
		return false
	}
	f.path = path
	f.replaced = append(f.replaced, path)
	return true
}

func (f *fakeNavigator) replacements() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.replaced...)
}

type fixture struct {
	client   *Client
	tokens   *memTokens
	notifier *recordingNotifier
	nav      *fakeNavigator
	router   *httprouter.Router
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	router := httprouter.New()
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	f := &fixture{
		tokens:   &memTokens{},
		notifier: &recordingNotifier{},
		nav:      &fakeNavigator{path: "/tasks"},
		router:   router,
	}
	c, err := New(Config{BaseURL: srv.URL + "/api"}, f.tokens, f.notifier, f.nav, nil, opts...)
	require.NoError(t, err)
	f.client = c
	return f
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestNew_RequiresAbsoluteBaseURL(t *testing.T) {
	_, err := New(Config{BaseURL: "/api"}, &memTokens{}, nil, nil, nil)
	assert.Error(t, err)

	_, err = New(Config{BaseURL: "http://localhost/api"}, nil, nil, nil, nil)
	assert.Error(t, err)
}

func TestGet_FlaggedSuccess(t *testing.T) {
	f := newFixture(t)
	f.router.GET("/api/tasks", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, http.StatusOK, `{"success":true,"code":200,"message":"ok","data":{"foo":1}}`)
	})

	var out map[string]int
	err := f.client.Get(context.Background(), "/api/tasks", nil, &out)

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"foo": 1}, out)
	assert.Empty(t, f.notifier.all())
}

func TestGet_PathWithoutLeadingSlash(t *testing.T) {
	f := newFixture(t)
	var gotPath, gotQuery string
	f.router.GET("/api/tasks", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, `{"code":0,"data":[]}`)
	})

	err := f.client.Get(context.Background(), "tasks", url.Values{"page": {"2"}}, nil)

	require.NoError(t, err)
	assert.Equal(t, "/api/tasks", gotPath)
	assert.Equal(t, "page=2", gotQuery)
}

func TestFlaggedForbidden_ClearsTokenAndRedirectsOnce(t *testing.T) {
	f := newFixture(t)
	f.tokens.token = "stale"
	f.router.GET("/api/me", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, http.StatusOK, `{"success":false,"code":403,"message":"expired"}`)
	})

	var wg sync.WaitGroup
	errs := make([]error, 3)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = f.client.Get(context.Background(), "/me", nil, nil)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.Error(t, err)
		assert.Equal(t, 403, apperrors.CodeOf(err))
		assert.True(t, apperrors.IsSession(err))

		var appErr *apperrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.JSONEq(t, `{"success":false,"code":403,"message":"expired"}`, string(appErr.Raw))
	}
	assert.Empty(t, f.tokens.Current())
	assert.Equal(t, []string{LoginPath}, f.nav.replacements())
	assert.Contains(t, f.notifier.all(), "expired")
}

func TestSessionExpired_AlreadyOnLogin(t *testing.T) {
	f := newFixture(t)
	f.nav.path = LoginPath
	f.router.POST("/api/login", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, http.StatusOK, `{"code":401,"message":"bad credentials"}`)
	})

	err := f.client.Post(context.Background(), "/login", map[string]string{"userName": "a"}, nil)

	require.Error(t, err)
	assert.Equal(t, 401, apperrors.CodeOf(err))
	assert.Empty(t, f.nav.replacements())
}

func TestCoded(t *testing.T) {
	f := newFixture(t)
	f.tokens.token = "keep"
	f.router.GET("/api/ok", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, http.StatusOK, `{"code":0,"data":[1,2,3]}`)
	})
	f.router.GET("/api/boom", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, http.StatusOK, `{"code":500,"message":"boom"}`)
	})

	var nums []int
	require.NoError(t, f.client.Get(context.Background(), "/ok", nil, &nums))
	assert.Equal(t, []int{1, 2, 3}, nums)

	err := f.client.Get(context.Background(), "/boom", nil, nil)
	require.Error(t, err)
	assert.Equal(t, 500, apperrors.CodeOf(err))
	assert.Equal(t, apperrors.KindBusiness, apperrors.KindOf(err))
	assert.Equal(t, "keep", f.tokens.Current())
	assert.Equal(t, 0, f.tokens.clear)
	assert.Equal(t, []string{"boom"}, f.notifier.all())
}

func TestPassthrough(t *testing.T) {
	f := newFixture(t)
	f.router.GET("/api/health", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, http.StatusOK, `{"status":"UP","version":"1.0"}`)
	})

	var health struct {
		Status string `json:"status"`
	}
	require.NoError(t, f.client.Get(context.Background(), "/health", nil, &health))
	assert.Equal(t, "UP", health.Status)
}

func TestAuthHeaders(t *testing.T) {
	f := newFixture(t)
	var seen http.Header
	f.router.GET("/api/whoami", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		seen = r.Header.Clone()
		writeJSON(w, http.StatusOK, `{"success":true,"code":200,"data":null}`)
	})

	require.NoError(t, f.client.Get(context.Background(), "/whoami", nil, nil))
	assert.Empty(t, seen.Get("Authorization"))
	assert.Empty(t, seen.Get("token"))
	assert.NotEmpty(t, seen.Get(HeaderRequestID))

	f.tokens.token = "abc"
	require.NoError(t, f.client.Get(context.Background(), "/whoami", nil, nil, WithHeader("X-Trace", "1")))
	assert.Equal(t, "Bearer abc", seen.Get("Authorization"))
	assert.Equal(t, "abc", seen.Get("token"))
	assert.Equal(t, "abc", seen.Get("X-Auth-Token"))
	assert.Equal(t, "1", seen.Get("X-Trace"))
}

func TestTokenRefresh(t *testing.T) {
	f := newFixture(t)
	f.tokens.token = "old"
	f.router.GET("/api/header", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("X-Auth-Token", "from-header")
		writeJSON(w, http.StatusOK, `{"success":true,"code":200,"data":{}}`)
	})
	f.router.POST("/api/login", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Authorization", "Bearer from-header")
		writeJSON(w, http.StatusOK, `{"success":true,"code":200,"data":{"token":"from-body"}}`)
	})

	require.NoError(t, f.client.Get(context.Background(), "/header", nil, nil))
	assert.Equal(t, "from-header", f.tokens.Current())

	require.NoError(t, f.client.Post(context.Background(), "/login", nil, nil))
	assert.Equal(t, "from-body", f.tokens.Current())
	assert.Equal(t, []string{"from-header", "from-header", "from-body"}, f.tokens.saves)
}

func TestTransportErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		kind      apperrors.Kind
		message   string
		clearsTok bool
	}{
		{"unauthorized", http.StatusUnauthorized, `{"message":"x"}`, apperrors.KindSession, apperrors.MsgSessionExpired, true},
		{"auth timeout", 419, ``, apperrors.KindSession, apperrors.MsgSessionExpired, true},
		{"login timeout", 440, ``, apperrors.KindSession, apperrors.MsgSessionExpired, true},
		{"server error", http.StatusBadGateway, `{"message":"upstream"}`, apperrors.KindServer, apperrors.MsgServerError, false},
		{"not found with message", http.StatusNotFound, `{"message":"no such task"}`, apperrors.KindTransport, "no such task", false},
		{"bad request without message", http.StatusBadRequest, `oops`, apperrors.KindTransport, "request failed with status code 400", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.tokens.token = "tok"
			f.router.GET("/api/x", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
				writeJSON(w, tt.status, tt.body)
			})

			err := f.client.Get(context.Background(), "/x", nil, nil)
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperrors.KindOf(err))
			assert.Equal(t, tt.status, apperrors.CodeOf(err))
			assert.Equal(t, []string{tt.message}, f.notifier.all())

			var statusErr *StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, tt.status, statusErr.StatusCode)

			if tt.clearsTok {
				assert.Empty(t, f.tokens.Current())
				assert.Equal(t, []string{LoginPath}, f.nav.replacements())
			} else {
				assert.Equal(t, "tok", f.tokens.Current())
				assert.Empty(t, f.nav.replacements())
			}
		})
	}
}

func TestTimeout(t *testing.T) {
	f := newFixture(t)
	f.router.GET("/api/slow", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		writeJSON(w, http.StatusOK, `{"code":0}`)
	})

	err := f.client.Get(context.Background(), "/slow", nil, nil, WithTimeout(50*time.Millisecond))

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, apperrors.KindTransport, apperrors.KindOf(err))
	assert.Len(t, f.notifier.all(), 1)
}

func TestDecodeError(t *testing.T) {
	f := newFixture(t)
	f.router.GET("/api/num", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, http.StatusOK, `{"success":true,"code":200,"data":"text"}`)
	})

	var n int
	err := f.client.Get(context.Background(), "/num", nil, &n)
	assert.Equal(t, apperrors.KindDecode, apperrors.KindOf(err))
}

func TestUpload(t *testing.T) {
	f := newFixture(t)
	f.router.POST("/api/task/file/upload", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			writeJSON(w, http.StatusBadRequest, `{"message":"bad form"}`)
			return
		}
		file, header, err := r.FormFile("taskFile")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, `{"message":"no file"}`)
			return
		}
		defer file.Close()
		content, _ := io.ReadAll(file)
		if string(content) != "hello" || header.Filename != "notes.txt" || r.FormValue("taskId") != "t-1" {
			writeJSON(w, http.StatusOK, `{"success":false,"code":400,"message":"mismatch"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"success":true,"code":200,"data":{"taskFileId":"f-1"}}`)
	})

	var out struct {
		TaskFileID string `json:"taskFileId"`
	}
	err := f.client.Upload(context.Background(), "/task/file/upload",
		File{Name: "notes.txt", ContentType: "text/plain", Reader: strings.NewReader("hello")},
		"taskFile", map[string]string{"taskId": "t-1"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "f-1", out.TaskFileID)
}

func TestDownload(t *testing.T) {
	dir := t.TempDir()
	f := newFixture(t, WithSaver(FileSaver{Dir: dir}))
	f.router.GET("/api/task/file/download", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		if r.URL.Query().Get("taskFileId") == "missing" {
			writeJSON(w, http.StatusOK, `{"success":false,"code":404,"message":"file not found"}`)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte("binary-content"))
	})

	ok, err := f.client.Download(context.Background(), "/task/file/download", url.Values{"taskFileId": {"f-1"}}, "report.pdf")
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := os.ReadFile(filepath.Join(dir, "report.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "binary-content", string(data))

	ok, err = f.client.Download(context.Background(), "/task/file/download", url.Values{"taskFileId": {"missing"}}, "missing.pdf")
	require.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, 404, apperrors.CodeOf(err))
	_, statErr := os.Stat(filepath.Join(dir, "missing.pdf"))
	assert.True(t, os.IsNotExist(statErr))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDownload_JSONSuccessRefreshesToken(t *testing.T) {
	dir := t.TempDir()
	f := newFixture(t, WithSaver(FileSaver{Dir: dir}))
	f.tokens.token = "old"
	f.router.GET("/api/export", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, http.StatusOK, `{"success":true,"code":200,"data":{"token":"fresh"}}`)
	})

	ok, err := f.client.Download(context.Background(), "/export", nil, "export.json")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "fresh", f.tokens.Current())

	_, statErr := os.Stat(filepath.Join(dir, "export.json"))
	assert.NoError(t, statErr)
}

func TestFileSaver_SanitizesName(t *testing.T) {
	dir := t.TempDir()
	saved, err := FileSaver{Dir: dir}.Save("../../etc/passwd", strings.NewReader("x"))

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "passwd"), saved)
}

func TestBestEffort_SwallowsPanics(t *testing.T) {
	f := newFixture(t)
	f.client.notifier = panicNotifier{}
	f.router.GET("/api/x", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, http.StatusOK, `{"code":500,"message":"boom"}`)
	})

	err := f.client.Get(context.Background(), "/x", nil, nil)
	assert.Equal(t, 500, apperrors.CodeOf(err))
}

type panicNotifier struct{}

func (panicNotifier) Error(string) { panic("notifier unavailable") }
