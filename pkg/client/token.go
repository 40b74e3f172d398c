package client

import (
	"net/http"
	"strings"

	"ducktodo/pkg/middleware"
)

// Header names the session token is sent under.
const (
	HeaderAuthorization = "Authorization"
	HeaderToken         = "token"
	HeaderAuthToken     = "X-Auth-Token"
	HeaderXToken        = "X-Token"
	HeaderRequestID     = middleware.HeaderRequestID

	bearerPrefix = "Bearer "
)

// TokenStore holds the session token between calls.
type TokenStore interface {
	Current() string
	Save(token string)
	Clear()
}

// tokenHeaders lists the refresh headers in order of preference.
var tokenHeaders = []string{HeaderToken, HeaderAuthToken, HeaderXToken}

// InjectToken attaches token under every header spelling the gateway accepts.
// A blank token leaves h untouched.
func InjectToken(h http.Header, token string) {
	token = strings.TrimSpace(token)
	if token == "" {
		return
	}
	h.Set(HeaderAuthorization, bearerPrefix+token)
	h.Set(HeaderToken, token)
	h.Set(HeaderAuthToken, token)
}

// CaptureHeaderToken returns a refreshed token from response headers.
// A direct token header wins over an Authorization bearer value.
// Header names are matched case-insensitively.
func CaptureHeaderToken(h http.Header) (string, bool) {
	for _, name := range tokenHeaders {
		if v := strings.TrimSpace(h.Get(name)); v != "" {
			return v, true
		}
	}

	auth := h.Get(HeaderAuthorization)
	if strings.HasPrefix(auth, bearerPrefix) {
		if v := strings.TrimSpace(auth[len(bearerPrefix):]); v != "" {
			return v, true
		}
	}
	return "", false
}
