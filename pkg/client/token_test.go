package client

import (
	"net/http"
	"testing"
)

func TestCaptureHeaderToken(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
		ok      bool
	}{
		{"none", nil, "", false},
		{"token header", map[string]string{"token": "t1"}, "t1", true},
		{"x-auth-token", map[string]string{"x-auth-token": " t2 "}, "t2", true},
		{"x-token", map[string]string{"X-TOKEN": "t3"}, "t3", true},
		{"bearer fallback", map[string]string{"Authorization": "Bearer t4"}, "t4", true},
		{"direct header preferred", map[string]string{"Authorization": "Bearer old", "X-Auth-Token": "new"}, "new", true},
		{"blank direct header falls back", map[string]string{"token": "  ", "Authorization": "Bearer t5"}, "t5", true},
		{"non bearer authorization", map[string]string{"Authorization": "Basic abc"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			for k, v := range tt.headers {
				h.Set(k, v)
			}
			got, ok := CaptureHeaderToken(h)
			if got != tt.want || ok != tt.ok {
				t.Errorf("CaptureHeaderToken() = %q, %v; want %q, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestInjectToken(t *testing.T) {
	h := http.Header{}
	InjectToken(h, "abc")

	if got := h.Get("Authorization"); got != "Bearer abc" {
		t.Errorf("Authorization = %q", got)
	}
	if got := h.Get("token"); got != "abc" {
		t.Errorf("token = %q", got)
	}
	if got := h.Get("X-Auth-Token"); got != "abc" {
		t.Errorf("X-Auth-Token = %q", got)
	}

	empty := http.Header{}
	InjectToken(empty, "  ")
	if len(empty) != 0 {
		t.Errorf("blank token must not add headers, got %v", empty)
	}
}
