package client

import (
	"errors"
	"testing"

	apperrors "ducktodo/pkg/errors"
)

func TestDiscriminate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		kind    EnvelopeKind
		success bool
		code    int
		codeOK  bool
	}{
		{"flagged success", `{"success":true,"code":200,"data":{"foo":1}}`, EnvelopeFlagged, true, 200, true},
		{"flagged failure", `{"success":false,"code":403,"message":"expired"}`, EnvelopeFlagged, false, 403, true},
		{"flagged null success", `{"success":null,"code":200}`, EnvelopeFlagged, false, 200, true},
		{"coded", `{"code":0,"data":[1,2,3]}`, EnvelopeCoded, false, 0, true},
		{"coded string code", `{"code":"200"}`, EnvelopeCoded, false, 200, true},
		{"coded garbage code", `{"code":"abc"}`, EnvelopeCoded, false, 0, false},
		{"coded null code is not zero", `{"code":null,"data":1}`, EnvelopeCoded, false, 0, false},
		{"coded blank code is not zero", `{"code":"","data":1}`, EnvelopeCoded, false, 0, false},
		{"success without code", `{"success":true,"data":1}`, EnvelopePassthrough, false, 0, false},
		{"plain object", `{"status":"UP"}`, EnvelopePassthrough, false, 0, false},
		{"array", `[1,2]`, EnvelopePassthrough, false, 0, false},
		{"not json", `%PDF-1.4`, EnvelopePassthrough, false, 0, false},
		{"empty", ``, EnvelopePassthrough, false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := Discriminate([]byte(tt.body))
			if env.Kind != tt.kind {
				t.Fatalf("kind = %s, want %s", env.Kind, tt.kind)
			}
			if env.Success != tt.success {
				t.Errorf("success = %v, want %v", env.Success, tt.success)
			}
			if env.Code != tt.code || env.CodeOK != tt.codeOK {
				t.Errorf("code = %d/%v, want %d/%v", env.Code, env.CodeOK, tt.code, tt.codeOK)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		kind    OutcomeKind
		data    string
		code    int
		message string
		token   string
	}{
		{"flagged success returns data", `{"success":true,"code":200,"data":{"foo":1}}`, OutcomeSuccess, `{"foo":1}`, 200, "", ""},
		{"flagged success ignores code", `{"success":true,"code":500,"data":2}`, OutcomeSuccess, `2`, 500, "", ""},
		{"flagged success captures token", `{"success":true,"code":200,"data":{"token":" abc "}}`, OutcomeSuccess, `{"token":" abc "}`, 200, "", "abc"},
		{"flagged success blank token", `{"success":true,"code":200,"data":{"token":"  "}}`, OutcomeSuccess, `{"token":"  "}`, 200, "", ""},
		{"flagged 403 is session", `{"success":false,"code":403,"message":"expired"}`, OutcomeSessionExpired, "", 403, "expired", ""},
		{"flagged 401 is business", `{"success":false,"code":401,"message":"nope"}`, OutcomeBusinessError, "", 401, "nope", ""},
		{"flagged failure fallback message", `{"success":false,"code":400}`, OutcomeBusinessError, "", 400, apperrors.MsgRequestFailed, ""},
		{"coded zero", `{"code":0,"data":[1,2,3]}`, OutcomeSuccess, `[1,2,3]`, 0, "", ""},
		{"coded 200 without data returns envelope", `{"code":200,"message":"ok"}`, OutcomeSuccess, `{"code":200,"message":"ok"}`, 200, "", ""},
		{"coded 401 is session", `{"code":401}`, OutcomeSessionExpired, "", 401, apperrors.MsgSessionExpired, ""},
		{"coded 403 is session", `{"code":403,"message":"denied"}`, OutcomeSessionExpired, "", 403, "denied", ""},
		{"coded 500 is business", `{"code":500,"message":"boom"}`, OutcomeBusinessError, "", 500, "boom", ""},
		{"coded null code is rejected", `{"code":null,"data":1}`, OutcomeBusinessError, "", 0, apperrors.MsgRequestFailed, ""},
		{"coded blank code is rejected", `{"code":"","data":1}`, OutcomeBusinessError, "", 0, apperrors.MsgRequestFailed, ""},
		{"passthrough", `{"status":"UP"}`, OutcomePassthrough, `{"status":"UP"}`, 0, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Classify(Discriminate([]byte(tt.body)))
			if out.Kind != tt.kind {
				t.Fatalf("kind = %s, want %s", out.Kind, tt.kind)
			}
			if string(out.Data) != tt.data {
				t.Errorf("data = %s, want %s", out.Data, tt.data)
			}
			if out.Code != tt.code {
				t.Errorf("code = %d, want %d", out.Code, tt.code)
			}
			if out.Message != tt.message {
				t.Errorf("message = %q, want %q", out.Message, tt.message)
			}
			if out.Token != tt.token {
				t.Errorf("token = %q, want %q", out.Token, tt.token)
			}
		})
	}
}

func TestClassifyTransport(t *testing.T) {
	tests := []struct {
		status  int
		message string
		kind    OutcomeKind
		want    string
	}{
		{401, "x", OutcomeSessionExpired, apperrors.MsgSessionExpired},
		{403, "x", OutcomeSessionExpired, apperrors.MsgSessionExpired},
		{419, "x", OutcomeSessionExpired, apperrors.MsgSessionExpired},
		{440, "x", OutcomeSessionExpired, apperrors.MsgSessionExpired},
		{500, "x", OutcomeServerError, apperrors.MsgServerError},
		{503, "", OutcomeServerError, apperrors.MsgServerError},
		{404, "not here", OutcomeTransportError, "not here"},
		{0, "", OutcomeTransportError, DefaultNetworkMessage},
	}

	for _, tt := range tests {
		out := ClassifyTransport(tt.status, tt.message)
		if out.Kind != tt.kind {
			t.Errorf("status %d: kind = %s, want %s", tt.status, out.Kind, tt.kind)
		}
		if out.Message != tt.want {
			t.Errorf("status %d: message = %q, want %q", tt.status, out.Message, tt.want)
		}
	}
}

func TestOutcomeErr(t *testing.T) {
	cause := errors.New("dial failed")

	if err := (Outcome{Kind: OutcomeSuccess}).Err(cause); err != nil {
		t.Errorf("success must not produce an error, got %v", err)
	}

	err := ClassifyTransport(0, "dial failed").Err(cause)
	if !errors.Is(err, cause) {
		t.Errorf("transport error should wrap the original error")
	}

	err = Classify(Discriminate([]byte(`{"success":false,"code":403}`))).Err(nil)
	if !apperrors.IsSession(err) || apperrors.CodeOf(err) != 403 {
		t.Errorf("expected session error with code 403, got %v", err)
	}
}
