package client

import (
	"encoding/json"
	"net/http"

	apperrors "ducktodo/pkg/errors"
)

type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomePassthrough
	OutcomeBusinessError
	OutcomeSessionExpired
	OutcomeServerError
	OutcomeTransportError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomePassthrough:
		return "passthrough"
	case OutcomeBusinessError:
		return "business_error"
	case OutcomeSessionExpired:
		return "session_expired"
	case OutcomeServerError:
		return "server_error"
	default:
		return "transport_error"
	}
}

// Outcome is the classified result of one response. It carries everything
// the effect executor needs and nothing it has to look up again.
type Outcome struct {
	Kind    OutcomeKind
	Data    json.RawMessage
	Code    int
	Status  int
	Message string
	// Token is a refreshed token found in the body, saved on success.
	Token string
	Raw   []byte
}

// Failed reports whether the call must be rejected.
func (o Outcome) Failed() bool {
	return o.Kind != OutcomeSuccess && o.Kind != OutcomePassthrough
}

// Classify maps a discriminated envelope onto an Outcome.
// Flagged envelopes treat only 403 as session expiry; coded envelopes treat
// 401 and 403 that way.
func Classify(env Envelope) Outcome {
	switch env.Kind {
	case EnvelopeFlagged:
		if env.Success {
			out := Outcome{Kind: OutcomeSuccess, Data: env.Data, Code: env.Code, Raw: env.Raw}
			if token, ok := env.DataToken(); ok {
				out.Token = token
			}
			return out
		}
		if env.CodeOK && env.Code == http.StatusForbidden {
			return rejected(OutcomeSessionExpired, env, apperrors.MsgSessionExpired)
		}
		return rejected(OutcomeBusinessError, env, apperrors.MsgRequestFailed)

	case EnvelopeCoded:
		if env.CodeOK && (env.Code == 0 || env.Code == http.StatusOK) {
			data := json.RawMessage(env.Raw)
			if env.HasData {
				data = env.Data
			}
			return Outcome{Kind: OutcomeSuccess, Data: data, Code: env.Code, Raw: env.Raw}
		}
		if env.CodeOK && (env.Code == http.StatusUnauthorized || env.Code == http.StatusForbidden) {
			return rejected(OutcomeSessionExpired, env, apperrors.MsgSessionExpired)
		}
		return rejected(OutcomeBusinessError, env, apperrors.MsgRequestFailed)
	}

	return Outcome{Kind: OutcomePassthrough, Data: env.Raw, Raw: env.Raw}
}

func rejected(kind OutcomeKind, env Envelope, fallback string) Outcome {
	msg := env.Message
	if msg == "" {
		msg = fallback
	}
	return Outcome{
		Kind:    kind,
		Code:    env.Code,
		Status:  http.StatusOK,
		Message: msg,
		Raw:     env.Raw,
	}
}

// Session-expiry statuses reported by the transport layer.
const (
	StatusAuthTimeout     = 419
	StatusLoginTimeout    = 440
	DefaultNetworkMessage = "Network error"
)

// ClassifyTransport maps a failed exchange onto an Outcome. status is 0 when
// no response arrived; message is the most specific text available.
func ClassifyTransport(status int, message string) Outcome {
	switch {
	case IsSessionStatus(status):
		return Outcome{Kind: OutcomeSessionExpired, Code: status, Status: status, Message: apperrors.MsgSessionExpired}
	case status >= http.StatusInternalServerError:
		return Outcome{Kind: OutcomeServerError, Code: status, Status: status, Message: apperrors.MsgServerError}
	}
	if message == "" {
		message = DefaultNetworkMessage
	}
	return Outcome{Kind: OutcomeTransportError, Code: status, Status: status, Message: message}
}

func IsSessionStatus(status int) bool {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden, StatusAuthTimeout, StatusLoginTimeout:
		return true
	}
	return false
}

// Err builds the rejection for a failed outcome. cause is the original
// transport error, if any.
func (o Outcome) Err(cause error) error {
	switch o.Kind {
	case OutcomeSuccess, OutcomePassthrough:
		return nil
	case OutcomeBusinessError:
		return apperrors.Business(o.Code, o.Message, o.Raw)
	case OutcomeSessionExpired:
		err := apperrors.Session(o.Code, o.Message, o.Raw).WithStatus(o.Status)
		err.Err = cause
		return err
	}
	return apperrors.Transport(cause, o.Status, o.Message).WithRaw(o.Raw)
}
