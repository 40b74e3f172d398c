package client

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"ducktodo/pkg/validation"
)

// EnvelopeKind is the variant of a decoded response body.
type EnvelopeKind int

const (
	// EnvelopePassthrough is any body without a code field, returned as-is.
	EnvelopePassthrough EnvelopeKind = iota
	// EnvelopeFlagged carries both success and code; success is authoritative.
	EnvelopeFlagged
	// EnvelopeCoded carries code without success; 0 and 200 mean success.
	EnvelopeCoded
)

func (k EnvelopeKind) String() string {
	switch k {
	case EnvelopeFlagged:
		return "flagged"
	case EnvelopeCoded:
		return "coded"
	default:
		return "passthrough"
	}
}

// Envelope is the result of Discriminate.
type Envelope struct {
	Kind    EnvelopeKind
	Success bool
	// Code is meaningful only when CodeOK is set; a code that is not an
	// integer never counts as success.
	Code    int
	CodeOK  bool
	Message string
	Data    json.RawMessage
	HasData bool
	Raw     []byte
}

// Discriminate decides the envelope variant of body from the keys present.
// Bodies that are not JSON objects are passthrough.
func Discriminate(body []byte) Envelope {
	env := Envelope{Kind: EnvelopePassthrough, Raw: body}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return env
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return env
	}

	rawCode, hasCode := fields["code"]
	rawSuccess, hasSuccess := fields["success"]
	if !hasCode {
		return env
	}

	env.Kind = EnvelopeCoded
	if hasSuccess {
		env.Kind = EnvelopeFlagged
		env.Success = truthy(rawSuccess)
	}
	env.Code, env.CodeOK = parseCode(rawCode)
	env.Message = parseMessage(fields["message"])
	env.Data, env.HasData = fields["data"]
	return env
}

// DataToken returns a non-blank data.token value.
func (e Envelope) DataToken() (string, bool) {
	data := bytes.TrimSpace(e.Data)
	if len(data) == 0 || data[0] != '{' {
		return "", false
	}
	var payload struct {
		Token any `json:"token"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", false
	}
	token, ok := payload.Token.(string)
	if !ok {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func parseCode(raw json.RawMessage) (int, bool) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	f, ok := validation.ToNumber(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func parseMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case nil, map[string]any, []any:
		return ""
	default:
		return validation.Stringify(t)
	}
}

// truthy follows loose boolean semantics: false, null, 0 and "" are false.
func truthy(raw json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case string:
		return t != ""
	}
	return true
}
