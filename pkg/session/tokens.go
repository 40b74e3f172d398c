package session

import "strings"

// Storage keys of the session token. Reads fall back to the legacy key;
// writes only touch the primary one.
const (
	KeyToken       = "token"
	KeyLegacyToken = "access_token"
)

// KV is synchronous string storage that never fails.
type KV interface {
	Get(key string) string
	Set(key, value string)
	Remove(key string)
}

// Tokens reads and writes the session token. Concurrent saves are
// last-write-wins; a slow response may overwrite a fresher token.
type Tokens struct {
	kv KV
}

func NewTokens(kv KV) *Tokens {
	return &Tokens{kv: kv}
}

// Current returns the primary token, else the legacy one, else "".
func (t *Tokens) Current() string {
	if v := strings.TrimSpace(t.kv.Get(KeyToken)); v != "" {
		return v
	}
	return strings.TrimSpace(t.kv.Get(KeyLegacyToken))
}

func (t *Tokens) Save(token string) {
	token = strings.TrimSpace(token)
	if token == "" {
		return
	}
	t.kv.Set(KeyToken, token)
}

// Clear removes both keys so a legacy token cannot resurrect the session.
func (t *Tokens) Clear() {
	t.kv.Remove(KeyToken)
	t.kv.Remove(KeyLegacyToken)
}
