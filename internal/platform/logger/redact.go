package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

type redactConfig struct {
	Enabled bool   `env:"LOG_REDACTION_ENABLED" envDefault:"true"`
	Salt    string `env:"LOG_HASH_SALT"`
}

type action int

const (
	keep action = iota
	drop
	digest
)

// Credentials and contact details never reach the log.
var secretMarkers = []string{
	"token", "authorization", "password", "secret", "cookie", "api_key", "apikey", "email",
}

// A real user id next to its disguise id would undo the disguise, so every
// identity key is digested.
var identityMarkers = []string{"user_id", "disguise_id", "session_id"}

type redactor struct {
	on   bool
	salt string
}

func loadRedactor() (*redactor, error) {
	var cfg redactConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse log redaction env: %w", err)
	}
	return &redactor{on: cfg.Enabled, salt: strings.TrimSpace(cfg.Salt)}, nil
}

func classify(key string) action {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return keep
	}
	for _, m := range secretMarkers {
		if strings.Contains(key, m) {
			return drop
		}
	}
	if key == "sid" || key == "sub" {
		return digest
	}
	for _, m := range identityMarkers {
		if strings.Contains(key, m) {
			return digest
		}
	}
	return keep
}

func (r *redactor) fields(kv []interface{}) []interface{} {
	if r == nil || !r.on || len(kv) == 0 {
		return kv
	}
	out := make([]interface{}, len(kv))
	copy(out, kv)
	for i := 0; i+1 < len(out); i += 2 {
		out[i+1] = r.value(fmt.Sprint(out[i]), out[i+1])
	}
	return out
}

func (r *redactor) value(key string, v interface{}) interface{} {
	switch classify(key) {
	case drop:
		return "[REDACTED]"
	case digest:
		return r.digest(v)
	}
	switch t := v.(type) {
	case string:
		if isJWT(t) {
			return "[REDACTED]"
		}
	case map[string]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, inner := range t {
			m[k] = r.value(k, inner)
		}
		return m
	}
	return v
}

func (r *redactor) digest(v interface{}) string {
	raw := strings.TrimSpace(fmt.Sprint(v))
	if v == nil || raw == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(r.salt + raw))
	return "hash:" + hex.EncodeToString(sum[:6])
}

func isJWT(s string) bool {
	parts := strings.Split(s, ".")
	return len(parts) == 3 && len(parts[0]) > 10 && len(parts[1]) > 10
}
