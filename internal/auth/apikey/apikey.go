// Package apikey provides SHA-256-based API key validation for the demo
// server. Raw keys are generated with crypto/rand, hashed before storage,
// and validated by comparing the hash of the presented key with the stored
// hash. Keys are held in memory for the lifetime of the process; the core
// engine has no concept of API keys at all.
package apikey

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

var (
	ErrInvalidKey = errors.New("invalid api key")
	ErrExpiredKey = errors.New("api key expired")
)

// KeyInfo holds metadata about a validated API key.
type KeyInfo struct {
	Name      string     `json:"name"`
	RateLimit int        `json:"rate_limit"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Validator validates API keys against an in-memory key table.
type Validator struct {
	mu     sync.RWMutex
	keys   map[string]KeyInfo // keyed by hash
	logger *slog.Logger
}

// NewValidator creates a new in-memory API key validator.
func NewValidator() *Validator {
	return &Validator{
		keys:   make(map[string]KeyInfo),
		logger: slog.Default().With("component", "apikey-validator"),
	}
}

// Validate checks a raw API key against the key table. Returns KeyInfo on
// success, or ErrInvalidKey / ErrExpiredKey on failure.
func (v *Validator) Validate(rawKey string) (*KeyInfo, error) {
	hash := HashKey(rawKey)

	v.mu.RLock()
	info, ok := v.keys[hash]
	v.mu.RUnlock()
	if !ok || !info.IsActive {
		return nil, ErrInvalidKey
	}
	if info.ExpiresAt != nil && info.ExpiresAt.Before(time.Now()) {
		return nil, ErrExpiredKey
	}
	return &info, nil
}

// CreateKey generates a new API key, stores its hash, and returns the raw
// key. The raw key is returned only once and cannot be retrieved again.
func (v *Validator) CreateKey(name string, rateLimit int, expiresAt *time.Time) (string, error) {
	rawKey := generateRawKey()
	hash := HashKey(rawKey)

	v.mu.Lock()
	v.keys[hash] = KeyInfo{
		Name:      name,
		RateLimit: rateLimit,
		IsActive:  true,
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
	}
	v.mu.Unlock()

	v.logger.Info("api key created", "name", name, "rate_limit", rateLimit)
	return rawKey, nil
}

// RevokeKey deactivates an API key so it can no longer be used.
func (v *Validator) RevokeKey(rawKey string) error {
	hash := HashKey(rawKey)

	v.mu.Lock()
	defer v.mu.Unlock()
	info, ok := v.keys[hash]
	if !ok {
		return ErrInvalidKey
	}
	info.IsActive = false
	v.keys[hash] = info

	v.logger.Info("api key revoked")
	return nil
}

// ListKeys returns every active API key (without the raw key / hash).
func (v *Validator) ListKeys() []KeyInfo {
	v.mu.RLock()
	defer v.mu.RUnlock()
	keys := make([]KeyInfo, 0, len(v.keys))
	for _, k := range v.keys {
		if k.IsActive {
			keys = append(keys, k)
		}
	}
	return keys
}

// HashKey returns the SHA-256 hex digest of a raw API key.
func HashKey(raw string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(raw)))
}

// generateRawKey returns a cryptographically random 32-byte hex-encoded
// string suitable for use as an API key.
func generateRawKey() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
