package apikey

import (
	"testing"
	"time"
)

func TestCreateAndValidate(t *testing.T) {
	v := NewValidator()
	raw, err := v.CreateKey("demo", 100, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info, err := v.Validate(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Name != "demo" || info.RateLimit != 100 {
		t.Fatalf("got %+v", info)
	}
}

func TestValidateRejectsUnknownKey(t *testing.T) {
	v := NewValidator()
	if _, err := v.Validate("not-a-real-key"); err != ErrInvalidKey {
		t.Fatalf("got %v", err)
	}
}

func TestValidateRejectsExpiredKey(t *testing.T) {
	v := NewValidator()
	past := time.Now().Add(-time.Hour)
	raw, err := v.CreateKey("demo", 100, &past)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := v.Validate(raw); err != ErrExpiredKey {
		t.Fatalf("got %v", err)
	}
}

func TestRevokeKey(t *testing.T) {
	v := NewValidator()
	raw, _ := v.CreateKey("demo", 100, nil)
	if err := v.RevokeKey(raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := v.Validate(raw); err != ErrInvalidKey {
		t.Fatalf("got %v", err)
	}
}

func TestListKeysOnlyReturnsActive(t *testing.T) {
	v := NewValidator()
	raw, _ := v.CreateKey("keep", 10, nil)
	revoked, _ := v.CreateKey("drop", 10, nil)
	_ = v.RevokeKey(revoked)

	keys := v.ListKeys()
	if len(keys) != 1 || keys[0].Name != "keep" {
		t.Fatalf("got %+v", keys)
	}
	_ = raw
}
