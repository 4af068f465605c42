package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("got %d", cfg.Server.Port)
	}
	if cfg.Engine.DefaultLanguage != "english" {
		t.Fatalf("got %q", cfg.Engine.DefaultLanguage)
	}
	if cfg.Engine.WriteQueueCapacity != 64 {
		t.Fatalf("got %d", cfg.Engine.WriteQueueCapacity)
	}
}

func TestLoadFromFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "lyra-*.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = f.WriteString("server:\n  port: 9999\nengine:\n  defaultLanguage: french\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.Close()

	cfg, err := Load(f.Name())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Fatalf("got %d", cfg.Server.Port)
	}
	if cfg.Engine.DefaultLanguage != "french" {
		t.Fatalf("got %q", cfg.Engine.DefaultLanguage)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LYRA_SERVER_PORT", "7000")
	t.Setenv("LYRA_DEFAULT_LANGUAGE", "spanish")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Fatalf("got %d", cfg.Server.Port)
	}
	if cfg.Engine.DefaultLanguage != "spanish" {
		t.Fatalf("got %q", cfg.Engine.DefaultLanguage)
	}
}
