package config

import (
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	Port    int           `env:"PAWPRINT_TEST_PORT" envDefault:"123"`
	Timeout time.Duration `env:"PAWPRINT_TEST_TIMEOUT" envDefault:"2s"`
	Name    string        `env:"PAWPRINT_TEST_NAME"`
}

func TestParseEnvironDefaults(t *testing.T) {
	t.Parallel()

	var cfg envTestConfig
	if err := ParseEnviron(&cfg, nil); err != nil {
		t.Fatalf("ParseEnviron() error = %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("Port = %d, want 123", cfg.Port)
	}
	if cfg.Timeout != 2*time.Second {
		t.Fatalf("Timeout = %v, want 2s", cfg.Timeout)
	}
}

func TestParseEnvironReadsValues(t *testing.T) {
	t.Parallel()

	var cfg envTestConfig
	environ := []string{"PAWPRINT_TEST_PORT=8080", "PAWPRINT_TEST_NAME=a=b", "garbage", "=skip"}
	if err := ParseEnviron(&cfg, environ); err != nil {
		t.Fatalf("ParseEnviron() error = %v", err)
	}
	if cfg.Port != 8080 {
		t.Fatalf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.Name != "a=b" {
		t.Fatalf("Name = %q, want %q", cfg.Name, "a=b")
	}
}

func TestParseEnvironError(t *testing.T) {
	t.Parallel()

	var cfg envTestConfig
	err := ParseEnviron(&cfg, []string{"PAWPRINT_TEST_PORT=not-an-int"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvUsesProcessEnvironment(t *testing.T) {
	t.Setenv("PAWPRINT_TEST_PORT", "9090")

	var cfg envTestConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("ParseEnv() error = %v", err)
	}
	if cfg.Port != 9090 {
		t.Fatalf("Port = %d, want 9090", cfg.Port)
	}
}
