package cli

import (
	"errors"
	"strings"
	"testing"
)

func TestCloseAll(t *testing.T) {
	calls := 0
	ok := func() error { calls++; return nil }
	bad := func() error { calls++; return errors.New("db busy") }

	if err := CloseAll(ok, nil, ok); err != nil {
		t.Fatalf("CloseAll() error = %v", err)
	}
	err := CloseAll(bad, ok, bad)
	if err == nil || !strings.Contains(err.Error(), "db busy") {
		t.Fatalf("CloseAll() error = %v, want db busy", err)
	}
	if calls != 5 {
		t.Errorf("expected every cleanup to run, got %d calls", calls)
	}
}

func TestLoadAndValidateConfig(t *testing.T) {
	for _, key := range []string{"MEMORY_SEED_FILE", "AMQP_URL", "RATE_LIMIT_PER_MINUTE", "SHUTDOWN_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("PORT", "9000")
	cfg, err := LoadAndValidateConfig()
	if err != nil {
		t.Fatalf("LoadAndValidateConfig() error = %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("Port = %q", cfg.Port)
	}

	t.Setenv("PORT", "nope")
	if _, err := LoadAndValidateConfig(); err == nil {
		t.Error("expected validation error")
	}
}
