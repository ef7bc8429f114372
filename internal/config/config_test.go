package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault_Fallbacks(t *testing.T) {
	for _, k := range []string{"TB_ADDR", "TB_CALL_TIMEOUT", "TB_CARDINALITY", "TB_REGION", "TB_MAX_CONCURRENCY"} {
		t.Setenv(k, "")
	}
	c := Default()
	if c.Addr != "127.0.0.1:8080" || c.CallTimeout != 10*time.Second || c.Cardinality != 10 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.Region != "US" || c.MaxConcurrency != 8 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestDefault_ParsesEnvironment(t *testing.T) {
	t.Setenv("TB_CALL_TIMEOUT", "250ms")
	t.Setenv("TB_CARDINALITY", "25")
	t.Setenv("TB_MAX_CONCURRENCY", "nope")
	t.Setenv("TB_RETRY_ATTEMPTS", "-3")
	c := Default()
	if c.CallTimeout != 250*time.Millisecond || c.Cardinality != 25 {
		t.Fatalf("unexpected config: %+v", c)
	}
	if c.MaxConcurrency != 8 || c.RetryAttempts != 2 {
		t.Fatalf("invalid values should fall back: %+v", c)
	}

	t.Setenv("TB_CALL_TIMEOUT", "5")
	if got := Default().CallTimeout; got != 5*time.Second {
		t.Fatalf("bare seconds: got %v", got)
	}
}

func TestLoad_ReadsDotEnvWithoutOverriding(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("TB_TEST_API_KEY_PROBE=fromfile\nTB_REGION=FR\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("TB_REGION", "DE")
	t.Cleanup(func() { _ = os.Unsetenv("TB_TEST_API_KEY_PROBE") })

	c := Load(path)
	if c.Region != "DE" {
		t.Fatalf("environment must win over .env, got %q", c.Region)
	}
	if os.Getenv("TB_TEST_API_KEY_PROBE") != "fromfile" {
		t.Fatalf(".env not loaded")
	}
}
