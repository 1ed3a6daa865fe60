package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		HTTP:    HTTPConfig{Port: 8000, WriteTimeoutSec: 10},
		Search:  SearchConfig{DelayMS: 1000},
		Records: RecordsConfig{Source: SourceStatic},
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 70000

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_WriteTimeoutShorterThanDelay(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.WriteTimeoutSec = 1
	cfg.Search.DelayMS = 1500

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error when write timeout does not cover the search delay")
	}

	expected := "http.write_timeout_sec (1s) must exceed search.delay_ms (1500ms)"
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_RecordSources(t *testing.T) {
	tests := []struct {
		name    string
		records RecordsConfig
		wantErr bool
	}{
		{"static", RecordsConfig{Source: SourceStatic}, false},
		{"file with path", RecordsConfig{Source: SourceFile, File: "records.yaml"}, false},
		{"file without path", RecordsConfig{Source: SourceFile}, true},
		{"valkey with addrs", RecordsConfig{Source: SourceValkey, Addrs: []string{"localhost:6379"}}, false},
		{"redis without addrs", RecordsConfig{Source: SourceRedis}, true},
		{"unknown", RecordsConfig{Source: "postgres"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Records = tt.records

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != DefaultPort {
		t.Errorf("expected port %d, got %d", DefaultPort, cfg.HTTP.Port)
	}
	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected read timeout 10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected write timeout 10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Search.Delay() != time.Second {
		t.Errorf("expected delay 1s, got %v", cfg.Search.Delay())
	}
	if cfg.Records.Source != SourceStatic {
		t.Errorf("expected source static, got %q", cfg.Records.Source)
	}
	if cfg.Records.Key != "lookup:records" {
		t.Errorf("expected key lookup:records, got %q", cfg.Records.Key)
	}
}

func TestApplyDefaults_PortFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected port 9090 from PORT, got %d", cfg.HTTP.Port)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:    HTTPConfig{Port: 3000, ReadTimeoutSec: 30},
		Search:  SearchConfig{DelayMS: 250},
		Records: RecordsConfig{Source: SourceFile, Key: "custom"},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 3000 {
		t.Errorf("expected port 3000 preserved, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected read timeout 30 preserved, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Search.DelayMS != 250 {
		t.Errorf("expected delay 250 preserved, got %d", cfg.Search.DelayMS)
	}
	if cfg.Records.Source != SourceFile || cfg.Records.Key != "custom" {
		t.Errorf("records overridden: %+v", cfg.Records)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("LOOKUP_TEST_PORT", "9000")
	t.Setenv("LOOKUP_TEST_EMPTY", "")

	in := []byte("a: ${LOOKUP_TEST_PORT}\nb: ${LOOKUP_TEST_EMPTY:-fallback}\nc: ${LOOKUP_TEST_UNSET}")
	got := string(expandEnvVars(in))

	want := "a: 9000\nb: fallback\nc: "
	if got != want {
		t.Errorf("expandEnvVars() = %q, want %q", got, want)
	}
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "")

	cfg, err := Load("no-such-env")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != DefaultPort || cfg.Records.Source != SourceStatic {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("LOOKUP_TEST_DELAY", "200")

	if err := os.Mkdir("config", 0o750); err != nil {
		t.Fatal(err)
	}
	data := []byte(`
http:
  port: 8123
search:
  delay_ms: ${LOOKUP_TEST_DELAY:-1000}
records:
  source: file
  file: records.yaml
`)
	if err := os.WriteFile(filepath.Join("config", "test.yaml"), data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 8123 {
		t.Errorf("port = %d, want 8123", cfg.HTTP.Port)
	}
	if cfg.Search.Delay() != 200*time.Millisecond {
		t.Errorf("delay = %v, want 200ms", cfg.Search.Delay())
	}
	if cfg.Records.File != "records.yaml" {
		t.Errorf("records.file = %q", cfg.Records.File)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("LOOKUP_DOTENV_VALUE=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LOOKUP_DOTENV_VALUE", "")
	os.Unsetenv("LOOKUP_DOTENV_VALUE") //nolint:errcheck // restored by t.Setenv cleanup

	if err := LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := os.Getenv("LOOKUP_DOTENV_VALUE"); got != "from-file" {
		t.Errorf("LOOKUP_DOTENV_VALUE = %q, want from-file", got)
	}
}
