package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Broker.Target() != "localhost:9092" {
		t.Errorf("expected default broker target localhost:9092, got %q", cfg.Broker.Target())
	}
	if cfg.Broker.MaxRetries != 10 {
		t.Errorf("expected default max retries 10, got %d", cfg.Broker.MaxRetries)
	}
	if cfg.Broker.RetryBase() != 2*time.Second {
		t.Errorf("expected default retry base 2s, got %v", cfg.Broker.RetryBase())
	}
	if !cfg.Broker.AckOnReceipt {
		t.Error("expected ack on receipt by default")
	}
	if cfg.Inventory.DefaultStock != 100 {
		t.Errorf("expected default stock 100, got %d", cfg.Inventory.DefaultStock)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("BROKER_URL", "kafka-1:9092")
	t.Setenv("BROKER_MAX_RETRIES", "3")
	t.Setenv("BROKER_RETRY_BASE", "1")
	t.Setenv("DEFAULT_STOCK", "42")
	t.Setenv("ACK_ON_RECEIPT", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Broker.Target() != "kafka-1:9092" {
		t.Errorf("expected BROKER_URL to win, got %q", cfg.Broker.Target())
	}
	if cfg.Broker.MaxRetries != 3 {
		t.Errorf("expected max retries 3, got %d", cfg.Broker.MaxRetries)
	}
	if cfg.Broker.RetryBase() != time.Second {
		t.Errorf("expected retry base 1s, got %v", cfg.Broker.RetryBase())
	}
	if cfg.Inventory.DefaultStock != 42 {
		t.Errorf("expected default stock 42, got %d", cfg.Inventory.DefaultStock)
	}
	if cfg.Broker.AckOnReceipt {
		t.Error("expected ack on receipt disabled")
	}
}

func TestLoadYAMLFileEnvWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "broker:\n  host: yaml-broker\n  port: 9093\ninventory:\n  default_stock: 7\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("BROKER_HOST", "env-broker")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Broker.Host != "env-broker" {
		t.Errorf("expected env to override yaml, got %q", cfg.Broker.Host)
	}
	if cfg.Broker.Port != 9093 {
		t.Errorf("expected yaml port 9093, got %d", cfg.Broker.Port)
	}
	if cfg.Inventory.DefaultStock != 7 {
		t.Errorf("expected yaml default stock 7, got %d", cfg.Inventory.DefaultStock)
	}
}

func TestDSNRequiresAllFields(t *testing.T) {
	d := DatabaseConfig{Port: 3306, Host: "db", Name: "orders", User: "app"}
	if _, err := d.DSN(); err == nil {
		t.Fatal("expected error for missing DB_PASSWORD")
	} else if !strings.Contains(err.Error(), "DB_PASSWORD") {
		t.Errorf("expected error to name DB_PASSWORD, got %v", err)
	}

	d = DatabaseConfig{Port: 3306}
	if _, err := d.DSN(); err == nil {
		t.Fatal("expected error for missing DB_HOST")
	} else if !strings.Contains(err.Error(), "DB_HOST") {
		t.Errorf("expected error to name DB_HOST, got %v", err)
	}
}

func TestDSNFromParts(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 3307, Name: "orders", User: "app", Password: "secret"}
	dsn, err := d.DSN()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(dsn, "tcp(db:3307)") {
		t.Errorf("expected dsn to contain address, got %q", dsn)
	}
	if !strings.Contains(dsn, "/orders") {
		t.Errorf("expected dsn to contain database name, got %q", dsn)
	}
}

func TestDSNURLOverridesParts(t *testing.T) {
	d := DatabaseConfig{URL: "app:secret@tcp(db:3306)/orders?parseTime=true"}
	dsn, err := d.DSN()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dsn != d.URL {
		t.Errorf("expected DSN to pass URL through, got %q", dsn)
	}
}
