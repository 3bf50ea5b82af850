package config

import (
	"os"
	"testing"
	"time"
)

func TestMustLoad(t *testing.T) {
	tmp, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	defer os.Remove(tmp.Name())

	data := []byte(`log_level: DEBUG
db_path: "test.db"
daily_goal: 15
workers: 2
batch_size: 25
min_phrase_len: 2
max_phrase_len: 4
translate_throttle: 500ms`)

	if _, err := tmp.Write(data); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	if err := tmp.Close(); err != nil {
		t.Fatalf("close temp file: %v", err)
	}

	cfg := MustLoad(tmp.Name())

	if cfg.LogLevel != "DEBUG" ||
		cfg.DBPath != "test.db" ||
		cfg.DailyGoal != 15 ||
		cfg.Workers != 2 ||
		cfg.BatchSize != 25 ||
		cfg.MaxPhraseLen != 4 ||
		cfg.TranslateThrottle != 500*time.Millisecond {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestMustLoadDefaults(t *testing.T) {
	cfg := MustLoad("")
	if cfg.DBPath != "kosakata.db" || cfg.Workers != 4 || cfg.DailyGoal != 10 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Weights().Validate(); err != nil {
		t.Fatalf("default weights invalid: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := MustLoad("")

	bad := cfg
	bad.Workers = 0
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for zero workers")
	}

	bad = cfg
	bad.MaxPhraseLen = 1
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for inverted phrase bounds")
	}

	bad = cfg
	bad.StatusWeight = 0.5
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for weights not summing to 1")
	}
}
