package config

import (
	"os"
	"testing"
)

func TestGet(t *testing.T) {
	t.Setenv("OPTIROUTE_TEST_KEY", "set")
	if v := Get("OPTIROUTE_TEST_KEY", "fallback"); v != "set" {
		t.Fatalf("got %q, want set", v)
	}
	if v := Get("OPTIROUTE_TEST_KEY_MISSING", "fallback"); v != "fallback" {
		t.Fatalf("got %q, want fallback", v)
	}
}

func TestLoadTuningDefaults(t *testing.T) {
	tun, err := LoadTuning("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tun.AverageSpeed != 50 || tun.ServiceTime != 0.5 || tun.DayStartHour != 9 {
		t.Fatalf("defaults = %+v", tun)
	}

	tun, err = LoadTuning("does/not/exist.yaml")
	if err != nil {
		t.Fatalf("missing file must fall back to defaults: %v", err)
	}
	if tun.PriorityWeight != 10 {
		t.Fatalf("defaults = %+v", tun)
	}
}

func TestLoadTuningOverrides(t *testing.T) {
	path := t.TempDir() + "/tuning.yaml"
	payload := "average_speed: 40\nservice_time: 0.25\n"
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tun, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tun.AverageSpeed != 40 || tun.ServiceTime != 0.25 {
		t.Fatalf("overrides not applied: %+v", tun)
	}
	// Untouched keys keep defaults.
	if tun.DayStartHour != 9 || tun.MaxBruteForceStops != 10 {
		t.Fatalf("defaults lost: %+v", tun)
	}
}

func TestLoadTuningRejectsBadValues(t *testing.T) {
	path := t.TempDir() + "/tuning.yaml"
	if err := os.WriteFile(path, []byte("average_speed: -5\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := LoadTuning(path); err == nil {
		t.Fatal("expected validation error")
	}
}
