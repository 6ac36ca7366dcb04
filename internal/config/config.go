package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"optiroute/internal/domain"
)

// Get returns the environment value for key, or fallback when unset
// or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadTuning reads solver tuning overrides from a YAML file. A missing
// file is not an error; defaults apply, and any key absent from the
// file keeps its default value.
func LoadTuning(path string) (domain.Tuning, error) {
	tun := domain.DefaultTuning()
	if path == "" {
		return tun, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return tun, nil
		}
		return domain.Tuning{}, fmt.Errorf("load tuning: read %q: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, &tun); err != nil {
		return domain.Tuning{}, fmt.Errorf("load tuning: parse %q: %w", path, err)
	}

	if tun.AverageSpeed <= 0 || tun.ServiceTime < 0 || tun.MaxBruteForceStops < 0 {
		return domain.Tuning{}, fmt.Errorf("load tuning: %q: speed must be positive, times non-negative", path)
	}

	return tun, nil
}
