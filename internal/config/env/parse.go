package env

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// durationFromEnv читает длительность, при отсутствии переменной - значение по умолчанию
func durationFromEnv(name string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(name)
	if len(raw) == 0 {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", name)
	}
	return d, nil
}

// uintFromEnv читает беззнаковое число (десятичное или 0x...)
func uintFromEnv(name string, def uint64) (uint64, error) {
	raw := os.Getenv(name)
	if len(raw) == 0 {
		return def, nil
	}
	v, err := strconv.ParseUint(raw, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return v, nil
}

func stringFromEnv(name, def string) string {
	raw := os.Getenv(name)
	if len(raw) == 0 {
		return def
	}
	return raw
}
