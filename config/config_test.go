package config

import "testing"

func TestGetPort(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"", 3333},
		{"abc", 3333},
		{"0", 3333},
		{"70000", 3333},
		{"8080", 8080},
	}
	for _, tc := range tests {
		t.Setenv("ATELIER_PORT", tc.value)
		if got := GetPort(); got != tc.want {
			t.Errorf("GetPort() with %q = %d, want %d", tc.value, got, tc.want)
		}
	}
}

func TestGetLogLevel(t *testing.T) {
	t.Setenv("ATELIER_DEBUG", "")
	t.Setenv("ATELIER_LOG_LEVEL", "")
	if got := GetLogLevel(); got != Info {
		t.Fatalf("default level = %q, want info", got)
	}

	t.Setenv("ATELIER_LOG_LEVEL", "warn")
	if got := GetLogLevel(); got != Warn {
		t.Fatalf("level = %q, want warn", got)
	}

	// Debug mode overrides the level.
	t.Setenv("ATELIER_DEBUG", "true")
	if got := GetLogLevel(); got != Debug {
		t.Fatalf("level = %q, want debug", got)
	}
}

func TestURLsAreTrimmed(t *testing.T) {
	t.Setenv("ATELIER_AUTH_URL", "https://auth.example.com/auth/v1/")
	if got := GetAuthURL(); got != "https://auth.example.com/auth/v1" {
		t.Fatalf("GetAuthURL() = %q", got)
	}
	t.Setenv("ATELIER_STORAGE_URL", "https://cdn.example.com/storage/v1/")
	if got := GetStorageURL(); got != "https://cdn.example.com/storage/v1" {
		t.Fatalf("GetStorageURL() = %q", got)
	}
}

func TestSweepSettings(t *testing.T) {
	if got := GetSweepSchedule(); got != "@every 6h" {
		t.Fatalf("default schedule = %q", got)
	}
	t.Setenv("ATELIER_SWEEP_SCHEDULE", "")
	if got := GetSweepSchedule(); got != "" {
		t.Fatalf("schedule = %q, want empty to disable", got)
	}

	t.Setenv("ATELIER_SWEEP_GRACE_HOURS", "-1")
	if got := GetSweepGraceHours(); got != 24 {
		t.Fatalf("grace = %d, want default 24", got)
	}
	t.Setenv("ATELIER_SWEEP_GRACE_HOURS", "6")
	if got := GetSweepGraceHours(); got != 6 {
		t.Fatalf("grace = %d, want 6", got)
	}
}
