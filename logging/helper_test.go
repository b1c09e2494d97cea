package logging

import (
	"testing"
	"time"
)

func TestHelper_roundMS(t *testing.T) {
	type testCase struct {
		dur time.Duration
		exp float64
	}

	for _, tc := range []testCase{
		{1234567 * time.Nanosecond, 1.2350},
		{123456 * time.Microsecond, 123.456},
		{123456 * time.Microsecond, 123.456000},
		{123 * time.Millisecond, 123.0},
	} {
		if got := RoundMS(tc.dur); got != tc.exp {
			t.Errorf("expected '%#v', got '%#v'", tc.exp, got)
		}
	}
}

func TestHelper_HumanSize(t *testing.T) {
	for _, tc := range []struct {
		size int64
		exp  string
	}{
		{0, "0B"},
		{999, "999B"},
		{12345, "12.3kB"},
		{2 * 1000 * 1000, "2MB"},
	} {
		if got := HumanSize(tc.size); got != tc.exp {
			t.Errorf("expected %q, got %q", tc.exp, got)
		}
	}
}
