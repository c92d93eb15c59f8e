package util

import "testing"

func TestParseBoolEnv(t *testing.T) {
	tests := []struct {
		value string
		def   bool
		want  bool
	}{
		{"", true, true},
		{"", false, false},
		{"true", false, true},
		{"1", false, true},
		{"YES", false, true},
		{"on", false, true},
		{"false", true, false},
		{"0", true, false},
		{"no", true, false},
		{"off", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		t.Setenv("AQUABALANCE_TEST_BOOL", tt.value)
		if got := ParseBoolEnv("AQUABALANCE_TEST_BOOL", tt.def); got != tt.want {
			t.Errorf("ParseBoolEnv(%q, %v) = %v, want %v", tt.value, tt.def, got, tt.want)
		}
	}
}

func TestGetenvDefault(t *testing.T) {
	t.Setenv("AQUABALANCE_TEST_STR", "")
	if got := GetenvDefault("AQUABALANCE_TEST_STR", "fallback"); got != "fallback" {
		t.Errorf("GetenvDefault empty = %q, want fallback", got)
	}
	t.Setenv("AQUABALANCE_TEST_STR", "value")
	if got := GetenvDefault("AQUABALANCE_TEST_STR", "fallback"); got != "value" {
		t.Errorf("GetenvDefault set = %q, want value", got)
	}
}
