package utils

import (
	"testing"
	"time"
)

func TestParseDecimal(t *testing.T) {
	if _, err := ParseDecimal(""); err == nil {
		t.Fatal("expected error for empty string")
	}
	if _, err := ParseDecimal("abc"); err == nil {
		t.Fatal("expected error for non-numeric string")
	}
	d, err := ParseDecimal("  12.50 ")
	if err != nil {
		t.Fatalf("ParseDecimal: %v", err)
	}
	if d.StringFixed(2) != "12.50" {
		t.Fatalf("expected 12.50, got %s", d.StringFixed(2))
	}
}

func TestDateUTC_RollsOverAtStoreMidnight(t *testing.T) {
	// 20:00 UTC is already the next day in Asia/Kolkata (+05:30).
	in := time.Date(2026, 8, 28, 20, 0, 0, 0, time.UTC)
	got := DateUTC(in)
	want := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("DateUTC(%v) expected %v, got %v", in, want, got)
	}

	// mid-day stays on the same date
	in = time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	want = time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	if got := DateUTC(in); !got.Equal(want) {
		t.Fatalf("DateUTC(%v) expected %v, got %v", in, want, got)
	}
}

func TestValidatePhoneNumber(t *testing.T) {
	if err := ValidatePhoneNumber("+91 98765 43210", "IN"); err != nil {
		t.Fatalf("expected valid number, got %v", err)
	}
	if err := ValidatePhoneNumber("12345", "IN"); err == nil {
		t.Fatal("expected error for short number")
	}
}
