package models

import "testing"

func TestFormatOrderToken(t *testing.T) {
	cases := []struct {
		seq      int
		expected string
	}{
		{1, "TK-001"},
		{7, "TK-007"},
		{42, "TK-042"},
		{999, "TK-999"},
		{1042, "TK-1042"},
	}
	for _, tc := range cases {
		if got := FormatOrderToken(tc.seq); got != tc.expected {
			t.Fatalf("FormatOrderToken(%d) expected %s, got %s", tc.seq, tc.expected, got)
		}
	}
}

func TestOrderTokenSeq(t *testing.T) {
	cases := []struct {
		token    string
		expected int
	}{
		{"TK-001", 1},
		{"TK-042", 42},
		{"TK-1042", 1042},
		{"TK-", 0},
		{"TK-xyz", 0},
		{"BAD-001", 0},
		{"", 0},
	}
	for _, tc := range cases {
		if got := OrderTokenSeq(tc.token); got != tc.expected {
			t.Fatalf("OrderTokenSeq(%q) expected %d, got %d", tc.token, tc.expected, got)
		}
	}
}

func TestTokenRoundTrip(t *testing.T) {
	for seq := 1; seq <= 1200; seq++ {
		if got := OrderTokenSeq(FormatOrderToken(seq)); got != seq {
			t.Fatalf("round trip for %d gave %d", seq, got)
		}
	}
}
