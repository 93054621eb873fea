package entity

import (
	"encoding/json"
	"testing"
)

func TestParseCents(t *testing.T) {
	cases := []struct {
		in   string
		want Cents
	}{
		{"10", 1000},
		{"10.5", 1050},
		{"10.50", 1050},
		{"0.99", 99},
		{"0", 0},
		{".50", 50},
		{"349.99", 34999},
	}
	for _, tc := range cases {
		got, err := ParseCents(tc.in)
		if err != nil {
			t.Fatalf("ParseCents(%q) failed: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseCents(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseCentsRejects(t *testing.T) {
	for _, in := range []string{"", "abc", "10.999", "1,50", "1.-5", "1.+5", "+5", "1.5x"} {
		if _, err := ParseCents(in); err == nil {
			t.Fatalf("ParseCents(%q) should have failed", in)
		}
	}
}

func TestCentsString(t *testing.T) {
	if got := Cents(2500).String(); got != "25.00" {
		t.Fatalf("got %q", got)
	}
	if got := Cents(5).String(); got != "0.05" {
		t.Fatalf("got %q", got)
	}
	if got := Cents(-150).String(); got != "-1.50" {
		t.Fatalf("got %q", got)
	}
}

func TestCentsMulNoDrift(t *testing.T) {
	// 3 × 0.10 is exactly 0.30 in minor units; the classic float bug
	// this type exists to avoid.
	if got := Cents(10).Mul(3); got != 30 {
		t.Fatalf("got %d", got)
	}
}

func TestCentsJSON(t *testing.T) {
	data, err := json.Marshal(Cents(34999))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"349.99"` {
		t.Fatalf("got %s", data)
	}

	var c Cents
	if err := json.Unmarshal([]byte(`"10.50"`), &c); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if c != 1050 {
		t.Fatalf("got %d", c)
	}

	// Bare numbers are accepted too.
	if err := json.Unmarshal([]byte(`15`), &c); err != nil {
		t.Fatalf("unmarshal number failed: %v", err)
	}
	if c != 1500 {
		t.Fatalf("got %d", c)
	}
}
