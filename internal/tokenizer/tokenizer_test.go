package tokenizer

import (
	"errors"
	"strings"
	"testing"
)

func TestCount_EmptyTextIsZero(t *testing.T) {
	c := New()
	if got := c.Count(""); got != 0 {
		t.Errorf("Count(\"\") = %d, want 0", got)
	}
}

func TestCount_NeverNegative(t *testing.T) {
	c := New()
	inputs := []string{
		"hello",
		`{"role":"user","content":"hi"}`,
		strings.Repeat("x", 4096),
		"<|endoftext|>",
		"日本語のテキスト",
	}
	for _, in := range inputs {
		if got := c.Count(in); got < 0 {
			t.Errorf("Count(%q) = %d, want >= 0", in, got)
		}
	}
}

func TestCount_NonEmptyIsPositive(t *testing.T) {
	// Holds both for real BPE counts and for the fallback estimate.
	c := New()
	if got := c.Count("hello world"); got < 1 {
		t.Errorf("Count(%q) = %d, want >= 1", "hello world", got)
	}
}

func TestCount_Deterministic(t *testing.T) {
	c := New()
	text := `{"role":"user","content":"the same text every time"}`

	first := c.Count(text)
	for i := 0; i < 5; i++ {
		if got := c.Count(text); got != first {
			t.Fatalf("Count() = %d on repeat, want %d", got, first)
		}
	}
}

func TestCount_FallbackOnEncoderFailure(t *testing.T) {
	c := &Counter{encode: func(string) (int, error) {
		return 0, errors.New("encoder unavailable")
	}}

	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"abcd", 1},
		{"abcde", 2},
		{strings.Repeat("x", 100), 25},
		{strings.Repeat("x", 101), 26},
	}
	for _, tt := range tests {
		if got := c.Count(tt.text); got != tt.want {
			t.Errorf("Count(%d chars) = %d, want %d", len(tt.text), got, tt.want)
		}
	}
}

func TestEncodingName(t *testing.T) {
	c := New()
	if got := c.EncodingName(); got != "cl100k_base" {
		t.Errorf("EncodingName() = %q, want %q", got, "cl100k_base")
	}
}
