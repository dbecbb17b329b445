// Package tokenizer counts tokens for size statistics.
//
// Counting uses OpenAI's cl100k_base byte-pair encoding via tiktoken-go,
// which is a reasonable approximation for modern LLMs. If the encoding
// cannot be initialized (tiktoken fetches its BPE tables on first use) or
// encoding fails, counting falls back to a characters/4 estimate so the
// caller never sees an error.
package tokenizer

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// EncodingName is the fixed display label for the active encoding.
const EncodingName = "cl100k_base"

var (
	defaultEncoder *tiktoken.Tiktoken
	encoderOnce    sync.Once
	encoderErr     error
)

// getEncoder returns the shared tiktoken encoder, initializing it lazily.
func getEncoder() (*tiktoken.Tiktoken, error) {
	encoderOnce.Do(func() {
		defaultEncoder, encoderErr = tiktoken.GetEncoding(EncodingName)
	})
	return defaultEncoder, encoderErr
}

// encodeFunc maps text to a token count. Swappable for tests.
type encodeFunc func(text string) (int, error)

func tiktokenEncode(text string) (int, error) {
	enc, err := getEncoder()
	if err != nil {
		return 0, err
	}
	// Allow all special tokens so inputs containing sequences like
	// "<|endoftext|>" are counted rather than panicking.
	return len(enc.Encode(text, []string{"all"}, nil)), nil
}

// Counter counts tokens in text. The zero value is not usable; use New.
type Counter struct {
	encode encodeFunc
}

// New creates a counter backed by the shared cl100k_base encoder.
func New() *Counter {
	return &Counter{encode: tiktokenEncode}
}

// Count returns the number of tokens in text. Never negative, never errors:
// empty text yields 0, and encoding failures fall back to ceil(len/4).
func (c *Counter) Count(text string) int {
	if text == "" {
		return 0
	}

	n, err := c.encode(text)
	if err != nil {
		return fallbackEstimate(text)
	}
	if n < 0 {
		return 0
	}
	return n
}

// EncodingName returns the display label for the active encoding.
func (c *Counter) EncodingName() string {
	return EncodingName
}

// fallbackEstimate approximates a token count as ceil(len/4).
func fallbackEstimate(text string) int {
	return (len(text) + 3) / 4
}
