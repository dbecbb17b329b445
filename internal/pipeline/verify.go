package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"
)

// VerifyResult reports the outcome of a round-trip check.
type VerifyResult struct {
	Match bool
	// Detail carries the mismatch explanation when Match is false.
	Detail string
}

// Verify is a user-triggered diagnostic: it re-parses the current input,
// restores the current optimized output, and compares the two canonically.
// It never mutates pipeline state. Preconditions that fail (blank input, no
// optimized output, restore failure) return an error distinct from the
// pipeline's EditorError.
func (p *Pipeline) Verify() (*VerifyResult, error) {
	snap := p.Snapshot()

	if strings.TrimSpace(snap.Input) == "" {
		return nil, fmt.Errorf("verify: input is empty")
	}

	var parsed any
	if err := json.Unmarshal([]byte(snap.Input), &parsed); err != nil {
		return nil, fmt.Errorf("verify: input is not valid JSON: %w", err)
	}

	if snap.Result == nil || snap.Result.Optimized == nil {
		return nil, fmt.Errorf("verify: no optimized output to check")
	}

	restored, err := p.codec.Restore(snap.Result.Optimized)
	if err != nil {
		return nil, fmt.Errorf("verify: restore failed: %w", err)
	}

	want, err := canonicalJSON(parsed)
	if err != nil {
		return nil, fmt.Errorf("verify: cannot canonicalize input: %w", err)
	}
	got, err := canonicalJSON(restored)
	if err != nil {
		return nil, fmt.Errorf("verify: cannot canonicalize restored value: %w", err)
	}

	if want == got {
		return &VerifyResult{Match: true}, nil
	}
	return &VerifyResult{
		Match:  false,
		Detail: fmt.Sprintf("restored value differs from input (%d vs %d canonical bytes)", len(got), len(want)),
	}, nil
}

// canonicalJSON re-serializes a decoded value. encoding/json emits map keys
// in sorted order, so structurally equal values produce identical bytes
// regardless of original key order or whitespace.
func canonicalJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
