package pipeline

import (
	"encoding/json"
	"fmt"
)

// Stats holds size and token statistics derived from the current input and
// result. Stats are a pure function of that pair: they are recomputed on
// demand and never stored, so they cannot drift from their inputs.
type Stats struct {
	InputSize    int // bytes of raw input text
	OutputSize   int // bytes of the serialized optimized value
	InputTokens  int
	OutputTokens int

	// Percentages formatted to one decimal, "0.0" when undefined.
	SavingsPct      string
	TokenSavingsPct string
}

// Stats derives statistics from the current snapshot.
func (p *Pipeline) Stats() Stats {
	snap := p.Snapshot()
	return deriveStats(snap, p.counter)
}

// StatsFor derives statistics from a previously taken snapshot. Useful for
// renderers that already hold one.
func (p *Pipeline) StatsFor(snap Snapshot) Stats {
	return deriveStats(snap, p.counter)
}

func deriveStats(snap Snapshot, counter TokenCounter) Stats {
	s := Stats{
		InputSize:       len(snap.Input),
		InputTokens:     counter.Count(snap.Input),
		SavingsPct:      "0.0",
		TokenSavingsPct: "0.0",
	}

	if snap.State != StateValid || snap.Result == nil {
		return s
	}

	serialized, err := json.Marshal(snap.Result.Optimized)
	if err != nil {
		// A Valid result is always re-serializable; treat failure as zero
		// output rather than surfacing an error from a derivation.
		return s
	}

	s.OutputSize = len(serialized)
	s.OutputTokens = counter.Count(string(serialized))

	if s.InputSize > 0 {
		s.SavingsPct = formatPct(s.InputSize, s.OutputSize)
	}
	if s.InputTokens > 0 {
		s.TokenSavingsPct = formatPct(s.InputTokens, s.OutputTokens)
	}
	return s
}

// formatPct renders (in-out)/in*100 to one decimal. Negative when the
// output grew, which small inputs legitimately do under an envelope codec.
func formatPct(in, out int) string {
	return fmt.Sprintf("%.1f", float64(in-out)/float64(in)*100)
}
