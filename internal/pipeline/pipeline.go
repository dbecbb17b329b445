// Package pipeline owns the compression preview state: the raw input text,
// the compression options, and the debounced recomputation of the optimized
// and restored outputs with their derived statistics.
//
// The pipeline is a small state machine with two steady states - Valid
// (outputs populated, no error) and Invalid (no outputs, editor error set) -
// plus an Empty state while the input is blank. Exactly one of those holds
// at any instant; consumers read a coherent Snapshot and never see partial
// transitions.
package pipeline

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Sridharvn/crimp/internal/codec"
	"github.com/Sridharvn/crimp/internal/store"
)

// DefaultDebounce is the quiet window before a scheduled recomputation fires.
const DefaultDebounce = 300 * time.Millisecond

// State identifies which steady state the pipeline is in.
type State int

const (
	// StateEmpty means the input is blank; no outputs, no error.
	StateEmpty State = iota
	// StateValid means both outputs are populated and there is no error.
	StateValid
	// StateInvalid means recomputation failed; outputs are cleared and an
	// editor error is set.
	StateInvalid
)

// String returns the display name for a state.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateValid:
		return "valid"
	case StateInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// EditorError describes a parse or transform failure in a form suitable for
// an error banner. Line is 1-based and 0 when unknown.
type EditorError struct {
	Message string
	Line    int
}

// Result holds both halves of a successful recomputation.
type Result struct {
	Optimized any
	Restored  any
}

// OutputMode selects which half of the result is displayed or exported.
type OutputMode int

const (
	ModeOptimized OutputMode = iota
	ModeRestored
)

// Snapshot is a coherent copy of pipeline state for consumers.
type Snapshot struct {
	Input   string
	Options codec.Options
	State   State
	Result  *Result
	Err     *EditorError
}

// TokenCounter counts tokens in text for statistics.
type TokenCounter interface {
	Count(text string) int
}

// Pipeline owns input text and options and recomputes outputs after edits
// settle. Safe for concurrent use.
type Pipeline struct {
	codec   codec.Codec
	counter TokenCounter
	state   *store.Store // optional; nil disables persistence

	debounce *Debouncer

	mu      sync.Mutex
	input   string
	opts    codec.Options
	current State
	result  *Result
	err     *EditorError
	gen     uint64 // bumped per schedule; stale fires are discarded
	closed  bool
	subs    []func(Snapshot)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithDebounce overrides the recompute quiet window.
func WithDebounce(d time.Duration) Option {
	return func(p *Pipeline) {
		p.debounce = NewDebouncer(d)
	}
}

// WithStore enables persistence of input and options. The stored input and
// options are loaded once at construction.
func WithStore(s *store.Store) Option {
	return func(p *Pipeline) {
		p.state = s
	}
}

// WithOptions sets the initial compression options.
func WithOptions(opts codec.Options) Option {
	return func(p *Pipeline) {
		p.opts = opts
	}
}

// New creates a pipeline in the Empty state.
func New(c codec.Codec, counter TokenCounter, options ...Option) *Pipeline {
	p := &Pipeline{
		codec:    c,
		counter:  counter,
		debounce: NewDebouncer(DefaultDebounce),
		current:  StateEmpty,
	}
	for _, opt := range options {
		opt(p)
	}

	if p.state != nil {
		p.input = p.state.LoadString(store.KeyInput, p.input)
		var opts codec.Options
		if p.state.LoadJSON(store.KeyOptions, &opts) {
			p.opts = opts
		}
	}

	return p
}

// SetInput replaces the raw input text and schedules a recomputation.
// Returns immediately; the recomputation fires after the quiet window.
func (p *Pipeline) SetInput(text string) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.input = text
	if p.state != nil {
		p.state.SaveString(store.KeyInput, text)
	}
	p.scheduleLocked()
	p.mu.Unlock()
}

// SetOptions replaces the compression options and schedules a recomputation.
func (p *Pipeline) SetOptions(opts codec.Options) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.opts = opts
	if p.state != nil {
		p.state.SaveJSON(store.KeyOptions, opts)
	}
	p.scheduleLocked()
	p.mu.Unlock()
}

// RecomputeNow cancels any pending debounced recomputation and runs one
// synchronously with the current input and options.
func (p *Pipeline) RecomputeNow() Snapshot {
	p.debounce.Cancel()

	p.mu.Lock()
	if p.closed {
		snap := p.snapshotLocked()
		p.mu.Unlock()
		return snap
	}
	p.gen++
	gen := p.gen
	text, opts := p.input, p.opts
	p.mu.Unlock()

	p.runRecompute(gen, text, opts)

	p.mu.Lock()
	snap := p.snapshotLocked()
	p.mu.Unlock()
	return snap
}

// Snapshot returns a coherent copy of the current state.
func (p *Pipeline) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

// Subscribe registers fn to be called after every applied recomputation.
// Callbacks run outside the pipeline lock, on the goroutine that applied
// the result.
func (p *Pipeline) Subscribe(fn func(Snapshot)) {
	p.mu.Lock()
	p.subs = append(p.subs, fn)
	p.mu.Unlock()
}

// Close cancels any pending recomputation and bars late results from
// applying. Further setter calls are ignored.
func (p *Pipeline) Close() {
	p.mu.Lock()
	p.closed = true
	p.gen++ // invalidate anything in flight
	p.mu.Unlock()
	p.debounce.Cancel()
}

// scheduleLocked arms the debounced recomputation with the current input and
// options bound at trigger time. Caller holds p.mu.
func (p *Pipeline) scheduleLocked() {
	p.gen++
	gen := p.gen
	text, opts := p.input, p.opts
	p.debounce.Trigger(func() {
		p.runRecompute(gen, text, opts)
	})
}

// runRecompute computes the next state for (text, opts) and applies it if
// this generation is still the latest. Last write wins: a superseded or
// post-Close fire discards its result without touching pipeline state.
func (p *Pipeline) runRecompute(gen uint64, text string, opts codec.Options) {
	state, result, ederr := p.compute(text, opts)

	p.mu.Lock()
	if p.closed || gen != p.gen {
		p.mu.Unlock()
		return
	}
	p.current = state
	p.result = result
	p.err = ederr
	snap := p.snapshotLocked()
	subs := make([]func(Snapshot), len(p.subs))
	copy(subs, p.subs)
	p.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// compute runs the parse -> optimize -> restore chain. All failures are
// converted into an EditorError; nothing escapes as a fault.
func (p *Pipeline) compute(text string, opts codec.Options) (State, *Result, *EditorError) {
	if strings.TrimSpace(text) == "" {
		return StateEmpty, nil, nil
	}

	var parsed any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return StateInvalid, nil, editorError(err, text)
	}

	optimized, err := p.codec.Optimize(parsed, opts)
	if err != nil {
		return StateInvalid, nil, editorError(err, "")
	}

	restored, err := p.codec.Restore(optimized)
	if err != nil {
		return StateInvalid, nil, editorError(err, "")
	}

	return StateValid, &Result{Optimized: optimized, Restored: restored}, nil
}

func (p *Pipeline) snapshotLocked() Snapshot {
	snap := Snapshot{
		Input:   p.input,
		Options: p.opts,
		State:   p.current,
	}
	if p.result != nil {
		r := *p.result
		snap.Result = &r
	}
	if p.err != nil {
		e := *p.err
		snap.Err = &e
	}
	return snap
}

// lineHintPattern matches foreign error messages that embed a line number.
// Not a guaranteed contract of any dependency; line reporting is best-effort.
var lineHintPattern = regexp.MustCompile(`at line (\d+)`)

// editorError converts a parse or codec failure into an EditorError. For
// JSON syntax errors the line is derived from the byte offset; otherwise the
// message is scanned for an "at line N" hint.
func editorError(err error, source string) *EditorError {
	e := &EditorError{Message: err.Error()}

	if syn, ok := err.(*json.SyntaxError); ok && source != "" {
		e.Line = lineOfOffset(source, syn.Offset)
		return e
	}

	if m := lineHintPattern.FindStringSubmatch(err.Error()); m != nil {
		if n, convErr := strconv.Atoi(m[1]); convErr == nil {
			e.Line = n
		}
	}
	return e
}

// lineOfOffset returns the 1-based line containing the byte offset.
func lineOfOffset(source string, offset int64) int {
	if offset < 0 {
		return 0
	}
	if offset > int64(len(source)) {
		offset = int64(len(source))
	}
	return 1 + strings.Count(source[:offset], "\n")
}
