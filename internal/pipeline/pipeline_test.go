package pipeline

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sridharvn/crimp/internal/codec"
	"github.com/Sridharvn/crimp/internal/config"
	"github.com/Sridharvn/crimp/internal/store"
)

// estCounter approximates tokens as ceil(len/4) so tests never depend on
// tiktoken's BPE tables being fetchable.
type estCounter struct{}

func (estCounter) Count(text string) int { return (len(text) + 3) / 4 }

// echoCodec wraps values reversibly without real compression.
type echoCodec struct {
	optimizeErr error
	restoreErr  error
	calls       atomic.Int32
}

func (c *echoCodec) Optimize(v any, opts codec.Options) (any, error) {
	c.calls.Add(1)
	if c.optimizeErr != nil {
		return nil, c.optimizeErr
	}
	return map[string]any{"wrapped": v, "aggressive": opts.Aggressive}, nil
}

func (c *echoCodec) Restore(v any) (any, error) {
	if c.restoreErr != nil {
		return nil, c.restoreErr
	}
	env, ok := v.(map[string]any)
	if !ok {
		return nil, errors.New("not wrapped")
	}
	return env["wrapped"], nil
}

func newTestPipeline(t *testing.T, c codec.Codec, opts ...Option) *Pipeline {
	t.Helper()
	opts = append([]Option{WithDebounce(25 * time.Millisecond)}, opts...)
	p := New(c, estCounter{}, opts...)
	t.Cleanup(p.Close)
	return p
}

func TestRecompute_MalformedInput(t *testing.T) {
	p := newTestPipeline(t, &echoCodec{})

	p.SetInput(`{"a":1}}`)
	snap := p.RecomputeNow()

	assert.Equal(t, StateInvalid, snap.State)
	require.NotNil(t, snap.Err)
	assert.NotEmpty(t, snap.Err.Message)
	assert.Nil(t, snap.Result)
}

func TestRecompute_BlankInput(t *testing.T) {
	p := newTestPipeline(t, &echoCodec{})

	p.SetInput("   \n\t ")
	snap := p.RecomputeNow()

	assert.Equal(t, StateEmpty, snap.State)
	assert.Nil(t, snap.Err)
	assert.Nil(t, snap.Result)

	stats := p.Stats()
	assert.Equal(t, 0, stats.OutputSize)
	assert.Equal(t, 0, stats.OutputTokens)
	assert.Equal(t, "0.0", stats.TokenSavingsPct)
	assert.Equal(t, "0.0", stats.SavingsPct)
}

func TestRecompute_EmptyStringStats(t *testing.T) {
	p := newTestPipeline(t, &echoCodec{})

	p.SetInput("")
	p.RecomputeNow()

	stats := p.Stats()
	assert.Equal(t, Stats{
		InputSize: 0, OutputSize: 0,
		InputTokens: 0, OutputTokens: 0,
		SavingsPct: "0.0", TokenSavingsPct: "0.0",
	}, stats)
}

func TestRecompute_ValidRoundTrip(t *testing.T) {
	p := newTestPipeline(t, codec.NewZstd())

	p.SetInput(`{"role":"user","content":"hi"}`)
	snap := p.RecomputeNow()

	require.Equal(t, StateValid, snap.State)
	require.NotNil(t, snap.Result)
	assert.Nil(t, snap.Err)

	restored, err := canonicalJSON(snap.Result.Restored)
	require.NoError(t, err)
	assert.Equal(t, `{"content":"hi","role":"user"}`, restored)

	verify, err := p.Verify()
	require.NoError(t, err)
	assert.True(t, verify.Match)
}

func TestRecompute_OptimizeFailureBecomesEditorError(t *testing.T) {
	p := newTestPipeline(t, &echoCodec{optimizeErr: errors.New("unsupported structure")})

	p.SetInput(`{"a":1}`)
	snap := p.RecomputeNow()

	assert.Equal(t, StateInvalid, snap.State)
	require.NotNil(t, snap.Err)
	assert.Contains(t, snap.Err.Message, "unsupported structure")
	assert.Zero(t, snap.Err.Line)
	assert.Nil(t, snap.Result)
}

func TestRecompute_RestoreFailureBecomesEditorError(t *testing.T) {
	p := newTestPipeline(t, &echoCodec{restoreErr: errors.New("corrupt payload")})

	p.SetInput(`{"a":1}`)
	snap := p.RecomputeNow()

	assert.Equal(t, StateInvalid, snap.State)
	require.NotNil(t, snap.Err)
	assert.Contains(t, snap.Err.Message, "corrupt payload")
}

func TestRecompute_RecoversAfterError(t *testing.T) {
	p := newTestPipeline(t, &echoCodec{})

	p.SetInput(`{"broken":`)
	snap := p.RecomputeNow()
	require.Equal(t, StateInvalid, snap.State)

	p.SetInput(`{"fixed":true}`)
	snap = p.RecomputeNow()
	assert.Equal(t, StateValid, snap.State)
	assert.Nil(t, snap.Err)
	require.NotNil(t, snap.Result)
}

func TestEditorError_LineFromSyntaxOffset(t *testing.T) {
	p := newTestPipeline(t, &echoCodec{})

	p.SetInput("{\n  \"a\": 1,\n  \"b\": oops\n}")
	snap := p.RecomputeNow()

	require.Equal(t, StateInvalid, snap.State)
	require.NotNil(t, snap.Err)
	assert.Equal(t, 3, snap.Err.Line)
}

func TestEditorError_LineHintFromMessage(t *testing.T) {
	p := newTestPipeline(t, &echoCodec{optimizeErr: errors.New("cannot encode cycle at line 7")})

	p.SetInput(`{"a":1}`)
	snap := p.RecomputeNow()

	require.NotNil(t, snap.Err)
	assert.Equal(t, 7, snap.Err.Line)
}

func TestDebounce_CoalescesRapidEdits(t *testing.T) {
	ec := &echoCodec{}
	p := newTestPipeline(t, ec)

	var fires atomic.Int32
	var lastInput atomic.Value
	p.Subscribe(func(snap Snapshot) {
		fires.Add(1)
		lastInput.Store(snap.Input)
	})

	for i := 0; i < 10; i++ {
		p.SetInput(fmt.Sprintf(`{"edit":%d}`, i))
	}

	time.Sleep(80 * time.Millisecond)

	assert.Equal(t, int32(1), fires.Load(), "a burst of edits should recompute once")
	assert.Equal(t, int32(1), ec.calls.Load(), "optimize should run once per settled burst")
	assert.Equal(t, `{"edit":9}`, lastInput.Load(), "only the final edit's arguments apply")
}

func TestDebounce_OptionToggleFiresOnce(t *testing.T) {
	p := newTestPipeline(t, &echoCodec{})

	p.SetInput(`{"a":1}`)
	p.RecomputeNow()

	var fires atomic.Int32
	p.Subscribe(func(Snapshot) { fires.Add(1) })

	p.SetOptions(codec.Options{Aggressive: true})
	time.Sleep(80 * time.Millisecond)

	assert.Equal(t, int32(1), fires.Load())
	snap := p.Snapshot()
	require.Equal(t, StateValid, snap.State)
	env := snap.Result.Optimized.(map[string]any)
	assert.Equal(t, true, env["aggressive"])
}

func TestRecompute_Idempotent(t *testing.T) {
	p := newTestPipeline(t, codec.NewZstd())

	p.SetInput(`{"a":1,"b":[true,null,"x"]}`)
	first := p.RecomputeNow()
	second := p.RecomputeNow()

	wantOpt, err := canonicalJSON(first.Result.Optimized)
	require.NoError(t, err)
	gotOpt, err := canonicalJSON(second.Result.Optimized)
	require.NoError(t, err)
	assert.Equal(t, wantOpt, gotOpt)

	assert.Equal(t, p.StatsFor(first), p.StatsFor(second))
}

func TestClose_DiscardsPendingRecompute(t *testing.T) {
	ec := &echoCodec{}
	p := New(ec, estCounter{}, WithDebounce(25*time.Millisecond))

	var fires atomic.Int32
	p.Subscribe(func(Snapshot) { fires.Add(1) })

	p.SetInput(`{"a":1}`)
	p.Close()

	time.Sleep(80 * time.Millisecond)

	assert.Equal(t, int32(0), fires.Load(), "no recompute may apply after Close")
	assert.Equal(t, StateEmpty, p.Snapshot().State)
}

func TestClose_IgnoresLaterSetters(t *testing.T) {
	p := New(&echoCodec{}, estCounter{}, WithDebounce(25*time.Millisecond))
	p.Close()

	p.SetInput(`{"a":1}`)
	p.SetOptions(codec.Options{Unsafe: true})
	snap := p.RecomputeNow()

	assert.Equal(t, StateEmpty, snap.State)
	assert.Empty(t, snap.Input)
}

func TestStats_TokenSavingsOnCompressibleInput(t *testing.T) {
	p := newTestPipeline(t, codec.NewZstd())

	// Repetitive content compresses well below its source size.
	input := `{"log":"`
	for i := 0; i < 200; i++ {
		input += "repeated line of text "
	}
	input += `"}`

	p.SetInput(input)
	snap := p.RecomputeNow()
	require.Equal(t, StateValid, snap.State)

	stats := p.Stats()
	assert.Equal(t, len(input), stats.InputSize)
	assert.Greater(t, stats.InputTokens, 0)
	assert.Greater(t, stats.OutputSize, 0)
	assert.Less(t, stats.OutputSize, stats.InputSize)
	assert.NotEqual(t, "0.0", stats.TokenSavingsPct)
}

func TestStats_InvalidStateZeroesOutputs(t *testing.T) {
	p := newTestPipeline(t, &echoCodec{})

	p.SetInput(`{"broken":`)
	p.RecomputeNow()

	stats := p.Stats()
	assert.Greater(t, stats.InputSize, 0)
	assert.Equal(t, 0, stats.OutputSize)
	assert.Equal(t, 0, stats.OutputTokens)
	assert.Equal(t, "0.0", stats.TokenSavingsPct)
}

func TestVerify_ErrorsAreDistinctFromEditorError(t *testing.T) {
	// Long debounce: the stale-input edit below must not recompute before
	// Verify runs.
	p := newTestPipeline(t, &echoCodec{}, WithDebounce(10*time.Second))

	// Blank input: nothing to verify.
	_, err := p.Verify()
	require.Error(t, err)

	// Valid pipeline state but input mutated to garbage afterwards: the
	// pending recompute has not fired, so Verify sees stale-but-valid output
	// with unparseable input and must report a verification error.
	p.SetInput(`{"a":1}`)
	p.RecomputeNow()
	p.SetInput(`{"a":`)
	_, err = p.Verify()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verify:")

	// Verify never mutates state.
	assert.Equal(t, StateValid, p.Snapshot().State)
}

func TestPersistence_LoadsOnceAndSavesOnChange(t *testing.T) {
	tempDir := t.TempDir()
	paths := config.NewPathsWithOverrides(tempDir, tempDir, tempDir)
	s := store.New(paths)

	s.SaveString(store.KeyInput, `{"restored":"input"}`)
	s.SaveJSON(store.KeyOptions, codec.Options{Unsafe: true})

	p := newTestPipeline(t, &echoCodec{}, WithStore(s))

	snap := p.Snapshot()
	assert.Equal(t, `{"restored":"input"}`, snap.Input)
	assert.True(t, snap.Options.Unsafe)

	p.SetInput(`{"edited":true}`)
	p.SetOptions(codec.Options{Aggressive: true})

	assert.Equal(t, `{"edited":true}`, s.LoadString(store.KeyInput, ""))
	var opts codec.Options
	require.True(t, s.LoadJSON(store.KeyOptions, &opts))
	assert.True(t, opts.Aggressive)
	assert.False(t, opts.Unsafe)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "empty", StateEmpty.String())
	assert.Equal(t, "valid", StateValid.String())
	assert.Equal(t, "invalid", StateInvalid.String())
}
