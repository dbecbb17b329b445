package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sridharvn/crimp/internal/config"
	"github.com/Sridharvn/crimp/internal/pipeline"
	"github.com/Sridharvn/crimp/internal/store"
)

func TestNewOptimizeCmd(t *testing.T) {
	cmd := NewOptimizeCmd()

	assert.Equal(t, "optimize [file]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotEmpty(t, cmd.Example)
}

func TestNewOptimizeCmd_Flags(t *testing.T) {
	cmd := NewOptimizeCmd()

	flags := []string{
		"aggressive",
		"unsafe",
		"restore",
		"output",
		"copy",
		"pretty",
	}

	for _, flag := range flags {
		f := cmd.Flags().Lookup(flag)
		require.NotNil(t, f, "flag %q should exist", flag)
	}
}

func TestNewOptimizeCmd_FlagDefaults(t *testing.T) {
	cmd := NewOptimizeCmd()

	aggressive, _ := cmd.Flags().GetBool("aggressive")
	assert.False(t, aggressive)

	unsafe, _ := cmd.Flags().GetBool("unsafe")
	assert.False(t, unsafe)

	output, _ := cmd.Flags().GetString("output")
	assert.Equal(t, "", output)
}

func TestNewOptimizeCmd_ShortFlags(t *testing.T) {
	cmd := NewOptimizeCmd()

	f := cmd.Flags().ShorthandLookup("o")
	require.NotNil(t, f, "short flag o should exist")
	assert.Equal(t, "output", f.Name)
}

func TestSerializeResult(t *testing.T) {
	result := &pipeline.Result{
		Optimized: map[string]any{"$crimp": float64(1), "$data": "abc"},
		Restored:  map[string]any{"name": "test"},
	}

	optimized, err := serializeResult(result, pipeline.ModeOptimized, false)
	require.NoError(t, err)
	assert.JSONEq(t, `{"$crimp":1,"$data":"abc"}`, string(optimized))

	restored, err := serializeResult(result, pipeline.ModeRestored, false)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"test"}`, string(restored))
}

func TestSerializeResult_Pretty(t *testing.T) {
	result := &pipeline.Result{Restored: map[string]any{"a": float64(1)}}

	out, err := serializeResult(result, pipeline.ModeRestored, true)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", string(out))
}

func TestEditorErrorToCommandError(t *testing.T) {
	err := editorErrorToCommandError(&pipeline.EditorError{Message: "unexpected end of JSON input", Line: 3})
	require.Error(t, err)
	assert.Equal(t, "line 3: unexpected end of JSON input", err.Error())

	err = editorErrorToCommandError(&pipeline.EditorError{Message: "optimize failed"})
	require.Error(t, err)
	assert.Equal(t, "optimize failed", err.Error())

	err = editorErrorToCommandError(nil)
	require.Error(t, err)
}

func testStore(t *testing.T) *store.Store {
	t.Helper()
	tmpDir := t.TempDir()
	paths := config.NewPathsWithOverrides(
		filepath.Join(tmpDir, "config"),
		filepath.Join(tmpDir, "cache"),
		filepath.Join(tmpDir, "state"),
	)
	require.NoError(t, os.MkdirAll(paths.StateDir, 0755))
	return store.New(paths)
}

func TestReadInput_FileArg(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "payload.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a":1}`), 0644))

	text, err := readInput([]string{path}, testStore(t))
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, text)
}

func TestReadInput_FileMissing(t *testing.T) {
	_, err := readInput([]string{filepath.Join(t.TempDir(), "nope.json")}, testStore(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.json")
}

func TestReadInput_PersistedScratch(t *testing.T) {
	st := testStore(t)
	st.SaveString(store.KeyInput, `{"from":"scratch"}`)

	text, err := readInput(nil, st)
	require.NoError(t, err)
	assert.Equal(t, `{"from":"scratch"}`, text)
}

func TestReadInput_NothingAvailable(t *testing.T) {
	_, err := readInput(nil, testStore(t))
	require.Error(t, err)
}

func TestSerializeResult_RoundTripsThroughJSON(t *testing.T) {
	result := &pipeline.Result{
		Restored: map[string]any{"nested": map[string]any{"k": "v"}, "n": float64(42)},
	}

	out, err := serializeResult(result, pipeline.ModeRestored, false)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, result.Restored, decoded)
}
