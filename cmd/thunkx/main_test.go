package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/thunkx/internal/config"
	"github.com/comalice/thunkx/internal/counter"
	"github.com/comalice/thunkx/host"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--config", writeConfig(t)))
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "thunkx.yml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  output: discard\n"), 0o644))
	return path
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "thunkx dev")
}

func TestVersionCommandJSON(t *testing.T) {
	out, err := execute(t, "version", "--json")
	require.NoError(t, err)

	var info versionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "dev", info.Version)
}

func TestReplayCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
initial: 1
steps:
  - action: {type: add, by: 2}
  - thunk: increment_async
    delay: 1ms
  - wait: true
  - expect: 4
`), 0o644))

	out, err := execute(t, "replay", path)
	require.NoError(t, err)
	assert.Contains(t, out, "count=3")
	assert.Contains(t, out, "final count=4 commits=2")
}

func TestReplayCommandFailsOnExpectation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[steps]]\nexpect = 5\n"), 0o644))

	_, err := execute(t, "replay", path)
	assert.Error(t, err)
}

func TestReplayCommandNeedsScript(t *testing.T) {
	_, err := execute(t, "replay")
	assert.Error(t, err)
}

func TestCounterBindings(t *testing.T) {
	c := config.Counter{Initial: 5, Step: 3, AsyncDelay: time.Second}
	loop := host.NewLoop()
	b := counterBindings(c)
	require.Len(t, b, 5)

	assert.Equal(t, counter.AddAction(3), b[0].Make(loop))
	assert.Equal(t, counter.AddAction(-3), b[1].Make(loop))
	assert.IsType(t, counter.Thunk(nil), b[2].Make(loop))
	assert.Equal(t, counter.ResetAction(5), b[4].Make(loop))
}

func TestRenderCount(t *testing.T) {
	assert.Equal(t, "count: 3\n███", renderCount(counter.Init(3)))
	assert.Equal(t, "count: -2\n", renderCount(counter.Init(-2)))
}
