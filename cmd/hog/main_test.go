package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/hog/internal/config"
)

func quickConfig() config.Config {
	cfg := config.Default()
	cfg.Game.Seed = 1
	cfg.Experiments.Samples = 2
	return cfg
}

func TestRun_DefaultSuite(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), quickConfig(), zap.NewNop(), &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 6)
	for i, prefix := range []string{
		"Max scoring num rolls for six-sided dice: ",
		"Max scoring num rolls for four-sided dice: ",
		"always_roll(8) win rate: ",
		"bacon_strategy win rate: ",
		"swap_strategy win rate: ",
		"final_strategy win rate: ",
	} {
		assert.True(t, strings.HasPrefix(lines[i], prefix), "line %d = %q", i, lines[i])
	}
}

func TestRun_SeededIsReproducible(t *testing.T) {
	var first, second bytes.Buffer
	require.NoError(t, run(context.Background(), quickConfig(), zap.NewNop(), &first))
	require.NoError(t, run(context.Background(), quickConfig(), zap.NewNop(), &second))
	assert.Equal(t, first.String(), second.String())
}

func TestRun_LuaStrategiesAndCustomSuite(t *testing.T) {
	dir := t.TempDir()
	suitePath := filepath.Join(dir, "suite.yaml")
	require.NoError(t, os.WriteFile(suitePath, []byte(`
experiments:
  - name: cautious
    kind: win_rate
    strategy:
      name: cautious
    baseline:
      name: swap_hunter
`), 0644))

	cfg := quickConfig()
	cfg.Scripting.Dir = filepath.Join("..", "..", "content", "strategies")
	cfg.Experiments.Suite = suitePath

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, zap.NewNop(), &out))
	assert.True(t, strings.HasPrefix(out.String(), "cautious win rate: "), out.String())
}

func TestRun_UnknownStrategyFails(t *testing.T) {
	dir := t.TempDir()
	suitePath := filepath.Join(dir, "suite.yaml")
	require.NoError(t, os.WriteFile(suitePath, []byte(`
experiments:
  - name: ghost
    kind: win_rate
    strategy:
      name: ghost
`), 0644))

	cfg := quickConfig()
	cfg.Experiments.Suite = suitePath
	var out bytes.Buffer
	assert.Error(t, run(context.Background(), cfg, zap.NewNop(), &out))
	assert.Empty(t, out.String())
}

func TestRun_MissingSuiteFile(t *testing.T) {
	cfg := quickConfig()
	cfg.Experiments.Suite = "/nonexistent/suite.yaml"
	assert.Error(t, run(context.Background(), cfg, zap.NewNop(), &bytes.Buffer{}))
}

func TestRun_MissingScriptDir(t *testing.T) {
	cfg := quickConfig()
	cfg.Scripting.Dir = "/nonexistent/strategies"
	assert.Error(t, run(context.Background(), cfg, zap.NewNop(), &bytes.Buffer{}))
}

// bufferedSink holds writes until Sync, like a buffered file or pipe.
type bufferedSink struct {
	pending bytes.Buffer
	flushed bytes.Buffer
	syncs   int
}

func (b *bufferedSink) Write(p []byte) (int, error) { return b.pending.Write(p) }

func (b *bufferedSink) Sync() error {
	b.syncs++
	_, err := b.pending.WriteTo(&b.flushed)
	return err
}

func TestFail_FlushesLoggerBeforeExit(t *testing.T) {
	sink := &bufferedSink{}
	logger := zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), sink, zap.DebugLevel))
	var stderr bytes.Buffer

	code := fail(logger, &stderr, errors.New("unknown strategy \"ghost\""))
	assert.Equal(t, 1, code)
	assert.Equal(t, 1, sink.syncs)
	assert.Empty(t, sink.pending.String())
	assert.Contains(t, sink.flushed.String(), "experiments failed")
	assert.Equal(t, "error: unknown strategy \"ghost\"\n", stderr.String())
}
