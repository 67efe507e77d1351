package experiment_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/hog/internal/experiment"
)

func TestDefaultSuite(t *testing.T) {
	s := experiment.DefaultSuite()
	require.Len(t, s.Experiments, 6)

	var labels []string
	for _, d := range s.Experiments {
		labels = append(labels, d.DisplayLabel())
	}
	assert.Equal(t, []string{
		"Max scoring num rolls for six-sided dice",
		"Max scoring num rolls for four-sided dice",
		"always_roll(8) win rate",
		"bacon_strategy win rate",
		"swap_strategy win rate",
		"final_strategy win rate",
	}, labels)
}

func TestLoadSuite_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "suite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
experiments:
  - name: best_d4
    kind: max_scoring_num_rolls
    dice: hog_wild
    samples: 20
  - name: bacon_vs_final
    kind: win_rate
    strategy:
      name: bacon
      margin: 6
    baseline:
      name: final
`), 0644))

	s, err := experiment.LoadSuite(path)
	require.NoError(t, err)
	require.Len(t, s.Experiments, 2)
	assert.Equal(t, experiment.KindMaxScoringNumRolls, s.Experiments[0].Kind)
	assert.Equal(t, 20, s.Experiments[0].Samples)
	assert.Equal(t, "best_d4", s.Experiments[0].DisplayLabel())

	wr := s.Experiments[1]
	require.NotNil(t, wr.Strategy)
	require.NotNil(t, wr.Strategy.Margin)
	assert.Equal(t, 6, *wr.Strategy.Margin)
	assert.Equal(t, "final", wr.Baseline.Name)
	assert.Equal(t, "bacon(margin=6) win rate", wr.DisplayLabel())
}

func TestLoadSuite_MissingFile(t *testing.T) {
	_, err := experiment.LoadSuite("/nonexistent/suite.yaml")
	assert.Error(t, err)
}

func TestParseSuite_Invalid(t *testing.T) {
	for name, doc := range map[string]string{
		"not yaml":         "experiments: [",
		"empty":            "experiments: []",
		"missing name":     "experiments:\n  - kind: win_rate\n    strategy: {name: final}\n",
		"unknown kind":     "experiments:\n  - name: x\n    kind: coin_flip\n",
		"bad dice":         "experiments:\n  - name: x\n    kind: max_scoring_num_rolls\n    dice: d20\n",
		"no strategy":      "experiments:\n  - name: x\n    kind: win_rate\n",
		"nameless base":    "experiments:\n  - name: x\n    kind: win_rate\n    strategy: {name: final}\n    baseline: {num_rolls: 3}\n",
		"negative samples": "experiments:\n  - name: x\n    kind: max_scoring_num_rolls\n    dice: standard\n    samples: -1\n",
		"duplicate names": `experiments:
  - name: x
    kind: max_scoring_num_rolls
    dice: standard
  - name: x
    kind: max_scoring_num_rolls
    dice: hog_wild
`,
	} {
		_, err := experiment.ParseSuite([]byte(doc))
		assert.Error(t, err, name)
	}
}
