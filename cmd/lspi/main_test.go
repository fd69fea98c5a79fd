package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/golspi/basis"
	"github.com/samuelfneumann/golspi/environment/chain"
	"github.com/samuelfneumann/golspi/experiment/checkpointer"
	"github.com/samuelfneumann/golspi/solver"
)

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v, Default())
	return v
}

func TestDefaultConfig(t *testing.T) {
	assert.NoError(t, Default().Validate())

	c, err := load(newViper())
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadOverrides(t *testing.T) {
	v := newViper()
	v.Set("chain.numstates", 20)
	v.Set("chain.rewardlocation", "Middle")
	v.Set("solver.type", "LSTDQOpt")

	c, err := load(v)
	require.NoError(t, err)
	assert.Equal(t, 20, c.Chain.NumStates)
	assert.Equal(t, chain.Middle, c.Chain.RewardLocation)
	assert.Equal(t, solver.LSTDQOptType, c.Solver.Type)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]interface{}{
		"samples":            0,
		"chain.numstates":    3,
		"policy.discount":    2,
		"learn.epsilon":      0,
		"checkpoint_every":   -1,
		"policy.tiebreaking": "MiddleWins",
		"policy.explore":     math.NaN(),
		"initial_weights":    "Ones",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			v := newViper()
			v.Set(key, value)
			_, err := load(v)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "config.yaml")
	config := strings.Join([]string{
		"basis:",
		"  type: Radial",
		"  gamma: 0.5",
		"  means: [[0], [2], [4]]",
		"learn:",
		"  maxiterations: 5",
	}, "\n")
	require.NoError(t, os.WriteFile(filename, []byte(config), 0644))

	v := newViper()
	v.SetConfigFile(filename)
	require.NoError(t, v.ReadInConfig())

	c, err := load(v)
	require.NoError(t, err)
	assert.Equal(t, basis.RadialType, c.Basis.Type)
	assert.Equal(t, 0.5, c.Basis.Gamma)
	assert.Equal(t, [][]float64{{0}, {2}, {4}}, c.Basis.Means)
	assert.Equal(t, 5, c.Learn.MaxIterations)

	b, err := c.Basis.Create(2)
	require.NoError(t, err)
	assert.Equal(t, 8, b.Size())
}

func TestCreateSolver(t *testing.T) {
	s, err := SolverConfig{Type: solver.LSTDQType,
		PreconditionValue: 0.2}.CreateSolver()
	require.NoError(t, err)
	assert.Equal(t, solver.LSTDQConfig{PreconditionValue: 0.2}, s.Config)

	s, err = SolverConfig{Type: solver.LSTDQOptType,
		PreconditionValue: 0.2}.CreateSolver()
	require.NoError(t, err)
	assert.Equal(t, solver.LSTDQOptType, s.Type)

	_, err = SolverConfig{Type: "GradientTD"}.CreateSolver()
	assert.Error(t, err)

	filename := filepath.Join(t.TempDir(), "solver.json")
	data := `{"Type": "LSTDQOpt", "Config": {"PreconditionValue": 0.5}}`
	require.NoError(t, os.WriteFile(filename, []byte(data), 0644))

	s, err = SolverConfig{File: filename}.CreateSolver()
	require.NoError(t, err)
	assert.Equal(t, solver.LSTDQOptConfig{PreconditionValue: 0.5}, s.Config)

	_, err = SolverConfig{File: filepath.Join(t.TempDir(),
		"missing.json")}.CreateSolver()
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger("debug")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, l.GetLevel())

	_, err = newLogger("loud")
	assert.Error(t, err)
}

func TestPrintPolicy(t *testing.T) {
	d, err := chain.DefaultConfig().Create(1)
	require.NoError(t, err)
	p, err := randomPolicy(d.NumActions(), 1)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, printPolicy(&out, d, p))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, d.NumStates())
	assert.Contains(t, lines[0], "left:")
	assert.Contains(t, lines[0], "right:")
}

func TestInitialWeights(t *testing.T) {
	zero, err := initialWeights(zeroWeights, 4, 1)
	require.NoError(t, err)
	assert.True(t, mat.Equal(mat.NewVecDense(4, nil), zero))

	uniform, err := initialWeights(uniformWeights, 4, 1)
	require.NoError(t, err)
	require.Equal(t, 4, uniform.Len())
	for i := 0; i < uniform.Len(); i++ {
		assert.True(t, uniform.AtVec(i) >= -1 && uniform.AtVec(i) < 1)
	}

	_, err = initialWeights("Ones", 4, 1)
	assert.Error(t, err)
}

func TestLearnFromZeroWeights(t *testing.T) {
	c := Default()
	c.InitialWeights = zeroWeights
	c.Samples = 200
	c.WeightFile = filepath.Join(t.TempDir(), "weights.bin")

	d, samples, err := collect(c, zerolog.Nop())
	require.NoError(t, err)

	learned, err := learn(c, zerolog.Nop(), samples, d.NumActions())
	require.NoError(t, err)
	assert.Equal(t, 8, learned.Weights().Len())
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	sampleFile := filepath.Join(dir, "samples.bin")
	weightFile := filepath.Join(dir, "weights.bin")
	plotFile := filepath.Join(dir, "convergence.html")
	chainPlot := filepath.Join(dir, "chain.png")
	checkpoints := filepath.Join(dir, "checkpoint")

	common := []string{
		"--log-level", "error",
		"--sample-file", sampleFile,
		"--weight-file", weightFile,
		"--samples", "500",
	}

	rootCmd.SetArgs(append([]string{"collect"}, common...))
	require.NoError(t, rootCmd.Execute())
	_, err := os.Stat(sampleFile)
	require.NoError(t, err)

	rootCmd.SetArgs(append([]string{"learn", "--plot-file", plotFile,
		"--checkpoint-every", "1", "--checkpoint-path", checkpoints},
		common...))
	require.NoError(t, rootCmd.Execute())

	weights, err := checkpointer.LoadWeights(weightFile)
	require.NoError(t, err)
	assert.Equal(t, 8, weights.Len())

	first, err := checkpointer.LoadWeights(checkpoints + "1.bin")
	require.NoError(t, err)
	assert.Equal(t, 8, first.Len())

	_, err = os.Stat(plotFile)
	require.NoError(t, err)

	rootCmd.SetArgs(append([]string{"chain", "--chain-plot", chainPlot,
		"--eval-steps", "100", "--plot-file", "", "--checkpoint-every",
		"0"}, common...))
	require.NoError(t, rootCmd.Execute())
	_, err = os.Stat(chainPlot)
	require.NoError(t, err)
}
