package neuralnet

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrShapeMismatch = errors.New("neuralnet: shape mismatch")
	ErrDiverged      = errors.New("neuralnet: parameters diverged")
)

// Config fixes the architecture and the training hyperparameters for a run.
type Config struct {
	InputNeurons  int
	HiddenNeurons int
	OutputNeurons int
	LearningRate  float64
	NumEpochs     int
	Seed          int64
}

// Validate verifies the config describes a trainable network.
func (c Config) Validate() error {
	if c.InputNeurons <= 0 {
		return fmt.Errorf("input neurons must be > 0 (got %d)", c.InputNeurons)
	}
	if c.HiddenNeurons <= 0 {
		return fmt.Errorf("hidden neurons must be > 0 (got %d)", c.HiddenNeurons)
	}
	if c.OutputNeurons <= 0 {
		return fmt.Errorf("output neurons must be > 0 (got %d)", c.OutputNeurons)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning rate must be > 0 (got %g)", c.LearningRate)
	}
	if c.NumEpochs < 0 {
		return fmt.Errorf("epochs must be >= 0 (got %d)", c.NumEpochs)
	}
	return nil
}

// Network is a two-layer perceptron: input to hidden and hidden to output,
// both layers sigmoid-activated. The four parameter matrices are owned by
// the network and mutated in place by Backpropagate only.
type Network struct {
	config  Config
	wHidden *mat.Dense // F x H
	bHidden *mat.Dense // 1 x H
	wOut    *mat.Dense // H x C
	bOut    *mat.Dense // 1 x C
}

// NewNetwork initializes all weights and biases uniformly in [-0.5, 0.5)
// from a generator seeded with cfg.Seed, so runs are reproducible per seed.
func NewNetwork(cfg Config) (*Network, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	uniform := func(n int) []float64 {
		vals := make([]float64, n)
		for i := range vals {
			vals[i] = rng.Float64() - 0.5
		}
		return vals
	}
	return &Network{
		config:  cfg,
		wHidden: mat.NewDense(cfg.InputNeurons, cfg.HiddenNeurons, uniform(cfg.InputNeurons*cfg.HiddenNeurons)),
		bHidden: mat.NewDense(1, cfg.HiddenNeurons, uniform(cfg.HiddenNeurons)),
		wOut:    mat.NewDense(cfg.HiddenNeurons, cfg.OutputNeurons, uniform(cfg.HiddenNeurons*cfg.OutputNeurons)),
		bOut:    mat.NewDense(1, cfg.OutputNeurons, uniform(cfg.OutputNeurons)),
	}, nil
}

// Config returns the configuration the network was built with.
func (n *Network) Config() Config {
	return n.config
}

// Feedforward computes the hidden and output activations for x (N x F)
// under the current parameters. It does not touch network state.
func (n *Network) Feedforward(x mat.Matrix) (hidden, out *mat.Dense) {
	hidden = new(mat.Dense)
	hidden.Mul(x, n.wHidden)
	hidden.Apply(func(_, col int, v float64) float64 {
		return sigmoid(v + n.bHidden.At(0, col))
	}, hidden)

	out = new(mat.Dense)
	out.Mul(hidden, n.wOut)
	out.Apply(func(_, col int, v float64) float64 {
		return sigmoid(v + n.bOut.At(0, col))
	}, out)
	return hidden, out
}

// Backpropagate applies one full-batch parameter update in place, given the
// activations from a Feedforward over the same x. The update is additive on
// the error taken as target minus output; that sign is part of the trained
// behaviour and must not be flipped to the usual descent form.
func (n *Network) Backpropagate(x, y mat.Matrix, hidden, out *mat.Dense) {
	outputError := new(mat.Dense)
	outputError.Sub(y, out)

	outputDelta := new(mat.Dense)
	outputDelta.Apply(func(r, c int, v float64) float64 {
		return v * sigmoidPrime(out.At(r, c))
	}, outputError)

	hiddenError := new(mat.Dense)
	hiddenError.Mul(outputDelta, n.wOut.T())

	hiddenDelta := new(mat.Dense)
	hiddenDelta.Apply(func(r, c int, v float64) float64 {
		return v * sigmoidPrime(hidden.At(r, c))
	}, hiddenError)

	eta := n.config.LearningRate

	wOutAdj := new(mat.Dense)
	wOutAdj.Mul(hidden.T(), outputDelta)
	wOutAdj.Scale(eta, wOutAdj)
	n.wOut.Add(n.wOut, wOutAdj)

	bOutAdj := sumColumns(outputDelta)
	bOutAdj.Scale(eta, bOutAdj)
	n.bOut.Add(n.bOut, bOutAdj)

	wHiddenAdj := new(mat.Dense)
	wHiddenAdj.Mul(x.T(), hiddenDelta)
	wHiddenAdj.Scale(eta, wHiddenAdj)
	n.wHidden.Add(n.wHidden, wHiddenAdj)

	bHiddenAdj := sumColumns(hiddenDelta)
	bHiddenAdj.Scale(eta, bHiddenAdj)
	n.bHidden.Add(n.bHidden, bHiddenAdj)
}

// Train runs cfg.NumEpochs full-batch passes over train, measuring training
// accuracy from each epoch's forward output and test accuracy from a fresh
// forward pass over test with the just-updated parameters. report, if
// non-nil, is invoked once per epoch. With NumEpochs == 0 the freshly
// initialized parameters are returned untouched.
func (n *Network) Train(train, test Batch, report func(epoch int, trainAcc, testAcc float64)) error {
	if err := n.checkShapes(train, test); err != nil {
		return err
	}
	for epoch := 0; epoch < n.config.NumEpochs; epoch++ {
		hidden, out := n.Feedforward(train.X)
		n.Backpropagate(train.X, train.Y, hidden, out)
		if err := n.checkFinite(); err != nil {
			return fmt.Errorf("epoch %d: %w", epoch, err)
		}
		trainAcc := accuracyPercent(out, train.Y)
		_, testOut := n.Feedforward(test.X)
		testAcc := accuracyPercent(testOut, test.Y)
		if report != nil {
			report(epoch, trainAcc, testAcc)
		}
	}
	return nil
}

func (n *Network) checkShapes(train, test Batch) error {
	_, trainF := train.X.Dims()
	_, testF := test.X.Dims()
	if trainF != n.config.InputNeurons {
		return fmt.Errorf("%w: train set has %d features, network expects %d", ErrShapeMismatch, trainF, n.config.InputNeurons)
	}
	if testF != trainF {
		return fmt.Errorf("%w: test set has %d features, train set has %d", ErrShapeMismatch, testF, trainF)
	}
	for _, b := range []struct {
		name  string
		batch Batch
	}{{"train", train}, {"test", test}} {
		xRows, _ := b.batch.X.Dims()
		yRows, yCols := b.batch.Y.Dims()
		if yCols != n.config.OutputNeurons {
			return fmt.Errorf("%w: %s labels have %d classes, network expects %d", ErrShapeMismatch, b.name, yCols, n.config.OutputNeurons)
		}
		if xRows != yRows {
			return fmt.Errorf("%w: %s set has %d feature rows vs %d label rows", ErrShapeMismatch, b.name, xRows, yRows)
		}
	}
	return nil
}

// checkFinite guards against a diverging run: a learning rate or layer
// width large enough to blow up the updates surfaces as NaN or Inf in the
// parameters, which would otherwise propagate silently.
func (n *Network) checkFinite() error {
	for _, m := range []*mat.Dense{n.wHidden, n.bHidden, n.wOut, n.bOut} {
		for _, v := range m.RawMatrix().Data {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return ErrDiverged
			}
		}
	}
	return nil
}

// sumColumns collapses m into a 1 x C row vector of per-column sums.
func sumColumns(m *mat.Dense) *mat.Dense {
	_, cols := m.Dims()
	sums := make([]float64, cols)
	for j := 0; j < cols; j++ {
		sums[j] = floats.Sum(mat.Col(nil, j, m))
	}
	return mat.NewDense(1, cols, sums)
}

// argmax returns the index of the largest value; ties go to the lowest index.
func argmax(vals []float64) int {
	best := 0
	for i := 1; i < len(vals); i++ {
		if vals[i] > vals[best] {
			best = i
		}
	}
	return best
}

// accuracyPercent is the fraction of rows whose predicted arg-max matches
// the target arg-max, in percent.
func accuracyPercent(out, y mat.Matrix) float64 {
	rows, _ := out.Dims()
	if rows == 0 {
		return 0
	}
	correct := 0
	for i := 0; i < rows; i++ {
		if argmax(mat.Row(nil, i, out)) == argmax(mat.Row(nil, i, y)) {
			correct++
		}
	}
	return float64(correct) / float64(rows) * 100
}
