package neuralnet

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"
)

// Batch is an encoded dataset: features X of shape (N, F) and one-hot
// labels Y of shape (N, C). Row i of both describes the same sample.
type Batch struct {
	X *mat.Dense
	Y *mat.Dense
}

// FromTensors adapts the dataset package's feature and label tensors into
// a Batch of gonum matrices.
func FromTensors(features, labels *tensor.Dense) (Batch, error) {
	x, err := denseFromTensor(features)
	if err != nil {
		return Batch{}, fmt.Errorf("features: %w", err)
	}
	y, err := denseFromTensor(labels)
	if err != nil {
		return Batch{}, fmt.Errorf("labels: %w", err)
	}
	xRows, _ := x.Dims()
	yRows, _ := y.Dims()
	if xRows != yRows {
		return Batch{}, fmt.Errorf("%w: %d feature rows vs %d label rows", ErrShapeMismatch, xRows, yRows)
	}
	return Batch{X: x, Y: y}, nil
}

func denseFromTensor(t *tensor.Dense) (*mat.Dense, error) {
	shape := t.Shape()
	if len(shape) != 2 {
		return nil, fmt.Errorf("%w: want a matrix, got shape %v", ErrShapeMismatch, shape)
	}
	data, ok := t.Data().([]float64)
	if !ok {
		return nil, fmt.Errorf("%w: want a float64 backing, got %T", ErrShapeMismatch, t.Data())
	}
	// Copy so the returned matrix does not alias the tensor's backing.
	backing := make([]float64, len(data))
	copy(backing, data)
	return mat.NewDense(shape[0], shape[1], backing), nil
}
