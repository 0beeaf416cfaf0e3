package neuralnet

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Evaluate runs a single forward pass over b and reports the accuracy in
// percent together with the confusion matrix, indexed [true][predicted].
// Predicted and true classes are both decoded by arg-max, so tie-breaking
// is identical on both sides.
func (n *Network) Evaluate(b Batch) (float64, [][]int, error) {
	_, f := b.X.Dims()
	if f != n.config.InputNeurons {
		return 0, nil, fmt.Errorf("%w: batch has %d features, network expects %d", ErrShapeMismatch, f, n.config.InputNeurons)
	}
	_, c := b.Y.Dims()
	if c != n.config.OutputNeurons {
		return 0, nil, fmt.Errorf("%w: batch labels have %d classes, network expects %d", ErrShapeMismatch, c, n.config.OutputNeurons)
	}

	_, out := n.Feedforward(b.X)
	rows, _ := out.Dims()

	confusion := make([][]int, n.config.OutputNeurons)
	for i := range confusion {
		confusion[i] = make([]int, n.config.OutputNeurons)
	}
	correct := 0
	for i := 0; i < rows; i++ {
		predicted := argmax(mat.Row(nil, i, out))
		truth := argmax(mat.Row(nil, i, b.Y))
		confusion[truth][predicted]++
		if predicted == truth {
			correct++
		}
	}
	if rows == 0 {
		return 0, confusion, nil
	}
	return float64(correct) / float64(rows) * 100, confusion, nil
}
