package neuralnet

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// evalBatch builds N samples over C classes with round-robin labels and
// deterministic feature values.
func evalBatch(n, f, c int) Batch {
	feats := make([]float64, n*f)
	hot := make([]float64, n*c)
	for i := 0; i < n; i++ {
		for j := 0; j < f; j++ {
			feats[i*f+j] = float64((i*7+j*3)%10) / 10.0
		}
		hot[i*c+i%c] = 1.0
	}
	return Batch{
		X: mat.NewDense(n, f, feats),
		Y: mat.NewDense(n, c, hot),
	}
}

func TestEvaluateConfusionSums(t *testing.T) {
	const n, f, c = 20, 3, 4
	cfg := Config{
		InputNeurons:  f,
		HiddenNeurons: 5,
		OutputNeurons: c,
		LearningRate:  0.1,
		NumEpochs:     1,
		Seed:          3,
	}
	net, err := NewNetwork(cfg)
	if err != nil {
		t.Fatal(err)
	}
	b := evalBatch(n, f, c)

	acc, confusion, err := net.Evaluate(b)
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if acc < 0 || acc > 100 {
		t.Errorf("accuracy = %v; want within [0, 100]", acc)
	}
	if len(confusion) != c {
		t.Fatalf("confusion has %d rows; want %d", len(confusion), c)
	}

	total := 0
	for i, row := range confusion {
		if len(row) != c {
			t.Fatalf("confusion row %d has %d cols; want %d", i, len(row), c)
		}
		rowSum := 0
		for _, v := range row {
			if v < 0 {
				t.Errorf("confusion[%d] has negative entry", i)
			}
			rowSum += v
		}
		// Round-robin labels put n/c samples in every class.
		if rowSum != n/c {
			t.Errorf("confusion row %d sums to %d; want %d", i, rowSum, n/c)
		}
		total += rowSum
	}
	if total != n {
		t.Errorf("confusion entries sum to %d; want %d", total, n)
	}
}

func TestEvaluateAccuracyMatchesConfusionDiagonal(t *testing.T) {
	const n, f, c = 12, 2, 3
	net, err := NewNetwork(Config{
		InputNeurons:  f,
		HiddenNeurons: 4,
		OutputNeurons: c,
		LearningRate:  0.1,
		NumEpochs:     1,
		Seed:          5,
	})
	if err != nil {
		t.Fatal(err)
	}
	b := evalBatch(n, f, c)
	acc, confusion, err := net.Evaluate(b)
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	correct := 0
	for i := range confusion {
		correct += confusion[i][i]
	}
	want := float64(correct) / float64(n) * 100
	if acc != want {
		t.Errorf("accuracy = %v; diagonal gives %v", acc, want)
	}
}

func TestEvaluateShapeMismatch(t *testing.T) {
	net, err := NewNetwork(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	bad := Batch{
		X: mat.NewDense(1, 5, make([]float64, 5)),
		Y: mat.NewDense(1, 2, []float64{1, 0}),
	}
	if _, _, err := net.Evaluate(bad); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("Evaluate = %v; want ErrShapeMismatch", err)
	}
}
