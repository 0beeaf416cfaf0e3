package neuralnet

import (
	"math"
	"testing"
)

func TestSigmoidAtZero(t *testing.T) {
	if got := sigmoid(0); got != 0.5 {
		t.Errorf("sigmoid(0) = %v; want exactly 0.5", got)
	}
}

func TestSigmoidRange(t *testing.T) {
	for x := -30.0; x <= 30.0; x += 0.5 {
		got := sigmoid(x)
		if got <= 0 || got >= 1 {
			t.Errorf("sigmoid(%v) = %v; want strictly inside (0, 1)", x, got)
		}
	}
}

func TestSigmoidExtremes(t *testing.T) {
	for _, x := range []float64{-1000, -50, 50, 1000} {
		got := sigmoid(x)
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Fatalf("sigmoid(%v) = %v; want finite", x, got)
		}
		if got < 0 || got > 1 {
			t.Errorf("sigmoid(%v) = %v; want within [0, 1]", x, got)
		}
	}
	if sigmoid(50) <= sigmoid(-50) {
		t.Error("sigmoid is not increasing across the extremes")
	}
}

func TestSigmoidPrime(t *testing.T) {
	if got := sigmoidPrime(0.5); got != 0.25 {
		t.Errorf("sigmoidPrime(0.5) = %v; want 0.25", got)
	}
	if got := sigmoidPrime(0); got != 0 {
		t.Errorf("sigmoidPrime(0) = %v; want 0", got)
	}
	if got := sigmoidPrime(1); got != 0 {
		t.Errorf("sigmoidPrime(1) = %v; want 0", got)
	}
}
