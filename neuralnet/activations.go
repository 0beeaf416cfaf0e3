package neuralnet

import "math"

// sigmoid is the logistic function 1/(1+e^-x). The split on sign keeps
// e^-x from overflowing for large-magnitude inputs.
func sigmoid(x float64) float64 {
	if x >= 0 {
		return 1.0 / (1.0 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1.0 + e)
}

// sigmoidPrime is the sigmoid derivative expressed through the activation
// value a rather than the preactivation: a * (1 - a).
func sigmoidPrime(a float64) float64 {
	return a * (1 - a)
}
