package metrics

import "gonum.org/v1/gonum/floats"

// Epoch is one row of training progress. It is reporting-only state and
// feeds nothing back into training.
type Epoch struct {
	Index    int
	TrainAcc float64
	TestAcc  float64
}

// History accumulates per-epoch accuracy across a run.
type History struct {
	epochs []Epoch
}

// Record appends one epoch's accuracy pair.
func (h *History) Record(index int, trainAcc, testAcc float64) {
	h.epochs = append(h.epochs, Epoch{Index: index, TrainAcc: trainAcc, TestAcc: testAcc})
}

// Len reports the number of recorded epochs.
func (h *History) Len() int {
	return len(h.epochs)
}

// Epochs returns the recorded progress in epoch order.
func (h *History) Epochs() []Epoch {
	return h.epochs
}

// Summary aggregates a finished run.
type Summary struct {
	FinalTrainAcc float64
	FinalTestAcc  float64
	Combined      float64 // average of the final train and test accuracy
	MeanTrainAcc  float64
	MeanTestAcc   float64
}

// Summarize returns run aggregates, or false when no epochs were recorded.
func (h *History) Summarize() (Summary, bool) {
	if len(h.epochs) == 0 {
		return Summary{}, false
	}
	train := make([]float64, len(h.epochs))
	test := make([]float64, len(h.epochs))
	for i, e := range h.epochs {
		train[i] = e.TrainAcc
		test[i] = e.TestAcc
	}
	last := h.epochs[len(h.epochs)-1]
	return Summary{
		FinalTrainAcc: last.TrainAcc,
		FinalTestAcc:  last.TestAcc,
		Combined:      (last.TrainAcc + last.TestAcc) / 2,
		MeanTrainAcc:  floats.Sum(train) / float64(len(train)),
		MeanTestAcc:   floats.Sum(test) / float64(len(test)),
	}, true
}
