package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gorgonia.org/tensor"
)

// NumClasses is the number of digit classes.
const NumClasses = 10

var (
	ErrMalformedRow = errors.New("dataset: malformed row")
	ErrInvalidLabel = errors.New("dataset: label out of range")
)

// Sample is one labelled example: real-valued features plus a class
// label in [0, NumClasses).
type Sample struct {
	Features []float64
	Label    int
}

// Load reads a comma-delimited text file with no header row. Every column
// but the last is parsed as a float64 feature; the last column is the
// integer class label. Blank lines are skipped. The first bad row aborts
// the whole load.
func Load(path string) ([]Sample, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var samples []Sample
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		sample, err := parseRow(text)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		samples = append(samples, sample)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}

func parseRow(text string) (Sample, error) {
	tokens := strings.Split(text, ",")
	if len(tokens) < 2 {
		return Sample{}, fmt.Errorf("%w: need at least one feature and a label", ErrMalformedRow)
	}
	features := make([]float64, len(tokens)-1)
	for i, tok := range tokens[:len(tokens)-1] {
		v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
		if err != nil {
			return Sample{}, fmt.Errorf("%w: feature %d: %q", ErrMalformedRow, i, tok)
		}
		features[i] = v
	}
	labelToken := strings.TrimSpace(tokens[len(tokens)-1])
	label, err := strconv.Atoi(labelToken)
	if err != nil {
		return Sample{}, fmt.Errorf("%w: label: %q", ErrMalformedRow, labelToken)
	}
	if label < 0 || label >= NumClasses {
		return Sample{}, fmt.Errorf("%w: %d", ErrInvalidLabel, label)
	}
	return Sample{Features: features, Label: label}, nil
}

// Encode materializes samples as an (N, F) feature tensor and an
// (N, NumClasses) one-hot label tensor. Row i of both corresponds to
// samples[i]; each label row carries a single 1 at the label's column.
func Encode(samples []Sample) (*tensor.Dense, *tensor.Dense, error) {
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("%w: empty dataset", ErrMalformedRow)
	}
	cols := len(samples[0].Features)
	feats := make([]float64, len(samples)*cols)
	hot := make([]float64, len(samples)*NumClasses)
	for i, s := range samples {
		if len(s.Features) != cols {
			return nil, nil, fmt.Errorf("%w: row %d has %d features, want %d", ErrMalformedRow, i, len(s.Features), cols)
		}
		if s.Label < 0 || s.Label >= NumClasses {
			return nil, nil, fmt.Errorf("%w: row %d: %d", ErrInvalidLabel, i, s.Label)
		}
		copy(feats[i*cols:(i+1)*cols], s.Features)
		hot[i*NumClasses+s.Label] = 1.0
	}
	features := tensor.New(tensor.WithShape(len(samples), cols), tensor.WithBacking(feats))
	labels := tensor.New(tensor.WithShape(len(samples), NumClasses), tensor.WithBacking(hot))
	return features, labels, nil
}
