// Command train_digits trains a two-layer sigmoid perceptron on a
// comma-delimited digit dataset and prints per-epoch accuracy, final
// train/test accuracy and the confusion matrices.
package main
