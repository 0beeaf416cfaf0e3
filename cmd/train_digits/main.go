package main

import (
	"flag"
	"fmt"
	"log"

	"digitnet/dataset"
	"digitnet/metrics"
	"digitnet/neuralnet"
)

func main() {
	trainPath := flag.String("train", "data/optdigits.tra", "Path to the training set")
	testPath := flag.String("test", "data/optdigits.tes", "Path to the test set")
	inputs := flag.Int("input", 64, "Input layer size (feature columns per row)")
	hidden := flag.Int("hidden", 100, "Hidden layer size")
	lr := flag.Float64("lr", 0.1, "Learning rate")
	epochs := flag.Int("epochs", 100, "Number of training epochs")
	seed := flag.Int64("seed", 1, "PRNG seed for weight initialization")
	logEvery := flag.Int("log-every", 1, "Log every N epochs")

	flag.Parse()

	trainBatch := loadBatch(*trainPath)
	testBatch := loadBatch(*testPath)

	cfg := neuralnet.Config{
		InputNeurons:  *inputs,
		HiddenNeurons: *hidden,
		OutputNeurons: dataset.NumClasses,
		LearningRate:  *lr,
		NumEpochs:     *epochs,
		Seed:          *seed,
	}
	net, err := neuralnet.NewNetwork(cfg)
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	var history metrics.History
	err = net.Train(trainBatch, testBatch, func(epoch int, trainAcc, testAcc float64) {
		history.Record(epoch, trainAcc, testAcc)
		if *logEvery > 0 && (epoch+1)%*logEvery == 0 {
			log.Printf("epoch=%d train_acc=%.2f test_acc=%.2f", epoch, trainAcc, testAcc)
		}
	})
	if err != nil {
		log.Fatalf("training failed: %v", err)
	}

	trainAcc := report("train", net, trainBatch)
	testAcc := report("test", net, testBatch)
	fmt.Printf("combined accuracy = %.2f%%\n", (trainAcc+testAcc)/2)

	if summary, ok := history.Summarize(); ok {
		fmt.Printf("mean accuracy over %d epochs: train %.2f%% test %.2f%%\n",
			history.Len(), summary.MeanTrainAcc, summary.MeanTestAcc)
	}
}

func loadBatch(path string) neuralnet.Batch {
	samples, err := dataset.Load(path)
	if err != nil {
		log.Fatalf("load %s: %v", path, err)
	}
	features, labels, err := dataset.Encode(samples)
	if err != nil {
		log.Fatalf("encode %s: %v", path, err)
	}
	batch, err := neuralnet.FromTensors(features, labels)
	if err != nil {
		log.Fatalf("convert %s: %v", path, err)
	}
	log.Printf("set=%s samples=%d", path, len(samples))
	return batch
}

func report(name string, net *neuralnet.Network, b neuralnet.Batch) float64 {
	acc, confusion, err := net.Evaluate(b)
	if err != nil {
		log.Fatalf("evaluate %s: %v", name, err)
	}
	fmt.Printf("%s accuracy = %.2f%%\n", name, acc)
	fmt.Printf("%s confusion matrix (rows = true class, cols = predicted):\n", name)
	for _, row := range confusion {
		for _, n := range row {
			fmt.Printf("%5d", n)
		}
		fmt.Println()
	}
	return acc
}
