package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/xh3b4sd/tracer"

	"github.com/DhanusML/oneDAL-dhanus/adaboost"
)

type trainFlags struct {
	input   *string
	output  *string
	config  *string
	metrics *string

	threshold    *float64
	iterations   *int
	learningRate *float64
	learner      *string
	cost         *float64
	eps          *float64

	nrFold *int
	seed   *int64
	quiet  *bool
}

func newTrainCommand(stdout io.Writer, stderr io.Writer) *commander.Command {
	cmd := &commander.Command{
		UsageLine: "train [options] -if training_set_file [-of model_file]",
		Short:     "train an AdaBoost model",
		Long: `
train reads a training set in libsvm format and writes the boosted model.

Options given on the command line override those of the -config file.

ex:
 $ adaboost train -if heart_scale -of heart_scale.model -i 50 -r 0.5
 $ adaboost train -if heart_scale -v 5
`,
		Flag: *flag.NewFlagSet("adaboost-train", flag.ContinueOnError),
	}

	def := defaultConfig()
	f := trainFlags{
		input:   cmd.Flag.String("if", "", "input filename"),
		output:  cmd.Flag.String("of", "", "model filename (default: input filename + \".model\")"),
		config:  cmd.Flag.String("config", "", "YAML configuration file"),
		metrics: cmd.Flag.String("metrics", "", "write training metrics in the prometheus text format to this file"),

		threshold:    cmd.Flag.Float64("a", def.AccuracyThreshold, "stop when the training error falls below this accuracy threshold"),
		iterations:   cmd.Flag.Int("i", def.MaxIterations, "maximum number of boosting rounds"),
		learningRate: cmd.Flag.Float64("r", def.LearningRate, "learning rate scaling every learner weight"),
		learner:      cmd.Flag.String("w", def.WeakLearner.Kind, "weak learner: stump or logistic"),
		cost:         cmd.Flag.Float64("c", def.WeakLearner.C, "cost C of the logistic weak learner"),
		eps:          cmd.Flag.Float64("e", def.WeakLearner.Eps, "tolerance of the logistic weak learner"),

		nrFold: cmd.Flag.Int("v", 0, "n-fold cross validation mode"),
		seed:   cmd.Flag.Int64("seed", 1, "seed of the cross validation shuffle"),
		quiet:  cmd.Flag.Bool("q", false, "quiet mode (no outputs)"),
	}

	cmd.Run = func(cmd *commander.Command, args []string) error {
		return runTrain(cmd, f, stdout, stderr)
	}

	return cmd
}

func runTrain(cmd *commander.Command, f trainFlags, stdout io.Writer, stderr io.Writer) error {
	setupLogging(stderr, *f.quiet)

	if *f.input == "" {
		cmd.Usage()
		return fmt.Errorf("missing input filename: %w", adaboost.ErrInvalidParameter)
	}

	cfg := defaultConfig()
	if *f.config != "" {
		var err error
		if cfg, err = loadConfig(*f.config); err != nil {
			return err
		}
	}
	cmd.Flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "a":
			cfg.AccuracyThreshold = *f.threshold
		case "i":
			cfg.MaxIterations = *f.iterations
		case "r":
			cfg.LearningRate = *f.learningRate
		case "w":
			cfg.WeakLearner.Kind = *f.learner
		case "c":
			cfg.WeakLearner.C = *f.cost
		case "e":
			cfg.WeakLearner.Eps = *f.eps
		}
	})

	ctx := adaboost.NewContext()
	defer ctx.Dispose()

	batch, err := adaboost.NewTrainingBatch(ctx)
	if err != nil {
		return err
	}
	if err := cfg.apply(batch.Parameter); err != nil {
		return err
	}

	prob, err := readProblemFile(*f.input)
	if err != nil {
		return err
	}

	if *f.nrFold != 0 {
		target, err := adaboost.CrossValidation(prob, batch.Parameter, *f.nrFold, *f.seed)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Cross Validation Accuracy = %g%%\n", 100*adaboost.Accuracy(prob.Y, target))
	} else {
		model, err := batch.Compute(prob)
		if err != nil {
			return err
		}

		output := *f.output
		if output == "" {
			output = *f.input + ".model"
		}
		if err := adaboost.SaveModelFile(output, model); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "model %s: %d learners written to %s\n", model.ID, model.NumLearners(), output)
	}

	if *f.metrics != "" {
		if err := writeMetrics(*f.metrics); err != nil {
			return err
		}
	}

	return nil
}

func readProblemFile(path string) (*adaboost.Problem, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, tracer.Mask(err)
	}
	defer file.Close()

	prob, err := adaboost.ReadProblem(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return prob, nil
}

func writeMetrics(path string) error {
	registry := prometheus.NewRegistry()
	for _, c := range adaboost.Collectors() {
		if err := registry.Register(c); err != nil {
			return tracer.Mask(err)
		}
	}

	if err := prometheus.WriteToTextfile(path, registry); err != nil {
		return tracer.Mask(err)
	}
	return nil
}
