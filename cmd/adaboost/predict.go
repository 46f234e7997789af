package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/xh3b4sd/tracer"

	"github.com/DhanusML/oneDAL-dhanus/adaboost"
)

func newPredictCommand(stdout io.Writer, stderr io.Writer) *commander.Command {
	cmd := &commander.Command{
		UsageLine: "predict [options] -if test_file -m model_file -of output_file",
		Short:     "classify instances with an AdaBoost model",
		Long: `
predict labels every instance of a libsvm formatted file and reports the
accuracy against the labels found in that file.

ex:
 $ adaboost predict -if heart_scale.t -m heart_scale.model -of out.txt -scores
`,
		Flag: *flag.NewFlagSet("adaboost-predict", flag.ContinueOnError),
	}

	input := cmd.Flag.String("if", "", "input filename")
	modelFile := cmd.Flag.String("m", "", "model filename")
	output := cmd.Flag.String("of", "", "output filename")
	scores := cmd.Flag.Bool("scores", false, "also write the vote share of every label")
	workers := cmd.Flag.Int("j", 0, "number of prediction workers (default: GOMAXPROCS)")
	quiet := cmd.Flag.Bool("q", false, "quiet mode (no outputs)")

	cmd.Run = func(cmd *commander.Command, args []string) error {
		setupLogging(stderr, *quiet)

		if *input == "" || *modelFile == "" || *output == "" {
			cmd.Usage()
			return fmt.Errorf("missing input, model or output filename: %w", adaboost.ErrInvalidParameter)
		}

		model, err := adaboost.LoadModelFile(*modelFile)
		if err != nil {
			return err
		}
		prob, err := readProblemFile(*input)
		if err != nil {
			return err
		}
		if prob.L == 0 {
			return fmt.Errorf("%s has no instances: %w", *input, adaboost.ErrInvalidProblem)
		}

		out, err := os.Create(*output)
		if err != nil {
			return tracer.Mask(err)
		}
		defer out.Close()

		w := bufio.NewWriter(out)
		correct, err := doPredict(w, model, prob, *scores, *workers)
		if err != nil {
			return err
		}
		if err := w.Flush(); err != nil {
			return tracer.Mask(err)
		}
		if err := out.Close(); err != nil {
			return tracer.Mask(err)
		}

		if !*quiet {
			fmt.Fprintf(stdout, "Accuracy = %g%% (%d/%d)\n", 100*float64(correct)/float64(prob.L), correct, prob.L)
		}
		return nil
	}

	return cmd
}

// doPredict writes one predicted label per instance of prob to w and returns
// the number of correct predictions. With scores set every line also carries
// the vote share per model label, announced by a "labels" header line.
func doPredict(w io.Writer, model *adaboost.Model, prob *adaboost.Problem, scores bool, workers int) (int, error) {
	predictor, err := weakPredictor(model)
	if err != nil {
		return 0, err
	}

	ctx := adaboost.NewContext()
	defer ctx.Dispose()

	batch, err := adaboost.NewPredictionBatch(ctx)
	if err != nil {
		return 0, err
	}
	batch.Workers = workers
	if err := batch.Parameter.SetWeakLearnerPrediction(predictor); err != nil {
		return 0, err
	}

	var correct int
	if !scores {
		predictions, err := batch.Compute(context.Background(), model, prob.X)
		if err != nil {
			return 0, err
		}
		for i, p := range predictions {
			if p == prob.Y[i] {
				correct++
			}
			if _, err := fmt.Fprintf(w, "%g\n", p); err != nil {
				return 0, tracer.Mask(err)
			}
		}
		return correct, nil
	}

	if _, err := io.WriteString(w, "labels"); err != nil {
		return 0, tracer.Mask(err)
	}
	for _, l := range model.Labels {
		fmt.Fprintf(w, " %d", l)
	}
	io.WriteString(w, "\n")

	for i, x := range prob.X {
		p, votes, err := adaboost.PredictScores(model, batch.Parameter, x)
		if err != nil {
			return 0, fmt.Errorf("instance %d: %w", i, err)
		}
		if p == prob.Y[i] {
			correct++
		}

		fmt.Fprintf(w, "%g", p)
		for _, v := range votes {
			fmt.Fprintf(w, " %g", v)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return 0, tracer.Mask(err)
		}
	}

	return correct, nil
}
