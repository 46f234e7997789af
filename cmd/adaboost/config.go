package main

import (
	"fmt"
	"os"

	"github.com/xh3b4sd/tracer"
	"gopkg.in/yaml.v3"

	"github.com/DhanusML/oneDAL-dhanus/adaboost"
)

// Config is the training configuration read from a YAML file. Command line
// flags take precedence over values from the file.
//
//	accuracy_threshold: 0.01
//	max_iterations: 50
//	learning_rate: 0.5
//	weak_learner:
//	  kind: logistic
//	  c: 1
//	  eps: 0.01
//	  max_iterations: 100
type Config struct {
	AccuracyThreshold float64           `yaml:"accuracy_threshold"`
	MaxIterations     int               `yaml:"max_iterations"`
	LearningRate      float64           `yaml:"learning_rate"`
	WeakLearner       WeakLearnerConfig `yaml:"weak_learner"`
}

// WeakLearnerConfig selects the weak learner. C, Eps and MaxIterations only
// apply to the logistic learner.
type WeakLearnerConfig struct {
	Kind          string  `yaml:"kind"`
	C             float64 `yaml:"c"`
	Eps           float64 `yaml:"eps"`
	MaxIterations int     `yaml:"max_iterations"`
}

func defaultConfig() Config {
	return Config{
		AccuracyThreshold: 0,
		MaxIterations:     100,
		LearningRate:      1,
		WeakLearner: WeakLearnerConfig{
			Kind:          adaboost.StumpKind,
			C:             1,
			Eps:           0.01,
			MaxIterations: 1000,
		},
	}
}

// loadConfig overlays the file at path on the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	byt, err := os.ReadFile(path)
	if err != nil {
		return cfg, tracer.Mask(err)
	}

	if err := yaml.Unmarshal(byt, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// apply copies the configuration into param.
func (c Config) apply(param *adaboost.Parameter) error {
	if err := param.SetAccuracyThreshold(c.AccuracyThreshold); err != nil {
		return err
	}
	if err := param.SetMaxIterations(c.MaxIterations); err != nil {
		return err
	}
	if err := param.SetLearningRate(c.LearningRate); err != nil {
		return err
	}

	switch c.WeakLearner.Kind {
	case adaboost.StumpKind:
		if err := param.SetWeakLearnerTraining(adaboost.NewStumpTraining()); err != nil {
			return err
		}
		return param.SetWeakLearnerPrediction(adaboost.NewStumpPrediction())
	case adaboost.LogisticKind:
		trainer, err := adaboost.NewLogisticTraining(c.WeakLearner.C, c.WeakLearner.Eps, c.WeakLearner.MaxIterations)
		if err != nil {
			return err
		}
		if err := param.SetWeakLearnerTraining(trainer); err != nil {
			return err
		}
		return param.SetWeakLearnerPrediction(adaboost.NewLogisticPrediction())
	default:
		return fmt.Errorf("unknown weak learner %q: %w", c.WeakLearner.Kind, adaboost.ErrInvalidParameter)
	}
}

// weakPredictor returns the prediction algorithm for models whose learners
// are all of one kind.
func weakPredictor(m *adaboost.Model) (adaboost.WeakPredictor, error) {
	var kind string
	for _, l := range m.Learners {
		if kind != "" && l.Kind() != kind {
			return nil, fmt.Errorf("model mixes %s and %s learners: %w", kind, l.Kind(), adaboost.ErrInvalidParameter)
		}
		kind = l.Kind()
	}

	switch kind {
	case adaboost.StumpKind:
		return adaboost.NewStumpPrediction(), nil
	case adaboost.LogisticKind:
		return adaboost.NewLogisticPrediction(), nil
	default:
		return nil, fmt.Errorf("no prediction algorithm for %q learners: %w", kind, adaboost.ErrInvalidParameter)
	}
}
