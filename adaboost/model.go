package adaboost

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/google/uuid"
	"github.com/xh3b4sd/tracer"
)

// Model is a trained AdaBoost ensemble. Learner t votes for the label it
// predicts with weight Alpha[t].
type Model struct {
	ID          uuid.UUID
	Labels      []int
	NumFeatures int
	Alpha       []float64
	Learners    []WeakModel
}

// NumClass returns the number of class labels
func (m *Model) NumClass() int {
	return len(m.Labels)
}

// NumLearners returns the number of weak learners in the ensemble
func (m *Model) NumLearners() int {
	return len(m.Learners)
}

func (m *Model) validate() error {
	if m == nil || len(m.Labels) < 2 {
		return fmt.Errorf("model needs at least two labels: %w", ErrModelFormat)
	}
	if len(m.Alpha) != len(m.Learners) || len(m.Learners) == 0 {
		return fmt.Errorf("model has %d weights for %d learners: %w", len(m.Alpha), len(m.Learners), ErrModelFormat)
	}
	return nil
}

// SaveModel writes m in the text model format.
func SaveModel(writer io.Writer, m *Model) error {
	if err := m.validate(); err != nil {
		return err
	}

	w := bufio.NewWriter(writer)

	fmt.Fprintf(w, "model_id %s\n", m.ID)
	fmt.Fprintf(w, "nr_class %d\n", m.NumClass())

	w.WriteString("label")
	for _, l := range m.Labels {
		fmt.Fprintf(w, " %d", l)
	}
	w.WriteString("\n")

	fmt.Fprintf(w, "nr_feature %d\n", m.NumFeatures)
	fmt.Fprintf(w, "nr_learner %d\n", m.NumLearners())

	for t, learner := range m.Learners {
		text, err := learner.MarshalText()
		if err != nil {
			return fmt.Errorf("learner %d: %w", t, err)
		}
		if strings.ContainsAny(string(text), "\r\n") {
			return fmt.Errorf("learner %d of kind %s spans several lines: %w", t, learner.Kind(), ErrModelFormat)
		}
		fmt.Fprintf(w, "learner %s %.17g %s\n", learner.Kind(), m.Alpha[t], text)
	}

	if err := w.Flush(); err != nil {
		return tracer.Mask(err)
	}

	return nil
}

// LoadModel reads a model written by SaveModel.
func LoadModel(r io.Reader) (*Model, error) {
	m := &Model{}
	nrClass, nrLearner := -1, -1
	lineNr := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 64*1024*1024)

	for scanner.Scan() {
		lineNr++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		key, rest, _ := strings.Cut(line, " ")
		var err error

		switch key {
		case "model_id":
			m.ID, err = uuid.Parse(rest)
		case "nr_class":
			nrClass, err = strconv.Atoi(rest)
		case "label":
			m.Labels, err = parseLabels(rest, nrClass)
		case "nr_feature":
			m.NumFeatures, err = strconv.Atoi(rest)
		case "nr_learner":
			nrLearner, err = strconv.Atoi(rest)
		case "learner":
			err = m.parseLearner(rest)
		default:
			err = fmt.Errorf("unknown text %q: %w", line, ErrModelFormat)
		}
		if err != nil {
			return nil, fmt.Errorf("model line %d: %w", lineNr, wrapFormat(err))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, tracer.Mask(err)
	}

	if nrClass != len(m.Labels) || nrLearner != len(m.Learners) {
		return nil, fmt.Errorf("header announces %d classes and %d learners, found %d and %d: %w",
			nrClass, nrLearner, len(m.Labels), len(m.Learners), ErrModelFormat)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}

	return m, nil
}

func parseLabels(s string, nrClass int) ([]int, error) {
	fields := strings.Fields(s)
	if nrClass < 0 || len(fields) != nrClass {
		return nil, fmt.Errorf("label line has %d entries for nr_class %d: %w", len(fields), nrClass, ErrModelFormat)
	}

	labels := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		labels[i] = v
	}
	return labels, nil
}

func (m *Model) parseLearner(s string) error {
	fields := strings.SplitN(s, " ", 3)
	if len(fields) < 3 {
		return fmt.Errorf("learner line %q: %w", s, ErrModelFormat)
	}

	alpha, err := strconv.ParseFloat(fields[1], 64)
	if err != nil || math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return fmt.Errorf("learner weight %q: %w", fields[1], ErrModelFormat)
	}

	weak, err := decodeWeakModel(fields[0], []byte(fields[2]))
	if err != nil {
		return err
	}

	m.Alpha = append(m.Alpha, alpha)
	m.Learners = append(m.Learners, weak)
	return nil
}

// wrapFormat marks parse errors from strconv and uuid as format errors.
func wrapFormat(err error) error {
	if errors.Is(err, ErrModelFormat) {
		return err
	}
	return fmt.Errorf("%v: %w", err, ErrModelFormat)
}

// SaveModelFile atomically replaces path with the encoded model.
func SaveModelFile(path string, m *Model) error {
	pendingFile, err := renameio.NewPendingFile(path)
	if err != nil {
		return tracer.Mask(err)
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			logger.Debug().Err(err).Str("path", path).Msg("cleanup pending model file")
		}
	}()

	if err := SaveModel(pendingFile, m); err != nil {
		return err
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return tracer.Mask(err)
	}

	return nil
}

// LoadModelFile reads the model stored at path.
func LoadModelFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, tracer.Mask(err)
	}
	defer f.Close()

	return LoadModel(f)
}
