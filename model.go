package litsense

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// classifierFile is the name of the serialized classifier inside a model directory.
const classifierFile = "classifier.json"

// Classifier predicts a 3-way sentiment distribution for a text unit.
type Classifier interface {
	Predict(text string) (SentimentVector, error)
}

// A Model holds a trained bag-of-words sentiment classifier.
//
// Training happens outside this package; a Model is loaded from disk, from an
// fs.FS, or built directly from its weights with NewModel.
type Model struct {
	Name string

	classifier *linearClassifier
}

// linearClassifier scores term counts with one weight row per label and
// applies a softmax.
type linearClassifier struct {
	vocabulary map[string]int
	terms      []string
	labels     []SentimentLabel
	weights    *mat.Dense    // len(labels) x len(vocabulary)
	bias       *mat.VecDense // len(labels)
	tokenizer  *wordTokenizer
}

type classifierJSON struct {
	Labels     []SentimentLabel `json:"labels"`
	Vocabulary []string         `json:"vocabulary"`
	Weights    [][]float64      `json:"weights"`
	Bias       []float64        `json:"bias"`
}

// NewModel builds a Model from explicit classifier parameters. weights holds
// one row per label, each as long as vocabulary.
func NewModel(name string, labels []SentimentLabel, vocabulary []string, weights [][]float64, bias []float64) (*Model, error) {
	clf, err := newLinearClassifier(classifierJSON{
		Labels:     labels,
		Vocabulary: vocabulary,
		Weights:    weights,
		Bias:       bias,
	})
	if err != nil {
		return nil, err
	}
	return &Model{Name: name, classifier: clf}, nil
}

// ModelFromDisk loads a Model from the directory at path.
func ModelFromDisk(path string) (*Model, error) {
	clf, err := loadClassifier(os.DirFS(path))
	if err != nil {
		return nil, modelError(path, err)
	}
	return &Model{Name: filepath.Base(path), classifier: clf}, nil
}

// ModelFromFS loads the model stored in the first directory called name within filesys.
func ModelFromFS(name string, filesys fs.FS) (*Model, error) {
	var modelFS fs.FS
	err := fs.WalkDir(filesys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && d.Name() == name {
			modelFS, err = fs.Sub(filesys, path)
			if err != nil {
				return err
			}
			return io.EOF
		}
		return nil
	})
	if err != nil && err != io.EOF {
		return nil, modelError(name, err)
	}
	if modelFS == nil {
		return nil, modelError(name, fs.ErrNotExist)
	}

	clf, err := loadClassifier(modelFS)
	if err != nil {
		return nil, modelError(name, err)
	}
	return &Model{Name: name, classifier: clf}, nil
}

// modelError reports missing files as ModelUnavailableError so callers can
// fall back. Malformed models are returned as plain errors.
func modelError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &ModelUnavailableError{Path: path, Err: err}
	}
	return fmt.Errorf("error loading sentiment model %q: %w", path, err)
}

func loadClassifier(filesys fs.FS) (*linearClassifier, error) {
	b, err := fs.ReadFile(filesys, classifierFile)
	if err != nil {
		return nil, err
	}

	var raw classifierJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", classifierFile, err)
	}
	return newLinearClassifier(raw)
}

func newLinearClassifier(raw classifierJSON) (*linearClassifier, error) {
	if len(raw.Labels) != len(SentimentLabels) {
		return nil, fmt.Errorf("classifier needs %d labels, got %d", len(SentimentLabels), len(raw.Labels))
	}
	seenLabels := make(map[SentimentLabel]bool, len(raw.Labels))
	for _, label := range raw.Labels {
		if label != Negative && label != Neutral && label != Positive {
			return nil, fmt.Errorf("unknown sentiment label %q", label)
		}
		if seenLabels[label] {
			return nil, fmt.Errorf("sentiment label %q declared twice", label)
		}
		seenLabels[label] = true
	}
	if len(raw.Vocabulary) == 0 {
		return nil, errors.New("classifier vocabulary is empty")
	}
	if len(raw.Weights) != len(raw.Labels) || len(raw.Bias) != len(raw.Labels) {
		return nil, fmt.Errorf("classifier needs one weight row and one bias per label")
	}

	vocabulary := make(map[string]int, len(raw.Vocabulary))
	for i, term := range raw.Vocabulary {
		term = strings.ToLower(term)
		if _, dup := vocabulary[term]; dup {
			return nil, fmt.Errorf("term %q appears twice in classifier vocabulary", term)
		}
		vocabulary[term] = i
	}

	weights := mat.NewDense(len(raw.Labels), len(raw.Vocabulary), nil)
	for i, row := range raw.Weights {
		if len(row) != len(raw.Vocabulary) {
			return nil, fmt.Errorf("weight row %d has %d columns, want %d", i, len(row), len(raw.Vocabulary))
		}
		weights.SetRow(i, row)
	}

	return &linearClassifier{
		vocabulary: vocabulary,
		terms:      append([]string(nil), raw.Vocabulary...),
		labels:     append([]SentimentLabel(nil), raw.Labels...),
		weights:    weights,
		bias:       mat.NewVecDense(len(raw.Bias), append([]float64(nil), raw.Bias...)),
		tokenizer:  NewWordTokenizer(),
	}, nil
}

// Predict returns the label probabilities of text.
func (m *Model) Predict(text string) (SentimentVector, error) {
	if m == nil || m.classifier == nil {
		return SentimentVector{}, errors.New("model has no classifier")
	}
	return m.classifier.predict(text), nil
}

func (c *linearClassifier) predict(text string) SentimentVector {
	_, cols := c.weights.Dims()
	counts := mat.NewVecDense(cols, nil)
	for _, word := range c.tokenizer.Words(strings.ToLower(text)) {
		if idx, ok := c.vocabulary[word]; ok {
			counts.SetVec(idx, counts.AtVec(idx)+1)
		}
	}

	logits := mat.NewVecDense(len(c.labels), nil)
	logits.MulVec(c.weights, counts)
	logits.AddVec(logits, c.bias)

	probs := softmax(logits.RawVector().Data)

	var out SentimentVector
	for i, label := range c.labels {
		switch label {
		case Negative:
			out.Negative = probs[i]
		case Neutral:
			out.Neutral = probs[i]
		case Positive:
			out.Positive = probs[i]
		}
	}
	return out
}

func softmax(logits []float64) []float64 {
	probs := make([]float64, len(logits))
	shift := floats.Max(logits)
	for i, z := range logits {
		probs[i] = math.Exp(z - shift)
	}
	floats.Scale(1/floats.Sum(probs), probs)
	return probs
}

// Write saves the Model to the directory at path.
func (m *Model) Write(path string) error {
	if m.classifier == nil {
		return errors.New("model has no classifier")
	}
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		return err
	}

	rows, _ := m.classifier.weights.Dims()
	raw := classifierJSON{
		Labels:     m.classifier.labels,
		Vocabulary: m.classifier.terms,
		Weights:    make([][]float64, rows),
		Bias:       append([]float64(nil), m.classifier.bias.RawVector().Data...),
	}
	for i := 0; i < rows; i++ {
		raw.Weights[i] = mat.Row(nil, i, m.classifier.weights)
	}

	b, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(path, classifierFile), b, 0o644)
}
