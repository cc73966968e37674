package model

import (
	"errors"
	"fmt"
	"image"
	"math"
)

var errNonFinite = errors.New("model produced non-finite logits")

// Classify runs a classifier over img and picks the most probable class.
func Classify(kind Kind, s Session, img image.Image) (*Prediction, error) {
	if kind.Modality() != Classification {
		return nil, fmt.Errorf("%s is not a classification model", kind)
	}

	tensor := Preprocess(kind, img)
	logits, err := s.Run(tensor.Data)
	if err != nil {
		return nil, err
	}
	if len(logits) == 0 {
		return nil, ErrNoOutput
	}

	probs, err := Softmax(logits)
	if err != nil {
		return nil, err
	}
	idx, confidence := Argmax(probs)

	return &Prediction{
		ClassIndex: idx,
		ClassName:  ClassName(idx),
		Confidence: confidence,
	}, nil
}

// ConfidencePercent formats the confidence as e.g. "97.31%".
func (p *Prediction) ConfidencePercent() string {
	return fmt.Sprintf("%.2f%%", p.Confidence*100)
}

// Softmax converts logits to probabilities.
func Softmax(logits []float32) ([]float64, error) {
	maxLogit := math.Inf(-1)
	for _, v := range logits {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, errNonFinite
		}
		if f > maxLogit {
			maxLogit = f
		}
	}

	probs := make([]float64, len(logits))
	var sum float64
	for i, v := range logits {
		probs[i] = math.Exp(float64(v) - maxLogit)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs, nil
}

// Argmax returns the first index holding the largest value.
func Argmax(values []float64) (int, float64) {
	maxIdx := 0
	maxVal := values[0]
	for i, v := range values {
		if v > maxVal {
			maxVal = v
			maxIdx = i
		}
	}
	return maxIdx, maxVal
}
