package model

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func logitsWithPeak(n, peak int) []float32 {
	logits := make([]float32, n)
	for i := range logits {
		logits[i] = -1
	}
	logits[peak] = 5
	return logits
}

func TestClassify(t *testing.T) {
	img := solidImage(50, 50, colorGreen)
	fake := &fakeSession{out: logitsWithPeak(38, 1)}

	pred, err := Classify(CNN, fake, img)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if fake.inputs != 3*128*128 {
		t.Errorf("session received %d values", fake.inputs)
	}
	if pred.ClassIndex != 1 || pred.ClassName != "Apple___Black_rot" {
		t.Errorf("prediction = %+v", pred)
	}

	// e^5 / (e^5 + 37 e^-1)
	expected := math.Exp(5) / (math.Exp(5) + 37*math.Exp(-1))
	if !almostEqual(pred.Confidence, expected, 1e-6) {
		t.Errorf("confidence = %f, expected %f", pred.Confidence, expected)
	}
	if got := pred.ConfidencePercent(); got != "91.60%" {
		t.Errorf("ConfidencePercent = %q", got)
	}
}

func TestClassify_IndexBeyondTable(t *testing.T) {
	fake := &fakeSession{out: logitsWithPeak(41, 40)}

	pred, err := Classify(MobileNetV2, fake, solidImage(10, 10, colorRed))
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if pred.ClassName != "Class_40" {
		t.Errorf("class = %q, expected Class_40", pred.ClassName)
	}
}

func TestClassify_Errors(t *testing.T) {
	img := solidImage(10, 10, colorRed)
	boom := errors.New("boom")

	if _, err := Classify(ViT, &fakeSession{err: boom}, img); !errors.Is(err, boom) {
		t.Errorf("session error not propagated: %v", err)
	}
	if _, err := Classify(ViT, &fakeSession{out: nil}, img); !errors.Is(err, ErrNoOutput) {
		t.Errorf("empty output: %v", err)
	}
	nan := []float32{1, float32(math.NaN())}
	if _, err := Classify(ViT, &fakeSession{out: nan}, img); err == nil {
		t.Error("expected error for NaN logits")
	}
	if _, err := Classify(UNet, &fakeSession{}, img); err == nil || !strings.Contains(err.Error(), "not a classification") {
		t.Errorf("U-Net classify: %v", err)
	}
}

func TestConfidencePercent_Range(t *testing.T) {
	tests := []struct {
		confidence float64
		expected   string
	}{
		{1, "100.00%"},
		{0, "0.00%"},
		{0.123456, "12.35%"},
		{1.0 / 38, "2.63%"},
	}

	for _, tt := range tests {
		p := &Prediction{Confidence: tt.confidence}
		if got := p.ConfidencePercent(); got != tt.expected {
			t.Errorf("ConfidencePercent(%f) = %q, expected %q", tt.confidence, got, tt.expected)
		}
	}
}

func TestSoftmax_LargeLogitsStable(t *testing.T) {
	probs, err := Softmax([]float32{1000, 1000, 999})
	if err != nil {
		t.Fatalf("Softmax: %v", err)
	}
	var sum float64
	for _, p := range probs {
		sum += p
	}
	if !almostEqual(sum, 1, 1e-9) {
		t.Errorf("sum = %f", sum)
	}
	if idx, _ := Argmax(probs); idx != 0 {
		t.Errorf("argmax = %d, expected first of the tied maxima", idx)
	}
}
