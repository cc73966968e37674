package model

import (
	"image"
	"image/color"
	"math"
)

type fakeSession struct {
	out    []float32
	err    error
	calls  int
	inputs int
	closed bool
}

func (f *fakeSession) Run(input []float32) ([]float32, error) {
	f.calls++
	f.inputs = len(input)
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

func (f *fakeSession) Close() { f.closed = true }

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func shapeSize(shape []int64) int {
	n := 1
	for _, d := range shape {
		n *= int(d)
	}
	return n
}
