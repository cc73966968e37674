package model

import (
	"encoding/base64"
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"
)

// MaskThreshold binarizes the segmentation probability mask.
const MaskThreshold = 0.5

// Segment runs the segmentation model over img. The returned mask image has
// the dimensions of img, not of the model input.
func Segment(s Session, img image.Image) (*Segmentation, error) {
	tensor := Preprocess(UNet, img)
	height, width := int(tensor.Shape[1]), int(tensor.Shape[2])

	mask, err := s.Run(tensor.Data)
	if err != nil {
		return nil, err
	}
	if len(mask) != width*height {
		return nil, fmt.Errorf("%w: mask has %d values, expected %dx%d", ErrNoOutput, len(mask), width, height)
	}

	bounds := img.Bounds()
	png, err := ColorizeMask(mask, width, height, bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	return &Segmentation{
		MaskPNG:           png,
		MaskBase64:        base64.StdEncoding.EncodeToString(png),
		DiseasePercentage: DiseasePercentage(mask),
	}, nil
}

// DiseasePercentage is 100 * (pixels above MaskThreshold) / (all pixels).
func DiseasePercentage(mask []float32) float64 {
	if len(mask) == 0 {
		return 0
	}
	affected := 0
	for _, v := range mask {
		if v > MaskThreshold {
			affected++
		}
	}
	return float64(affected) / float64(len(mask)) * 100
}

// PercentString formats a disease percentage with two decimals.
func PercentString(p float64) string {
	return fmt.Sprintf("%.2f", p)
}

// ColorizeMask applies the jet color map to a width x height probability
// mask, scales it to outWidth x outHeight and encodes it as PNG.
func ColorizeMask(mask []float32, width, height, outWidth, outHeight int) ([]byte, error) {
	gray := make([]byte, len(mask))
	for i, v := range mask {
		gray[i] = maskByte(v)
	}

	src, err := gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8U, gray)
	if err != nil {
		return nil, fmt.Errorf("failed to build mask matrix: %w", err)
	}
	defer src.Close()

	colored := gocv.NewMat()
	defer colored.Close()
	if err := gocv.ApplyColorMap(src, &colored, gocv.ColormapJet); err != nil {
		return nil, fmt.Errorf("failed to apply color map: %w", err)
	}

	resized := gocv.NewMat()
	defer resized.Close()
	if err := gocv.Resize(colored, &resized, image.Pt(outWidth, outHeight), 0, 0, gocv.InterpolationLinear); err != nil {
		return nil, fmt.Errorf("failed to resize mask: %w", err)
	}

	buf, err := gocv.IMEncode(".png", resized)
	if err != nil {
		return nil, fmt.Errorf("failed to encode mask: %w", err)
	}
	defer buf.Close()

	out := make([]byte, len(buf.GetBytes()))
	copy(out, buf.GetBytes())
	return out, nil
}

// maskByte scales a probability to 0..255, truncating.
func maskByte(v float32) byte {
	scaled := v * 255
	switch {
	case math.IsNaN(float64(scaled)) || scaled <= 0:
		return 0
	case scaled >= 255:
		return 255
	}
	return byte(scaled)
}
