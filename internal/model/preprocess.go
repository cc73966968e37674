package model

import (
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"
)

var (
	halfMean     = [3]float32{0.5, 0.5, 0.5}
	halfStd      = [3]float32{0.5, 0.5, 0.5}
	imageNetMean = [3]float32{0.485, 0.456, 0.406}
	imageNetStd  = [3]float32{0.229, 0.224, 0.225}
)

// DecodeImage decodes an upload and drops any alpha channel.
func DecodeImage(r io.Reader) (*image.NRGBA, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	rgb := imaging.Clone(img)
	for i := 3; i < len(rgb.Pix); i += 4 {
		rgb.Pix[i] = 0xff
	}
	return rgb, nil
}

// Preprocess builds the input tensor a model was trained against.
func Preprocess(kind Kind, img image.Image) Tensor {
	switch kind {
	case CNN:
		return normalizedCHW(img, 128, halfMean, halfStd)
	case MobileNetV2:
		return normalizedCHW(img, 224, imageNetMean, imageNetStd)
	case ViT:
		return normalizedCHW(img, 224, halfMean, halfStd)
	case UNet:
		return scaledHWC(img, 128)
	}
	panic(fmt.Sprintf("model: no preprocessing for kind %d", int(kind)))
}

// normalizedCHW resizes bilinearly and lays the channels out as planes,
// each value (v/255 - mean) / std.
func normalizedCHW(img image.Image, size int, mean, std [3]float32) Tensor {
	resized := resize.Resize(uint(size), uint(size), img, resize.Bilinear)

	bounds := resized.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	plane := width * height
	data := make([]float32, 3*plane)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px := rgb8(resized, bounds.Min.X+x, bounds.Min.Y+y)
			pixelIndex := y*width + x
			for c := 0; c < 3; c++ {
				data[c*plane+pixelIndex] = (px[c]/255.0 - mean[c]) / std[c]
			}
		}
	}

	return Tensor{
		Shape: []int64{1, 3, int64(height), int64(width)},
		Data:  data,
	}
}

// scaledHWC resizes bicubically and interleaves channels, each value v/255.
func scaledHWC(img image.Image, size int) Tensor {
	resized := resize.Resize(uint(size), uint(size), img, resize.Bicubic)

	bounds := resized.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	data := make([]float32, 0, 3*width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px := rgb8(resized, bounds.Min.X+x, bounds.Min.Y+y)
			data = append(data, px[0]/255.0, px[1]/255.0, px[2]/255.0)
		}
	}

	return Tensor{
		Shape: []int64{1, int64(height), int64(width), 3},
		Data:  data,
	}
}

// rgb8 returns the 8-bit channel values of a pixel as floats.
func rgb8(img image.Image, x, y int) [3]float32 {
	r, g, b, _ := img.At(x, y).RGBA()
	return [3]float32{float32(r >> 8), float32(g >> 8), float32(b >> 8)}
}
