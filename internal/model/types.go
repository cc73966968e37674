package model

// Metadata mirrors the optional <model>.json sidecar next to each ONNX file.
type Metadata struct {
	InputName   string  `json:"input_name"`
	OutputName  string  `json:"output_name"`
	InputShape  []int64 `json:"input_shape"`
	OutputShape []int64 `json:"output_shape"`
}

// Tensor is a flat float32 buffer with its shape, batch dimension first.
type Tensor struct {
	Shape []int64
	Data  []float32
}

// Prediction is the classification outcome for one image.
type Prediction struct {
	ClassIndex int
	ClassName  string
	Confidence float64 // probability in [0,1]
}

// Segmentation is the segmentation outcome for one image.
type Segmentation struct {
	MaskPNG           []byte
	MaskBase64        string
	DiseasePercentage float64 // in [0,100]
}

// ModelStatus reports whether a registered model is usable.
type ModelStatus struct {
	Name   string
	Loaded bool
}
