package model

// Kind is one of the four served models.
type Kind int

const (
	CNN Kind = iota
	MobileNetV2
	ViT
	UNet
)

// Modality tells whether a model classifies or segments.
type Modality int

const (
	Classification Modality = iota
	Segmentation
)

func (m Modality) String() string {
	if m == Segmentation {
		return "segmentation"
	}
	return "classification"
}

// Kinds lists every model in registration order.
func Kinds() []Kind {
	return []Kind{CNN, MobileNetV2, ViT, UNet}
}

// Names returns the registered model names in order.
func Names() []string {
	kinds := Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return names
}

// ParseKind resolves a request's model_name. Matching is exact.
func ParseKind(name string) (Kind, bool) {
	for _, k := range Kinds() {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

func (k Kind) String() string {
	switch k {
	case CNN:
		return "CNN"
	case MobileNetV2:
		return "MobileNetV2"
	case ViT:
		return "ViT"
	case UNet:
		return "U-Net"
	}
	return "unknown"
}

func (k Kind) Modality() Modality {
	switch k {
	case UNet:
		return Segmentation
	default:
		return Classification
	}
}

// FileName is the model file looked up under the models directory.
func (k Kind) FileName() string {
	switch k {
	case CNN:
		return "cnn_model.onnx"
	case MobileNetV2:
		return "mobilenet_model.onnx"
	case ViT:
		return "vit_model.onnx"
	case UNet:
		return "unet_model.onnx"
	}
	return ""
}

// DefaultMetadata describes the ONNX export used when no sidecar file exists.
func (k Kind) DefaultMetadata() Metadata {
	numClasses := int64(len(DiseaseClasses))
	switch k {
	case CNN:
		return Metadata{
			InputName:   "input",
			OutputName:  "output",
			InputShape:  []int64{1, 3, 128, 128},
			OutputShape: []int64{1, numClasses},
		}
	case MobileNetV2:
		return Metadata{
			InputName:   "input",
			OutputName:  "output",
			InputShape:  []int64{1, 3, 224, 224},
			OutputShape: []int64{1, numClasses},
		}
	case ViT:
		// the exported graph keeps the logits field of the classifier output
		return Metadata{
			InputName:   "pixel_values",
			OutputName:  "logits",
			InputShape:  []int64{1, 3, 224, 224},
			OutputShape: []int64{1, numClasses},
		}
	case UNet:
		return Metadata{
			InputName:   "input",
			OutputName:  "output",
			InputShape:  []int64{1, 128, 128, 3},
			OutputShape: []int64{1, 128, 128, 1},
		}
	}
	return Metadata{}
}
