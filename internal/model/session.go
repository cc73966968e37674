package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

var (
	ErrInputSize     = errors.New("input size does not match model input")
	ErrNoOutput      = errors.New("model produced no output")
	ErrSessionClosed = errors.New("model session is closed")
)

// Session runs one forward pass over a flat input tensor.
type Session interface {
	Run(input []float32) ([]float32, error)
	Close()
}

// InitRuntime loads the ONNX Runtime shared library. libPath may be empty.
func InitRuntime(libPath string) error {
	if libPath != "" {
		ort.SetSharedLibraryPath(libPath)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return fmt.Errorf("failed to initialize ONNX environment: %w", err)
	}
	return nil
}

// ShutdownRuntime releases the ONNX environment after all sessions are closed.
func ShutdownRuntime() {
	if ort.IsInitialized() {
		ort.DestroyEnvironment()
	}
}

// ONNXSession owns pre-allocated tensors; runs are serialized over them.
type ONNXSession struct {
	mu           sync.Mutex
	session      *ort.AdvancedSession
	Metadata     Metadata
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
}

func NewSession(modelPath string, metadata Metadata) (*ONNXSession, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file not found: %w", err)
	}

	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(metadata.InputShape...))
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(metadata.OutputShape...))
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{metadata.InputName}, []string{metadata.OutputName},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &ONNXSession{
		session:      session,
		Metadata:     metadata,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
	}, nil
}

func (s *ONNXSession) Run(input []float32) ([]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, ErrSessionClosed
	}

	dst := s.inputTensor.GetData()
	if len(input) != len(dst) {
		return nil, fmt.Errorf("%w: expected %d values, got %d", ErrInputSize, len(dst), len(input))
	}
	copy(dst, input)

	if err := s.session.Run(); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	out := s.outputTensor.GetData()
	if len(out) == 0 {
		return nil, ErrNoOutput
	}
	result := make([]float32, len(out))
	copy(result, out)
	return result, nil
}

func (s *ONNXSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inputTensor != nil {
		s.inputTensor.Destroy()
		s.inputTensor = nil
	}
	if s.outputTensor != nil {
		s.outputTensor.Destroy()
		s.outputTensor = nil
	}
	if s.session != nil {
		s.session.Destroy()
		s.session = nil
	}
}

// MetadataPath is the sidecar location for a model file: foo.onnx -> foo.json.
func MetadataPath(modelPath string) string {
	return strings.TrimSuffix(modelPath, ".onnx") + ".json"
}

// LoadMetadata reads the sidecar if present. Fields it leaves empty keep the
// kind's defaults.
func LoadMetadata(kind Kind, modelPath string) (Metadata, error) {
	metadata := kind.DefaultMetadata()

	metaFile, err := os.ReadFile(MetadataPath(modelPath))
	if errors.Is(err, os.ErrNotExist) {
		return metadata, nil
	}
	if err != nil {
		return metadata, fmt.Errorf("failed to read metadata: %w", err)
	}

	var override Metadata
	if err := json.Unmarshal(metaFile, &override); err != nil {
		return metadata, fmt.Errorf("failed to parse metadata: %w", err)
	}

	if override.InputName != "" {
		metadata.InputName = override.InputName
	}
	if override.OutputName != "" {
		metadata.OutputName = override.OutputName
	}
	if len(override.InputShape) > 0 {
		metadata.InputShape = override.InputShape
	}
	if len(override.OutputShape) > 0 {
		metadata.OutputShape = override.OutputShape
	}
	return metadata, nil
}
