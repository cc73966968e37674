package model

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Brownie44l1/leaf-disease-api/internal/logger"
)

func TestNewRegistry_PartialAvailability(t *testing.T) {
	cnn := &fakeSession{}
	reg := NewRegistry(map[Kind]Session{CNN: cnn, ViT: nil})

	if s, ok := reg.Get(CNN); !ok || s != Session(cnn) {
		t.Errorf("CNN should be loaded")
	}
	for _, k := range []Kind{MobileNetV2, ViT, UNet} {
		if _, ok := reg.Get(k); ok {
			t.Errorf("%s should not be loaded", k)
		}
	}

	expected := []ModelStatus{
		{"CNN", true},
		{"MobileNetV2", false},
		{"ViT", false},
		{"U-Net", false},
	}
	if got := reg.List(); !reflect.DeepEqual(got, expected) {
		t.Errorf("List() = %v, expected %v", got, expected)
	}
	if got := reg.List(); !reflect.DeepEqual(got, expected) {
		t.Errorf("second List() = %v", got)
	}

	reg.Close()
	if !cnn.closed {
		t.Error("Close did not close the session")
	}
}

func TestLoadRegistry_MissingRuntimeOrFiles(t *testing.T) {
	log := logger.NewWithWriters(io.Discard, io.Discard)
	reg := LoadRegistry(t.TempDir(), filepath.Join(t.TempDir(), "missing-libonnxruntime.so"), log)
	defer reg.Close()

	for _, status := range reg.List() {
		if status.Loaded {
			t.Errorf("%s loaded without a model file", status.Name)
		}
	}
}

func TestLoadMetadata(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, UNet.FileName())

	meta, err := LoadMetadata(UNet, modelPath)
	if err != nil {
		t.Fatalf("LoadMetadata without sidecar: %v", err)
	}
	if !reflect.DeepEqual(meta, UNet.DefaultMetadata()) {
		t.Errorf("defaults = %+v", meta)
	}

	sidecar := `{"input_name": "input_1", "output_shape": [1, 128, 128, 1]}`
	if err := os.WriteFile(MetadataPath(modelPath), []byte(sidecar), 0644); err != nil {
		t.Fatal(err)
	}
	meta, err = LoadMetadata(UNet, modelPath)
	if err != nil {
		t.Fatalf("LoadMetadata: %v", err)
	}
	if meta.InputName != "input_1" || meta.OutputName != "output" {
		t.Errorf("names = %q/%q", meta.InputName, meta.OutputName)
	}

	if err := os.WriteFile(MetadataPath(modelPath), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMetadata(UNet, modelPath); err == nil {
		t.Error("expected parse error")
	}
}

func TestMetadataPath(t *testing.T) {
	if got := MetadataPath("models/vit_model.onnx"); got != "models/vit_model.json" {
		t.Errorf("MetadataPath = %q", got)
	}
}

func TestONNXSession_RunAfterClose(t *testing.T) {
	s := &ONNXSession{}
	s.Close()

	if _, err := s.Run(make([]float32, 4)); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Run after Close = %v, expected ErrSessionClosed", err)
	}
}
