package model

import (
	"path/filepath"

	"github.com/Brownie44l1/leaf-disease-api/internal/logger"
)

// Registry holds the session for every loaded model. It is filled once at
// startup and only read afterwards, so lookups need no locking.
type Registry struct {
	sessions    map[Kind]Session
	ownsRuntime bool
}

// NewRegistry wraps already constructed sessions. Kinds missing from the map,
// or mapped to nil, are registered as not loaded.
func NewRegistry(sessions map[Kind]Session) *Registry {
	r := &Registry{sessions: make(map[Kind]Session, len(sessions))}
	for kind, s := range sessions {
		if s != nil {
			r.sessions[kind] = s
		}
	}
	return r
}

// LoadRegistry opens every model under modelsDir. A model that fails to load
// is logged and left unavailable; the other models are unaffected.
func LoadRegistry(modelsDir, onnxLibPath string, log *logger.Logger) *Registry {
	r := &Registry{sessions: make(map[Kind]Session)}

	if err := InitRuntime(onnxLibPath); err != nil {
		log.Error("ONNX Runtime unavailable, no model will be served: %v", err)
		return r
	}
	r.ownsRuntime = true

	for _, kind := range Kinds() {
		modelPath := filepath.Join(modelsDir, kind.FileName())

		metadata, err := LoadMetadata(kind, modelPath)
		if err != nil {
			log.Warning("Could not load %s: %v", kind, err)
			continue
		}

		session, err := NewSession(modelPath, metadata)
		if err != nil {
			log.Warning("Could not load %s: %v", kind, err)
			continue
		}

		r.sessions[kind] = session
		log.Info("%s model loaded from %s (input %s %v, output %s %v)", kind, modelPath,
			metadata.InputName, metadata.InputShape, metadata.OutputName, metadata.OutputShape)
	}

	return r
}

// Get returns the session for kind, or false when the model is not loaded.
func (r *Registry) Get(kind Kind) (Session, bool) {
	s, ok := r.sessions[kind]
	return s, ok
}

// List reports every registered model in registration order.
func (r *Registry) List() []ModelStatus {
	kinds := Kinds()
	statuses := make([]ModelStatus, len(kinds))
	for i, kind := range kinds {
		_, loaded := r.sessions[kind]
		statuses[i] = ModelStatus{Name: kind.String(), Loaded: loaded}
	}
	return statuses
}

func (r *Registry) Close() {
	for _, s := range r.sessions {
		s.Close()
	}
	if r.ownsRuntime {
		ShutdownRuntime()
	}
}
