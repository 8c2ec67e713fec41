// Package artifacts loads trained (scaler, classifier) pairs exported by the
// offline training job. The service treats both halves as opaque: it only
// needs a transform over the raw feature vector and a label out the other
// side. Artifacts are read-only after load.
package artifacts

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/scoutcentral/scout-api/internal/models"
)

// Scaler rescales a raw feature vector the same way the training pipeline did.
type Scaler interface {
	Transform(vector []float64) ([]float64, error)
}

// Classifier maps a scaled feature vector to a categorical label.
type Classifier interface {
	Predict(vector []float64) (models.PerformanceLabel, error)
	Classes() []models.PerformanceLabel
}

// Pair bundles the scaler and classifier trained for one position.
type Pair struct {
	Scaler     Scaler
	Classifier Classifier
}

// Store is the artifact lookup capability: position in, trained pair out.
// Load failures are infrastructure errors, not user-input errors.
type Store interface {
	Load(ctx context.Context, pos models.Position) (Pair, error)
}

// FileStore loads artifact pairs from JSON files under a model directory,
// mirroring the training job's export layout:
//
//	<dir>/<position>_scaler.json
//	<dir>/<position>_model.json
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) Load(ctx context.Context, pos models.Position) (Pair, error) {
	scaler, err := s.loadScaler(pos)
	if err != nil {
		return Pair{}, err
	}
	clf, err := s.loadClassifier(pos)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Scaler: scaler, Classifier: clf}, nil
}

func (s *FileStore) loadScaler(pos models.Position) (Scaler, error) {
	path := filepath.Join(s.dir, string(pos)+"_scaler.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scaler %s: %w", path, err)
	}
	scaler, err := UnmarshalScaler(data)
	if err != nil {
		return nil, fmt.Errorf("parse scaler %s: %w", path, err)
	}
	return scaler, nil
}

func (s *FileStore) loadClassifier(pos models.Position) (Classifier, error) {
	path := filepath.Join(s.dir, string(pos)+"_model.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}
	clf, err := UnmarshalClassifier(data)
	if err != nil {
		return nil, fmt.Errorf("parse model %s: %w", path, err)
	}
	return clf, nil
}

// kindEnvelope peeks at the discriminator field shared by every artifact file.
type kindEnvelope struct {
	Kind string `json:"kind"`
}

func artifactKind(data []byte) (string, error) {
	var env kindEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", err
	}
	if env.Kind == "" {
		return "", fmt.Errorf("artifact missing kind field")
	}
	return env.Kind, nil
}
