package artifacts

import (
	"encoding/json"
	"fmt"
)

// Scaler kinds understood by UnmarshalScaler.
const (
	scalerStandard = "standard"
	scalerMinMax   = "minmax"
)

// UnmarshalScaler decodes a scaler artifact by its kind discriminator.
func UnmarshalScaler(data []byte) (Scaler, error) {
	kind, err := artifactKind(data)
	if err != nil {
		return nil, err
	}
	switch kind {
	case scalerStandard:
		var s StandardScaler
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		if err := s.validate(); err != nil {
			return nil, err
		}
		return &s, nil
	case scalerMinMax:
		var s MinMaxScaler
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		if err := s.validate(); err != nil {
			return nil, err
		}
		return &s, nil
	default:
		return nil, fmt.Errorf("unknown scaler kind %q", kind)
	}
}

// StandardScaler applies (v - mean) / scale per feature, matching the
// training pipeline's standardization.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

func (s *StandardScaler) validate() error {
	if len(s.Mean) == 0 || len(s.Mean) != len(s.Scale) {
		return fmt.Errorf("standard scaler has mismatched mean/scale lengths (%d/%d)",
			len(s.Mean), len(s.Scale))
	}
	for i, sc := range s.Scale {
		if sc == 0 {
			return fmt.Errorf("standard scaler has zero scale at index %d", i)
		}
	}
	return nil
}

func (s *StandardScaler) Transform(vector []float64) ([]float64, error) {
	if len(vector) != len(s.Mean) {
		return nil, fmt.Errorf("scaler expects %d features, got %d", len(s.Mean), len(vector))
	}
	out := make([]float64, len(vector))
	for i, v := range vector {
		out[i] = (v - s.Mean[i]) / s.Scale[i]
	}
	return out, nil
}

// MinMaxScaler applies (v - min) / (max - min) per feature. A feature with
// max == min in the training data maps to 0.
type MinMaxScaler struct {
	Min []float64 `json:"min"`
	Max []float64 `json:"max"`
}

func (s *MinMaxScaler) validate() error {
	if len(s.Min) == 0 || len(s.Min) != len(s.Max) {
		return fmt.Errorf("minmax scaler has mismatched min/max lengths (%d/%d)",
			len(s.Min), len(s.Max))
	}
	return nil
}

func (s *MinMaxScaler) Transform(vector []float64) ([]float64, error) {
	if len(vector) != len(s.Min) {
		return nil, fmt.Errorf("scaler expects %d features, got %d", len(s.Min), len(vector))
	}
	out := make([]float64, len(vector))
	for i, v := range vector {
		span := s.Max[i] - s.Min[i]
		if span == 0 {
			out[i] = 0
			continue
		}
		out[i] = (v - s.Min[i]) / span
	}
	return out, nil
}
