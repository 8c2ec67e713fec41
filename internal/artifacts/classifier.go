package artifacts

import (
	"encoding/json"
	"fmt"

	"github.com/scoutcentral/scout-api/internal/models"
)

const classifierLogistic = "logistic_regression"

// UnmarshalClassifier decodes a classifier artifact by its kind discriminator.
func UnmarshalClassifier(data []byte) (Classifier, error) {
	kind, err := artifactKind(data)
	if err != nil {
		return nil, err
	}
	switch kind {
	case classifierLogistic:
		var c LogisticClassifier
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		if err := c.validate(); err != nil {
			return nil, err
		}
		return &c, nil
	default:
		return nil, fmt.Errorf("unknown classifier kind %q", kind)
	}
}

// LogisticClassifier is a multinomial logistic regression exported from the
// training job. For two classes a single coefficient row is stored and a
// positive decision score selects the second class.
type LogisticClassifier struct {
	ClassLabels  []models.PerformanceLabel `json:"classes"`
	Coefficients [][]float64               `json:"coefficients"`
	Intercepts   []float64                 `json:"intercepts"`
}

func (c *LogisticClassifier) validate() error {
	if len(c.ClassLabels) < 2 {
		return fmt.Errorf("classifier needs at least two classes, got %d", len(c.ClassLabels))
	}
	wantRows := len(c.ClassLabels)
	if len(c.ClassLabels) == 2 {
		wantRows = 1
	}
	if len(c.Coefficients) != wantRows || len(c.Intercepts) != wantRows {
		return fmt.Errorf("classifier has %d coefficient rows and %d intercepts, want %d",
			len(c.Coefficients), len(c.Intercepts), wantRows)
	}
	width := len(c.Coefficients[0])
	for i, row := range c.Coefficients {
		if len(row) != width {
			return fmt.Errorf("classifier coefficient row %d has width %d, want %d", i, len(row), width)
		}
	}
	return nil
}

func (c *LogisticClassifier) Classes() []models.PerformanceLabel {
	out := make([]models.PerformanceLabel, len(c.ClassLabels))
	copy(out, c.ClassLabels)
	return out
}

// Predict returns the argmax class for the scaled vector. Softmax is skipped:
// the ordering of decision scores already determines the winner.
func (c *LogisticClassifier) Predict(vector []float64) (models.PerformanceLabel, error) {
	if len(vector) != len(c.Coefficients[0]) {
		return "", fmt.Errorf("classifier expects %d features, got %d",
			len(c.Coefficients[0]), len(vector))
	}

	if len(c.ClassLabels) == 2 {
		score := c.Intercepts[0]
		for i, w := range c.Coefficients[0] {
			score += w * vector[i]
		}
		if score > 0 {
			return c.ClassLabels[1], nil
		}
		return c.ClassLabels[0], nil
	}

	best := 0
	bestScore := 0.0
	for row := range c.Coefficients {
		score := c.Intercepts[row]
		for i, w := range c.Coefficients[row] {
			score += w * vector[i]
		}
		if row == 0 || score > bestScore {
			best = row
			bestScore = score
		}
	}
	return c.ClassLabels[best], nil
}
