package logic

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/scoutcentral/scout-api/internal/artifacts"
	"github.com/scoutcentral/scout-api/internal/models"
)

type predictionService struct {
	store  artifacts.Store
	logger *zap.SugaredLogger

	group singleflight.Group
	mu    sync.RWMutex
	cache map[models.Position]artifacts.Pair
}

func NewPredictionService(store artifacts.Store, logger *zap.Logger) PredictionService {
	return &predictionService{
		store:  store,
		logger: logger.Sugar(),
		cache:  make(map[models.Position]artifacts.Pair),
	}
}

// Predict validates the position, assembles the ordered feature vector, and
// runs it through the position's trained scaler and classifier. Position
// validation and vector assembly happen before any artifact I/O, so bad input
// never touches the artifact store.
func (s *predictionService) Predict(ctx context.Context, req *models.PredictRequest) (*models.PredictionResult, error) {
	pos, ok := models.ParsePosition(req.Position)
	if !ok {
		return nil, invalidPosition(req.Position)
	}

	features, err := models.FeaturesFor(pos)
	if err != nil {
		return nil, invalidPosition(req.Position)
	}

	vector := make([]float64, len(features))
	for i, feature := range features {
		v, ok := req.Attributes[feature]
		if !ok {
			return nil, missingFeature(feature)
		}
		vector[i] = v
	}

	pair, err := s.artifactsFor(ctx, pos)
	if err != nil {
		return nil, err
	}

	scaled, err := pair.Scaler.Transform(vector)
	if err != nil {
		return nil, fmt.Errorf("%w: position %s: %v", ErrArtifactLoad, pos, err)
	}
	label, err := pair.Classifier.Predict(scaled)
	if err != nil {
		return nil, fmt.Errorf("%w: position %s: %v", ErrArtifactLoad, pos, err)
	}

	return &models.PredictionResult{
		Position: pos,
		Label:    label,
		Severity: label.Severity(),
		Features: features,
		Vector:   vector,
	}, nil
}

// artifactsFor returns the cached pair for a position, loading it on first
// use. Concurrent first-use collapses to a single load via singleflight;
// failures are not cached, so the next call retries.
func (s *predictionService) artifactsFor(ctx context.Context, pos models.Position) (artifacts.Pair, error) {
	s.mu.RLock()
	pair, ok := s.cache[pos]
	s.mu.RUnlock()
	if ok {
		return pair, nil
	}

	v, err, _ := s.group.Do(string(pos), func() (interface{}, error) {
		s.mu.RLock()
		pair, ok := s.cache[pos]
		s.mu.RUnlock()
		if ok {
			return pair, nil
		}

		loaded, err := s.store.Load(ctx, pos)
		if err != nil {
			return artifacts.Pair{}, fmt.Errorf("%w: position %s: %v", ErrArtifactLoad, pos, err)
		}

		s.mu.Lock()
		s.cache[pos] = loaded
		s.mu.Unlock()

		s.logger.Infow("Loaded trained artifacts", "position", pos)
		return loaded, nil
	})
	if err != nil {
		return artifacts.Pair{}, err
	}
	return v.(artifacts.Pair), nil
}

// Reload drops every cached artifact pair. In-flight predictions keep the
// pair they already resolved.
func (s *predictionService) Reload() {
	s.mu.Lock()
	s.cache = make(map[models.Position]artifacts.Pair)
	s.mu.Unlock()
	s.logger.Info("Artifact cache invalidated")
}

// Warmup eagerly loads the artifact pair for every known position. Used at
// startup so the first prediction per position does not pay the load cost.
func (s *predictionService) Warmup(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, pos := range models.Positions {
		pos := pos
		g.Go(func() error {
			if _, err := s.artifactsFor(ctx, pos); err != nil {
				return err
			}
			return nil
		})
	}
	return g.Wait()
}
