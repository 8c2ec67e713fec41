package logic

import (
	"context"

	"go.uber.org/zap"

	"github.com/scoutcentral/scout-api/internal/dataset"
	"github.com/scoutcentral/scout-api/internal/models"
)

type comparisonService struct {
	ds     dataset.Store
	logger *zap.SugaredLogger
}

func NewComparisonService(ds dataset.Store, logger *zap.Logger) ComparisonService {
	return &comparisonService{ds: ds, logger: logger.Sugar()}
}

// Compare builds the min-max normalized profile of a player against the
// average of same-position peers, aligned to the requested feature order.
//
// Degenerate-case policy: a feature with zero variance across the peer group
// (max == min, including a peer group of one) normalizes to 0.0 for both the
// peer average and the subject. This is applied deterministically instead of
// propagating a division by zero.
func (s *comparisonService) Compare(ctx context.Context, playerName string, features []string) (*models.NormalizedComparison, error) {
	if len(features) == 0 {
		return nil, ErrEmptyFeatureSet
	}

	subject, ok := s.ds.FindByName(playerName)
	if !ok {
		return nil, playerNotFound(playerName)
	}

	peers := s.ds.PeersOf(subject.Position)

	cmp := &models.NormalizedComparison{
		Features:    append([]string(nil), features...),
		PeerAverage: make([]float64, len(features)),
		Player:      make([]float64, len(features)),
		PeerCount:   len(peers),
		Subject:     *subject,
	}

	for fi, feature := range features {
		raw, ok := subject.Metric(feature)
		if !ok {
			return nil, missingFeature(feature)
		}

		var (
			sum      float64
			count    int
			min, max float64
		)
		for _, peer := range peers {
			v, ok := peer.Metric(feature)
			if !ok {
				continue
			}
			if count == 0 || v < min {
				min = v
			}
			if count == 0 || v > max {
				max = v
			}
			sum += v
			count++
		}
		if count == 0 {
			// Peer group includes the subject, so this only happens when the
			// feature column is absent from the whole position group.
			return nil, missingFeature(feature)
		}

		span := max - min
		if span == 0 {
			cmp.PeerAverage[fi] = 0
			cmp.Player[fi] = 0
			s.logger.Debugw("Zero-variance feature in peer group",
				"feature", feature,
				"position", subject.Position,
				"peers", count,
			)
			continue
		}

		mean := sum / float64(count)
		cmp.PeerAverage[fi] = (mean - min) / span
		cmp.Player[fi] = (raw - min) / span
	}

	return cmp, nil
}
