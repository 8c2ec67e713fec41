package models

import (
	"fmt"
	"strings"
)

// Position is a canonical (lowercase) player position.
type Position string

const (
	PositionDefender   Position = "defender"
	PositionMidfielder Position = "midfielder"
	PositionStriker    Position = "striker"
	PositionGoalkeeper Position = "goalkeeper"
)

// Positions lists the known positions in routing order.
var Positions = []Position{
	PositionDefender,
	PositionMidfielder,
	PositionStriker,
	PositionGoalkeeper,
}

// CanonicalPosition lowercases and trims a raw position string. It is applied
// at every boundary where a position value enters the service, so peer
// grouping and model routing agree on the same spelling.
func CanonicalPosition(raw string) Position {
	return Position(strings.ToLower(strings.TrimSpace(raw)))
}

// ParsePosition canonicalizes raw and validates it against the known
// positions. Returns false if the value is outside the four-value domain.
func ParsePosition(raw string) (Position, bool) {
	pos := CanonicalPosition(raw)
	for _, p := range Positions {
		if p == pos {
			return pos, true
		}
	}
	return pos, false
}

// PlayerRecord is a single row of the roster dataset. Identity and display
// fields are typed; every numeric column is addressable by its dataset header
// name via Metric.
type PlayerRecord struct {
	Name        string             `json:"name"`
	Club        string             `json:"club"`
	Nationality string             `json:"nationality"`
	Position    Position           `json:"position"`
	Performance PerformanceLabel   `json:"performance,omitempty"`
	Attributes  map[string]float64 `json:"attributes"`
}

// Metric returns the numeric attribute stored under the given column name.
func (p *PlayerRecord) Metric(name string) (float64, bool) {
	v, ok := p.Attributes[name]
	return v, ok
}

// Common numeric column names shared by every position.
const (
	ColAge         = "Age"
	ColAppearances = "Appearances"
	ColGoals       = "Goals"
	ColAssist      = "Assist"
)

func (p *PlayerRecord) Age() int         { return int(p.Attributes[ColAge]) }
func (p *PlayerRecord) Appearances() int { return int(p.Attributes[ColAppearances]) }
func (p *PlayerRecord) Goals() int       { return int(p.Attributes[ColGoals]) }
func (p *PlayerRecord) Assists() int     { return int(p.Attributes[ColAssist]) }

// PerformanceLabel is the categorical outcome of the position classifiers.
// The label space is owned by the trained artifacts; the service only assumes
// the three-way severity mapping below for display.
type PerformanceLabel string

const (
	LabelGood   PerformanceLabel = "Good"
	LabelNormal PerformanceLabel = "Normal"
	LabelPoor   PerformanceLabel = "Poor"
)

// Severity maps a label to a display class: green for Good, blue for Normal,
// red for anything else.
func (l PerformanceLabel) Severity() string {
	switch l {
	case LabelGood:
		return "green"
	case LabelNormal:
		return "blue"
	default:
		return "red"
	}
}

// featuresByPosition is the static routing table: the ordered feature subset
// each position's scaler and classifier were trained on. Order is significant,
// it is the input order fed to the scaler.
var featuresByPosition = map[Position][]string{
	PositionDefender: {
		"Age", "Appearances", "Distance / 90 minutes", "Interception",
	},
	PositionMidfielder: {
		"Appearances", "Key Passes", "Pass Attempt / 90 minutes",
		"Pass Completed / 90 minutes", "Tackle Attempt", "Tackle Won",
	},
	PositionStriker: {
		"Appearances", "Goals", "Interception", "Key Passes", "Shots on Target",
	},
	PositionGoalkeeper: {
		"Age", "Appearances", "Conceded", "Shutouts",
	},
}

// FeaturesFor returns a copy of the required feature list for a position.
func FeaturesFor(pos Position) ([]string, error) {
	features, ok := featuresByPosition[pos]
	if !ok {
		return nil, fmt.Errorf("no feature profile for position %q", pos)
	}
	out := make([]string, len(features))
	copy(out, features)
	return out, nil
}

// DefaultComparisonFeatures is the outfield metric set used by the dashboard
// radar chart when the caller does not request a specific feature list.
var DefaultComparisonFeatures = []string{
	"Distance / 90 minutes",
	"Interception",
	"Key Passes",
	"Pass Attempt / 90 minutes",
	"Pass Completed / 90 minutes",
	"Tackle Attempt",
	"Tackle Won",
}

// NormalizedComparison holds the peer-relative min-max normalized profile of a
// player. PeerAverage and Player are aligned index-for-index with Features and
// lie in [0,1].
type NormalizedComparison struct {
	Features    []string     `json:"features"`
	PeerAverage []float64    `json:"peer_average"`
	Player      []float64    `json:"player"`
	PeerCount   int          `json:"peer_count"`
	Subject     PlayerRecord `json:"subject"`
}
