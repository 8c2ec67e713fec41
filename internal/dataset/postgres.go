package dataset

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scoutcentral/scout-api/internal/models"
)

// LoadPostgres reads the roster from the players table into a frozen Store.
// Numeric metrics live in a JSONB column so the schema does not need to chase
// every per-position metric the training pipeline adds.
func LoadPostgres(ctx context.Context, pool *pgxpool.Pool) (Store, *LoadReport, error) {
	rows, err := pool.Query(ctx, `
		SELECT name, club, nationality, position, performance, attributes
		FROM players
		ORDER BY id
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("query players: %w", err)
	}
	defer rows.Close()

	report := &LoadReport{}
	var players []models.PlayerRecord

	for rows.Next() {
		var (
			name, club, nationality, position, performance string
			attrsJSON                                      []byte
		)
		if err := rows.Scan(&name, &club, &nationality, &position, &performance, &attrsJSON); err != nil {
			return nil, nil, fmt.Errorf("scan player row: %w", err)
		}
		report.Rows++

		rec := models.PlayerRecord{
			Name:        name,
			Club:        club,
			Nationality: nationality,
			Position:    models.CanonicalPosition(position),
			Performance: models.PerformanceLabel(performance),
			Attributes:  make(map[string]float64),
		}
		if len(attrsJSON) > 0 {
			if err := json.Unmarshal(attrsJSON, &rec.Attributes); err != nil {
				report.Skipped++
				continue
			}
		}
		if rec.Name == "" || rec.Position == "" {
			report.Skipped++
			continue
		}
		players = append(players, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate players: %w", err)
	}

	snap, dups := newSnapshot(players)
	report.Kept = len(players)
	report.Duplicates = dups
	return snap, report, nil
}
