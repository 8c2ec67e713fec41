// Seeder loads the CSV roster into the Postgres players table so the service
// can run with DATASET_SOURCE=postgres.
//
// Usage:
//
//	POSTGRES_URL=postgres://... go run ./cmd/seeder clean_soccer.csv
package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scoutcentral/scout-api/internal/dataset"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: seeder <roster.csv>")
	}
	url := os.Getenv("POSTGRES_URL")
	if url == "" {
		log.Fatal("POSTGRES_URL is required")
	}

	ds, report, err := dataset.LoadCSV(os.Args[1])
	if err != nil {
		log.Fatalf("load csv: %v", err)
	}
	log.Printf("parsed %d rows (%d kept, %d skipped, %d duplicate names)",
		report.Rows, report.Kept, report.Skipped, len(report.Duplicates))

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	inserted := 0
	for _, p := range ds.Players() {
		attrs, err := json.Marshal(p.Attributes)
		if err != nil {
			log.Printf("skip %s: %v", p.Name, err)
			continue
		}
		_, err = pool.Exec(ctx, `
			INSERT INTO players (name, club, nationality, position, performance, attributes)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (name) DO UPDATE SET
				club = EXCLUDED.club,
				nationality = EXCLUDED.nationality,
				position = EXCLUDED.position,
				performance = EXCLUDED.performance,
				attributes = EXCLUDED.attributes
		`, p.Name, p.Club, p.Nationality, string(p.Position), string(p.Performance), attrs)
		if err != nil {
			log.Printf("insert %s: %v", p.Name, err)
			continue
		}
		inserted++
	}

	log.Printf("seeded %d players", inserted)
}
