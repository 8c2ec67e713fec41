package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/scoutcentral/scout-api/internal/models"
)

// Identity columns every row must carry. Remaining columns are treated as
// numeric metrics keyed by their header name.
var requiredColumns = []string{"Name", "Position"}

var textColumns = map[string]bool{
	"Name":        true,
	"Position":    true,
	"Club":        true,
	"Nationality": true,
	"Performance": true,
}

// LoadCSV reads the roster file at path into a frozen Store.
func LoadCSV(path string) (Store, *LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses roster rows from r. The first row is the header; column
// order is not assumed. Rows missing a required identity column are skipped
// and counted in the report.
func ReadCSV(r io.Reader) (Store, *LoadReport, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read dataset header: %w", err)
	}
	colIdx := make(map[string]int, len(header))
	for i, col := range header {
		colIdx[strings.TrimSpace(col)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := colIdx[col]; !ok {
			return nil, nil, fmt.Errorf("dataset missing required column %q", col)
		}
	}

	report := &LoadReport{}
	var players []models.PlayerRecord

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read dataset row: %w", err)
		}
		report.Rows++

		rec, ok := parseRow(header, colIdx, row)
		if !ok {
			report.Skipped++
			continue
		}
		players = append(players, rec)
	}

	snap, dups := newSnapshot(players)
	report.Kept = len(players)
	report.Duplicates = dups
	return snap, report, nil
}

func parseRow(header []string, colIdx map[string]int, row []string) (models.PlayerRecord, bool) {
	cell := func(col string) string {
		i, ok := colIdx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rec := models.PlayerRecord{
		Name:        cell("Name"),
		Club:        cell("Club"),
		Nationality: cell("Nationality"),
		Position:    models.CanonicalPosition(cell("Position")),
		Performance: models.PerformanceLabel(cell("Performance")),
		Attributes:  make(map[string]float64),
	}
	if rec.Name == "" || rec.Position == "" {
		return rec, false
	}

	for i, col := range header {
		col = strings.TrimSpace(col)
		if textColumns[col] || i >= len(row) {
			continue
		}
		raw := strings.TrimSpace(row[i])
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			// Non-numeric cell in a metric column; leave the attribute absent
			// rather than fabricating a value.
			continue
		}
		rec.Attributes[col] = v
	}
	return rec, true
}
