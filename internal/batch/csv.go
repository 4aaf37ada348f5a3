// Package batch runs many independent bot sessions for statistics and
// persists their results. Sessions share nothing but the seed derivation
// formula, so the runner parallelizes them freely.
package batch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/MorganGautherot/flappybird-godmod/internal/sim"
)

// ErrNotFound is returned when a results lookup matches no row.
var ErrNotFound = errors.New("batch: no matching session")

// csvHeader is the canonical column order of a results file.
var csvHeader = []string{
	"game_id", "seed", "score", "duration_seconds", "pipes_passed", "status", "timestamp",
}

// WriteCSV writes records as a results file: one header row, one row per
// session. Timestamps are ISO-8601 local time.
func WriteCSV(w io.Writer, records []sim.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("batch: cannot write CSV header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			strconv.Itoa(rec.GameID),
			strconv.FormatUint(uint64(rec.Seed), 10),
			strconv.Itoa(rec.Score),
			strconv.FormatFloat(rec.Duration, 'f', 3, 64),
			strconv.Itoa(rec.PipesPassed),
			string(rec.Status),
			rec.Timestamp.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("batch: cannot write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a results file written by WriteCSV.
func ReadCSV(r io.Reader) ([]sim.Record, error) {
	cr := csv.NewReader(r)

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("batch: cannot read CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("batch: empty results file")
	}

	var records []sim.Record
	for i, row := range rows[1:] {
		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("batch: row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// FindByGameID resolves a game id to its record, for seed replay.
func FindByGameID(records []sim.Record, gameID int) (sim.Record, error) {
	for _, rec := range records {
		if rec.GameID == gameID {
			return rec, nil
		}
	}
	return sim.Record{}, fmt.Errorf("%w: game_id %d", ErrNotFound, gameID)
}

// FindBySeed resolves a seed to its record.
func FindBySeed(records []sim.Record, seed uint32) (sim.Record, error) {
	for _, rec := range records {
		if rec.Seed == seed {
			return rec, nil
		}
	}
	return sim.Record{}, fmt.Errorf("%w: seed %d", ErrNotFound, seed)
}

func parseRow(row []string) (sim.Record, error) {
	var rec sim.Record
	if len(row) != len(csvHeader) {
		return rec, fmt.Errorf("expected %d columns, got %d", len(csvHeader), len(row))
	}

	gameID, err := strconv.Atoi(row[0])
	if err != nil {
		return rec, fmt.Errorf("bad game_id %q: %w", row[0], err)
	}
	seed, err := strconv.ParseUint(row[1], 10, 32)
	if err != nil {
		return rec, fmt.Errorf("bad seed %q: %w", row[1], err)
	}
	score, err := strconv.Atoi(row[2])
	if err != nil {
		return rec, fmt.Errorf("bad score %q: %w", row[2], err)
	}
	duration, err := strconv.ParseFloat(row[3], 64)
	if err != nil {
		return rec, fmt.Errorf("bad duration %q: %w", row[3], err)
	}
	pipes, err := strconv.Atoi(row[4])
	if err != nil {
		return rec, fmt.Errorf("bad pipes_passed %q: %w", row[4], err)
	}
	ts, err := time.Parse(time.RFC3339, row[6])
	if err != nil {
		return rec, fmt.Errorf("bad timestamp %q: %w", row[6], err)
	}

	rec = sim.Record{
		GameID:      gameID,
		Seed:        uint32(seed),
		Score:       score,
		Duration:    duration,
		PipesPassed: pipes,
		Status:      sim.Status(row[5]),
		Timestamp:   ts,
	}
	return rec, nil
}
