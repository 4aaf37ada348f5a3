package batch

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MorganGautherot/flappybird-godmod/internal/sim"
)

func sampleRecords() []sim.Record {
	ts := time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC)
	return []sim.Record{
		{GameID: 1, Seed: 101, Score: 4, Duration: 21.5, PipesPassed: 4, Status: sim.StatusCompleted, Timestamp: ts},
		{GameID: 2, Seed: 102, Score: 0, Duration: 1.333, PipesPassed: 0, Status: sim.StatusCompleted, Timestamp: ts.Add(time.Minute)},
		{GameID: 3, Seed: 103, Score: 7, Duration: 40.1, PipesPassed: 7, Status: sim.StatusAborted, Timestamp: ts.Add(2 * time.Minute)},
	}
}

func TestCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRecords()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	firstLine, _, _ := strings.Cut(buf.String(), "\n")
	const wantHeader = "game_id,seed,score,duration_seconds,pipes_passed,status,timestamp"
	if firstLine != wantHeader {
		t.Errorf("header = %q, want %q", firstLine, wantHeader)
	}

	got, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	want := sampleRecords()
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].GameID != want[i].GameID || got[i].Seed != want[i].Seed ||
			got[i].Score != want[i].Score || got[i].Duration != want[i].Duration ||
			got[i].PipesPassed != want[i].PipesPassed || got[i].Status != want[i].Status {
			t.Errorf("record %d = %+v, want %+v", i, got[i], want[i])
		}
		if !got[i].Timestamp.Equal(want[i].Timestamp) {
			t.Errorf("record %d timestamp = %v, want %v", i, got[i].Timestamp, want[i].Timestamp)
		}
	}
}

func TestReadCSVRejectsGarbage(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"bad seed", "game_id,seed,score,duration_seconds,pipes_passed,status,timestamp\n1,notaseed,0,1.0,0,completed,2026-08-29T14:30:00Z\n"},
		{"missing columns", "game_id,seed,score,duration_seconds,pipes_passed,status,timestamp\n1,2,3\n"},
		{"bad timestamp", "game_id,seed,score,duration_seconds,pipes_passed,status,timestamp\n1,2,3,4.0,3,completed,yesterday\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadCSV(strings.NewReader(tt.input)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestFindByGameID(t *testing.T) {
	records := sampleRecords()

	rec, err := FindByGameID(records, 2)
	if err != nil {
		t.Fatalf("FindByGameID: %v", err)
	}
	if rec.Seed != 102 {
		t.Errorf("seed = %d, want 102", rec.Seed)
	}

	if _, err := FindByGameID(records, 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing id: err = %v, want ErrNotFound", err)
	}
}

func TestFindBySeed(t *testing.T) {
	records := sampleRecords()

	rec, err := FindBySeed(records, 103)
	if err != nil {
		t.Fatalf("FindBySeed: %v", err)
	}
	if rec.GameID != 3 {
		t.Errorf("game id = %d, want 3", rec.GameID)
	}

	if _, err := FindBySeed(records, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing seed: err = %v, want ErrNotFound", err)
	}
}
