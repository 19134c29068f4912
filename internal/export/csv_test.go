package export

import (
	"strings"
	"testing"
	"time"

	"spendlens/internal/core"
)

func TestWriteCSV(t *testing.T) {
	records := []core.Expense{
		{
			Date:        time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
			Amount:      12.5,
			Category:    core.Food,
			Description: "Starbucks - Coffee",
		},
		{
			Date:        time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
			Amount:      80,
			Category:    core.Bills,
			Description: `electricity, "winter" rate`,
		},
	}

	var sb strings.Builder
	if err := WriteCSV(&sb, records); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines: %q", len(lines), sb.String())
	}
	if lines[0] != "Date,Amount,Category,Description" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != "2026-01-02,12.50,Food,Starbucks - Coffee" {
		t.Fatalf("unexpected row %q", lines[1])
	}
	// Fields containing commas or quotes come out quoted, with inner quotes
	// doubled.
	if lines[2] != `2026-01-03,80.00,Bills,"electricity, ""winter"" rate"` {
		t.Fatalf("unexpected quoted row %q", lines[2])
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var sb strings.Builder
	if err := WriteCSV(&sb, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if got := sb.String(); got != "Date,Amount,Category,Description\n" {
		t.Fatalf("expected header only, got %q", got)
	}
}

func TestFilename(t *testing.T) {
	if got := Filename("2026-01-15"); got != "expenses-2026-01-15.csv" {
		t.Fatalf("unexpected filename %q", got)
	}
}
