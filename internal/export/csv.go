// Package export renders record lists for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"spendlens/internal/core"
)

var csvHeader = []string{"Date", "Amount", "Category", "Description"}

// WriteCSV streams the records as CSV with a fixed header row. Amounts are
// rendered with two decimals; dates in YYYY-MM-DD form.
func WriteCSV(w io.Writer, records []core.Expense) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range records {
		row := []string{
			e.Date.Format(core.DateLayout),
			strconv.FormatFloat(e.Amount, 'f', 2, 64),
			string(e.Category),
			e.Description,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// Filename returns the download name for an export generated on the given
// date string, e.g. "expenses-2026-01-15.csv".
func Filename(date string) string {
	return "expenses-" + date + ".csv"
}
