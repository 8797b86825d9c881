package roundexports

import (
	"bytes"
	"fmt"
	"time"

	roundservice "github.com/Black-And-White-Club/guss-backend/app/modules/round/application"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the results workbook.
const (
	ResultsSheet = "Results"
	SummarySheet = "Summary"
)

// XLSXContentType is the media type of the results workbook.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var resultsHeader = []any{"Rank", "Username", "Taps", "Score"}

// WriteResultsXLSX renders the per-user standings and a summary sheet.
func WriteResultsXLSX(res *roundservice.RoundResults) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with "Sheet1"
	if err := f.SetSheetName("Sheet1", ResultsSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := f.SetSheetRow(ResultsSheet, "A1", &resultsHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for i, total := range res.Ranking {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{i + 1, total.Username, total.Taps, total.Score}
		if err := f.SetSheetRow(ResultsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	if err := f.SetColWidth(ResultsSheet, "B", "B", 24); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return nil, fmt.Errorf("failed to add summary sheet: %w", err)
	}

	winner := "-"
	if res.Winner != nil {
		winner = res.Winner.Username
	}
	summary := [][]any{
		{"Round", res.Round.ID.String()},
		{"Status", res.Phase.String()},
		{"Start", res.Round.StartTime.Format(time.RFC3339)},
		{"End", res.Round.EndTime.Format(time.RFC3339)},
		{"Total taps", res.Stats.TotalTaps},
		{"Total score", res.Stats.TotalScore},
		{"Winner", winner},
		{"Generated", res.AsOf.Format(time.RFC3339)},
	}
	for i, row := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write summary: %w", err)
		}
	}
	if err := f.SetColWidth(SummarySheet, "A", "B", 40); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
