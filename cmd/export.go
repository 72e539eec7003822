package cmd

import (
	"fmt"

	"github.com/abhisek/parley/internal/store"
	"github.com/xuri/excelize/v2"
)

const (
	historySheet = "History"
	summarySheet = "Summary"
)

var historyHeader = []any{
	"Sequence", "Time", "Section", "Entry", "Activity",
	"Score", "Total", "Percent", "WPM", "Accuracy", "Target Met", "Detail", "Seconds",
}

var summaryHeader = []any{"Section", "Attempts", "Average %", "Best %", "Last Practiced"}

// exportHistory writes a workbook with one row per practice event and a
// per-section summary sheet.
func exportHistory(path string, stats []store.SectionStats, events []store.PracticeEvent) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", historySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("add summary sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	rows := make([][]any, 0, len(events))
	for _, ev := range events {
		rows = append(rows, []any{
			ev.Sequence,
			ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
			ev.Section,
			ev.EntryID,
			ev.Activity,
			ev.Score,
			ev.Total,
			ev.Percent(),
			ev.WPM,
			ev.Accuracy,
			ev.TargetMet,
			ev.Detail,
			int(ev.Duration.Seconds()),
		})
	}
	if err := writeSheet(f, historySheet, historyHeader, rows, bold); err != nil {
		return err
	}

	rows = rows[:0]
	for _, s := range stats {
		rows = append(rows, []any{
			s.Section,
			s.Attempts,
			s.AvgPercent,
			s.BestPercent,
			s.LastPracticed.Local().Format("2006-01-02 15:04:05"),
		})
	}
	if err := writeSheet(f, summarySheet, summaryHeader, rows, bold); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []any, rows [][]any, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}
