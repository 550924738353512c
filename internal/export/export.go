// Package export writes practice statistics to spreadsheet files.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/kidlearn/internal/spacedrep"
	"github.com/abhisek/kidlearn/internal/subject"
)

// Header is the first row of every accuracy sheet.
var Header = []any{"Item", "Prompt", "Attempts", "Correct", "Accuracy %", "Round", "Next review"}

// Row is one item line in an accuracy sheet.
type Row struct {
	Key        string
	Prompt     string
	Attempts   int
	Correct    int
	Accuracy   int
	Round      int
	NextReview time.Time // zero for never-practiced items
}

// Sheet is one subject's worksheet.
type Sheet struct {
	Name string
	Rows []Row
}

// RowsFrom converts ranked scheduler entries into sheet rows, keeping
// their order.
func RowsFrom(entries []spacedrep.Entry[subject.Item]) []Row {
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		r := Row{
			Key:      e.Key,
			Prompt:   e.Item.Prompt,
			Attempts: e.Record.TotalAttempts,
			Correct:  e.Record.CorrectAttempts,
			Accuracy: e.Accuracy,
			Round:    e.Record.Round,
		}
		if e.Practiced {
			r.NextReview = e.Record.NextReviewAt
		}
		rows = append(rows, r)
	}
	return rows
}

// WriteAccuracy writes one worksheet per sheet as an xlsx workbook.
func WriteAccuracy(w io.Writer, sheets []Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("no sheets to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	const defaultSheet = "Sheet1"
	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sh.Name); err != nil {
				return fmt.Errorf("name sheet %q: %w", sh.Name, err)
			}
		} else if _, err := f.NewSheet(sh.Name); err != nil {
			return fmt.Errorf("create sheet %q: %w", sh.Name, err)
		}
		if err := writeSheet(f, sh); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sh Sheet) error {
	header := Header
	if err := f.SetSheetRow(sh.Name, "A1", &header); err != nil {
		return fmt.Errorf("sheet %q header: %w", sh.Name, err)
	}
	for i, r := range sh.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		next := ""
		if !r.NextReview.IsZero() {
			next = r.NextReview.Local().Format("2006-01-02 15:04")
		}
		values := []any{r.Key, r.Prompt, r.Attempts, r.Correct, r.Accuracy, r.Round, next}
		if err := f.SetSheetRow(sh.Name, cell, &values); err != nil {
			return fmt.Errorf("sheet %q row %d: %w", sh.Name, i+2, err)
		}
	}
	return nil
}
