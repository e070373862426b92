// Package tournamentexport renders a match's score submissions as downloadable
// files.
package tournamentexport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	tournamentdomain "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/domain"
	"github.com/xuri/excelize/v2"
)

// ErrNoScores is returned when a match has no submissions to export.
var ErrNoScores = errors.New("no score submissions found for this match")

// Format is a supported export format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPNG  Format = "png"
)

// ContentType returns the MIME type served for f.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPNG:
		return "image/png"
	}
	return "application/octet-stream"
}

// ParseFormat accepts csv, xlsx or png.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatCSV, FormatXLSX, FormatPNG:
		return f, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

var header = []string{"Team Name", "Updated at", "Position", "Eliminations", "Points", "Screenshots"}

// Filename names an export of matchName taken at now.
func Filename(matchName string, f Format, now time.Time) string {
	return fmt.Sprintf("%s_scores_%s.%s", matchName, now.Format("01-02-2006_15-04-05"), f)
}

// Write renders rows in format f to w.
func Write(w io.Writer, f Format, matchName string, rows []tournamentdomain.ScoreRow) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, rows)
	case FormatXLSX:
		return WriteXLSX(w, matchName, rows)
	case FormatPNG:
		return WritePointsChart(w, matchName, rows)
	}
	return fmt.Errorf("unsupported export format %q", f)
}

func record(r tournamentdomain.ScoreRow) []string {
	return []string{
		r.TeamName,
		r.UpdatedAt.UTC().Format(time.RFC3339),
		strconv.Itoa(r.Position),
		strconv.Itoa(r.Eliminations),
		strconv.Itoa(r.Points),
		strings.Join(r.ScreenshotLinks, " "),
	}
}

// WriteCSV writes one line per submission after the header line.
func WriteCSV(w io.Writer, rows []tournamentdomain.ScoreRow) error {
	if len(rows) == 0 {
		return ErrNoScores
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(record(r)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a single "Scores" sheet with numeric position,
// eliminations and points cells.
func WriteXLSX(w io.Writer, matchName string, rows []tournamentdomain.ScoreRow) error {
	if len(rows) == 0 {
		return ErrNoScores
	}
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Scores"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{
			r.TeamName,
			r.UpdatedAt.UTC().Format(time.RFC3339),
			r.Position,
			r.Eliminations,
			r.Points,
			strings.Join(r.ScreenshotLinks, " "),
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", r.TeamName, err)
		}
	}

	if err := f.SetDocProps(&excelize.DocProperties{Title: matchName + " scores"}); err != nil {
		return fmt.Errorf("failed to set document properties: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write XLSX: %w", err)
	}
	return nil
}
