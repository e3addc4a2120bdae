// Package export renders candidate lists as spreadsheets.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/fadilmartias/ai-recruiter/internal/model"
	"github.com/xuri/excelize/v2"
)

const ShortlistSheet = "Shortlist"

var shortlistHeader = []any{
	"Candidate", "Email", "Ranking Score", "Reason", "Status", "Quiz Score", "Offer Sent At", "Created At",
}

var columnWidths = []struct {
	from, to string
	width    float64
}{
	{"A", "B", 30},
	{"D", "D", 60},
	{"G", "H", 22},
}

// ShortlistWorkbook writes one header row followed by one row per candidate
// and returns the encoded .xlsx file.
func ShortlistWorkbook(candidates []model.Candidate) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ShortlistSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for _, w := range columnWidths {
		if err := f.SetColWidth(ShortlistSheet, w.from, w.to, w.width); err != nil {
			return nil, fmt.Errorf("set width %s:%s: %w", w.from, w.to, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	header := shortlistHeader
	if err := f.SetSheetRow(ShortlistSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	if err := f.SetCellStyle(ShortlistSheet, "A1", "H1", headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, c := range candidates {
		row := []any{
			c.CandidateName,
			c.Email,
			c.Score,
			c.Reason,
			string(c.Status),
			optionalScore(c.QuizScore),
			optionalTime(c.OfferSentAt),
			c.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := f.SetSheetRow(ShortlistSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func optionalScore(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func optionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
