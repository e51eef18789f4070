package dashboard

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmoreno/invitado/internal/metrics"
	"github.com/dmoreno/invitado/internal/models"
)

// ImportReport summarizes a bulk CSV import.
type ImportReport struct {
	Imported int
	Skipped  int // rows with no guest name
	Failed   int // rows the store rejected
}

// ErrEmptyImport is returned when the CSV has no header or no data rows.
var ErrEmptyImport = errors.New("import file is empty or has no data rows")

// columnAliases maps the header spellings the exported sheets use onto
// canonical column names. Matching is case-insensitive.
var columnAliases = map[string]string{
	"id":                "id",
	"invitado":          "guest",
	"nombre":            "guest",
	"guest":             "guest",
	"asistencia":        "attendance",
	"attendance":        "attendance",
	"adultos":           "adults",
	"adults":            "adults",
	"niños":             "kids",
	"ninos":             "kids",
	"kids":              "kids",
	"alergias/notas":    "allergies",
	"alergias":          "allergies",
	"allergies":         "allergies",
	"link":              "link",
	"enlace":            "link",
	"estado de la liga": "active",
	"estado":            "active",
	"active":            "active",
}

// BulkImport reads a guest CSV and saves each row through the store. Rows
// without a guest name are skipped and rows the store rejects are counted,
// but neither aborts the rest of the import. A file with no usable header or
// no data rows fails before touching the store.
func (d *Dashboard) BulkImport(ctx context.Context, r io.Reader) (ImportReport, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return ImportReport{}, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) < 2 {
		return ImportReport{}, ErrEmptyImport
	}

	columns := make(map[string]int)
	for i, h := range records[0] {
		if name, ok := columnAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			columns[name] = i
		}
	}
	if _, ok := columns["guest"]; !ok {
		return ImportReport{}, fmt.Errorf("no guest-name column in header %v", records[0])
	}

	var report ImportReport
	for _, row := range records[1:] {
		field := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		name := field("guest")
		if name == "" {
			report.Skipped++
			metrics.ImportRows.WithLabelValues("skipped").Inc()
			continue
		}

		g := models.Guest{
			ID:         field("id"),
			Name:       name,
			Attendance: models.Attendance(field("attendance")),
			Adults:     parseCount(field("adults"), 1),
			Kids:       parseCount(field("kids"), 0),
			Allergies:  field("allergies"),
			Link:       field("link"),
			Active:     !strings.EqualFold(field("active"), "FALSE"),
		}
		if strings.Contains(g.Link, "t=c") {
			g.Type = "c"
		}

		if _, err := d.svc.SaveGuest(ctx, g); err != nil {
			d.log.Warn("import row failed", "guest", name, "error", err)
			report.Failed++
			metrics.ImportRows.WithLabelValues("error").Inc()
			continue
		}
		report.Imported++
		metrics.ImportRows.WithLabelValues("ok").Inc()
	}

	if err := d.Refresh(ctx); err != nil {
		return report, err
	}
	return report, nil
}

func parseCount(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return def
	}
	return n
}
