package fin

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/silinternational/terra/api"
)

var reportHeader = []string{
	"Employee",
	"Prof Dev Approved",
	"Admin Approved",
	"Total Approved",
	"Prof Dev Expenditures",
	"Admin Expenditures",
	"Total Expenditures",
}

// ReportToCSV renders a report with one line per row followed by a Totals line
func ReportToCSV(r api.Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(reportHeader); err != nil {
		return nil, err
	}
	for _, row := range r.Rows {
		if err := w.Write(reportRecord(row.Employee, row)); err != nil {
			return nil, err
		}
	}
	if err := w.Write(reportRecord("Totals", r.Totals)); err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("error writing report csv: %w", err)
	}
	return buf.Bytes(), nil
}

func reportRecord(name string, row api.ReportRow) []string {
	return []string{
		name,
		row.ProfDevAlloc.String(),
		row.AdminAlloc.String(),
		row.TotalAlloc.String(),
		row.ProfDevExpend.String(),
		row.AdminExpend.String(),
		row.TotalExpend.String(),
	}
}

// ReportFilename is the download name of a report, e.g. "1000-200-30_FY2024.csv"
func ReportFilename(r api.Report) string {
	title := strings.Map(func(c rune) rune {
		switch c {
		case '/', '\\', '"', ':', '*', '?', '<', '>', '|':
			return '_'
		}
		return c
	}, r.Title)
	return fmt.Sprintf("%s_FY%d.csv", title, r.FiscalYear)
}
