package actions

import (
	"time"

	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/terra/api"
	"github.com/silinternational/terra/domain"
	"github.com/silinternational/terra/fin"
	"github.com/silinternational/terra/log"
	"github.com/silinternational/terra/models"
	"github.com/silinternational/terra/storage"
)

// reportRange reads the optional `start` and `end` params, defaulting to the current fiscal year
func reportRange(c buffalo.Context) (time.Time, time.Time, error) {
	start, end, err := domain.ParseDateRange(c.Param("start"), c.Param("end"), time.Now().UTC())
	if err != nil {
		return start, end, api.NewAppError(err, api.ErrorInvalidDate, api.CategoryUser)
	}
	return start, end, nil
}

// renderReport sends the report as JSON, or as a CSV download if the client accepts text/csv. CSV
// downloads are archived when file storage is configured.
func renderReport(c buffalo.Context, kind string, report models.Report) error {
	apiReport := report.ConvertToAPI()
	if !wantsCSV(c) {
		return renderOk(c, apiReport)
	}

	content, err := fin.ReportToCSV(apiReport)
	if err != nil {
		return reportError(c, api.NewAppError(err, api.ErrorReportRender, api.CategoryInternal))
	}
	filename := fin.ReportFilename(apiReport)

	if storage.Enabled() {
		key := storage.Key(storage.PrefixReports, kind, filename, time.Now().UTC())
		if _, err := storage.StoreFile(key, domain.ContentCSV, content); err != nil {
			log.WithFields(map[string]any{"key": key}).Errorf("failed to archive report: %s", err)
		}
	}

	return renderCSV(c, filename, content)
}
