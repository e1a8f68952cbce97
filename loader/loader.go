// Package loader imports organization and travel records from CSV files. Files are loaded in dependency
// order: units, then employees, then travel data. Each row is applied in its own transaction, so a bad row
// is reported without undoing the rows before it.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/gobuffalo/pop/v6"
	"github.com/pkg/errors"

	"github.com/silinternational/terra/api"
	"github.com/silinternational/terra/log"
)

const (
	KindUnits      = "units"
	KindEmployees  = "employees"
	KindTravelData = "travel-data"
)

// Kinds lists the import kinds in the order they must be loaded
var Kinds = []string{KindUnits, KindEmployees, KindTravelData}

// Result summarizes an import
type Result struct {
	Kind     string
	Created  int
	Failures []RowError
}

// RowError identifies a row that could not be imported
type RowError struct {
	// Line is the 1-based line number in the file, counting the header
	Line int
	Err  error
}

func (r RowError) Error() string {
	return fmt.Sprintf("line %d: %s", r.Line, r.Err)
}

func (r *Result) fail(line int, err error) {
	r.Failures = append(r.Failures, RowError{Line: line, Err: err})
	log.WithFields(map[string]any{
		"kind": r.Kind,
		"line": line,
	}).Warningf("import row failed: %s", err)
}

func (r Result) ConvertToAPI() api.ImportResult {
	result := api.ImportResult{
		Kind:     r.Kind,
		Created:  r.Created,
		Failures: make([]api.ImportFailure, len(r.Failures)),
	}
	for i, f := range r.Failures {
		result.Failures[i] = api.ImportFailure{Line: f.Line, Error: f.Err.Error()}
	}
	return result
}

// Load runs the loader for the given kind
func Load(db *pop.Connection, kind string, r io.Reader) (Result, error) {
	switch kind {
	case KindUnits:
		return LoadUnits(db, r)
	case KindEmployees:
		return LoadEmployees(db, r)
	case KindTravelData:
		return LoadTravelData(db, r)
	}
	return Result{Kind: kind}, api.NewAppError(fmt.Errorf("unknown import kind %q", kind), api.ErrorImportKind,
		api.CategoryUser)
}

// row is one CSV record along with its line number
type row struct {
	line   int
	fields []string
}

// get returns the trimmed field at index i, or an empty string if the row is short
func (r row) get(i int) string {
	if i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

// readRows reads every record after the header. The header must have at least `columns` fields.
func readRows(r io.Reader, columns int) ([]row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, api.NewAppError(errors.New("file is empty"), api.ErrorImportBadHeader, api.CategoryUser)
	}
	if err != nil {
		return nil, api.NewAppError(errors.Wrap(err, "error reading header"), api.ErrorImportBadHeader,
			api.CategoryUser)
	}
	if len(header) < columns {
		return nil, api.NewAppError(
			fmt.Errorf("header has %d columns, expected %d", len(header), columns),
			api.ErrorImportBadHeader,
			api.CategoryUser,
		)
	}

	var rows []row
	line := 1
	for {
		fields, err := reader.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			return rows, api.NewAppError(errors.Wrapf(err, "error reading line %d", line), api.ErrorImportRow,
				api.CategoryUser)
		}
		if isBlank(fields) {
			continue
		}
		rows = append(rows, row{line: line, fields: fields})
	}
	return rows, nil
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// isYes interprets Y/N columns
func isYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "1":
		return true
	}
	return false
}

// eachRow applies fn to every row in its own transaction and records the outcome
func eachRow(db *pop.Connection, result *Result, rows []row, fn func(tx *pop.Connection, r row) error) {
	for _, r := range rows {
		err := db.Transaction(func(tx *pop.Connection) error {
			return fn(tx, r)
		})
		if err != nil {
			result.fail(r.line, err)
			continue
		}
		result.Created++
	}
}
