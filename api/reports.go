package api

import (
	"github.com/gofrs/uuid"
)

// Allocation and expenditure rollup for a unit or fund over a date range
// swagger:model
type Report struct {
	// unit name or fund identity
	Title string `json:"title"`

	// yyyy-mm-dd
	Start string `json:"start"`

	// yyyy-mm-dd
	End string `json:"end"`

	// fiscal year of the end date
	FiscalYear int `json:"fiscal_year"`

	// one row per employee in scope, ordered by name
	Rows []ReportRow `json:"rows"`

	Totals ReportRow `json:"totals"`
}

// swagger:model
type ReportRow struct {
	// swagger:strfmt uuid4
	EmployeeID uuid.UUID `json:"employee_id,omitempty"`

	Employee string `json:"employee"`

	ProfDevAlloc  Currency `json:"prof_dev_alloc"`
	AdminAlloc    Currency `json:"admin_alloc"`
	TotalAlloc    Currency `json:"total_alloc"`
	ProfDevExpend Currency `json:"prof_dev_expend"`
	AdminExpend   Currency `json:"admin_expend"`
	TotalExpend   Currency `json:"total_expend"`

	// professional development cap for the fiscal year, unit reports only
	ProfDevCap *Currency `json:"prof_dev_cap,omitempty"`

	// cap less approved professional development, unit reports only
	ProfDevRemaining *Currency `json:"prof_dev_remaining,omitempty"`
}
