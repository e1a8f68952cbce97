package actions

import (
	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/terra/api"
)

// swagger:operation GET /config/expense-types Config ExpenseTypes
// ExpenseTypes
//
// list all valid expense types
//
// ---
//
//	responses:
//	  '200':
//	    description: list of valid expense types
//	    schema:
//	      type: array
//	      items:
//	        type: string
func expenseTypes(c buffalo.Context) error {
	return renderOk(c, api.AllExpenseTypes)
}

// swagger:operation GET /config/approval-types Config ApprovalTypes
// ApprovalTypes
//
// list all valid approval types
//
// ---
//
//	responses:
//	  '200':
//	    description: list of valid approval types
//	    schema:
//	      type: array
//	      items:
//	        type: string
func approvalTypes(c buffalo.Context) error {
	return renderOk(c, api.AllApprovalTypes)
}

// swagger:operation GET /config/unit-types Config UnitTypes
// UnitTypes
//
// list all valid unit types
//
// ---
//
//	responses:
//	  '200':
//	    description: list of valid unit types
//	    schema:
//	      type: array
//	      items:
//	        type: string
func unitTypes(c buffalo.Context) error {
	return renderOk(c, api.AllUnitTypes)
}
