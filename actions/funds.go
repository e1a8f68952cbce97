package actions

import (
	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/terra/domain"
	"github.com/silinternational/terra/models"
)

// swagger:operation GET /funds Funds FundsList
// FundsList
//
// list the funds the current user may view
// ---
//
//	responses:
//	  '200':
//	    description: a list of Funds
//	    schema:
//	      type: array
//	      items:
//	        "$ref": "#/definitions/Fund"
func fundsList(c buffalo.Context) error {
	funds, err := models.FundsViewableBy(models.Tx(c), models.CurrentUser(c))
	if err != nil {
		return reportError(c, err)
	}
	return renderOk(c, funds.ConvertToAPI())
}

// swagger:operation GET /funds/{id} Funds FundsView
// FundsView
//
// view a fund
// ---
//
//	parameters:
//	  - name: id
//	    in: path
//	    required: true
//	    description: fund ID
//	responses:
//	  '200':
//	    description: a Fund
//	    schema:
//	      "$ref": "#/definitions/Fund"
func fundsView(c buffalo.Context) error {
	fund, err := getReferencedResource[models.Fund](c, domain.TypeFund)
	if err != nil {
		return reportError(c, err)
	}
	return renderOk(c, fund.ConvertToAPI())
}

// swagger:operation GET /funds/{id}/report Funds FundsReport
// FundsReport
//
// approvals and expenses charged to the fund, by employee
// ---
//
//	parameters:
//	  - name: id
//	    in: path
//	    required: true
//	    description: fund ID
//	  - name: start
//	    in: query
//	    required: false
//	    description: yyyy-mm-dd, defaults to the start of the current fiscal year
//	  - name: end
//	    in: query
//	    required: false
//	    description: yyyy-mm-dd, defaults to the end of the current fiscal year
//	responses:
//	  '200':
//	    description: a Report, or a CSV file if the request accepts text/csv
//	    schema:
//	      "$ref": "#/definitions/Report"
func fundsReport(c buffalo.Context) error {
	fund, err := getReferencedResource[models.Fund](c, domain.TypeFund)
	if err != nil {
		return reportError(c, err)
	}

	start, end, err := reportRange(c)
	if err != nil {
		return reportError(c, err)
	}

	report, err := models.FundReport(models.Tx(c), *fund, start, end)
	if err != nil {
		return reportError(c, err)
	}
	return renderReport(c, domain.TypeFund, report)
}
