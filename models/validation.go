package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gobuffalo/validate/v3"
	"github.com/shopspring/decimal"

	"github.com/silinternational/terra/api"
)

// Model validation tool
var mValidate *validator.Validate

var fieldValidators = map[string]func(validator.FieldLevel) bool{
	"appRole":      validateAppRole,
	"approvalType": validateApprovalType,
	"expenseType":  validateExpenseType,
	"unitType":     validateUnitType,
}

func validateModel(m any) *validate.Errors {
	vErrs := validate.NewErrors()

	if err := mValidate.Struct(m); err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			vErrs.Add(err.StructNamespace(), err.Error())
		}
	}
	return vErrs
}

// flattenPopErrors - pop validation errors are complex structures, this flattens them to a simple string
func flattenPopErrors(popErrs *validate.Errors) string {
	var msgs []string
	for key, val := range popErrs.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", key, strings.Join(val, ", ")))
	}
	sort.Strings(msgs)
	msg := strings.Join(msgs, " |")
	return msg
}

func validateAppRole(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(UserAppRole); ok {
		_, valid := validUserAppRoles[value]
		return valid
	}
	return false
}

func validateApprovalType(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(api.ApprovalType); ok {
		_, valid := ValidApprovalTypes[value]
		return valid
	}
	return false
}

func validateExpenseType(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(api.ExpenseType); ok {
		_, valid := ValidExpenseTypes[value]
		return valid
	}
	return false
}

func validateUnitType(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(api.UnitType); ok {
		_, valid := ValidUnitTypes[value]
		return valid
	}
	return false
}

// reportIfNegative flags a money field below zero
func reportIfNegative(sl validator.StructLevel, amount decimal.Decimal, field, structField string) {
	if amount.IsNegative() {
		sl.ReportError(amount, field, structField, "gte", "0")
	}
}

func activityStructLevelValidation(sl validator.StructLevel) {
	activity, ok := sl.Current().Interface().(Activity)
	if !ok {
		panic("activityStructLevelValidation registered to a type other than Activity")
	}

	if activity.End.Before(activity.Start) {
		sl.ReportError(activity.End, "end", "End", "end_before_start", "")
	}
}

func approvalStructLevelValidation(sl validator.StructLevel) {
	approval, ok := sl.Current().Interface().(Approval)
	if !ok {
		panic("approvalStructLevelValidation registered to a type other than Approval")
	}

	if approval.Type == api.ApprovalTypeFunding && !approval.FundID.Valid {
		sl.ReportError(approval.FundID, "fund_id", "FundID", "fund_required", "")
	}

	reportIfNegative(sl, approval.Amount, "amount", "Amount")

	if approval.Amount.IsPositive() && !approval.FundID.Valid {
		sl.ReportError(approval.FundID, "fund_id", "FundID", "fund_required_for_amount", "")
	}
}

func employeeStructLevelValidation(sl validator.StructLevel) {
	employee, ok := sl.Current().Interface().(Employee)
	if !ok {
		panic("employeeStructLevelValidation registered to a type other than Employee")
	}

	reportIfNegative(sl, employee.ExtraAllocation, "extra_allocation", "ExtraAllocation")
}

func estimatedExpenseStructLevelValidation(sl validator.StructLevel) {
	expense, ok := sl.Current().Interface().(EstimatedExpense)
	if !ok {
		panic("estimatedExpenseStructLevelValidation registered to a type other than EstimatedExpense")
	}

	reportIfNegative(sl, expense.Total, "total", "Total")
}

func actualExpenseStructLevelValidation(sl validator.StructLevel) {
	expense, ok := sl.Current().Interface().(ActualExpense)
	if !ok {
		panic("actualExpenseStructLevelValidation registered to a type other than ActualExpense")
	}

	reportIfNegative(sl, expense.Total, "total", "Total")
}

func travelRequestStructLevelValidation(sl validator.StructLevel) {
	request, ok := sl.Current().Interface().(TravelRequest)
	if !ok {
		panic("travelRequestStructLevelValidation registered to a type other than TravelRequest")
	}

	if request.ReturnDate.Before(request.DepartureDate) {
		sl.ReportError(request.ReturnDate, "return_date", "ReturnDate", "return_before_departure", "")
	}
}

func vacationStructLevelValidation(sl validator.StructLevel) {
	vacation, ok := sl.Current().Interface().(Vacation)
	if !ok {
		panic("vacationStructLevelValidation registered to a type other than Vacation")
	}

	if vacation.End.Before(vacation.Start) {
		sl.ReportError(vacation.End, "end", "End", "end_before_start", "")
	}
}
