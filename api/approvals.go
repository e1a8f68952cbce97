package api

import (
	"github.com/gofrs/uuid"
)

type ApprovalType string

const (
	ApprovalTypeSupervisor    = ApprovalType("Supervisor")
	ApprovalTypeFunding       = ApprovalType("Funding")
	ApprovalTypeInternational = ApprovalType("International")
)

var AllApprovalTypes = []ApprovalType{ApprovalTypeSupervisor, ApprovalTypeFunding, ApprovalTypeInternational}

// swagger:model
type Approvals []Approval

// swagger:model
type Approval struct {
	// swagger:strfmt uuid4
	ID uuid.UUID `json:"id"`

	// swagger:strfmt uuid4
	TravelRequestID uuid.UUID `json:"travel_request_id"`

	// approval type: 'Supervisor', 'Funding', or 'International'
	Type ApprovalType `json:"type"`

	// swagger:strfmt uuid4
	ApprovedByID uuid.UUID `json:"approved_by_id"`

	ApprovedByName string `json:"approved_by_name"`

	// yyyy-mm-dd
	ApprovedOn string `json:"approved_on"`

	// swagger:strfmt uuid4
	FundID *uuid.UUID `json:"fund_id,omitempty"`

	FundName string `json:"fund_name,omitempty"`

	// allocated amount
	Amount Currency `json:"amount"`
}

// swagger:model
type ApprovalCreateInput struct {
	// approval type: 'Supervisor', 'Funding', or 'International'
	Type ApprovalType `json:"type"`

	// fund to charge, required for 'Funding' approvals
	//
	// swagger:strfmt uuid4
	FundID *uuid.UUID `json:"fund_id,omitempty"`

	// allocated amount, zero if omitted
	Amount Currency `json:"amount"`

	// approval date (yyyy-mm-dd), today if omitted
	ApprovedOn string `json:"approved_on,omitempty"`
}
