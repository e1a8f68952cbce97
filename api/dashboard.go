package api

// Landing data for the signed-in user
// swagger:model
type Dashboard struct {
	User User `json:"user"`

	// the user's employee record, if on staff
	Employee *Employee `json:"employee,omitempty"`

	// units the user may view
	Units Units `json:"units"`

	// funds the user may view
	Funds Funds `json:"funds"`

	// most recent travel requests the user may view
	TravelRequests TravelRequests `json:"travel_requests"`
}
