package models

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/gobuffalo/buffalo"
	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"
	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"

	"github.com/silinternational/terra/api"
	"github.com/silinternational/terra/domain"
)

// Fixtures hold slices of model objects created for test fixtures
type Fixtures struct {
	Activities
	ActualExpenses
	Approvals
	Employees
	EstimatedExpenses
	Funds
	TravelRequests
	Units
	UserAccessTokens
	Users
}

// Indexes into the Units, Employees and Funds of CreateHierarchyFixtures
const (
	FixtureUnitLibrary = iota
	FixtureUnitDIIT
	FixtureUnitWeb
	FixtureUnitResearch
)

const (
	FixtureEmployeeDirector = iota
	FixtureEmployeeDIITHead
	FixtureEmployeeWebLead
	FixtureEmployeeDeveloper
	FixtureEmployeeResearcher
)

const (
	FixtureFundDIIT = iota
	FixtureFundLibrary
)

// TravelFixtureConfig describes one travel request built by CreateTravelFixture
type TravelFixtureConfig struct {
	Country        string
	Departure      time.Time
	Administrative bool

	// EstimatedTotal creates one Registration estimate when not zero
	EstimatedTotal string
}

// TestBuffaloContext is a buffalo context user in tests
type TestBuffaloContext struct {
	buffalo.DefaultContext
	params map[any]any
}

// Value returns the value associated with the given key in the test context
func (b *TestBuffaloContext) Value(key any) any {
	return b.params[key]
}

// Set sets the value to be associated with the given key in the test context
func (b *TestBuffaloContext) Set(key string, val any) {
	b.params[key] = val
}

// CreateTestContext sets the domain.ContextKeyCurrentUser to the user param in the TestBuffaloContext
func CreateTestContext(user User) buffalo.Context {
	ctx := &TestBuffaloContext{
		params: map[any]any{},
	}
	ctx.Set(domain.ContextKeyCurrentUser, user)
	return ctx
}

// CreateUserFixtures generates any number of user records for testing. The access token for
// each user is the same as the user's Email.
func CreateUserFixtures(tx *pop.Connection, n int) Fixtures {
	unique := domain.GetUUID().String()

	users := make(Users, n)
	accessTokenFixtures := make(UserAccessTokens, n)
	for i := range users {
		users[i].Email = fmt.Sprintf("user%d_%s@example.com", i, unique)
		iStr := strconv.Itoa(i)
		users[i].FirstName = "first" + iStr
		users[i].LastName = "last" + iStr
		users[i].LastLoginUTC = time.Now()
		users[i].StaffID = randStr(10)
		users[i].AppRole = AppRoleUser
		MustCreate(tx, &users[i])

		accessTokenFixtures[i] = createAccessTokenFixture(tx, users[i])
	}

	return Fixtures{
		Users:            users,
		UserAccessTokens: accessTokenFixtures,
	}
}

func createAccessTokenFixture(tx *pop.Connection, user User) UserAccessToken {
	token := UserAccessToken{
		UserID:     user.ID,
		TokenHash:  HashAccessToken(user.Email),
		ExpiresAt:  time.Now().UTC().Add(time.Minute * 60),
		LastUsedAt: nulls.NewTime(time.Now()),
	}
	MustCreate(tx, &token)
	return token
}

// CreateEmployeeFixture creates a user and an active employee in the given unit
func CreateEmployeeFixture(tx *pop.Connection, firstName, lastName string, unitID uuid.UUID, supervisorID nulls.UUID) Employee {
	user := User{
		Email:        strings.ToLower(fmt.Sprintf("%s.%s_%s@example.com", firstName, lastName, randStr(8))),
		FirstName:    firstName,
		LastName:     lastName,
		AppRole:      AppRoleUser,
		StaffID:      randStr(10),
		LastLoginUTC: time.Now(),
	}
	MustCreate(tx, &user)
	createAccessTokenFixture(tx, user)

	e := Employee{
		UID:          randStr(10),
		UserID:       user.ID,
		UnitID:       unitID,
		SupervisorID: supervisorID,
		Active:       true,
	}
	MustCreate(tx, &e)
	e.User = user
	return e
}

// CreateHierarchyFixtures builds a small organization:
//
//	University Library (Library, Ada Director)
//	├── DIIT (Executive Division, Grace Hopper)
//	│   └── Web Team (Team, Linus Lead)
//	│       └── Joshua Gomez
//	└── Research (Managerial Unit, no manager)
//	    └── Rosalind Franklin
//
// The DIIT fund is managed by the DIIT head. The Library fund is managed by the director.
func CreateHierarchyFixtures(tx *pop.Connection) Fixtures {
	units := Units{
		{Name: "University Library", Type: api.UnitTypeLibrary},
		{Name: "DIIT", Type: api.UnitTypeExecutiveDivision},
		{Name: "Web Team", Type: api.UnitTypeTeam},
		{Name: "Research", Type: api.UnitTypeManagerialUnit},
	}
	MustCreate(tx, &units[FixtureUnitLibrary])
	for i := 1; i < len(units); i++ {
		parent := units[FixtureUnitLibrary].ID
		if i == FixtureUnitWeb {
			parent = units[FixtureUnitDIIT].ID
		}
		units[i].ParentUnitID = nulls.NewUUID(parent)
		MustCreate(tx, &units[i])
	}

	employees := make(Employees, 5)
	employees[FixtureEmployeeDirector] = CreateEmployeeFixture(tx, "Ada", "Director",
		units[FixtureUnitLibrary].ID, nulls.UUID{})
	employees[FixtureEmployeeDIITHead] = CreateEmployeeFixture(tx, "Grace", "Hopper",
		units[FixtureUnitDIIT].ID, nulls.NewUUID(employees[FixtureEmployeeDirector].ID))
	employees[FixtureEmployeeWebLead] = CreateEmployeeFixture(tx, "Linus", "Lead",
		units[FixtureUnitWeb].ID, nulls.NewUUID(employees[FixtureEmployeeDIITHead].ID))
	employees[FixtureEmployeeDeveloper] = CreateEmployeeFixture(tx, "Joshua", "Gomez",
		units[FixtureUnitWeb].ID, nulls.NewUUID(employees[FixtureEmployeeWebLead].ID))
	employees[FixtureEmployeeResearcher] = CreateEmployeeFixture(tx, "Rosalind", "Franklin",
		units[FixtureUnitResearch].ID, nulls.NewUUID(employees[FixtureEmployeeDirector].ID))

	managers := map[int]int{
		FixtureUnitLibrary: FixtureEmployeeDirector,
		FixtureUnitDIIT:    FixtureEmployeeDIITHead,
		FixtureUnitWeb:     FixtureEmployeeWebLead,
	}
	for u, e := range managers {
		units[u].ManagerID = nulls.NewUUID(employees[e].ID)
		if err := units[u].Update(tx); err != nil {
			panic(fmt.Sprintf("error setting unit manager fixture, %s", err))
		}
	}

	funds := Funds{
		{
			Account:    "1000",
			CostCenter: "200",
			Fund:       "30",
			ManagerID:  nulls.NewUUID(employees[FixtureEmployeeDIITHead].ID),
			UnitID:     nulls.NewUUID(units[FixtureUnitDIIT].ID),
		},
		{
			Account:    "1000",
			CostCenter: "300",
			Fund:       "40",
			ManagerID:  nulls.NewUUID(employees[FixtureEmployeeDirector].ID),
			UnitID:     nulls.NewUUID(units[FixtureUnitLibrary].ID),
		},
	}
	for i := range funds {
		MustCreate(tx, &funds[i])
	}

	users := make(Users, len(employees))
	for i := range employees {
		users[i] = employees[i].User
	}

	return Fixtures{
		Employees: employees,
		Funds:     funds,
		Units:     units,
		Users:     users,
	}
}

// CreateTravelFixture creates an activity and a travel request for the traveler
func CreateTravelFixture(tx *pop.Connection, travelerID uuid.UUID, config TravelFixtureConfig) TravelRequest {
	if config.Country == "" {
		config.Country = domain.Env.HomeCountry
	}
	if config.Departure.IsZero() {
		config.Departure = time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	}

	activity := Activity{
		Name:    "Code4lib " + randStr(6),
		Start:   config.Departure.Add(domain.DurationDay),
		End:     config.Departure.Add(domain.DurationDay * 3),
		City:    "Springfield",
		Country: config.Country,
	}
	MustCreate(tx, &activity)

	t := TravelRequest{
		TravelerID:     travelerID,
		ActivityID:     activity.ID,
		DepartureDate:  config.Departure,
		ReturnDate:     config.Departure.Add(domain.DurationDay * 4),
		DaysOOO:        4,
		Administrative: config.Administrative,
		Justification:  "Present a talk",
	}
	MustCreate(tx, &t)
	t.Activity = activity

	if config.EstimatedTotal != "" {
		e := EstimatedExpense{
			TravelRequestID: t.ID,
			Type:            api.ExpenseTypeRegistration,
			Total:           decimal.RequireFromString(config.EstimatedTotal),
		}
		MustCreate(tx, &e)
	}

	return t
}

// CreateApprovalFixture records an approval. A non-empty amount requires a fund.
func CreateApprovalFixture(tx *pop.Connection, t TravelRequest, approver Employee, approvalType api.ApprovalType,
	fundID nulls.UUID, amount string,
) Approval {
	a := Approval{
		TravelRequestID: t.ID,
		Type:            approvalType,
		ApprovedByID:    approver.ID,
		ApprovedOn:      time.Now().UTC(),
		FundID:          fundID,
	}
	if amount != "" {
		a.Amount = decimal.RequireFromString(amount)
	}
	MustCreate(tx, &a)
	return a
}

// CreateActualExpenseFixture records an expense paid from the fund
func CreateActualExpenseFixture(tx *pop.Connection, t TravelRequest, fundID uuid.UUID, total string) ActualExpense {
	e := ActualExpense{
		TravelRequestID: t.ID,
		FundID:          fundID,
		Type:            api.ExpenseTypeLodging,
		Total:           decimal.RequireFromString(total),
		DatePaid:        nulls.NewTime(t.ReturnDate),
	}
	MustCreate(tx, &e)
	return e
}

// MustCreate saves a record to the database with validation. Panics if any error occurs.
func MustCreate(tx *pop.Connection, f any) {
	// Use `create` instead of `tx.Create` to check validation rules
	err := create(tx, f)
	if err != nil {
		panic(fmt.Sprintf("error creating %T fixture, %s", f, err))
	}
}

func randStr(n int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, n)
	for i := range b {
		b[i] = chars[rand.Int63()%int64(len(chars))]
	}
	return string(b)
}

// DestroyAll deletes every record in the database
func DestroyAll() {
	// units and employees refer to each other
	if err := DB.RawQuery("UPDATE units SET manager_id = NULL, parent_unit_id = NULL").Exec(); err != nil {
		panic(err.Error())
	}

	for _, table := range []string{
		"notifications",
		"approvals",
		"actual_expenses",
		"estimated_expenses",
		"vacations",
		"travel_requests",
		"activities",
		"funds",
		"employees",
		"units",
		"user_access_tokens",
		"users",
	} {
		destroyTable(table)
	}
}

func destroyTable(table string) {
	if err := DB.RawQuery("DELETE FROM " + table).Exec(); err != nil {
		panic(err.Error())
	}
}
