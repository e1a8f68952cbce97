package models

import (
	"testing"

	"github.com/gobuffalo/nulls"

	"github.com/silinternational/terra/api"
)

func (ms *ModelSuite) TestFund_String() {
	f := Fund{Account: "605000", CostCenter: "LD", Fund: "19900"}
	ms.Equal("605000-LD-19900", f.String())
}

func (ms *ModelSuite) TestFund_FindByName() {
	fixtures := CreateHierarchyFixtures(ms.DB)
	want := fixtures.Funds[FixtureFundDIIT]

	var f Fund
	ms.NoError(f.FindByName(ms.DB, "1000-200-30"))
	ms.Equal(want.ID, f.ID)

	err := f.FindByName(ms.DB, "1000-200")
	ms.EqualAppError(api.AppError{Key: api.ErrorNoRows, Category: api.CategoryNotFound}, err)

	err = f.FindByName(ms.DB, "1000-200-99")
	ms.EqualAppError(api.AppError{Key: api.ErrorNoRows, Category: api.CategoryNotFound}, err)
}

func (ms *ModelSuite) TestFund_Unique() {
	fixtures := CreateHierarchyFixtures(ms.DB)
	dup := Fund{
		Account:    fixtures.Funds[0].Account,
		CostCenter: fixtures.Funds[0].CostCenter,
		Fund:       fixtures.Funds[0].Fund,
		UnitID:     nulls.NewUUID(fixtures.Units[0].ID),
	}
	ms.EqualAppError(api.AppError{Key: api.ErrorUniqueKeyViolation, Category: api.CategoryUser}, dup.Create(ms.DB))
}

func (ms *ModelSuite) TestFundsViewableBy() {
	f := CreateHierarchyFixtures(ms.DB)
	admin := CreateUserFixtures(ms.DB, 1).Users[0]
	admin.AppRole = AppRoleAdmin

	tests := []struct {
		name  string
		actor User
		want  []string
	}{
		{name: "admin", actor: admin, want: []string{"1000-200-30", "1000-300-40"}},
		{name: "DIIT head", actor: f.Users[FixtureEmployeeDIITHead], want: []string{"1000-200-30"}},
		{name: "director", actor: f.Users[FixtureEmployeeDirector], want: []string{"1000-300-40"}},
		{name: "developer", actor: f.Users[FixtureEmployeeDeveloper], want: []string{}},
	}
	for _, tt := range tests {
		ms.T().Run(tt.name, func(t *testing.T) {
			funds, err := FundsViewableBy(ms.DB, tt.actor)
			ms.NoError(err)
			names := []string{}
			for _, fund := range funds {
				names = append(names, fund.String())
			}
			ms.Equal(tt.want, names)
		})
	}
}
