package models

import (
	"testing"

	"github.com/gobuffalo/nulls"
	"github.com/gofrs/uuid"

	"github.com/silinternational/terra/api"
)

func (ms *ModelSuite) TestUnit_Validate() {
	t := ms.T()
	tests := []struct {
		name     string
		unit     Unit
		wantErr  bool
		errField string
	}{
		{
			name:    "minimum",
			unit:    Unit{Name: "Acquisitions", Type: api.UnitTypeTeam},
			wantErr: false,
		},
		{
			name:     "missing name",
			unit:     Unit{Type: api.UnitTypeTeam},
			wantErr:  true,
			errField: "Unit.Name",
		},
		{
			name:     "invalid type",
			unit:     Unit{Name: "Acquisitions", Type: "Department"},
			wantErr:  true,
			errField: "Unit.Type",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vErr, _ := tt.unit.Validate(DB)
			if tt.wantErr {
				ms.Greater(len(vErr.Get(tt.errField)), 0, "expected an error on %s", tt.errField)
			} else {
				ms.False(vErr.HasAny(), "unexpected error: %+v", vErr)
			}
		})
	}
}

func (ms *ModelSuite) TestUnit_ParentCycle() {
	f := CreateHierarchyFixtures(ms.DB)
	library := f.Units[FixtureUnitLibrary]

	library.ParentUnitID = nulls.NewUUID(library.ID)
	err := library.Update(ms.DB)
	ms.EqualAppError(api.AppError{Key: api.ErrorValidation, Category: api.CategoryUser}, err)

	// the Web Team is below DIIT, which is below the Library
	library.ParentUnitID = nulls.NewUUID(f.Units[FixtureUnitWeb].ID)
	err = library.Update(ms.DB)
	ms.EqualAppError(api.AppError{Key: api.ErrorValidation, Category: api.CategoryUser}, err)
	ms.Contains(err.Error(), "cycle")

	research := f.Units[FixtureUnitResearch]
	research.ParentUnitID = nulls.NewUUID(f.Units[FixtureUnitDIIT].ID)
	ms.NoError(research.Update(ms.DB), "moving a leaf unit should be allowed")
}

func (ms *ModelSuite) TestUnit_Destroy() {
	f := CreateHierarchyFixtures(ms.DB)

	diit := f.Units[FixtureUnitDIIT]
	err := diit.Destroy(ms.DB)
	ms.EqualAppError(api.AppError{Key: api.ErrorUnitHasChildren, Category: api.CategoryUser}, err)

	web := f.Units[FixtureUnitWeb]
	web.ManagerID = nulls.UUID{}
	ms.NoError(web.Update(ms.DB))
	ms.NoError(ms.DB.RawQuery("DELETE FROM employees WHERE unit_id = ?", web.ID).Exec())
	ms.NoError(web.Destroy(ms.DB))

	err = diit.Destroy(ms.DB)
	ms.EqualAppError(api.AppError{Key: api.ErrorUnitHasFunds, Category: api.CategoryUser}, err)
}

func (ms *ModelSuite) TestUnit_Hierarchy() {
	f := CreateHierarchyFixtures(ms.DB)
	web := f.Units[FixtureUnitWeb]
	library := f.Units[FixtureUnitLibrary]

	ancestors, err := web.Ancestors(ms.DB)
	ms.NoError(err)
	ms.Equal([]string{"DIIT", "University Library"}, []string{ancestors[0].Name, ancestors[1].Name})

	parent, ok := web.Parent(ms.DB)
	ms.True(ok)
	ms.Equal("DIIT", parent.Name)
	_, ok = library.Parent(ms.DB)
	ms.False(ok, "root unit has no parent")

	managers, err := web.SuperManagerIDs(ms.DB)
	ms.NoError(err)
	ms.Equal([]uuid.UUID{
		f.Employees[FixtureEmployeeWebLead].ID,
		f.Employees[FixtureEmployeeDIITHead].ID,
		f.Employees[FixtureEmployeeDirector].ID,
	}, managers, "super managers should be nearest first")

	research := f.Units[FixtureUnitResearch]
	managers, err = research.SuperManagerIDs(ms.DB)
	ms.NoError(err)
	ms.Equal([]uuid.UUID{f.Employees[FixtureEmployeeDirector].ID}, managers)

	descendants, err := library.DescendantIDs(ms.DB)
	ms.NoError(err)
	ms.ElementsMatch([]uuid.UUID{
		f.Units[FixtureUnitDIIT].ID,
		f.Units[FixtureUnitWeb].ID,
		f.Units[FixtureUnitResearch].ID,
	}, descendants)

	subunits := library.Subunits(ms.DB)
	ms.Equal(2, len(subunits))
	ms.Equal("DIIT", subunits[0].Name)
	ms.Equal("Research", subunits[1].Name)

	ms.Equal(2, web.EmployeeCount(ms.DB))
	ms.Equal("Web Team", web.String())
}

func (ms *ModelSuite) TestUnit_SuperManagersDeduplicated() {
	f := CreateHierarchyFixtures(ms.DB)

	// the director also manages DIIT
	diit := f.Units[FixtureUnitDIIT]
	diit.ManagerID = nulls.NewUUID(f.Employees[FixtureEmployeeDirector].ID)
	ms.NoError(diit.Update(ms.DB))

	web := f.Units[FixtureUnitWeb]
	managers, err := web.SuperManagers(ms.DB)
	ms.NoError(err)
	ms.Equal(2, len(managers))
	ms.Equal("Linus Lead", managers[0].Name())
	ms.Equal("Ada Director", managers[1].Name())
}

func (ms *ModelSuite) TestUnitsViewableBy() {
	f := CreateHierarchyFixtures(ms.DB)
	outsider := CreateUserFixtures(ms.DB, 1).Users[0]
	reporter := CreateUserFixtures(ms.DB, 1).Users[0]
	reporter.AppRole = AppRoleReporter

	tests := []struct {
		name  string
		actor User
		want  []string
	}{
		{
			name:  "director",
			actor: f.Users[FixtureEmployeeDirector],
			want:  []string{"DIIT", "Research", "University Library", "Web Team"},
		},
		{
			name:  "DIIT head",
			actor: f.Users[FixtureEmployeeDIITHead],
			want:  []string{"DIIT", "Web Team"},
		},
		{
			name:  "developer",
			actor: f.Users[FixtureEmployeeDeveloper],
			want:  []string{},
		},
		{
			name:  "not an employee",
			actor: outsider,
			want:  []string{},
		},
		{
			name:  "reporter",
			actor: reporter,
			want:  []string{"DIIT", "Research", "University Library", "Web Team"},
		},
	}
	for _, tt := range tests {
		ms.T().Run(tt.name, func(t *testing.T) {
			units, err := UnitsViewableBy(ms.DB, tt.actor)
			ms.NoError(err)
			names := []string{}
			for _, u := range units {
				names = append(names, u.Name)
			}
			ms.Equal(tt.want, names)
		})
	}
}

func (ms *ModelSuite) TestUnit_ConvertToAPI() {
	f := CreateHierarchyFixtures(ms.DB)
	diit := f.Units[FixtureUnitDIIT]

	got := diit.ConvertToAPI(ms.DB)
	ms.Equal("DIIT", got.Name)
	ms.Equal(api.UnitTypeExecutiveDivision, got.Type)
	ms.Equal("Grace Hopper", got.ManagerName)
	ms.Equal(1, got.EmployeeCount)
	ms.Equal(1, len(got.Subunits))
	ms.Equal("Web Team", got.Subunits[0].Name)
}
