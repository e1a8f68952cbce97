package grifts

import (
	"embed"
	"fmt"
	"path"

	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"

	"github.com/silinternational/terra/loader"
	"github.com/silinternational/terra/log"
	"github.com/silinternational/terra/models"
)

//go:embed seed/*.csv
var seedFiles embed.FS

type fundFixture struct {
	account, costCenter, fund string
	managerUID                string
	unitName                  string
}

var fundFixtures = []fundFixture{
	{account: "1000", costCenter: "210", fund: "11", managerUID: "E1001", unitName: "University Library"},
	{account: "1000", costCenter: "220", fund: "11", managerUID: "E1002", unitName: "Digital Infrastructure & Technology"},
	{account: "1000", costCenter: "230", fund: "12", managerUID: "E1003", unitName: "Collections & Research Services"},
	{account: "2400", costCenter: "230", fund: "40", managerUID: "E1008", unitName: "Special Collections"},
}

// seedAdminUID is given the admin role
const seedAdminUID = "E1001"

func loadSeedFiles(db *pop.Connection) error {
	for _, kind := range loader.Kinds {
		f, err := seedFiles.Open(path.Join("seed", kind+".csv"))
		if err != nil {
			return err
		}

		result, err := loader.Load(db, kind, f)
		_ = f.Close()
		if err != nil {
			return fmt.Errorf("error loading %s seed data: %w", kind, err)
		}
		logResult(result)
	}
	return nil
}

func createFundFixtures(tx *pop.Connection) error {
	for _, ff := range fundFixtures {
		var manager models.Employee
		if err := manager.FindByUID(tx, ff.managerUID); err != nil {
			return fmt.Errorf("fund manager %s: %w", ff.managerUID, err)
		}
		var unit models.Unit
		if err := unit.FindByName(tx, ff.unitName); err != nil {
			return fmt.Errorf("fund unit %s: %w", ff.unitName, err)
		}

		fund := models.Fund{
			Account:    ff.account,
			CostCenter: ff.costCenter,
			Fund:       ff.fund,
			ManagerID:  nulls.NewUUID(manager.ID),
			UnitID:     nulls.NewUUID(unit.ID),
		}
		if err := fund.Create(tx); err != nil {
			return err
		}
	}
	return nil
}

func assignSeedAdmin(tx *pop.Connection) error {
	var admin models.Employee
	if err := admin.FindByUID(tx, seedAdminUID); err != nil {
		return err
	}
	admin.LoadUser(tx, false)
	admin.User.AppRole = models.AppRoleAdmin
	return admin.User.Update(tx)
}

func logResult(result loader.Result) {
	log.Infof("%s: %d rows saved, %d failed", result.Kind, result.Created, len(result.Failures))
}
