package loader

import (
	"fmt"
	"io"

	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"
	"github.com/pkg/errors"

	"github.com/silinternational/terra/api"
	"github.com/silinternational/terra/models"
)

// Unit file columns
const (
	unitColName = iota
	unitColType
	unitColParent
	unitColumns
)

// LoadUnits reads `Unit Name, Unit Type, Parent Unit Name` rows. Existing units, matched by name, are
// updated. Parents are linked in a second pass so rows may appear in any order.
func LoadUnits(db *pop.Connection, r io.Reader) (Result, error) {
	result := Result{Kind: KindUnits}

	rows, err := readRows(r, unitColumns)
	if err != nil {
		return result, err
	}

	var created []row
	eachRow(db, &result, rows, func(tx *pop.Connection, r row) error {
		if err := upsertUnit(tx, r); err != nil {
			return err
		}
		created = append(created, r)
		return nil
	})

	// parent links are not counted again
	for _, r := range created {
		if r.get(unitColParent) == "" {
			continue
		}
		err := db.Transaction(func(tx *pop.Connection) error {
			return linkUnitParent(tx, r)
		})
		if err != nil {
			result.Created--
			result.fail(r.line, err)
		}
	}

	return result, nil
}

func upsertUnit(tx *pop.Connection, r row) error {
	name := r.get(unitColName)
	if name == "" {
		return errors.New("unit name is required")
	}
	unitType := api.UnitType(r.get(unitColType))
	if _, ok := models.ValidUnitTypes[unitType]; !ok {
		return fmt.Errorf("invalid unit type %q", unitType)
	}

	var unit models.Unit
	if err := unit.FindByName(tx, name); err == nil {
		unit.Type = unitType
		return errors.Wrapf(unit.Update(tx), "error updating unit %s", name)
	} else if !isNotFound(err) {
		return err
	}

	unit = models.Unit{Name: name, Type: unitType}
	return errors.Wrapf(unit.Create(tx), "error creating unit %s", name)
}

func linkUnitParent(tx *pop.Connection, r row) error {
	var unit models.Unit
	if err := unit.FindByName(tx, r.get(unitColName)); err != nil {
		return err
	}

	parentName := r.get(unitColParent)
	var parent models.Unit
	if err := parent.FindByName(tx, parentName); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("parent unit %q not found", parentName)
		}
		return err
	}

	unit.ParentUnitID = nulls.NewUUID(parent.ID)
	return errors.Wrapf(unit.Update(tx), "error setting parent of unit %s", unit.Name)
}
