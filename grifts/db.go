package grifts

import (
	"errors"
	"fmt"
	"os"

	"github.com/gobuffalo/grift/grift"
	"github.com/gobuffalo/pop/v6"

	"github.com/silinternational/terra/domain"
	"github.com/silinternational/terra/loader"
	"github.com/silinternational/terra/models"
)

var _ = grift.Namespace("db", func() {
	grift.Desc("seed", "Seeds a database with a sample library organization and travel data")
	_ = grift.Add("seed", func(c *grift.Context) error {
		count, err := models.DB.Count(&models.Units{})
		if err != nil {
			return err
		}

		if count > 0 {
			fmt.Printf("\nINFO: It appears that the grifts have already been run, "+
				"since there are already %v units.\n", count)
			return nil
		}

		// each loader row commits on its own
		if err := loadSeedFiles(models.DB); err != nil {
			return err
		}

		return models.DB.Transaction(func(tx *pop.Connection) error {
			if err := createFundFixtures(tx); err != nil {
				return err
			}
			return assignSeedAdmin(tx)
		})
	})

	grift.Desc("load", "Loads a CSV file. Usage: grift db:load <units|employees|travel-data> <file>")
	_ = grift.Add("load", func(c *grift.Context) error {
		if len(c.Args) != 2 {
			return errors.New("usage: grift db:load <units|employees|travel-data> <file>")
		}
		kind, filename := c.Args[0], c.Args[1]
		if !domain.IsStringInSlice(kind, loader.Kinds) {
			return fmt.Errorf("unknown import kind %q, expected one of %v", kind, loader.Kinds)
		}

		f, err := os.Open(filename)
		if err != nil {
			return err
		}
		defer f.Close()

		result, err := loader.Load(models.DB, kind, f)
		if err != nil {
			return err
		}
		logResult(result)
		return nil
	})
})
