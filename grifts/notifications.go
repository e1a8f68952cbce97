package grifts

import (
	"fmt"

	"github.com/gobuffalo/grift/grift"
	"github.com/gobuffalo/pop/v6"

	"github.com/silinternational/terra/messages"
	"github.com/silinternational/terra/models"
)

var _ = grift.Namespace("notifications", func() {
	_ = grift.Desc("resend", "retry email notifications that have not been sent")
	_ = grift.Add("resend", func(c *grift.Context) error {
		return models.DB.Transaction(func(tx *pop.Connection) error {
			sent, err := messages.ResendUnsent(tx)
			fmt.Printf("resent %d notifications\n", sent)
			return err
		})
	})
})
