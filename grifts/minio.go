package grifts

import (
	"github.com/gobuffalo/grift/grift"

	"github.com/silinternational/terra/storage"
)

var _ = grift.Namespace("minio", func() {
	_ = grift.Desc("seed", "create the report and import archive bucket in minIO")
	_ = grift.Add("seed", func(c *grift.Context) error {
		return storage.CreateS3Bucket()
	})
})
