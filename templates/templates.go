package templates

import (
	"embed"
	"io/fs"

	"github.com/gobuffalo/buffalo"
)

//go:embed mail
var files embed.FS

// FS returns a buffalo FS object that extends embed.FS
func FS() fs.FS {
	return buffalo.NewFS(files, "templates")
}
