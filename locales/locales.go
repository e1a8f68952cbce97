// Package locales holds the translation files for API messages
package locales

import (
	"embed"
	"io/fs"
)

//go:embed *.yaml
var files embed.FS

// FS returns the translation files
func FS() fs.FS {
	return files
}
