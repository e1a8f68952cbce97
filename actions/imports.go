package actions

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/terra/api"
	"github.com/silinternational/terra/domain"
	"github.com/silinternational/terra/loader"
	"github.com/silinternational/terra/log"
	"github.com/silinternational/terra/models"
	"github.com/silinternational/terra/storage"
)

// fileFieldName is the multipart field name for the file upload.
const fileFieldName = "file"

// swagger:operation POST /imports/{kind} Imports ImportsCreate
// ImportsCreate
//
// load a CSV file of units, employees, or travel data. Each row is saved on its own; rows that fail are
// listed in the response. Admin only.
// ---
//
//	consumes:
//	  - multipart/form-data
//	parameters:
//	  - name: kind
//	    in: path
//	    required: true
//	    description: "'units', 'employees', or 'travel-data'"
//	  - name: file
//	    in: formData
//	    type: file
//	    required: true
//	responses:
//	  '200':
//	    description: the import result
//	    schema:
//	      "$ref": "#/definitions/ImportResult"
func importsCreate(c buffalo.Context) error {
	kind := c.Param("kind")
	if !domain.IsStringInSlice(kind, loader.Kinds) {
		err := fmt.Errorf("unknown import kind %q", kind)
		return reportError(c, api.NewAppError(err, api.ErrorImportKind, api.CategoryUser))
	}

	f, err := c.File(fileFieldName)
	if err != nil {
		err = fmt.Errorf("error getting uploaded file from context: %w", err)
		return reportError(c, api.NewAppError(err, api.ErrorReceivingFile, api.CategoryUser))
	}

	if f.Size > int64(domain.Env.MaxFileSize) {
		err := fmt.Errorf("file upload size (%v) greater than max (%v)", f.Size, domain.Env.MaxFileSize)
		return reportError(c, api.NewAppError(err, api.ErrorStoreFileTooLarge, api.CategoryUser))
	}

	content, err := io.ReadAll(f)
	if err != nil {
		err = fmt.Errorf("error reading uploaded file: %w", err)
		return reportError(c, api.NewAppError(err, api.ErrorUnableToReadFile, api.CategoryInternal))
	}

	if storage.Enabled() {
		key := storage.Key(storage.PrefixImports, kind, f.Filename, time.Now().UTC())
		if _, err := storage.StoreFile(key, domain.ContentCSV, content); err != nil {
			return reportError(c, api.NewAppError(err, api.ErrorUnableToStoreFile, api.CategoryInternal))
		}
	}

	// rows are committed one at a time, outside of the request transaction
	result, err := loader.Load(models.DB, kind, bytes.NewReader(content))
	if err != nil {
		return reportError(c, err)
	}

	log.WithFields(map[string]any{
		"kind":     kind,
		"file":     f.Filename,
		"created":  result.Created,
		"failures": len(result.Failures),
	}).Info("import complete")

	return renderOk(c, result.ConvertToAPI())
}

// swagger:operation GET /imports Imports ImportsList
// ImportsList
//
// list archived import files with temporary download URLs. Empty when file storage is not configured.
// Admin only.
// ---
//
//	responses:
//	  '200':
//	    description: archived import files, oldest first
//	    schema:
//	      type: array
//	      items:
//	        "$ref": "#/definitions/ImportArchive"
func importsList(c buffalo.Context) error {
	archives := []api.ImportArchive{}
	if !storage.Enabled() {
		return renderOk(c, archives)
	}

	keys, err := storage.ListFiles(storage.PrefixImports + "/")
	if err != nil {
		return reportError(c, api.NewAppError(err, api.ErrorUnableToListFiles, api.CategoryInternal))
	}

	for _, key := range keys {
		u, err := storage.GetFileURL(key)
		if err != nil {
			return reportError(c, api.NewAppError(err, api.ErrorUnableToListFiles, api.CategoryInternal))
		}
		archives = append(archives, api.ImportArchive{Key: key, URL: u.URL, URLExpiration: u.Expiration})
	}

	return renderOk(c, archives)
}
