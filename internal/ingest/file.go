package ingest

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/rigsight/gaslog-cli/internal/model"
)

// ReadFile dispatches on the file extension: .xlsx workbooks and .csv/.txt
// exports are supported.
func ReadFile(path string, opts Options) ([]model.Sample, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ReadXLSX(path, opts)
	case ".csv", ".txt":
		return ReadCSVFile(path, opts)
	default:
		return nil, eris.Errorf("ingest: unsupported file type %q", filepath.Ext(path))
	}
}
