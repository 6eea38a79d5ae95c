package catalog

import (
	"bytes"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/ultrasearch/pkg/constants"
	"github.com/agentstation/ultrasearch/pkg/errors"
	"github.com/agentstation/ultrasearch/pkg/observations"
)

// Format is a catalog file encoding.
type Format string

// Supported catalog formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a format from the file extension. Anything that is
// not .yaml or .yml is read as JSON, which is what the log indexer writes.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode reads a whole catalog: a top-level array of observation records.
func Decode(r io.Reader, format Format) ([]observations.ObservationRecord, error) {
	data, err := io.ReadAll(io.LimitReader(r, constants.MaxCatalogBytes+1))
	if err != nil {
		return nil, errors.WrapIO("read", "", err)
	}
	if len(data) > constants.MaxCatalogBytes {
		return nil, errors.NewValidationError("catalog", len(data), "catalog exceeds size limit")
	}
	return decodeBytes(data, format, "")
}

func decodeBytes(data []byte, format Format, name string) ([]observations.ObservationRecord, error) {
	records := make([]observations.ObservationRecord, 0)
	if len(bytes.TrimSpace(data)) == 0 {
		return records, nil
	}

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, errors.WrapParse(string(FormatYAML), name, err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, jsonParseError(data, name, err)
		}
	default:
		return nil, errors.NewValidationError("format", format, "unsupported catalog format")
	}
	return records, nil
}

// jsonParseError attaches a line and column to syntax errors.
func jsonParseError(data []byte, name string, err error) error {
	perr := errors.NewParseError(string(FormatJSON), name, err.Error(), err)

	var offset int64 = -1
	var syn *json.SyntaxError
	var typ *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syn):
		offset = syn.Offset
	case errors.As(err, &typ):
		offset = typ.Offset
	}
	if offset >= 0 && offset <= int64(len(data)) {
		head := data[:offset]
		perr.Line = bytes.Count(head, []byte("\n")) + 1
		perr.Column = int(offset) - bytes.LastIndexByte(head, '\n')
	}
	return perr
}

// LoadFile reads a catalog from disk.
func LoadFile(path string) ([]observations.ObservationRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return decodeBytes(data, FormatFromPath(path), path)
}

// LoadFS reads a catalog from a file system, such as the embedded samples.
func LoadFS(fsys fs.FS, path string) ([]observations.ObservationRecord, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return decodeBytes(data, FormatFromPath(path), path)
}
