// Package recordio streams flat field records out of uploaded data files.
// Decoders are single-pass and never hold the whole file in memory; values
// are delivered exactly as present in the file, with no coercion.
package recordio

import (
	"path/filepath"
	"strings"

	"github.com/invoiced-app/invoice_backend/internal/apperrors"
)

// Record is one decoded row: a flat mapping from field name to the raw value
// found in the file. CSV values are always strings; JSON values keep the
// types encoding/json produces (string, float64, bool, nil).
type Record map[string]any

// Decoder produces a lazy, finite, single-pass sequence of records.
type Decoder interface {
	// Each invokes fn for every record in order. A decode failure mid-stream
	// stops iteration and returns a *apperrors.ParseError; records already
	// delivered are not retracted. A non-nil error from fn stops iteration
	// and is returned as-is.
	Each(fn func(Record) error) error
}

// Open selects a decoder for the file based on its extension. Returns
// apperrors.ErrUnsupportedFileType for anything other than .csv or .json,
// before any records are produced.
func Open(path string) (Decoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return &csvDecoder{path: path}, nil
	case ".json":
		return &jsonDecoder{path: path}, nil
	default:
		return nil, apperrors.ErrUnsupportedFileType
	}
}
