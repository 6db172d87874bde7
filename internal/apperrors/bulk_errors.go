package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Failures surfaced by the bulk invoice upload pipeline. Handlers map these
// to client-facing statuses; the pipeline itself only distinguishes them for
// reporting, every one of them aborts the whole upload.

// ErrUnsupportedFileType indicates an upload with an extension no decoder handles.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// ErrNoData indicates the uploaded file decoded to zero records.
var ErrNoData = errors.New("no data found in uploaded file")

// ParseError reports malformed file content encountered mid-stream.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MissingFieldsError lists every required field absent from the first record
// of an uploaded file.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// DateParseError names a due-date value that could not be parsed.
type DateParseError struct {
	Value string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("invalid date: %s", e.Value)
}
