package recordio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"os"

	"github.com/invoiced-app/invoice_backend/internal/apperrors"
)

// csvDecoder streams a CSV file whose first row names the fields.
type csvDecoder struct {
	path string
}

func (d *csvDecoder) Each(fn func(Record) error) error {
	f, err := os.Open(d.path)
	if err != nil {
		return &apperrors.ParseError{Path: d.path, Err: err}
	}
	defer f.Close()

	reader := csv.NewReader(bufio.NewReader(f))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &apperrors.ParseError{Path: d.path, Err: err}
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return &apperrors.ParseError{Path: d.path, Err: err}
		}

		record := make(Record, len(header))
		for i, name := range header {
			if i < len(row) {
				record[name] = row[i]
			}
		}
		if err := fn(record); err != nil {
			return err
		}
	}
}
