package recordio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/invoiced-app/invoice_backend/internal/apperrors"
)

// jsonDecoder streams a JSON file holding a top-level array of objects,
// decoding one element at a time off the token stream.
type jsonDecoder struct {
	path string
}

func (d *jsonDecoder) Each(fn func(Record) error) error {
	f, err := os.Open(d.path)
	if err != nil {
		return &apperrors.ParseError{Path: d.path, Err: err}
	}
	defer f.Close()

	dec := json.NewDecoder(bufio.NewReader(f))

	tok, err := dec.Token()
	if err != nil {
		return &apperrors.ParseError{Path: d.path, Err: err}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return &apperrors.ParseError{Path: d.path, Err: fmt.Errorf("expected top-level array, got %v", tok)}
	}

	for dec.More() {
		var record Record
		if err := dec.Decode(&record); err != nil {
			return &apperrors.ParseError{Path: d.path, Err: err}
		}
		if err := fn(record); err != nil {
			return err
		}
	}

	if _, err := dec.Token(); err != nil {
		return &apperrors.ParseError{Path: d.path, Err: err}
	}
	return nil
}
