package recordio_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoiced-app/invoice_backend/internal/apperrors"
	"github.com/invoiced-app/invoice_backend/internal/recordio"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func collect(t *testing.T, path string) ([]recordio.Record, error) {
	t.Helper()
	dec, err := recordio.Open(path)
	require.NoError(t, err)
	var records []recordio.Record
	err = dec.Each(func(r recordio.Record) error {
		records = append(records, r)
		return nil
	})
	return records, err
}

func TestOpen_UnsupportedExtension(t *testing.T) {
	for _, name := range []string{"data.txt", "data.xlsx", "data"} {
		_, err := recordio.Open(name)
		assert.ErrorIs(t, err, apperrors.ErrUnsupportedFileType, name)
	}
}

func TestOpen_ExtensionIsCaseInsensitive(t *testing.T) {
	path := writeFile(t, "data.CSV", "a,b\n1,2\n")
	records, err := collect(t, path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "1", records[0]["a"])
}

func TestCSV_DecodesHeaderedRows(t *testing.T) {
	path := writeFile(t, "data.csv",
		"account_number,first_name, amount\n"+
			"AC100,Ada, 1500\n"+
			"AC200,Grace,2300\n")

	records, err := collect(t, path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// CSV values always come out as strings, with leading space trimmed.
	assert.Equal(t, recordio.Record{
		"account_number": "AC100",
		"first_name":     "Ada",
		"amount":         "1500",
	}, records[0])
	assert.Equal(t, "AC200", records[1]["account_number"])
}

func TestCSV_RaggedRowIsParseError(t *testing.T) {
	path := writeFile(t, "data.csv", "a,b,c\n1,2\n")

	_, err := collect(t, path)
	require.Error(t, err)
	var parseErr *apperrors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestCSV_EmptyFileYieldsNoRecords(t *testing.T) {
	path := writeFile(t, "data.csv", "")
	records, err := collect(t, path)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCSV_HeaderOnlyYieldsNoRecords(t *testing.T) {
	path := writeFile(t, "data.csv", "a,b,c\n")
	records, err := collect(t, path)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCSV_MalformedQuoting(t *testing.T) {
	path := writeFile(t, "data.csv", "a,b\n\"unterminated,2\n")
	_, err := collect(t, path)
	require.Error(t, err)
	var parseErr *apperrors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestJSON_DecodesArrayOfObjects(t *testing.T) {
	path := writeFile(t, "data.json", `[
		{"account_number": "AC100", "amount": 1500, "active": true, "note": null},
		{"account_number": "AC200", "amount": 2300.5}
	]`)

	records, err := collect(t, path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// JSON values keep their decoded types.
	assert.Equal(t, "AC100", records[0]["account_number"])
	assert.Equal(t, float64(1500), records[0]["amount"])
	assert.Equal(t, true, records[0]["active"])
	assert.Nil(t, records[0]["note"])
	assert.Equal(t, 2300.5, records[1]["amount"])
}

func TestJSON_EmptyArray(t *testing.T) {
	path := writeFile(t, "data.json", `[]`)
	records, err := collect(t, path)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestJSON_TopLevelObjectRejected(t *testing.T) {
	path := writeFile(t, "data.json", `{"account_number": "AC100"}`)
	_, err := collect(t, path)
	require.Error(t, err)
	var parseErr *apperrors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestJSON_TruncatedFile(t *testing.T) {
	path := writeFile(t, "data.json", `[{"account_number": "AC100"}`)
	_, err := collect(t, path)
	require.Error(t, err)
	var parseErr *apperrors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestEach_CallbackErrorStopsIteration(t *testing.T) {
	path := writeFile(t, "data.csv", "a\n1\n2\n3\n")
	dec, err := recordio.Open(path)
	require.NoError(t, err)

	sentinel := errors.New("stop here")
	seen := 0
	err = dec.Each(func(r recordio.Record) error {
		seen++
		if seen == 2 {
			return sentinel
		}
		return nil
	})

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 2, seen)
}

func TestEach_MissingFile(t *testing.T) {
	dec, err := recordio.Open(filepath.Join(t.TempDir(), "gone.csv"))
	require.NoError(t, err)

	err = dec.Each(func(recordio.Record) error { return nil })
	require.Error(t, err)
	var parseErr *apperrors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}
