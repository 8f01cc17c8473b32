package parse

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/spkg/bom"
)

// csvReader is the minimal tokenising interface the loader needs: one
// row of strings per record. gocsv's LazyCSVReader (fed through a BOM
// stripper) provides it; none of gocsv's struct-tag reflection is
// used here -- column binding is resolved once per header below, so
// the row loop stays free of name lookups.
type csvReader interface {
	Read() ([]string, error)
}

const noColumn = -1

// rowFunc is invoked once per data row, with the row's cells and the
// resolved required/optional column index vectors for the file.
type rowFunc func(row []string, req []int, opt []int) error

// loadFile opens dir/name, reads its header, resolves req (required
// field names, in the caller's enumeration order) and opt (optional
// field names) to column indices, then invokes f for every data row.
//
// A missing required column is a *SchemaError. Any error returned by
// f aborts iteration immediately -- the loader never skips a bad row.
func loadFile(dir, name string, req []string, opt []string, f rowFunc) error {
	path := filepath.Join(dir, name)

	fh, err := os.Open(path)
	if err != nil {
		return newSchemaError(name, "", errors.Wrap(err, "opening file"))
	}
	defer fh.Close()

	reader := csvReader(gocsv.LazyCSVReader(bom.NewReader(fh)))

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return newSchemaError(name, "", errors.New("no column row"))
		}
		return newSchemaError(name, "", errors.Wrap(err, "reading header"))
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	reqIdx := make([]int, len(req))
	for i, field := range req {
		pos := indexOf(header, field)
		if pos == noColumn {
			return newSchemaError(name, field, errors.New("required field not found"))
		}
		reqIdx[i] = pos
	}

	optIdx := make([]int, len(opt))
	for i, field := range opt {
		optIdx[i] = indexOf(header, field)
	}

	row := 0
	for {
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return newSchemaError(name, "", errors.Wrap(err, "reading row"))
		}
		row++

		for i, c := range cells {
			cells[i] = strings.TrimSpace(c)
		}

		if err := f(cells, reqIdx, optIdx); err != nil {
			return err
		}
	}

	return nil
}

func indexOf(header []string, field string) int {
	for i, h := range header {
		if h == field {
			return i
		}
	}
	return noColumn
}

// getOptional returns (row[idx], true) if idx refers to a present
// column, or ("", false) otherwise.
func getOptional(row []string, idx int) (string, bool) {
	if idx == noColumn {
		return "", false
	}
	return row[idx], true
}

// getDefault returns row[idx] if idx refers to a present column, or
// def otherwise. Used by Agency/Route when agency_id is absent.
func getDefault(row []string, idx int, def string) string {
	if idx == noColumn {
		return def
	}
	return row[idx]
}
