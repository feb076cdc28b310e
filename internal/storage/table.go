package storage

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/sphpost/internal/particles"
)

// TableFormat describes how a companion table is laid out.
type TableFormat struct {
	Comma    rune // 0 means runs of whitespace
	SkipRows int
}

var (
	CSVFormat = TableFormat{Comma: ',', SkipRows: 1}
	DatFormat = TableFormat{Comma: 0, SkipRows: 7}
)

// FormatFor picks the format from the file extension.
func FormatFor(path string) (TableFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return CSVFormat, nil
	case ".dat":
		return DatFormat, nil
	}
	return TableFormat{}, &particles.InputError{Path: path, Wrapped: particles.ErrUnrecognizedFormat}
}

// Table is a dense numeric table read from a companion file.
type Table struct {
	Path string
	data *mat.Dense
}

// Rows returns the number of data rows.
func (t *Table) Rows() int {
	if t.data == nil {
		return 0
	}
	r, _ := t.data.Dims()
	return r
}

// Cols returns the number of columns.
func (t *Table) Cols() int {
	if t.data == nil {
		return 0
	}
	_, c := t.data.Dims()
	return c
}

// Column returns column j without its last drop rows.
func (t *Table) Column(j, drop int) ([]float64, error) {
	if t.data == nil {
		return []float64{}, nil
	}
	if j < 0 || j >= t.Cols() {
		return nil, &particles.InputError{
			Path:    t.Path,
			Wrapped: fmt.Errorf("%w: column %d out of range (%d columns)", particles.ErrMalformedData, j, t.Cols()),
		}
	}
	col := mat.Col(nil, j, t.data)
	keep := len(col) - drop
	if keep < 0 {
		keep = 0
	}
	return col[:keep], nil
}

// ReadTable loads a numeric table. Blank lines are ignored; every data row
// must have the same number of numeric cells.
func ReadTable(path string, format TableFormat) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &particles.InputError{Path: path, Wrapped: particles.ErrMissingInput}
		}
		return nil, err
	}
	defer file.Close()

	records, err := readRecords(file, format)
	if err != nil {
		return nil, &particles.InputError{Path: path, Wrapped: err}
	}

	t := &Table{Path: path}
	if len(records) == 0 {
		return t, nil
	}

	cols := len(records[0])
	data := make([]float64, 0, len(records)*cols)
	for i, record := range records {
		if len(record) != cols {
			return nil, &particles.InputError{
				Path:    path,
				Wrapped: fmt.Errorf("%w: data row %d has %d cells, expected %d", particles.ErrMalformedData, i+1, len(record), cols),
			}
		}
		for _, cell := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, &particles.InputError{
					Path:    path,
					Wrapped: fmt.Errorf("%w: data row %d: %v", particles.ErrMalformedData, i+1, err),
				}
			}
			data = append(data, v)
		}
	}

	t.data = mat.NewDense(len(records), cols, data)
	return t, nil
}

func readRecords(r io.Reader, format TableFormat) ([][]string, error) {
	lines, err := dataLines(r, format.SkipRows)
	if err != nil {
		return nil, err
	}

	records := make([][]string, 0, len(lines))
	if format.Comma == 0 {
		for _, line := range lines {
			records = append(records, strings.Fields(line))
		}
		return records, nil
	}

	cr := csv.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	cr.Comma = format.Comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", particles.ErrMalformedData, err)
		}
		if record = trimTrailingEmpty(record); len(record) > 0 {
			records = append(records, record)
		}
	}
	return records, nil
}

// dataLines skips the first skip lines, then drops blank lines and lines
// starting with '#'.
func dataLines(r io.Reader, skip int) ([]string, error) {
	lines := make([]string, 0)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for n := 0; sc.Scan(); n++ {
		if n < skip {
			continue
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// trimTrailingEmpty drops the empty cell produced by a trailing delimiter.
func trimTrailingEmpty(record []string) []string {
	for len(record) > 0 && strings.TrimSpace(record[len(record)-1]) == "" {
		record = record[:len(record)-1]
	}
	return record
}
