package nbplot

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Text input is read line by line by a StringReader, which splits each line
// into cells. TableReader turns those cells into numbers and accumulates
// them column by column, so the result can be handed to PlotData or
// PlotMultiXY.

var errIgnoreThisRow = errors.New("ignore this row")

// When Read is called, return an array of strings which are the columns.
type StringReader interface {
	Read(context.Context) ([]string, error)
}

// This implements a StringReader and reads an io.Reader using the Golang
// csv module. This means the input data must strictly conform to CSV data. If
// the input data is not exactly CSV (for example separated by one or more
// spaces), use the RelaxedStringReader.
type CsvStringReader struct {
	csvReader *csv.Reader

	lineCount int
}

func NewCsvStringReader(input io.Reader) *CsvStringReader {
	csvReader := csv.NewReader(input)
	// Ragged rows are how multi-xy tables carry groups of different lengths.
	csvReader.FieldsPerRecord = -1
	csvReader.Comment = '#'

	return &CsvStringReader{
		csvReader: csvReader,
	}
}

func (r *CsvStringReader) Read(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	line, err := r.csvReader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}

	r.lineCount++

	if err != nil {
		logger := logrus.WithFields(logrus.Fields{
			"tag":     "CsvString",
			"line":    line,
			"lineNum": r.lineCount,
		})

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			logger.WithError(err).Debug("unable to parse CSV, ignoring...")
			return nil, errIgnoreThisRow
		}

		logger.WithError(err).Error("unable to read CSV")
		return nil, err
	}

	return line, nil
}

// This is a more relaxed reader that can split on spaces or commas. However,
// it does not follow CSV quoting, and empty cells cannot be expressed. Lines
// starting with # are skipped.
type RelaxedStringReader struct {
	scanner *bufio.Scanner

	lineCount int
}

func NewRelaxedStringReader(input io.Reader) *RelaxedStringReader {
	return &RelaxedStringReader{
		scanner: bufio.NewScanner(input),
	}
}

// Split on either comma or any number of spaces or tabs
var relaxedSplitter = regexp.MustCompile("[ \t]+|,")

func (r *RelaxedStringReader) Read(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			logrus.WithField("tag", "RelaxedString").WithError(err).Error("unable to read line")
			return nil, err
		}
		return nil, io.EOF
	}

	r.lineCount++
	line := strings.TrimSpace(r.scanner.Text())
	if line == "" || strings.HasPrefix(line, "#") {
		return nil, errIgnoreThisRow
	}

	return Filter(relaxedSplitter.Split(line, -1), func(value string) bool {
		return len(value) > 0
	}), nil
}

// Table is numeric text input gathered into columns.
type Table struct {
	// Header cells, if the input started with a non-numeric row.
	Header []string

	// All columns have the same length. Cells that were empty, missing at the
	// end of a short row, or spelled nan/null/none hold Missing().
	Columns []Series
}

// YLabels returns the header cells naming y-columns: every column after the
// first, or, for [x1, y1, x2, y2, ...] tables, every second column.
func (t Table) YLabels(multiXY bool) []string {
	labels := make([]string, 0, len(t.Header))
	for i, h := range t.Header {
		if i == 0 {
			continue
		}
		if multiXY && i%2 == 0 {
			continue
		}
		labels = append(labels, h)
	}
	return labels
}

// TableReader converts rows from a StringReader into a Table.
//
// The column count is fixed by the first row (header or data). Longer rows
// are ignored; shorter rows are padded with Missing(). Rows with a cell that
// is not a number are ignored, except the very first row, which becomes the
// header.
type TableReader struct {
	Input StringReader

	table      Table
	numColumns int
	sawRow     bool
}

func NewTableReader(input StringReader) *TableReader {
	return &TableReader{Input: input}
}

// ReadTable drains the input and returns the collected table.
func ReadTable(ctx context.Context, input StringReader) (Table, error) {
	return NewTableReader(input).ReadAll(ctx)
}

func (r *TableReader) ReadAll(ctx context.Context) (Table, error) {
	for {
		err := r.readRow(ctx)
		if err == errIgnoreThisRow {
			continue
		} else if err == io.EOF {
			break
		} else if err != nil {
			return Table{}, err
		}
	}

	logrus.WithFields(logrus.Fields{
		"tag":     "TableReader",
		"header":  r.table.Header,
		"columns": len(r.table.Columns),
	}).Debug("table read")

	if len(r.table.Columns) == 0 || len(r.table.Columns[0]) == 0 {
		return r.table, &InputError{Op: "read", Series: -1, Index: -1, Err: ErrNoData}
	}

	return r.table, nil
}

func (r *TableReader) readRow(ctx context.Context) error {
	line, err := r.Input.Read(ctx)
	if err != nil {
		return err
	}

	logger := logrus.WithFields(logrus.Fields{
		"tag":  "TableReader",
		"line": line,
	})

	first := !r.sawRow
	r.sawRow = true

	if first {
		r.numColumns = len(line)
		r.table.Columns = make([]Series, r.numColumns)
	}

	if len(line) > r.numColumns {
		logger.Warnf("row has %d cells but the table has %d columns, ignoring...", len(line), r.numColumns)
		return errIgnoreThisRow
	}

	values := make([]float64, r.numColumns)
	for i := range values {
		if i >= len(line) {
			values[i] = Missing()
			continue
		}

		v, ok := parseCell(line[i])
		if !ok {
			if first {
				r.table.Header = trimAll(line)
				return errIgnoreThisRow
			}
			logger.Warn("cannot parse float, ignoring...")
			return errIgnoreThisRow
		}
		values[i] = v
	}

	for i, v := range values {
		r.table.Columns[i] = append(r.table.Columns[i], v)
	}

	return nil
}

func parseCell(cell string) (float64, bool) {
	cell = strings.TrimSpace(cell)
	switch strings.ToLower(cell) {
	case "", "nan", "null", "none":
		return Missing(), true
	}

	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func trimAll(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.TrimSpace(c)
	}
	return out
}
