package batch

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/spf13/afero"

	"github.com/arthur-debert/printergen/pkg/errors"
	"github.com/arthur-debert/printergen/pkg/logging"
	"github.com/arthur-debert/printergen/pkg/printer"
)

// Row is one data row of a batch file.
type Row struct {
	// Line is the 1-based line the row starts on.
	Line   int
	Values printer.Values
}

// Reader yields rows keyed by header column.
type Reader struct {
	path      string
	csv       *csv.Reader
	header    []string
	delimiter rune
}

// NewReader detects the delimiter of data and reads its header row.
func NewReader(data []byte, path string) (*Reader, error) {
	logger := logging.GetLogger("batch.reader")

	sample := data
	if len(sample) > SampleSize {
		sample = sample[:SampleSize]
	}
	delim, err := Sniff(sample)
	if err != nil {
		if pgErr, ok := err.(*errors.Error); ok {
			pgErr.WithDetail("path", path)
		}
		return nil, err
	}

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCSVParse, "CSV file has no header row").
			WithDetail("path", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrCSVParse, "failed to read header of %s", path).
			WithDetail("path", path)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
		if _, ok := printer.FieldByColumn(header[i]); !ok && header[i] != "" {
			logger.Warn().Str("column", header[i]).Str("path", path).Msg("Ignoring unknown column")
		}
	}

	logger.Debug().
		Str("path", path).
		Str("delimiter", string(delim)).
		Strs("columns", header).
		Msg("Opened batch file")

	return &Reader{path: path, csv: r, header: header, delimiter: delim}, nil
}

// Open reads path from fs and returns a Reader over it.
func Open(fs afero.Fs, path string) (*Reader, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileNotFound, "failed to read CSV file %s", path).
			WithDetail("path", path)
	}
	return NewReader(data, path)
}

// Delimiter returns the detected delimiter.
func (r *Reader) Delimiter() rune {
	return r.delimiter
}

// Next returns the next row, or io.EOF once the file is exhausted. Missing
// trailing fields are left empty and surplus fields are dropped.
func (r *Reader) Next() (Row, error) {
	record, err := r.csv.Read()
	if err == io.EOF {
		return Row{}, io.EOF
	}
	if err != nil {
		return Row{}, errors.Wrapf(err, errors.ErrCSVParse, "failed to parse %s", r.path).
			WithDetail("path", r.path)
	}
	line, _ := r.csv.FieldPos(0)

	values := make(printer.Values, len(r.header))
	for i, column := range r.header {
		if column == "" {
			continue
		}
		if i < len(record) {
			values[column] = record[i]
		} else {
			values[column] = ""
		}
	}
	return Row{Line: line, Values: values}, nil
}
