// Package dataset loads (mileage, price) observations from CSV files.
package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/YuminosukeSato/pricefit/pkg/errors"
)

// Column names expected in the CSV header.
const (
	MileageColumn = "km"
	PriceColumn   = "price"
)

// Dataset holds paired observations. Row i is (Mileages[i], Prices[i]).
type Dataset struct {
	Mileages []float64
	Prices   []float64
}

// Len returns the number of observations.
func (d *Dataset) Len() int {
	return len(d.Mileages)
}

// Load reads the CSV file at path from fs. The header must contain "km" and
// "price" columns; their order and any extra columns do not matter.
//
// A missing file yields a DatasetNotFoundError naming path. A cell that is not
// a number yields a ParseError naming the 1-based data row and the column.
func Load(fs afero.Fs, path string) (*Dataset, error) {
	f, err := fs.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewDatasetNotFoundError(path)
		}
		return nil, errors.Wrapf(err, "failed to open dataset %s", path)
	}
	defer f.Close()

	ds, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load dataset %s", path)
	}
	return ds, nil
}

// Read parses CSV data from r. See Load for the expected layout.
func Read(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewModelError("dataset.Read", "empty data", errors.ErrEmptyData)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CSV header")
	}

	kmIdx, priceIdx := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
		case MileageColumn:
			kmIdx = i
		case PriceColumn:
			priceIdx = i
		}
	}
	if kmIdx < 0 {
		return nil, errors.NewValidationError("columns", "CSV header has no 'km' column", header)
	}
	if priceIdx < 0 {
		return nil, errors.NewValidationError("columns", "CSV header has no 'price' column", header)
	}

	ds := &Dataset{}
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read CSV row %d", row)
		}
		if isBlank(record) {
			row--
			continue
		}

		km, err := parseCell(record, kmIdx, row, MileageColumn)
		if err != nil {
			return nil, err
		}
		price, err := parseCell(record, priceIdx, row, PriceColumn)
		if err != nil {
			return nil, err
		}

		ds.Mileages = append(ds.Mileages, km)
		ds.Prices = append(ds.Prices, price)
	}

	if ds.Len() == 0 {
		return nil, errors.NewModelError("dataset.Read", "empty data", errors.ErrEmptyData)
	}
	return ds, nil
}

func parseCell(record []string, idx, row int, column string) (float64, error) {
	if idx >= len(record) {
		return 0, errors.NewParseError(row, column, "", errors.New("missing value"))
	}
	raw := strings.TrimSpace(record[idx])
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.NewParseError(row, column, raw, err)
	}
	if err := errors.CheckScalar("dataset.Read", v, row); err != nil {
		return 0, errors.NewParseError(row, column, raw, err)
	}
	return v, nil
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
