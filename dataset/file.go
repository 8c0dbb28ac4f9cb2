package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"

	"getaround-api/analytics"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
)

var nanValues = []string{"", "NA", "NaN", "nan", "<nil>"}

var delayTypes = map[string]series.Type{
	analytics.ColDelayMinutes: series.Float,
	analytics.ColDeltaMinutes: series.Float,
	analytics.ColCheckinType:  series.String,
}

var priceTypes = map[string]series.Type{
	analytics.ColDailyPrice: series.Float,
}

// FileSource reads the pricing CSV and the delay workbook from disk.
type FileSource struct {
	PricingPath string
	DelayPath   string
	// DelaySheet defaults to the first sheet of the workbook.
	DelaySheet string
}

func (s FileSource) Prices(_ context.Context) (dataframe.DataFrame, error) {
	return ReadPricingCSV(s.PricingPath)
}

func (s FileSource) Delays(_ context.Context) (dataframe.DataFrame, error) {
	return ReadDelayXLSX(s.DelayPath, s.DelaySheet)
}

func ReadPricingCSV(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open pricing csv: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("parse pricing csv %s: %w", path, err)
	}
	if err := checkFloats(records, priceTypes); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("pricing csv %s: %w", path, err)
	}

	df := dataframe.LoadRecords(records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(priceTypes),
		dataframe.NaNValues(nanValues),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("parse pricing csv %s: %w", path, df.Err)
	}
	return df, nil
}

func ReadDelayXLSX(path, sheet string) (dataframe.DataFrame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open delay xlsx: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return dataframe.DataFrame{}, fmt.Errorf("delay xlsx %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	records, err := padRecords(rows)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	if err := checkFloats(records, delayTypes); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("sheet %q: %w", sheet, err)
	}

	df := dataframe.LoadRecords(records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(delayTypes),
		dataframe.NaNValues(nanValues),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("parse sheet %q: %w", sheet, df.Err)
	}
	return df, nil
}

// padRecords squares off the rows returned by excelize, which omits
// trailing empty cells, and drops blank rows.
func padRecords(rows [][]string) ([][]string, error) {
	if len(rows) < 2 {
		return nil, errors.New("no data rows")
	}
	header := rows[0]
	width := len(header)

	records := make([][]string, 0, len(rows))
	records = append(records, header)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		if len(row) > width {
			row = row[:width]
		}
		padded := make([]string, width)
		copy(padded, row)
		records = append(records, padded)
	}
	if len(records) < 2 {
		return nil, errors.New("no data rows")
	}
	return records, nil
}

// checkFloats rejects cells of float columns that are neither a null token
// nor a number. gota would load them as NaN, which reads as a missing value.
func checkFloats(records [][]string, types map[string]series.Type) error {
	if len(records) == 0 {
		return nil
	}
	for col, name := range records[0] {
		if types[name] != series.Float {
			continue
		}
		for i, row := range records[1:] {
			if col >= len(row) || isNaNToken(row[col]) {
				continue
			}
			if _, err := strconv.ParseFloat(row[col], 64); err != nil {
				return fmt.Errorf("row %d column %s: %q is not a number", i+2, name, row[col])
			}
		}
	}
	return nil
}

func isNaNToken(cell string) bool {
	for _, v := range nanValues {
		if cell == v {
			return true
		}
	}
	return false
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
