// ABOUTME: CSV loader for work-order tables
// ABOUTME: Locates columns by header name and builds normalized WorkOrder records
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/harper/wosum/internal/models"
)

// Column names every input table must carry
const (
	ColWONum           = "wonum"
	ColAssetNum        = "assetnum"
	ColDescription     = "description"
	ColLongDescription = "longdescription"
	ColFailureCode     = "failurecode"
	ColLaborHrs        = "laborhrs"
)

// RequiredColumns lists the columns in the order they are checked
var RequiredColumns = []string{
	ColWONum,
	ColAssetNum,
	ColDescription,
	ColLongDescription,
	ColFailureCode,
	ColLaborHrs,
}

// nullMarkers are cell values treated as empty text
var nullMarkers = map[string]struct{}{
	"nan":  {},
	"null": {},
	"none": {},
	"n/a":  {},
}

// LoadCSV reads all work orders from the CSV file at path
func LoadCSV(path string) ([]models.WorkOrder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening work orders %s: %w", path, err)
	}
	defer f.Close()

	return ReadCSV(f)
}

// ReadCSV parses work orders from r. The first record must be the header.
func ReadCSV(r io.Reader) ([]models.WorkOrder, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &SchemaError{Reason: "input has no header row"}
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	columns, err := locateColumns(header)
	if err != nil {
		return nil, err
	}

	var orders []models.WorkOrder
	row := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) && errors.Is(parseErr.Err, csv.ErrFieldCount) {
				return nil, &SchemaError{Row: row, Reason: fmt.Sprintf("expected %d fields, got %d", len(header), len(record))}
			}
			return nil, fmt.Errorf("reading row %d: %w", row, err)
		}

		wo, err := buildWorkOrder(record, columns, row)
		if err != nil {
			return nil, err
		}
		orders = append(orders, wo)
	}

	return orders, nil
}

// locateColumns maps each required column to its position in the header
func locateColumns(header []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, seen := positions[key]; !seen {
			positions[key] = i
		}
	}

	columns := make(map[string]int, len(RequiredColumns))
	for _, col := range RequiredColumns {
		idx, ok := positions[col]
		if !ok {
			return nil, &SchemaError{Column: col}
		}
		columns[col] = idx
	}
	return columns, nil
}

func buildWorkOrder(record []string, columns map[string]int, row int) (models.WorkOrder, error) {
	cell := func(col string) string {
		return cleanCell(record[columns[col]])
	}

	hours, err := parseHours(cell(ColLaborHrs))
	if err != nil {
		return models.WorkOrder{}, &SchemaError{
			Column: ColLaborHrs,
			Row:    row,
			Value:  record[columns[ColLaborHrs]],
			Reason: err.Error(),
		}
	}

	wo := models.WorkOrder{
		WONum:           cell(ColWONum),
		AssetNum:        cell(ColAssetNum),
		Description:     cell(ColDescription),
		LongDescription: cell(ColLongDescription),
		FailureCode:     cell(ColFailureCode),
		LaborHrs:        hours,
	}
	if wo.WONum == "" {
		return models.WorkOrder{}, &SchemaError{Column: ColWONum, Row: row, Reason: "work order number is empty"}
	}
	if wo.FailureCode == models.NoFailureCode {
		return models.WorkOrder{}, &SchemaError{
			Column: ColFailureCode,
			Row:    row,
			Value:  record[columns[ColFailureCode]],
			Reason: "failure code is reserved for rows without a code",
		}
	}
	wo.Text = Normalize(wo)
	return wo, nil
}

// cleanCell trims the cell, collapses embedded line breaks and maps null markers to empty
func cleanCell(s string) string {
	s = oneLine(strings.TrimSpace(s))
	if _, isNull := nullMarkers[strings.ToLower(s)]; isNull {
		return ""
	}
	return s
}

func parseHours(s string) (float64, error) {
	if s == "" {
		return 0, errors.New("labor hours are missing")
	}
	h, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New("labor hours are not a number")
	}
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0, errors.New("labor hours are not finite")
	}
	if h < 0 {
		return 0, errors.New("labor hours are negative")
	}
	return h, nil
}
