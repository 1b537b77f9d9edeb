package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"virtual-battery/internal/model"
)

// Accepted timestamp layouts for the Date column. Energy Manager exports
// have used both of these.
var meterTimeLayouts = []string{
	"2006-01-02 15:04",
	"1/2/2006 15:04",
	time.RFC3339,
}

// ReadMeterCSV parses a smart-meter export into an hourly usage series.
// The file must carry Date and Quantity columns (Quantity in kWh); other
// columns are ignored. Rows with an empty Quantity are forward-filled from
// the previous reading, which papers over the duplicate/missing rows DST
// transitions produce in these exports.
func ReadMeterCSV(r io.Reader, loc *time.Location) (model.Series, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading meter header: %w", err)
	}
	dateCol, qtyCol := -1, -1
	for i, name := range header {
		switch name {
		case "Date":
			dateCol = i
		case "Quantity":
			qtyCol = i
		}
	}
	if dateCol < 0 || qtyCol < 0 {
		return nil, fmt.Errorf("meter file must have Date and Quantity columns, got %v", header)
	}

	var series model.Series
	lastUsage := 0.0
	haveUsage := false
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading meter row: %w", err)
		}

		t, err := parseMeterTime(rec[dateCol], loc)
		if err != nil {
			return nil, err
		}

		usage := lastUsage
		if rec[qtyCol] != "" {
			usage, err = strconv.ParseFloat(rec[qtyCol], 64)
			if err != nil {
				return nil, fmt.Errorf("row %s: bad quantity %q: %w", rec[dateCol], rec[qtyCol], err)
			}
			haveUsage = true
		} else if !haveUsage {
			return nil, fmt.Errorf("row %s: missing quantity with no prior reading to fill from", rec[dateCol])
		}
		lastUsage = usage

		series = append(series, model.Hour{Time: t, UsageKWh: usage})
	}

	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("meter series invalid: %w", err)
	}
	return series, nil
}

// ReadMeterFile is ReadMeterCSV over a file path.
func ReadMeterFile(path string, loc *time.Location) (model.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadMeterCSV(f, loc)
}

func parseMeterTime(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range meterTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable meter timestamp %q", s)
}
