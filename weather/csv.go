package weather

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrBadCSV is returned when a weather CSV file cannot be interpreted.
var ErrBadCSV = errors.New("weather: malformed csv")

var timeColumns = []string{"date", "time", "timestamp"}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// LoadCSVFile opens path and parses it with LoadCSV.
func LoadCSVFile(path string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := LoadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	return s, nil
}

// LoadCSV parses a header-first CSV with one time column (date, time or
// timestamp), a rain column and any number of numeric columns. Timestamps
// without an offset are read as UTC.
func LoadCSV(r io.Reader) (*Series, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrBadCSV, err)
	}

	timeIdx, rainIdx := -1, -1
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		header[i] = name

		if name == "rain" {
			rainIdx = i
		}

		for _, c := range timeColumns {
			if name == c && timeIdx < 0 {
				timeIdx = i
			}
		}
	}

	if timeIdx < 0 {
		return nil, fmt.Errorf("%w: no time column", ErrBadCSV)
	}

	if rainIdx < 0 {
		return nil, fmt.Errorf("%w: no rain column", ErrBadCSV)
	}

	var records []Record
	line := 1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrBadCSV, line, err)
		}

		rec, err := parseRow(header, row, timeIdx, rainIdx)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrBadCSV, line, err)
		}

		records = append(records, rec)
	}

	return NewSeries(records)
}

func parseRow(header, row []string, timeIdx, rainIdx int) (Record, error) {
	t, err := parseTime(row[timeIdx])
	if err != nil {
		return Record{}, err
	}

	rec := Record{Time: t, Values: make(map[string]float64)}

	for i, cell := range row {
		if i == timeIdx {
			continue
		}

		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}

		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return Record{}, fmt.Errorf("column %s: %v", header[i], err)
		}

		if i == rainIdx {
			rec.Rain = v
			continue
		}

		rec.Values[header[i]] = v
	}

	return rec, nil
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}
