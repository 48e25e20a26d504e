package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"StockCompass/internal/model"
)

// dateLayouts are tried in order. Exchange exports use day-first dates.
var dateLayouts = []string{"02/01/2006", "2/1/2006", "02-01-2006", "2006-01-02"}

// LoadCSVs reads one or more historical CSV files and groups the rows into
// per-ticker, date-sorted series. Rows without a parseable date or ticker
// are dropped without failing the load.
func LoadCSVs(paths []string) (model.Universe, error) {
	universe := model.Universe{}
	for _, path := range paths {
		if err := loadFile(path, universe); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}
	for ticker, series := range universe {
		sort.SliceStable(series, func(i, j int) bool {
			return series[i].Date.Before(series[j].Date)
		})
		universe[ticker] = series
	}
	return universe, nil
}

func loadFile(path string, universe model.Universe) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	cols := indexColumns(header)
	if cols.date < 0 || cols.ticker < 0 {
		return fmt.Errorf("missing Date or Ticker/Code column")
	}

	dropped := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read row: %w", err)
		}
		row, ok := parseRow(record, cols)
		if !ok {
			dropped++
			continue
		}
		universe[row.Ticker] = append(universe[row.Ticker], row)
	}
	if dropped > 0 {
		log.Printf("[WARN] %s: dropped %d rows with unparseable date or empty ticker", path, dropped)
	}
	return nil
}

// columnIndex holds positions of the columns we consume; -1 means absent.
type columnIndex struct {
	date, ticker, name, dayPrice, prev, volume int
}

func indexColumns(header []string) columnIndex {
	cols := columnIndex{date: -1, ticker: -1, name: -1, dayPrice: -1, prev: -1, volume: -1}
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case "Date":
			cols.date = i
		case "Ticker", "Code":
			cols.ticker = i
		case "Name":
			cols.name = i
		case "Day Price":
			cols.dayPrice = i
		case "Previous":
			cols.prev = i
		case "Volume":
			cols.volume = i
		}
	}
	return cols
}

func parseRow(record []string, cols columnIndex) (model.PriceRow, bool) {
	date, ok := ParseDate(field(record, cols.date))
	if !ok {
		return model.PriceRow{}, false
	}
	ticker := strings.TrimSpace(field(record, cols.ticker))
	if ticker == "" {
		return model.PriceRow{}, false
	}
	return model.PriceRow{
		Date:      date,
		Ticker:    ticker,
		Name:      strings.TrimSpace(field(record, cols.name)),
		DayPrice:  ParseNumber(field(record, cols.dayPrice)),
		PrevPrice: ParseNumber(field(record, cols.prev)),
		Volume:    ParseNumber(field(record, cols.volume)).Or(0),
	}, true
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}

// ParseDate parses a day-first calendar date.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseNumber cleans a raw numeric cell. Thousands separators and a `%`
// suffix are stripped; `-`, empty cells and negative prices come back
// undefined rather than as a value.
func ParseNumber(s string) model.NullFloat {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return model.NullFloat{}
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return model.NullFloat{}
	}
	return model.Float(v)
}
