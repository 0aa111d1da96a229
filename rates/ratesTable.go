package rates

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/tidwall/gjson"
)

const (
	dateLayout    = "2006-01-02"
	secondsInADay = 24 * 3600
)

var log = logger.GetOrCreate("rates")

// ErrInvalidRate signals a rate that is not a positive number
var ErrInvalidRate = errors.New("invalid rate")

// ErrInvalidDate signals a date that is not formatted as YYYY-MM-DD
var ErrInvalidDate = errors.New("invalid date")

// ErrInvalidRatesFile signals a rates file that cannot be parsed
var ErrInvalidRatesFile = errors.New("invalid rates file")

type ratesTable struct {
	rates map[int64]float64
}

// NewRatesTable creates an immutable rates table from a date -> rate map, dates formatted as YYYY-MM-DD
func NewRatesTable(ratesByDate map[string]float64) (*ratesTable, error) {
	rt := &ratesTable{
		rates: make(map[int64]float64, len(ratesByDate)),
	}
	for date, rate := range ratesByDate {
		err := rt.add(date, rate)
		if err != nil {
			return nil, err
		}
	}

	return rt, nil
}

// ReadRatesTable loads the rates from a JSON object {"2013-04-28": 1.3e-6} or, for a .csv file,
// from date,rate rows with an optional header
func ReadRatesTable(pathToFile string) (*ratesTable, error) {
	file, err := os.Open(pathToFile)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	rt := &ratesTable{
		rates: make(map[int64]float64),
	}
	if strings.EqualFold(filepath.Ext(pathToFile), ".csv") {
		err = rt.readCSV(file)
	} else {
		err = rt.readJSON(file)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", pathToFile, err)
	}

	log.Info("loaded exchange rates", "file", pathToFile, "days", len(rt.rates))

	return rt, nil
}

func (rt *ratesTable) readJSON(reader io.Reader) error {
	byteValue, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	if !gjson.ValidBytes(byteValue) {
		return fmt.Errorf("%w: invalid json", ErrInvalidRatesFile)
	}

	doc := gjson.ParseBytes(byteValue)
	if !doc.IsObject() {
		return fmt.Errorf("%w: expected an object of date: rate", ErrInvalidRatesFile)
	}

	doc.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.Number {
			err = fmt.Errorf("%w: %s has a non numeric rate", ErrInvalidRate, key.String())
			return false
		}

		err = rt.add(key.String(), value.Float())
		return err == nil
	})

	return err
}

func (rt *ratesTable) readCSV(reader io.Reader) error {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = 2
	csvReader.TrimLeadingSpace = true

	for line := 1; ; line++ {
		record, err := csvReader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidRatesFile, err.Error())
		}

		rate, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			if line == 1 {
				// header
				continue
			}
			return fmt.Errorf("%w: line %d: %s", ErrInvalidRate, line, record[1])
		}

		err = rt.add(strings.TrimSpace(record[0]), rate)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
}

func (rt *ratesTable) add(date string, rate float64) error {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDate, date)
	}
	if !(rate > 0) || math.IsInf(rate, 1) {
		return fmt.Errorf("%w: %v for %s", ErrInvalidRate, rate, date)
	}

	rt.rates[dayIndex(day.Unix())] = rate

	return nil
}

// Lookup returns the rate of the UTC calendar date of timestamp
func (rt *ratesTable) Lookup(timestamp int64) (float64, bool) {
	rate, ok := rt.rates[dayIndex(timestamp)]
	return rate, ok
}

// Len returns the number of days with a rate
func (rt *ratesTable) Len() int {
	return len(rt.rates)
}

// dayIndex returns the number of UTC days between the epoch and timestamp. Unix time has no leap
// seconds so every UTC day starts at a multiple of secondsInADay
func dayIndex(timestamp int64) int64 {
	day := timestamp / secondsInADay
	if timestamp%secondsInADay != 0 && timestamp < 0 {
		day--
	}

	return day
}
