package ml

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/flightprice/backend/internal/domain"
)

// ErrMissingColumns is returned when the dataset lacks a feature or target column
var ErrMissingColumns = errors.New("dataset is missing required columns")

// Observation is one historical flight with its realized price
type Observation struct {
	Flight domain.Flight
	Price  float64
}

// LoadDataset reads a CSV dataset from disk
func LoadDataset(path string) ([]Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: failed to open %s: %w", path, err)
	}
	defer f.Close()

	return ReadDataset(f)
}

// ReadDataset parses CSV rows by header name. Columns outside the feature
// order and the price column, such as the leading index column, are ignored.
func ReadDataset(r io.Reader) ([]Observation, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("dataset: empty file")
		}
		return nil, fmt.Errorf("dataset: failed to read header: %w", err)
	}

	positions := make(map[string]int, len(header))
	for i, name := range header {
		positions[strings.TrimSpace(name)] = i
	}

	required := append(featureNames(), domain.TargetColumn)
	var missing []string
	for _, name := range required {
		if _, ok := positions[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("dataset: %w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	var rows []Observation
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("dataset: line %d: %w", line, err)
		}

		obs, err := parseObservation(record, positions)
		if err != nil {
			return nil, fmt.Errorf("dataset: line %d: %w", line, err)
		}
		rows = append(rows, obs)
	}

	if len(rows) == 0 {
		return nil, errors.New("dataset: no data rows")
	}
	return rows, nil
}

func parseObservation(record []string, positions map[string]int) (Observation, error) {
	var obs Observation

	for _, field := range domain.CategoricalFields() {
		if err := obs.Flight.SetCategory(field, record[positions[string(field)]]); err != nil {
			return obs, err
		}
	}

	duration, err := parseFloat(record, positions, string(domain.FieldDuration))
	if err != nil {
		return obs, err
	}
	obs.Flight.Duration = duration

	daysLeft, err := parseFloat(record, positions, string(domain.FieldDaysLeft))
	if err != nil {
		return obs, err
	}
	if daysLeft != float64(int(daysLeft)) {
		return obs, fmt.Errorf("days_left %v is not an integer", daysLeft)
	}
	obs.Flight.DaysLeft = int(daysLeft)

	price, err := parseFloat(record, positions, domain.TargetColumn)
	if err != nil {
		return obs, err
	}
	obs.Price = price

	return obs, nil
}

func parseFloat(record []string, positions map[string]int, column string) (float64, error) {
	raw := strings.TrimSpace(record[positions[column]])
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: invalid number %q", column, raw)
	}
	return v, nil
}
