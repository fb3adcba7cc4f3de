package ml

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/flightprice/backend/internal/domain"
)

// Defaults used when training from the historical dataset
const (
	DefaultTestSize = 0.2
	DefaultSeed     = 100
)

// TrainOptions controls the train/held-out split
type TrainOptions struct {
	TestSize float64
	Seed     int64
}

// TrainResult is the fitted bundle plus the partition sizes it came from
type TrainResult struct {
	Bundle    *Bundle
	TrainRows int
	TestRows  int
}

// TrainTestSplit shuffles row indices with a seeded source. The first
// ceil(testSize*n) indices of the permutation form the held-out partition.
func TrainTestSplit(n int, testSize float64, seed int64) (train, test []int, err error) {
	if n < 2 {
		return nil, nil, fmt.Errorf("split: need at least 2 rows, got %d", n)
	}
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, fmt.Errorf("split: test size %v must be in (0, 1)", testSize)
	}

	nTest := int(math.Ceil(testSize * float64(n)))
	if nTest >= n {
		return nil, nil, fmt.Errorf("split: test size %v leaves no training rows for %d rows", testSize, n)
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	return perm[nTest:], perm[:nTest], nil
}

// Train fits one encoder per categorical column over the whole dataset, then
// fits the model on the training partition only
func Train(rows []Observation, opts TrainOptions) (*TrainResult, error) {
	if len(rows) == 0 {
		return nil, errors.New("train: no rows")
	}

	encoders := make(map[domain.Field]*LabelEncoder, len(domain.CategoricalFields()))
	column := make([]string, len(rows))
	for _, field := range domain.CategoricalFields() {
		for i, row := range rows {
			label, err := row.Flight.Category(field)
			if err != nil {
				return nil, err
			}
			column[i] = label
		}
		enc, err := FitLabelEncoder(column)
		if err != nil {
			return nil, fmt.Errorf("train: column %s: %w", field, err)
		}
		encoders[field] = enc
	}

	// A placeholder model lets the bundle encode rows before the fit exists.
	names := featureNames()
	staging, err := NewBundle(&LinearModel{
		Features:     names,
		Coefficients: make([]float64, len(names)),
	}, encoders)
	if err != nil {
		return nil, fmt.Errorf("train: %w", err)
	}

	trainIdx, testIdx, err := TrainTestSplit(len(rows), opts.TestSize, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("train: %w", err)
	}

	x := make([][]float64, len(trainIdx))
	y := make([]float64, len(trainIdx))
	for i, idx := range trainIdx {
		vec, _, err := staging.FeatureVector(rows[idx].Flight)
		if err != nil {
			return nil, fmt.Errorf("train: row %d: %w", idx, err)
		}
		x[i] = vec
		y[i] = rows[idx].Price
	}

	model, err := FitOLS(x, y, names)
	if err != nil {
		return nil, fmt.Errorf("train: %w", err)
	}

	bundle, err := NewBundle(model, encoders)
	if err != nil {
		return nil, fmt.Errorf("train: %w", err)
	}

	return &TrainResult{
		Bundle:    bundle,
		TrainRows: len(trainIdx),
		TestRows:  len(testIdx),
	}, nil
}
