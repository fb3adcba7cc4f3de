package ml

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// LinearModel is an ordinary least squares fit with intercept
type LinearModel struct {
	Features     []string  `json:"features"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

// FitOLS fits y ~ X by least squares. Columns are centered so the intercept is
// recovered from the means; the centered system is solved through a thin SVD,
// which yields the minimum-norm solution when the design is rank deficient.
func FitOLS(x [][]float64, y []float64, features []string) (*LinearModel, error) {
	n := len(x)
	if n == 0 {
		return nil, errors.New("ols: no training rows")
	}
	if len(y) != n {
		return nil, fmt.Errorf("ols: %d rows but %d targets", n, len(y))
	}
	p := len(features)
	if p == 0 {
		return nil, errors.New("ols: no features")
	}

	xMean := make([]float64, p)
	for i, row := range x {
		if len(row) != p {
			return nil, fmt.Errorf("ols: row %d has %d values, want %d", i, len(row), p)
		}
		floats.Add(xMean, row)
	}
	floats.Scale(1/float64(n), xMean)
	yMean := floats.Sum(y) / float64(n)

	a := mat.NewDense(n, p, nil)
	b := mat.NewDense(n, 1, nil)
	for i, row := range x {
		for j, v := range row {
			a.Set(i, j, v-xMean[j])
		}
		b.Set(i, 0, y[i]-yMean)
	}

	coef := make([]float64, p)

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, errors.New("ols: singular value decomposition failed")
	}
	rcond := float64(max(n, p)) * eps
	if rank := svd.Rank(rcond); rank > 0 {
		var sol mat.Dense
		svd.SolveTo(&sol, b, rank)
		for j := range coef {
			coef[j] = sol.At(j, 0)
		}
	}

	intercept := yMean - floats.Dot(xMean, coef)

	names := make([]string, p)
	copy(names, features)

	model := &LinearModel{
		Features:     names,
		Coefficients: coef,
		Intercept:    intercept,
	}
	if err := model.checkFinite(); err != nil {
		return nil, err
	}
	return model, nil
}

const eps = 2.220446049250313e-16

// Predict evaluates the model on a vector in the model's feature order
func (m *LinearModel) Predict(x []float64) (float64, error) {
	if len(x) != len(m.Coefficients) {
		return 0, fmt.Errorf("ols: got %d features, model expects %d", len(x), len(m.Coefficients))
	}
	return m.Intercept + floats.Dot(m.Coefficients, x), nil
}

// Validate checks the model was trained on exactly the given column order
func (m *LinearModel) Validate(order []string) error {
	if len(m.Coefficients) != len(m.Features) {
		return fmt.Errorf("ols: %d coefficients for %d features", len(m.Coefficients), len(m.Features))
	}
	if len(m.Features) != len(order) {
		return fmt.Errorf("ols: model has %d features, want %d", len(m.Features), len(order))
	}
	for i, name := range order {
		if m.Features[i] != name {
			return fmt.Errorf("ols: feature %d is %q, want %q", i, m.Features[i], name)
		}
	}
	return m.checkFinite()
}

func (m *LinearModel) checkFinite() error {
	if math.IsNaN(m.Intercept) || math.IsInf(m.Intercept, 0) {
		return errors.New("ols: intercept is not finite")
	}
	for i, c := range m.Coefficients {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("ols: coefficient %d is not finite", i)
		}
	}
	return nil
}
