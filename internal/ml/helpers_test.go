package ml

import (
	"math/rand"
	"testing"

	"github.com/flightprice/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

// Sorted vocabularies, so a label's code is its index here.
var testVocab = map[domain.Field][]string{
	domain.FieldAirline:         {"AirAsia", "Air_India", "GO_FIRST", "Indigo", "SpiceJet", "Vistara"},
	domain.FieldFlight:          {"6E-2046", "AI-803", "G8-354", "I5-764", "SG-8157", "UK-810"},
	domain.FieldSourceCity:      {"Bangalore", "Chennai", "Delhi", "Hyderabad", "Kolkata", "Mumbai"},
	domain.FieldDepartureTime:   {"Afternoon", "Early_Morning", "Evening", "Late_Night", "Morning", "Night"},
	domain.FieldStops:           {"one", "two_or_more", "zero"},
	domain.FieldArrivalTime:     {"Afternoon", "Early_Morning", "Evening", "Late_Night", "Morning", "Night"},
	domain.FieldDestinationCity: {"Bangalore", "Chennai", "Delhi", "Hyderabad", "Kolkata", "Mumbai"},
	domain.FieldClass:           {"Business", "Economy"},
}

// Exact linear relation used to generate prices, in feature order.
var (
	testCoefficients = []float64{120, 7, 45, 15, 1800, 9, 35, -30000, 210, -85}
	testIntercept    = 36000.0
)

func syntheticRows(t *testing.T, n int, seed int64) []Observation {
	t.Helper()

	rng := rand.New(rand.NewSource(seed))
	rows := make([]Observation, n)
	for i := range rows {
		var f domain.Flight
		for _, field := range domain.CategoricalFields() {
			vocab := testVocab[field]
			require.NoError(t, f.SetCategory(field, vocab[rng.Intn(len(vocab))]))
		}
		f.Duration = 1 + float64(rng.Intn(200))/10
		f.DaysLeft = 1 + rng.Intn(49)
		rows[i] = Observation{Flight: f}
	}

	// every label must appear so fitted codes line up with testVocab
	for _, field := range domain.CategoricalFields() {
		for j, label := range testVocab[field] {
			require.NoError(t, rows[j%n].Flight.SetCategory(field, label))
		}
	}
	for i := range rows {
		rows[i].Price = priceFor(t, rows[i].Flight)
	}
	return rows
}

func priceFor(t *testing.T, f domain.Flight) float64 {
	t.Helper()

	price := testIntercept
	for j, field := range domain.CategoricalFields() {
		label, err := f.Category(field)
		require.NoError(t, err)
		code := -1
		for k, v := range testVocab[field] {
			if v == label {
				code = k
			}
		}
		require.GreaterOrEqual(t, code, 0, "label %q not in test vocabulary", label)
		price += testCoefficients[j] * float64(code)
	}
	price += testCoefficients[8] * f.Duration
	price += testCoefficients[9] * float64(f.DaysLeft)
	return price
}

func testBundle(t *testing.T) *Bundle {
	t.Helper()

	encoders := make(map[domain.Field]*LabelEncoder)
	for field, vocab := range testVocab {
		enc, err := FitLabelEncoder(vocab)
		require.NoError(t, err)
		encoders[field] = enc
	}

	coef := make([]float64, len(testCoefficients))
	copy(coef, testCoefficients)
	bundle, err := NewBundle(&LinearModel{
		Features:     featureNames(),
		Coefficients: coef,
		Intercept:    testIntercept,
	}, encoders)
	require.NoError(t, err)
	return bundle
}

func sampleFlight() domain.Flight {
	return domain.Flight{
		Airline:         "Vistara",
		Flight:          "UK-810",
		SourceCity:      "Delhi",
		DepartureTime:   "Morning",
		Stops:           "one",
		ArrivalTime:     "Night",
		DestinationCity: "Mumbai",
		Class:           "Economy",
		Duration:        2.25,
		DaysLeft:        10,
	}
}
