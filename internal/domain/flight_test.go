package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureOrder(t *testing.T) {
	order := FeatureOrder()
	require.Len(t, order, 10)
	assert.Equal(t, FieldAirline, order[0])
	assert.Equal(t, FieldClass, order[7])
	assert.Equal(t, FieldDuration, order[8])
	assert.Equal(t, FieldDaysLeft, order[9])

	// callers get a fresh slice each time
	order[0] = FieldDaysLeft
	assert.Equal(t, FieldAirline, FeatureOrder()[0])
}

func TestCategoricalFieldsPrefixFeatureOrder(t *testing.T) {
	order := FeatureOrder()
	for i, f := range CategoricalFields() {
		assert.Equal(t, order[i], f)
		assert.True(t, f.IsCategorical())
	}
	assert.False(t, FieldDuration.IsCategorical())
	assert.False(t, FieldDaysLeft.IsCategorical())
}

func TestFlightCategoryRoundTrip(t *testing.T) {
	var f Flight
	for _, field := range CategoricalFields() {
		require.NoError(t, f.SetCategory(field, string(field)+"-value"))
	}
	for _, field := range CategoricalFields() {
		got, err := f.Category(field)
		require.NoError(t, err)
		assert.Equal(t, string(field)+"-value", got)
	}

	_, err := f.Category(FieldDuration)
	assert.Error(t, err)
	assert.Error(t, f.SetCategory(FieldDaysLeft, "x"))
}

func TestPredictionRequestToFlight(t *testing.T) {
	req := PredictionRequest{
		Airline:         "Vistara",
		Flight:          "UK-810",
		SourceCity:      "Delhi",
		DepartureTime:   "Morning",
		Stops:           "one",
		ArrivalTime:     "Night",
		DestinationCity: "Mumbai",
		FlightClass:     "Business",
		Duration:        2.5,
		DaysLeft:        12,
	}

	f := req.ToFlight()
	assert.Equal(t, "Business", f.Class)
	assert.Equal(t, 12, f.DaysLeft)
	assert.Equal(t, 2.5, f.Duration)
	assert.Equal(t, "UK-810", f.Flight)
}
