package domain

import "fmt"

// Field identifies one column of the feature vector
type Field string

const (
	FieldAirline         Field = "airline"
	FieldFlight          Field = "flight"
	FieldSourceCity      Field = "source_city"
	FieldDepartureTime   Field = "departure_time"
	FieldStops           Field = "stops"
	FieldArrivalTime     Field = "arrival_time"
	FieldDestinationCity Field = "destination_city"
	FieldClass           Field = "class"
	FieldDuration        Field = "duration"
	FieldDaysLeft        Field = "days_left"
)

// TargetColumn is the dataset column holding the realized ticket price
const TargetColumn = "price"

// Currency tags every predicted price
const Currency = "INR"

// MaxDaysLeft bounds the booking window; airlines do not sell further out
const MaxDaysLeft = 365

// FeatureOrder returns the model's column order. Trainer and predictor both
// build vectors from this list; reordering it invalidates every stored model.
func FeatureOrder() []Field {
	return []Field{
		FieldAirline,
		FieldFlight,
		FieldSourceCity,
		FieldDepartureTime,
		FieldStops,
		FieldArrivalTime,
		FieldDestinationCity,
		FieldClass,
		FieldDuration,
		FieldDaysLeft,
	}
}

// CategoricalFields returns the label-encoded fields in feature order
func CategoricalFields() []Field {
	return []Field{
		FieldAirline,
		FieldFlight,
		FieldSourceCity,
		FieldDepartureTime,
		FieldStops,
		FieldArrivalTime,
		FieldDestinationCity,
		FieldClass,
	}
}

// IsCategorical reports whether the field is label-encoded
func (f Field) IsCategorical() bool {
	switch f {
	case FieldAirline, FieldFlight, FieldSourceCity, FieldDepartureTime,
		FieldStops, FieldArrivalTime, FieldDestinationCity, FieldClass:
		return true
	}
	return false
}

// Flight is a single trip description in internal field naming
type Flight struct {
	Airline         string  `json:"airline"`
	Flight          string  `json:"flight"`
	SourceCity      string  `json:"source_city"`
	DepartureTime   string  `json:"departure_time"`
	Stops           string  `json:"stops"`
	ArrivalTime     string  `json:"arrival_time"`
	DestinationCity string  `json:"destination_city"`
	Class           string  `json:"class"`
	Duration        float64 `json:"duration"`
	DaysLeft        int     `json:"days_left"`
}

// Category returns the label stored in a categorical field
func (f Flight) Category(field Field) (string, error) {
	switch field {
	case FieldAirline:
		return f.Airline, nil
	case FieldFlight:
		return f.Flight, nil
	case FieldSourceCity:
		return f.SourceCity, nil
	case FieldDepartureTime:
		return f.DepartureTime, nil
	case FieldStops:
		return f.Stops, nil
	case FieldArrivalTime:
		return f.ArrivalTime, nil
	case FieldDestinationCity:
		return f.DestinationCity, nil
	case FieldClass:
		return f.Class, nil
	default:
		return "", fmt.Errorf("domain: %q is not a categorical field", field)
	}
}

// SetCategory stores a label in a categorical field
func (f *Flight) SetCategory(field Field, value string) error {
	switch field {
	case FieldAirline:
		f.Airline = value
	case FieldFlight:
		f.Flight = value
	case FieldSourceCity:
		f.SourceCity = value
	case FieldDepartureTime:
		f.DepartureTime = value
	case FieldStops:
		f.Stops = value
	case FieldArrivalTime:
		f.ArrivalTime = value
	case FieldDestinationCity:
		f.DestinationCity = value
	case FieldClass:
		f.Class = value
	default:
		return fmt.Errorf("domain: %q is not a categorical field", field)
	}
	return nil
}
