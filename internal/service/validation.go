package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/flightprice/backend/internal/domain"
)

// ErrInvalidInput marks request bodies that do not match the predict schema
var ErrInvalidInput = errors.New("invalid input")

var predictionRequestSchema = map[string]interface{}{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type":    "object",
	"required": []interface{}{
		"airline", "flight", "source_city", "departure_time", "stops",
		"arrival_time", "destination_city", "flight_class", "duration", "days_left",
	},
	"properties": map[string]interface{}{
		"airline":          map[string]interface{}{"type": "string"},
		"flight":           map[string]interface{}{"type": "string"},
		"source_city":      map[string]interface{}{"type": "string"},
		"departure_time":   map[string]interface{}{"type": "string"},
		"stops":            map[string]interface{}{"type": "string"},
		"arrival_time":     map[string]interface{}{"type": "string"},
		"destination_city": map[string]interface{}{"type": "string"},
		"flight_class":     map[string]interface{}{"type": "string"},
		"duration":         map[string]interface{}{"type": "number", "exclusiveMinimum": 0},
		"days_left":        map[string]interface{}{"type": "integer", "minimum": 0, "maximum": domain.MaxDaysLeft},
	},
}

var requestSchema = mustCompileSchema(predictionRequestSchema)

func mustCompileSchema(schema map[string]interface{}) *gojsonschema.Schema {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema))
	if err != nil {
		panic(fmt.Sprintf("service: invalid request schema: %v", err))
	}
	return compiled
}

// ParsePredictionRequest validates a /predict body and maps it to the
// internal flight record, renaming flight_class to class
func ParsePredictionRequest(body []byte) (domain.Flight, error) {
	if len(body) == 0 {
		return domain.Flight{}, fmt.Errorf("%w: request body is empty", ErrInvalidInput)
	}

	result, err := requestSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return domain.Flight{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !result.Valid() {
		msgs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			msgs[i] = desc.String()
		}
		sort.Strings(msgs)
		return domain.Flight{}, fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
	}

	var req domain.PredictionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return domain.Flight{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return req.ToFlight(), nil
}
