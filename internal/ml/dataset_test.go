package ml

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `,airline,flight,source_city,departure_time,stops,arrival_time,destination_city,class,duration,days_left,price
0,SpiceJet,SG-8709,Delhi,Evening,zero,Night,Mumbai,Economy,2.17,1,5953
1,SpiceJet,SG-8157,Delhi,Early_Morning,zero,Morning,Mumbai,Economy,2.33,1,5953
2,AirAsia,I5-764,Delhi,Early_Morning,zero,Early_Morning,Mumbai,Economy,2.17,1,5956
3,Vistara,UK-995,Delhi,Morning,zero,Afternoon,Mumbai,Business,2.25,1,5955
`

func TestReadDataset(t *testing.T) {
	rows, err := ReadDataset(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, rows, 4)

	first := rows[0]
	assert.Equal(t, "SpiceJet", first.Flight.Airline)
	assert.Equal(t, "SG-8709", first.Flight.Flight)
	assert.Equal(t, "Evening", first.Flight.DepartureTime)
	assert.Equal(t, "zero", first.Flight.Stops)
	assert.Equal(t, "Economy", first.Flight.Class)
	assert.Equal(t, 2.17, first.Flight.Duration)
	assert.Equal(t, 1, first.Flight.DaysLeft)
	assert.Equal(t, 5953.0, first.Price)

	assert.Equal(t, "Business", rows[3].Flight.Class)
}

func TestReadDatasetColumnOrderIndependent(t *testing.T) {
	csv := "price,days_left,duration,class,destination_city,arrival_time,stops,departure_time,source_city,flight,airline\n" +
		"7000,3,1.5,Economy,Mumbai,Night,one,Morning,Delhi,AI-803,Air_India\n"

	rows, err := ReadDataset(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Air_India", rows[0].Flight.Airline)
	assert.Equal(t, 3, rows[0].Flight.DaysLeft)
	assert.Equal(t, 7000.0, rows[0].Price)
}

func TestReadDatasetMissingColumns(t *testing.T) {
	csv := "airline,flight,source_city,price\nSpiceJet,SG-8709,Delhi,5953\n"

	_, err := ReadDataset(strings.NewReader(csv))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumns)
	assert.Contains(t, err.Error(), "departure_time")
	assert.Contains(t, err.Error(), "days_left")
}

func TestReadDatasetBadValues(t *testing.T) {
	header := "airline,flight,source_city,departure_time,stops,arrival_time,destination_city,class,duration,days_left,price\n"
	cases := map[string]string{
		"duration":  "SpiceJet,SG-8709,Delhi,Evening,zero,Night,Mumbai,Economy,fast,1,5953\n",
		"days_left": "SpiceJet,SG-8709,Delhi,Evening,zero,Night,Mumbai,Economy,2.17,1.5,5953\n",
		"price":     "SpiceJet,SG-8709,Delhi,Evening,zero,Night,Mumbai,Economy,2.17,1,\n",
	}
	for name, row := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadDataset(strings.NewReader(header + row))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "line 2")
		})
	}
}

func TestReadDatasetEmpty(t *testing.T) {
	_, err := ReadDataset(strings.NewReader(""))
	assert.Error(t, err)

	header := "airline,flight,source_city,departure_time,stops,arrival_time,destination_city,class,duration,days_left,price\n"
	_, err = ReadDataset(strings.NewReader(header))
	assert.Error(t, err)
}

func TestLoadDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flights.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	rows, err := LoadDataset(path)
	require.NoError(t, err)
	assert.Len(t, rows, 4)

	_, err = LoadDataset(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}
