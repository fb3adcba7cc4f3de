package ml

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitLabelEncoderSortsAndDeduplicates(t *testing.T) {
	enc, err := FitLabelEncoder([]string{"Vistara", "AirAsia", "Indigo", "AirAsia", "Vistara"})
	require.NoError(t, err)

	assert.Equal(t, []string{"AirAsia", "Indigo", "Vistara"}, enc.Classes())
	assert.Equal(t, 3, enc.Len())
}

func TestFitLabelEncoderEmpty(t *testing.T) {
	_, err := FitLabelEncoder(nil)
	assert.Error(t, err)
}

func TestLabelEncoderStopsScenario(t *testing.T) {
	enc, err := FitLabelEncoder([]string{"two_or_more", "one", "non-stop", "one"})
	require.NoError(t, err)
	require.Equal(t, []string{"non-stop", "one", "two_or_more"}, enc.Classes())

	code, known := enc.Encode("one")
	assert.True(t, known)
	assert.Equal(t, 1, code)

	code, known = enc.Encode("two_or_more")
	assert.True(t, known)
	assert.Equal(t, 2, code)

	// Unseen labels are not rejected: they take the first sorted label's code.
	code, known = enc.Encode("unknown_value")
	assert.False(t, known)
	assert.Equal(t, 0, code)

	first, _ := enc.Encode("non-stop")
	assert.Equal(t, first, code)
}

func TestLabelEncoderEncodeKnown(t *testing.T) {
	enc, err := FitLabelEncoder([]string{"Economy", "Business"})
	require.NoError(t, err)

	code, known := enc.Encode("Economy")
	assert.True(t, known)
	assert.Equal(t, 1, code)

	code, known = enc.Encode("First")
	assert.False(t, known)
	assert.Equal(t, 0, code)
}

func TestLabelEncoderInverse(t *testing.T) {
	enc, err := FitLabelEncoder([]string{"Mumbai", "Delhi"})
	require.NoError(t, err)

	label, err := enc.Inverse(0)
	require.NoError(t, err)
	assert.Equal(t, "Delhi", label)

	_, err = enc.Inverse(2)
	assert.Error(t, err)
	_, err = enc.Inverse(-1)
	assert.Error(t, err)
}

func TestLabelEncoderClassesIsACopy(t *testing.T) {
	enc, err := FitLabelEncoder([]string{"b", "a"})
	require.NoError(t, err)

	classes := enc.Classes()
	classes[0] = "z"
	assert.Equal(t, []string{"a", "b"}, enc.Classes())
}

func TestLabelEncoderJSON(t *testing.T) {
	enc, err := FitLabelEncoder([]string{"Night", "Morning", "Evening"})
	require.NoError(t, err)

	data, err := json.Marshal(enc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"classes":["Evening","Morning","Night"]}`, string(data))

	var decoded LabelEncoder
	require.NoError(t, json.Unmarshal(data, &decoded))
	code, known := decoded.Encode("Night")
	assert.True(t, known)
	assert.Equal(t, 2, code)
}

func TestLabelEncoderJSONRejectsBadVocabulary(t *testing.T) {
	cases := map[string]string{
		"unsorted":  `{"classes":["b","a"]}`,
		"duplicate": `{"classes":["a","a"]}`,
		"empty":     `{"classes":[]}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			var enc LabelEncoder
			assert.Error(t, json.Unmarshal([]byte(payload), &enc))
		})
	}
}
