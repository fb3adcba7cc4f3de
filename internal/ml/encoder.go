package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// LabelEncoder maps a sorted vocabulary of labels onto dense codes [0, n)
type LabelEncoder struct {
	classes []string
	index   map[string]int
}

// FitLabelEncoder learns the sorted, de-duplicated vocabulary of values
func FitLabelEncoder(values []string) (*LabelEncoder, error) {
	if len(values) == 0 {
		return nil, errors.New("encoder: cannot fit on empty column")
	}

	seen := make(map[string]struct{}, 64)
	classes := make([]string, 0, 64)
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		classes = append(classes, v)
	}
	sort.Strings(classes)

	return newLabelEncoder(classes)
}

func newLabelEncoder(classes []string) (*LabelEncoder, error) {
	if len(classes) == 0 {
		return nil, errors.New("encoder: empty vocabulary")
	}
	if !sort.StringsAreSorted(classes) {
		return nil, errors.New("encoder: vocabulary is not sorted")
	}

	index := make(map[string]int, len(classes))
	for i, c := range classes {
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("encoder: duplicate label %q", c)
		}
		index[c] = i
	}

	return &LabelEncoder{classes: classes, index: index}, nil
}

// Classes returns a copy of the vocabulary in code order
func (e *LabelEncoder) Classes() []string {
	out := make([]string, len(e.classes))
	copy(out, e.classes)
	return out
}

// Len is the vocabulary size
func (e *LabelEncoder) Len() int {
	return len(e.classes)
}

// Encode returns the code for label. Labels outside the vocabulary get the
// code of the first sorted label, and known is false.
//
// NOTE: the first sorted label is an arbitrary stand-in, not the most
// frequent one. Stored models depend on this exact substitution.
func (e *LabelEncoder) Encode(label string) (code int, known bool) {
	if code, ok := e.index[label]; ok {
		return code, true
	}
	return 0, false
}

// Inverse returns the label for a code
func (e *LabelEncoder) Inverse(code int) (string, error) {
	if code < 0 || code >= len(e.classes) {
		return "", fmt.Errorf("encoder: code %d out of range [0, %d)", code, len(e.classes))
	}
	return e.classes[code], nil
}

type labelEncoderJSON struct {
	Classes []string `json:"classes"`
}

func (e *LabelEncoder) MarshalJSON() ([]byte, error) {
	return json.Marshal(labelEncoderJSON{Classes: e.classes})
}

func (e *LabelEncoder) UnmarshalJSON(data []byte) error {
	var raw labelEncoderJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded, err := newLabelEncoder(raw.Classes)
	if err != nil {
		return err
	}
	*e = *decoded
	return nil
}
