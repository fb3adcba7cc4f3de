package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/flightprice/backend/internal/domain"
)

// Default artifact file names written by the trainer
const (
	ModelFileName    = "model.json"
	EncodersFileName = "label_encoders.json"
)

// ErrArtifactMissing is returned when an artifact file does not exist
var ErrArtifactMissing = errors.New("artifact file not found")

// Bundle pairs a fitted model with the encoders it was trained against.
// It is never mutated after construction and is safe for concurrent reads.
type Bundle struct {
	model    *LinearModel
	encoders map[domain.Field]*LabelEncoder
}

// NewBundle validates that the model matches the feature order and that
// every categorical field has an encoder
func NewBundle(model *LinearModel, encoders map[domain.Field]*LabelEncoder) (*Bundle, error) {
	if model == nil {
		return nil, errors.New("bundle: model is nil")
	}
	if err := model.Validate(featureNames()); err != nil {
		return nil, fmt.Errorf("bundle: %w", err)
	}

	owned := make(map[domain.Field]*LabelEncoder, len(encoders))
	for _, field := range domain.CategoricalFields() {
		enc, ok := encoders[field]
		if !ok || enc == nil {
			return nil, fmt.Errorf("bundle: missing encoder for %q", field)
		}
		if enc.Len() == 0 {
			return nil, fmt.Errorf("bundle: encoder for %q has no labels", field)
		}
		owned[field] = enc
	}

	return &Bundle{model: model, encoders: owned}, nil
}

// Model returns the fitted model
func (b *Bundle) Model() *LinearModel {
	return b.model
}

// Encoder returns the encoder for a categorical field
func (b *Bundle) Encoder(field domain.Field) (*LabelEncoder, bool) {
	enc, ok := b.encoders[field]
	return enc, ok
}

// Vocabulary returns the sorted labels a field was trained on
func (b *Bundle) Vocabulary(field domain.Field) []string {
	enc, ok := b.encoders[field]
	if !ok {
		return nil
	}
	return enc.Classes()
}

// FeatureVector encodes a flight in domain.FeatureOrder. It also reports
// which categorical fields fell back to the first vocabulary label.
func (b *Bundle) FeatureVector(f domain.Flight) ([]float64, []domain.Field, error) {
	order := domain.FeatureOrder()
	vec := make([]float64, 0, len(order))
	var fallbacks []domain.Field

	for _, field := range order {
		if !field.IsCategorical() {
			switch field {
			case domain.FieldDuration:
				vec = append(vec, f.Duration)
			case domain.FieldDaysLeft:
				vec = append(vec, float64(f.DaysLeft))
			default:
				return nil, nil, fmt.Errorf("bundle: no value for numeric field %q", field)
			}
			continue
		}

		enc, ok := b.encoders[field]
		if !ok {
			return nil, nil, fmt.Errorf("bundle: missing encoder for %q", field)
		}
		label, err := f.Category(field)
		if err != nil {
			return nil, nil, err
		}
		code, known := enc.Encode(label)
		if !known {
			fallbacks = append(fallbacks, field)
		}
		vec = append(vec, float64(code))
	}

	return vec, fallbacks, nil
}

// Predict encodes the flight and evaluates the model
func (b *Bundle) Predict(f domain.Flight) (float64, []domain.Field, error) {
	vec, fallbacks, err := b.FeatureVector(f)
	if err != nil {
		return 0, nil, err
	}
	price, err := b.model.Predict(vec)
	if err != nil {
		return 0, nil, err
	}
	return price, fallbacks, nil
}

// Save writes both artifacts. Each file is staged next to its destination
// and renamed into place only after both were written completely.
func (b *Bundle) Save(modelPath, encodersPath string) error {
	modelData, err := json.Marshal(b.model)
	if err != nil {
		return fmt.Errorf("bundle: failed to marshal model: %w", err)
	}
	encData, err := json.Marshal(b.encoders)
	if err != nil {
		return fmt.Errorf("bundle: failed to marshal encoders: %w", err)
	}

	modelTmp, err := writeTemp(modelPath, modelData)
	if err != nil {
		return err
	}
	encTmp, err := writeTemp(encodersPath, encData)
	if err != nil {
		os.Remove(modelTmp)
		return err
	}

	// The previous model is kept aside until the encoders are installed too,
	// so a failed save never leaves a new model beside old encoders.
	backup, err := backupFile(modelPath)
	if err != nil {
		os.Remove(modelTmp)
		os.Remove(encTmp)
		return err
	}

	if err := os.Rename(modelTmp, modelPath); err != nil {
		os.Remove(modelTmp)
		os.Remove(encTmp)
		if backup != "" {
			os.Remove(backup)
		}
		return fmt.Errorf("bundle: failed to install %s: %w", modelPath, err)
	}
	if err := os.Rename(encTmp, encodersPath); err != nil {
		os.Remove(encTmp)
		if restoreErr := restoreFile(modelPath, backup); restoreErr != nil {
			return fmt.Errorf("bundle: failed to install %s: %w (restoring model: %v)", encodersPath, err, restoreErr)
		}
		return fmt.Errorf("bundle: failed to install %s: %w", encodersPath, err)
	}

	if backup != "" {
		os.Remove(backup)
	}
	return nil
}

// backupFile copies path next to itself and returns the copy's name, or ""
// when path does not exist yet
func backupFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("bundle: failed to back up %s: %w", path, err)
	}
	return writeTemp(path, data)
}

// restoreFile puts a backup from backupFile back in place. An empty backup
// means there was nothing before, so path is removed.
func restoreFile(path, backup string) error {
	if backup == "" {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	}
	return os.Rename(backup, path)
}

func writeTemp(dest string, data []byte) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+"-*.tmp")
	if err != nil {
		return "", fmt.Errorf("bundle: failed to stage %s: %w", dest, err)
	}
	name := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(name)
		return "", fmt.Errorf("bundle: failed to write %s: %w", dest, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(name)
		return "", fmt.Errorf("bundle: failed to sync %s: %w", dest, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("bundle: failed to close %s: %w", dest, err)
	}
	return name, nil
}

// LoadBundle reads and validates the artifacts written by Save
func LoadBundle(modelPath, encodersPath string) (*Bundle, error) {
	var model LinearModel
	if err := readJSON(modelPath, &model); err != nil {
		return nil, err
	}

	var encoders map[domain.Field]*LabelEncoder
	if err := readJSON(encodersPath, &encoders); err != nil {
		return nil, err
	}

	return NewBundle(&model, encoders)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("bundle: %s: %w", path, ErrArtifactMissing)
		}
		return fmt.Errorf("bundle: failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("bundle: failed to decode %s: %w", path, err)
	}
	return nil
}

func featureNames() []string {
	order := domain.FeatureOrder()
	names := make([]string, len(order))
	for i, f := range order {
		names[i] = string(f)
	}
	return names
}
