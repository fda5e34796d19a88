package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"go.uber.org/multierr"
)

// Numeric feature columns. Their slots are fixed whatever order the columns
// document lists them in.
const (
	ColumnTotalSqft = "total_sqft"
	ColumnBath      = "bath"
	ColumnBHK       = "bhk"

	// NumericColumns is the number of leading non-location slots.
	NumericColumns = 3
)

// Artifacts is the read-only state loaded at startup: the fitted model and
// the one-hot location index. It is safe for concurrent use.
type Artifacts struct {
	model         Regressor
	locations     []string
	locationIndex map[string]int
	featureWidth  int
}

type columnsFile struct {
	DataColumns []string `json:"data_columns"`
}

// LoadArtifacts reads the model and the columns document. Both are read even
// when the first fails so every problem is reported together.
func LoadArtifacts(modelType, modelPath, columnsPath string) (*Artifacts, error) {
	model, modelErr := LoadModel(modelType, modelPath)
	columns, columnsErr := LoadColumns(columnsPath)
	if err := multierr.Combine(modelErr, columnsErr); err != nil {
		return nil, err
	}
	return NewArtifacts(model, columns)
}

func LoadColumns(path string) ([]string, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	var file columnsFile
	if err := json.Unmarshal(payload, &file); err != nil {
		return nil, fmt.Errorf("decode columns %s: %w", path, err)
	}
	if file.DataColumns == nil {
		return nil, fmt.Errorf("columns %s: data_columns is missing", path)
	}
	return file.DataColumns, nil
}

// NewArtifacts indexes columns against a loaded model. Every column other than
// the numeric ones is a location; locations take offsets 3, 4, ... in document order.
func NewArtifacts(model Regressor, columns []string) (*Artifacts, error) {
	if model == nil {
		return nil, errors.New("model is required")
	}
	width := model.NumFeatures()
	if width < NumericColumns {
		return nil, fmt.Errorf("model expects %d features, need at least %d", width, NumericColumns)
	}

	a := &Artifacts{
		model:         model,
		locations:     make([]string, 0, len(columns)),
		locationIndex: make(map[string]int, len(columns)),
		featureWidth:  width,
	}
	seen := make(map[string]bool, NumericColumns)
	var errs error
	for _, column := range columns {
		key := NormalizeLocation(column)
		switch key {
		case ColumnTotalSqft, ColumnBath, ColumnBHK:
			if seen[key] {
				errs = multierr.Append(errs, fmt.Errorf("duplicate column %q", column))
			}
			seen[key] = true
			continue
		case "":
			errs = multierr.Append(errs, errors.New("empty column name"))
			continue
		}
		if _, dup := a.locationIndex[key]; dup {
			errs = multierr.Append(errs, fmt.Errorf("duplicate location %q", column))
			continue
		}
		a.locationIndex[key] = NumericColumns + len(a.locations)
		a.locations = append(a.locations, column)
	}
	for _, name := range []string{ColumnTotalSqft, ColumnBath, ColumnBHK} {
		if !seen[name] {
			errs = multierr.Append(errs, fmt.Errorf("missing column %q", name))
		}
	}
	if errs != nil {
		return nil, fmt.Errorf("invalid columns: %w", errs)
	}
	return a, nil
}

func (a *Artifacts) loaded() bool {
	return a != nil && a.model != nil
}

// LocationNames returns the location names in document order.
func (a *Artifacts) LocationNames() ([]string, error) {
	if !a.loaded() {
		return nil, ErrUninitialized
	}
	return append(make([]string, 0, len(a.locations)), a.locations...), nil
}

func (a *Artifacts) HasLocation(location string) (bool, error) {
	if !a.loaded() {
		return false, ErrUninitialized
	}
	_, ok := a.locationIndex[NormalizeLocation(location)]
	return ok, nil
}

func (a *Artifacts) FeatureWidth() int {
	if !a.loaded() {
		return 0
	}
	return a.featureWidth
}

func (a *Artifacts) LocationCount() int {
	if !a.loaded() {
		return 0
	}
	return len(a.locations)
}

// FeatureVector builds the model input for one request. Unknown locations
// leave every location slot at zero.
func (a *Artifacts) FeatureVector(location string, totalSqft float64, bhk, bath int) ([]float64, error) {
	if !a.loaded() {
		return nil, ErrUninitialized
	}
	x := make([]float64, a.featureWidth)
	x[0] = totalSqft
	x[1] = float64(bath)
	x[2] = float64(bhk)
	if idx, ok := a.locationIndex[NormalizeLocation(location)]; ok {
		if idx >= len(x) {
			return nil, &PredictionError{
				Location: location,
				Err:      fmt.Errorf("location column %d outside model width %d", idx, len(x)),
			}
		}
		x[idx] = 1
	}
	return x, nil
}

// EstimatePrice scores the request and rounds the result to two decimals.
func (a *Artifacts) EstimatePrice(location string, totalSqft float64, bhk, bath int) (float64, error) {
	x, err := a.FeatureVector(location, totalSqft, bhk, bath)
	if err != nil {
		return 0, err
	}
	price, err := a.model.Predict(x)
	if err != nil {
		return 0, &PredictionError{Location: location, Err: err}
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, &PredictionError{Location: location, Err: fmt.Errorf("model returned %v", price)}
	}
	return roundPrice(price), nil
}

func roundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}
