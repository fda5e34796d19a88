package ml

import (
	"encoding/json"
	"fmt"
	"os"

	"gonum.org/v1/gonum/floats"
)

// LinearRegression is a fitted ordinary least squares model exported by the
// training pipeline as JSON.
type LinearRegression struct {
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
}

func NewLinearRegression(coef []float64, intercept float64) *LinearRegression {
	return &LinearRegression{
		Coef:      append([]float64(nil), coef...),
		Intercept: intercept,
	}
}

func (lr *LinearRegression) NumFeatures() int {
	return len(lr.Coef)
}

func (lr *LinearRegression) Predict(features []float64) (float64, error) {
	if len(lr.Coef) == 0 {
		return 0, ErrModelNotFitted
	}
	if len(features) != len(lr.Coef) {
		return 0, fmt.Errorf("feature vector has %d columns, model expects %d", len(features), len(lr.Coef))
	}
	return floats.Dot(lr.Coef, features) + lr.Intercept, nil
}

func (lr *LinearRegression) Save(path string) error {
	if len(lr.Coef) == 0 {
		return ErrModelNotFitted
	}
	payload, err := json.Marshal(lr)
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o600)
}

func (lr *LinearRegression) Load(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read model: %w", err)
	}
	var model LinearRegression
	if err := json.Unmarshal(payload, &model); err != nil {
		return fmt.Errorf("decode model %s: %w", path, err)
	}
	if len(model.Coef) == 0 {
		return fmt.Errorf("model %s: %w", path, ErrModelNotFitted)
	}
	*lr = model
	return nil
}
