package ml

// Regressor scores a single feature vector. NumFeatures is the vector width
// the fitted model expects.
type Regressor interface {
	Predict(features []float64) (float64, error)
	NumFeatures() int
}
