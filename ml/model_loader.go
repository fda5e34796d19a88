package ml

import (
	"fmt"
)

const (
	ModelTypeLinear       = "linear_regression"
	ModelTypeDecisionTree = "decision_tree"
)

func LoadModel(modelType, path string) (Regressor, error) {
	switch modelType {
	case ModelTypeLinear, "":
		model := &LinearRegression{}
		if err := model.Load(path); err != nil {
			return nil, err
		}
		return model, nil
	case ModelTypeDecisionTree:
		model := &DecisionTree{}
		if err := model.Load(path); err != nil {
			return nil, err
		}
		return model, nil
	default:
		return nil, fmt.Errorf("unsupported model type %q", modelType)
	}
}
