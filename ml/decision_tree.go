package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// DecisionTree is a regression tree flattened into a node slice. Node 0 is the root.
type DecisionTree struct {
	nFeatures int
	nodes     []TreeNode
}

type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	Value      float64 `json:"value"`
	IsLeaf     bool    `json:"is_leaf"`
}

type treeFile struct {
	NFeatures int        `json:"n_features"`
	Nodes     []TreeNode `json:"nodes"`
}

func NewDecisionTree(nFeatures int, nodes []TreeNode) (*DecisionTree, error) {
	dt := &DecisionTree{nFeatures: nFeatures, nodes: append([]TreeNode(nil), nodes...)}
	if err := dt.validate(); err != nil {
		return nil, err
	}
	return dt, nil
}

func (dt *DecisionTree) NumFeatures() int {
	return dt.nFeatures
}

func (dt *DecisionTree) Predict(features []float64) (float64, error) {
	if len(dt.nodes) == 0 {
		return 0, ErrModelNotFitted
	}
	if len(features) != dt.nFeatures {
		return 0, fmt.Errorf("feature vector has %d columns, model expects %d", len(features), dt.nFeatures)
	}
	idx := 0
	for steps := 0; steps <= len(dt.nodes); steps++ {
		node := dt.nodes[idx]
		if node.IsLeaf {
			return node.Value, nil
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
	}
	return 0, errors.New("invalid tree state")
}

func (dt *DecisionTree) Save(path string) error {
	if len(dt.nodes) == 0 {
		return ErrModelNotFitted
	}
	payload, err := json.Marshal(treeFile{NFeatures: dt.nFeatures, Nodes: dt.nodes})
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o600)
}

func (dt *DecisionTree) Load(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read model: %w", err)
	}
	var file treeFile
	if err := json.Unmarshal(payload, &file); err != nil {
		return fmt.Errorf("decode model %s: %w", path, err)
	}
	loaded := DecisionTree{nFeatures: file.NFeatures, nodes: file.Nodes}
	if err := loaded.validate(); err != nil {
		return fmt.Errorf("model %s: %w", path, err)
	}
	*dt = loaded
	return nil
}

// validate checks child links and feature indexes once so Predict can index without bounds checks.
func (dt *DecisionTree) validate() error {
	if len(dt.nodes) == 0 {
		return ErrModelNotFitted
	}
	if dt.nFeatures <= 0 {
		return errors.New("n_features must be positive")
	}
	for i, node := range dt.nodes {
		if node.IsLeaf {
			continue
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= dt.nFeatures {
			return fmt.Errorf("node %d: feature index %d out of range", i, node.FeatureIdx)
		}
		if node.LeftChild <= i || node.LeftChild >= len(dt.nodes) ||
			node.RightChild <= i || node.RightChild >= len(dt.nodes) {
			return fmt.Errorf("node %d: invalid child link", i)
		}
	}
	return nil
}
