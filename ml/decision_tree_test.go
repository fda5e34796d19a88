package ml

import (
	"path/filepath"
	"testing"
)

func testTree(t *testing.T) *DecisionTree {
	t.Helper()
	// total_sqft <= 1000 ? 50 : (bath <= 2 ? 80 : 120)
	tree, err := NewDecisionTree(4, []TreeNode{
		{FeatureIdx: 0, Threshold: 1000, LeftChild: 1, RightChild: 2},
		{IsLeaf: true, Value: 50},
		{FeatureIdx: 1, Threshold: 2, LeftChild: 3, RightChild: 4},
		{IsLeaf: true, Value: 80},
		{IsLeaf: true, Value: 120},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return tree
}

func TestDecisionTreePredict(t *testing.T) {
	tree := testTree(t)
	cases := []struct {
		features []float64
		want     float64
	}{
		{[]float64{800, 1, 1, 0}, 50},
		{[]float64{1500, 2, 2, 1}, 80},
		{[]float64{1500, 3, 3, 0}, 120},
	}
	for _, tc := range cases {
		got, err := tree.Predict(tc.features)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tc.want {
			t.Fatalf("features %v: expected %v, got %v", tc.features, tc.want, got)
		}
	}
	if _, err := tree.Predict([]float64{1, 2}); err == nil {
		t.Fatal("expected dimension mismatch error")
	}
}

func TestDecisionTreeRejectsCycles(t *testing.T) {
	_, err := NewDecisionTree(2, []TreeNode{
		{FeatureIdx: 0, Threshold: 1, LeftChild: 0, RightChild: 1},
		{IsLeaf: true, Value: 1},
	})
	if err == nil {
		t.Fatal("expected error for self-referencing node")
	}
	_, err = NewDecisionTree(2, []TreeNode{
		{FeatureIdx: 5, Threshold: 1, LeftChild: 1, RightChild: 2},
		{IsLeaf: true}, {IsLeaf: true},
	})
	if err == nil {
		t.Fatal("expected error for out of range feature")
	}
}

func TestDecisionTreeSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.json")
	if err := testTree(t).Save(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	model, err := LoadModel(ModelTypeDecisionTree, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, err := NewArtifacts(model, []string{"total_sqft", "bath", "bhk", "hebbal"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	price, err := a.EstimatePrice("hebbal", 1500, 3, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price != 120 {
		t.Fatalf("expected 120, got %v", price)
	}
}
