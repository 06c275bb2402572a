package regression

import (
	"errors"
	"fmt"
)

// Node is one node of an exported regression tree. Children are indexes into
// the tree's node slice; Left == -1 marks a leaf whose prediction is Value.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

// Tree is a single regression tree, root at index 0.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

func (t *Tree) predict(x []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Left == -1 {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

func (t *Tree) validate(window int) error {
	if len(t.Nodes) == 0 {
		return errors.New("tree has no nodes")
	}
	for i, n := range t.Nodes {
		if n.Left == -1 {
			continue
		}
		if n.Feature < 0 || n.Feature >= window {
			return fmt.Errorf("node %d: feature %d out of range", i, n.Feature)
		}
		// children must point forward, which also rules out cycles
		if n.Left <= i || n.Left >= len(t.Nodes) || n.Right <= i || n.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d: invalid children %d/%d", i, n.Left, n.Right)
		}
	}
	return nil
}

// Forest averages the predictions of its trees, like a random forest regressor.
type Forest struct {
	Window int    `json:"window"`
	Trees  []Tree `json:"trees"`
}

func (f *Forest) Predict(window []float64) (float64, error) {
	if len(window) != f.Window {
		return 0, fmt.Errorf("forest model expects %d inputs, got %d", f.Window, len(window))
	}
	var sum float64
	for i := range f.Trees {
		sum += f.Trees[i].predict(window)
	}
	return sum / float64(len(f.Trees)), nil
}

func (f *Forest) validate() error {
	if len(f.Trees) == 0 {
		return errors.New("forest has no trees")
	}
	for i := range f.Trees {
		if err := f.Trees[i].validate(f.Window); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return nil
}
