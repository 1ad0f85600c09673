package model

import (
	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/trees"
)

// NewID3Tree returns a single pruned ID3 decision tree. prune is the
// fraction of training data held back for reduced-error pruning.
func NewID3Tree(prune float64) Model {
	return &classifier{
		name: "decision tree",
		build: func(int) base.Classifier {
			return trees.NewID3DecisionTree(prune)
		},
	}
}
