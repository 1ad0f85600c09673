package model

import (
	"math"

	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/ensemble"
)

// NewRandomForest returns a bagged-forest model with the given number of
// trees. featuresPerTree caps the random subspace each tree considers;
// zero or negative picks floor(sqrt(feature count)), the usual forest
// default.
func NewRandomForest(trees, featuresPerTree int) Model {
	return &classifier{
		name: "random forest",
		build: func(features int) base.Classifier {
			per := featuresPerTree
			if per <= 0 {
				per = int(math.Sqrt(float64(features)))
			}
			if per < 1 {
				per = 1
			}
			if per > features {
				per = features
			}
			return ensemble.NewRandomForest(trees, per)
		},
	}
}
