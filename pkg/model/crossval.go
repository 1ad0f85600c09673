package model

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/sjwhitworth/golearn/evaluation"

	"harpipe/pkg/dataset"
)

// CrossValidate estimates accuracy with k-fold cross-validation on a fresh
// classifier of the same kind, leaving any fitted state untouched. The
// returned score is the mean fold accuracy and its standard deviation.
func (c *classifier) CrossValidate(df dataframe.DataFrame, label dataset.Label, folds int) (Score, error) {
	if folds < 2 {
		return Score{}, fmt.Errorf("model: cross-validation needs at least 2 folds, got %d", folds)
	}
	s, err := newSchema(df, label)
	if err != nil {
		return Score{}, wrapSchemaErr(err)
	}
	inst, err := s.instances(df, true)
	if err != nil {
		return Score{}, err
	}

	matrices, err := evaluation.GenerateCrossFoldValidationConfusionMatrices(inst, c.build(len(s.features)), folds)
	if err != nil {
		return Score{}, &TrainingError{Err: err}
	}
	mean, variance := evaluation.GetCrossValidatedMetric(matrices, evaluation.GetAccuracy)
	return Score{Mean: mean, Std: math.Sqrt(variance)}, nil
}
