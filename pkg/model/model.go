// Package model wraps golearn classifiers behind a fit/predict capability
// surface. The pipeline trains on a cleaned frame and predicts on any frame
// that still carries the trained feature columns; extra columns are ignored.
package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/sjwhitworth/golearn/base"

	"harpipe/pkg/dataset"
)

// ErrNotFitted is returned by Predict before a successful Fit.
var ErrNotFitted = errors.New("model: not fitted")

// TrainingError wraps a failure inside the underlying classifier.
type TrainingError struct {
	Err error
}

func (e *TrainingError) Error() string {
	return "model: training failed: " + e.Err.Error()
}

func (e *TrainingError) Unwrap() error {
	return e.Err
}

// SchemaMismatchError reports trained columns absent from a prediction table.
type SchemaMismatchError struct {
	Missing []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("model: table lacks required columns: %s", strings.Join(e.Missing, ", "))
}

// Score is a cross-validated accuracy estimate.
type Score struct {
	Mean float64
	Std  float64
}

// Model is the classifier capability the pipeline consumes. Fit binds the
// model to the feature columns and label levels of the training frame;
// Predict accepts any frame containing those feature columns, with or
// without the label column.
type Model interface {
	Name() string
	Fit(df dataframe.DataFrame, label dataset.Label) error
	Predict(df dataframe.DataFrame) ([]string, error)
	CrossValidate(df dataframe.DataFrame, label dataset.Label, folds int) (Score, error)
}

// classifier adapts one golearn classifier kind to the Model surface.
// build constructs a fresh untrained instance; it takes the feature count
// so ensemble kinds can size their per-tree subspace.
type classifier struct {
	name   string
	build  func(features int) base.Classifier
	schema *schema
	fitted base.Classifier
}

func (c *classifier) Name() string {
	return c.name
}

func (c *classifier) Fit(df dataframe.DataFrame, label dataset.Label) error {
	s, err := newSchema(df, label)
	if err != nil {
		return wrapSchemaErr(err)
	}
	inst, err := s.instances(df, true)
	if err != nil {
		return err
	}
	cls := c.build(len(s.features))
	if err := cls.Fit(inst); err != nil {
		return &TrainingError{Err: err}
	}
	c.schema = s
	c.fitted = cls
	return nil
}

func (c *classifier) Predict(df dataframe.DataFrame) ([]string, error) {
	if c.fitted == nil {
		return nil, ErrNotFitted
	}
	withLabel := false
	for _, name := range df.Names() {
		if name == c.schema.label.Column {
			withLabel = true
			break
		}
	}
	inst, err := c.schema.instances(df, withLabel)
	if err != nil {
		return nil, err
	}
	out, err := c.fitted.Predict(inst)
	if err != nil {
		return nil, fmt.Errorf("model: predict: %w", err)
	}
	_, rows := out.Size()
	labels := make([]string, rows)
	for i := range labels {
		labels[i] = base.GetClass(out, i)
	}
	return labels, nil
}

// wrapSchemaErr keeps missing-column failures typed as SchemaError and
// folds everything else into TrainingError.
func wrapSchemaErr(err error) error {
	var schemaErr *dataset.SchemaError
	if errors.As(err, &schemaErr) {
		return err
	}
	return &TrainingError{Err: err}
}
