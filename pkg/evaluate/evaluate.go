// Package evaluate scores a fitted model against a table with known labels.
// It only needs the predict half of the model, so anything producing one
// label per row can be scored, including stubs in tests.
package evaluate

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/olekukonko/tablewriter"

	"harpipe/pkg/dataset"
)

// Predictor yields one predicted label per row of a frame.
type Predictor interface {
	Predict(df dataframe.DataFrame) ([]string, error)
}

// Result holds the comparison of predicted against actual labels.
// Confusion is indexed actual label first, predicted label second.
type Result struct {
	Confusion map[string]map[string]int
	Levels    []string
	Predicted []string
	Accuracy  float64
	ErrorRate float64
}

// Evaluate predicts over df and compares against the named label column.
// Columns the predictor does not need are ignored; a required column that
// is absent surfaces as the predictor's schema mismatch error.
func Evaluate(p Predictor, df dataframe.DataFrame, column string) (*Result, error) {
	if df.Err != nil {
		return nil, df.Err
	}
	if df.Nrow() == 0 {
		return nil, errors.New("evaluate: table has no rows")
	}

	col := df.Col(column)
	if col.Err != nil {
		return nil, &dataset.SchemaError{Column: column}
	}
	actual := col.Records()

	predicted, err := p.Predict(df)
	if err != nil {
		return nil, err
	}
	if len(predicted) != len(actual) {
		return nil, fmt.Errorf("evaluate: %d predictions for %d rows", len(predicted), len(actual))
	}

	confusion := make(map[string]map[string]int)
	seen := make(map[string]bool)
	matches := 0
	for i, a := range actual {
		if confusion[a] == nil {
			confusion[a] = make(map[string]int)
		}
		confusion[a][predicted[i]]++
		seen[a] = true
		seen[predicted[i]] = true
		if a == predicted[i] {
			matches++
		}
	}

	levels := make([]string, 0, len(seen))
	for level := range seen {
		levels = append(levels, level)
	}
	sort.Strings(levels)

	accuracy := float64(matches) / float64(len(actual))
	return &Result{
		Confusion: confusion,
		Levels:    levels,
		Predicted: predicted,
		Accuracy:  accuracy,
		ErrorRate: 1 - accuracy,
	}, nil
}

// Table renders the confusion counts with actual labels as rows and
// predicted labels as columns.
func (r *Result) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader(append([]string{"actual/predicted"}, r.Levels...))
	for _, a := range r.Levels {
		row := []string{a}
		for _, p := range r.Levels {
			row = append(row, strconv.Itoa(r.Confusion[a][p]))
		}
		table.Append(row)
	}
	table.Render()
	return buf.String()
}
