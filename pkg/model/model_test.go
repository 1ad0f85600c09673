package model

import (
	"errors"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"harpipe/pkg/dataset"
)

// two well-separated clusters, 20 rows per label
func trainingFrame(t *testing.T) (dataframe.DataFrame, dataset.Label) {
	t.Helper()
	const n = 40
	f1 := make([]float64, n)
	f2 := make([]float64, n)
	labels := make([]string, n)
	for i := 0; i < n; i++ {
		if i < n/2 {
			f1[i] = float64(i % 5)
			f2[i] = 10 + float64(i%3)
			labels[i] = "low"
		} else {
			f1[i] = 50 + float64(i%5)
			f2[i] = 90 + float64(i%3)
			labels[i] = "high"
		}
	}
	df := dataframe.New(
		series.New(f1, series.Float, "f1"),
		series.New(f2, series.Float, "f2"),
		series.New(labels, series.String, "label"),
	)
	require.NoError(t, df.Error())
	return df, dataset.Label{Column: "label", Levels: []string{"high", "low"}}
}

func TestRandomForestFitPredict(t *testing.T) {
	df, label := trainingFrame(t)

	m := NewRandomForest(10, 2)
	require.NoError(t, m.Fit(df, label))
	assert.Equal(t, "random forest", m.Name())

	got, err := m.Predict(df)
	require.NoError(t, err)
	require.Len(t, got, df.Nrow())
	for _, v := range got {
		assert.Contains(t, label.Levels, v, "predictions stay inside the trained levels")
	}
}

func TestID3TreeFitPredict(t *testing.T) {
	df, label := trainingFrame(t)

	m := NewID3Tree(0.6)
	require.NoError(t, m.Fit(df, label))
	assert.Equal(t, "decision tree", m.Name())

	got, err := m.Predict(df)
	require.NoError(t, err)
	require.Len(t, got, df.Nrow())
	for _, v := range got {
		assert.Contains(t, label.Levels, v)
	}
}

func TestPredictIgnoresExtraColumns(t *testing.T) {
	df, label := trainingFrame(t)

	m := NewRandomForest(10, 0)
	require.NoError(t, m.Fit(df, label))

	extra := make([]string, df.Nrow())
	for i := range extra {
		extra[i] = "noise"
	}
	wide := df.Mutate(series.New(extra, series.String, "extra"))
	require.NoError(t, wide.Error())

	got, err := m.Predict(wide)
	require.NoError(t, err)
	assert.Len(t, got, df.Nrow())
}

func TestPredictWithoutLabelColumn(t *testing.T) {
	df, label := trainingFrame(t)

	m := NewRandomForest(10, 2)
	require.NoError(t, m.Fit(df, label))

	unlabeled := df.Drop("label")
	require.NoError(t, unlabeled.Error())

	got, err := m.Predict(unlabeled)
	require.NoError(t, err)
	require.Len(t, got, df.Nrow())
	for _, v := range got {
		assert.Contains(t, label.Levels, v)
	}
}

func TestPredictMissingFeature(t *testing.T) {
	df, label := trainingFrame(t)

	m := NewRandomForest(10, 2)
	require.NoError(t, m.Fit(df, label))

	narrow := df.Drop("f1")
	require.NoError(t, narrow.Error())

	_, err := m.Predict(narrow)
	require.Error(t, err)

	var mismatch *SchemaMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, []string{"f1"}, mismatch.Missing)
}

func TestPredictBeforeFit(t *testing.T) {
	df, _ := trainingFrame(t)

	_, err := NewRandomForest(10, 2).Predict(df)
	assert.True(t, errors.Is(err, ErrNotFitted))
}

func TestFitMissingLabelColumn(t *testing.T) {
	df, label := trainingFrame(t)
	unlabeled := df.Drop("label")
	require.NoError(t, unlabeled.Error())

	err := NewRandomForest(10, 2).Fit(unlabeled, label)
	require.Error(t, err)

	var schemaErr *dataset.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "label", schemaErr.Column)
}

func TestFitWithoutFeatures(t *testing.T) {
	df := dataframe.New(series.New([]string{"a", "b"}, series.String, "label"))
	require.NoError(t, df.Error())

	err := NewRandomForest(10, 2).Fit(df, dataset.Label{Column: "label", Levels: []string{"a", "b"}})
	require.Error(t, err)

	var trainErr *TrainingError
	assert.True(t, errors.As(err, &trainErr))
}

func TestFitWithoutLevels(t *testing.T) {
	df, _ := trainingFrame(t)

	err := NewRandomForest(10, 2).Fit(df, dataset.Label{Column: "label"})
	require.Error(t, err)

	var trainErr *TrainingError
	assert.True(t, errors.As(err, &trainErr))
}

func TestCrossValidate(t *testing.T) {
	df, label := trainingFrame(t)

	m := NewRandomForest(10, 2)
	score, err := m.CrossValidate(df, label, 2)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, score.Mean, 0.0)
	assert.LessOrEqual(t, score.Mean, 1.0)
	assert.GreaterOrEqual(t, score.Std, 0.0)

	_, err = m.CrossValidate(df, label, 1)
	assert.Error(t, err, "fewer than 2 folds is meaningless")
}
