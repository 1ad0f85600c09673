package correlate

import (
	"errors"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pairFrame(t *testing.T) dataframe.DataFrame {
	t.Helper()
	df := dataframe.New(
		series.New([]string{"r1", "r2", "r3", "r4", "r5", "r6", "r7", "r8"}, series.String, "id"),
		series.New([]float64{1, 2, 3, 4, 5, 6, 7, 8}, series.Float, "x1"),
		series.New([]float64{1, 2, 3, 4, 5, 6, 7, 8}, series.Float, "x2"),
		series.New([]float64{5, 1, 4, 1, 5, 9, 2, 6}, series.Float, "x3"),
		series.New([]string{"y", "n", "y", "n", "y", "n", "y", "n"}, series.String, "label"),
	)
	require.NoError(t, df.Error())
	return df
}

func TestReduceDropsBothMembersOfPair(t *testing.T) {
	out, removed, err := Reduce(pairFrame(t), 0.8)
	require.NoError(t, err)

	assert.Equal(t, []string{"x1", "x2"}, removed, "identical columns both go, not just one")
	assert.Equal(t, []string{"id", "x3", "label"}, out.Names())
}

func TestReduceKeepsUncorrelated(t *testing.T) {
	df := dataframe.New(
		series.New([]float64{1, 2, 3, 4, 5, 6, 7, 8}, series.Float, "x"),
		series.New([]float64{5, 1, 4, 1, 5, 9, 2, 6}, series.Float, "y"),
	)
	require.NoError(t, df.Error())

	out, removed, err := Reduce(df, 0.8)
	require.NoError(t, err)

	assert.Empty(t, removed, "columns under the threshold must survive")
	assert.Equal(t, df.Names(), out.Names())
}

func TestMatrix(t *testing.T) {
	corr, numeric, err := Matrix(pairFrame(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"x1", "x2", "x3"}, numeric)

	r, c := corr.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 3, c)

	for i := 0; i < r; i++ {
		assert.Zero(t, corr.At(i, i), "diagonal is forced to zero")
		for j := 0; j < c; j++ {
			assert.Equal(t, corr.At(i, j), corr.At(j, i))
			if i != j {
				assert.GreaterOrEqual(t, corr.At(i, j), 0.0)
			}
		}
	}
	assert.InDelta(t, 1.0, corr.At(0, 1), 1e-9, "identical columns correlate fully")
}

func TestReduceNoNumericColumns(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"a", "b"}, series.String, "id"),
		series.New([]string{"y", "n"}, series.String, "label"),
	)
	require.NoError(t, df.Error())

	_, _, err := Reduce(df, 0.8)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoNumericColumns))
}

func TestReduceConstantColumn(t *testing.T) {
	df := dataframe.New(
		series.New([]float64{2, 2, 2, 2, 2}, series.Float, "flat"),
		series.New([]float64{1, 3, 2, 5, 4}, series.Float, "x"),
	)
	require.NoError(t, df.Error())

	out, removed, err := Reduce(df, 0.8)
	require.NoError(t, err)

	assert.Empty(t, removed, "zero-variance columns never flag")
	assert.Equal(t, []string{"flat", "x"}, out.Names())
}
