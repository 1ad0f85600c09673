// Package correlate prunes numeric predictor columns that move together.
// Correlation is pairwise absolute Pearson over the numeric columns of a
// frame; non-numeric columns pass through untouched.
package correlate

import (
	"errors"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ErrNoNumericColumns means the frame has nothing to correlate.
var ErrNoNumericColumns = errors.New("correlate: no numeric columns")

// Matrix computes the absolute Pearson correlation matrix over the numeric
// columns of df, with the diagonal forced to zero. The returned names give
// the matrix row and column order. Zero-variance columns yield NaN entries,
// which the threshold check in Reduce never flags.
func Matrix(df dataframe.DataFrame) (*mat.SymDense, []string, error) {
	if df.Err != nil {
		return nil, nil, df.Err
	}

	var numeric []string
	types := df.Types()
	for i, name := range df.Names() {
		if types[i] == series.Float || types[i] == series.Int {
			numeric = append(numeric, name)
		}
	}
	if len(numeric) == 0 {
		return nil, nil, ErrNoNumericColumns
	}
	if df.Nrow() == 0 {
		return nil, nil, errors.New("correlate: no rows")
	}

	x := mat.NewDense(df.Nrow(), len(numeric), nil)
	for j, name := range numeric {
		x.SetCol(j, df.Col(name).Float())
	}

	corr := mat.NewSymDense(len(numeric), nil)
	stat.CorrelationMatrix(corr, x, nil)
	for i := 0; i < len(numeric); i++ {
		corr.SetSym(i, i, 0)
		for j := i + 1; j < len(numeric); j++ {
			corr.SetSym(i, j, math.Abs(corr.At(i, j)))
		}
	}
	return corr, numeric, nil
}

// Reduce drops every numeric column whose absolute correlation with any
// other numeric column exceeds threshold. Both members of an over-threshold
// pair are removed; there is no keep-one heuristic. The second return value
// lists the removed columns in frame order.
func Reduce(df dataframe.DataFrame, threshold float64) (dataframe.DataFrame, []string, error) {
	corr, numeric, err := Matrix(df)
	if err != nil {
		return dataframe.DataFrame{}, nil, err
	}

	flagged := make(map[string]bool, len(numeric))
	var removed []string
	for i, name := range numeric {
		for j := range numeric {
			if j != i && corr.At(i, j) > threshold {
				flagged[name] = true
				removed = append(removed, name)
				break
			}
		}
	}
	if len(removed) == 0 {
		return df, nil, nil
	}

	kept := make([]string, 0, df.Ncol()-len(removed))
	for _, name := range df.Names() {
		if !flagged[name] {
			kept = append(kept, name)
		}
	}
	if len(kept) == 0 {
		return dataframe.DataFrame{}, removed, nil
	}
	return df.Select(kept), removed, nil
}
