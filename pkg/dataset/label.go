package dataset

import (
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Label is a categorical target column together with its closed level set.
// Levels are sorted, so downstream confusion tables come out in a stable
// order regardless of row order in the input.
type Label struct {
	Column string
	Levels []string
}

// NormalizeLabel rewrites the named column as a categorical text column and
// returns the level set observed in it. The column keeps its position in the
// frame. Numeric target columns are coerced to their text form first. A
// missing column is a SchemaError.
func NormalizeLabel(df dataframe.DataFrame, column string) (dataframe.DataFrame, Label, error) {
	if df.Err != nil {
		return df, Label{}, df.Err
	}
	found := false
	for _, name := range df.Names() {
		if name == column {
			found = true
			break
		}
	}
	if !found {
		return df, Label{}, &SchemaError{Column: column}
	}

	values := df.Col(column).Records()
	seen := make(map[string]bool, len(values))
	levels := make([]string, 0, 8)
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			levels = append(levels, v)
		}
	}
	sort.Strings(levels)

	out := df.Mutate(series.New(values, series.String, column))
	if out.Err != nil {
		return df, Label{}, out.Err
	}
	return out, Label{Column: column, Levels: levels}, nil
}
