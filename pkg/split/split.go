// Package split partitions table rows into training and testing subsets,
// stratified by a label column so both sides keep the label proportions of
// the whole table. The generator is seeded explicitly per call, never from
// process-wide state, so a given seed always reproduces the same partition.
package split

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"golang.org/x/exp/rand"

	"harpipe/pkg/dataset"
)

// InvalidFractionError reports a training fraction outside (0, 1).
type InvalidFractionError struct {
	Fraction float64
}

func (e *InvalidFractionError) Error() string {
	return fmt.Sprintf("split: fraction %v outside (0, 1)", e.Fraction)
}

// EmptyColumnError reports a label column with no rows to partition.
type EmptyColumnError struct {
	Column string
}

func (e *EmptyColumnError) Error() string {
	return fmt.Sprintf("split: column %q has no rows", e.Column)
}

// Partition holds the two halves of a stratified split as row indices into
// the source table. The sets are disjoint, cover every row, and are sorted
// ascending so subsetting preserves row order.
type Partition struct {
	Train []int
	Test  []int
}

// Frames materializes the partition as two views of df.
func (p Partition) Frames(df dataframe.DataFrame) (train, test dataframe.DataFrame) {
	return df.Subset(p.Train), df.Subset(p.Test)
}

// Stratified samples fraction p of each label's rows into the training set
// and sends the rest to testing. Rounding is per label, half away from zero.
// Strata are visited in sorted level order and drawn from a single generator
// seeded with seed, so identical inputs yield identical partitions.
func Stratified(df dataframe.DataFrame, column string, p float64, seed uint64) (Partition, error) {
	if p <= 0 || p >= 1 {
		return Partition{}, &InvalidFractionError{Fraction: p}
	}
	if df.Err != nil {
		return Partition{}, df.Err
	}

	col := df.Col(column)
	if col.Err != nil {
		return Partition{}, &dataset.SchemaError{Column: column}
	}
	if df.Nrow() == 0 {
		return Partition{}, &EmptyColumnError{Column: column}
	}

	groups := make(map[string][]int)
	for i, v := range col.Records() {
		groups[v] = append(groups[v], i)
	}
	levels := make([]string, 0, len(groups))
	for level := range groups {
		levels = append(levels, level)
	}
	sort.Strings(levels)

	rng := rand.New(rand.NewSource(seed))
	var part Partition
	for _, level := range levels {
		rows := groups[level]
		shuffled := make([]int, len(rows))
		copy(shuffled, rows)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		k := int(math.Round(p * float64(len(shuffled))))
		part.Train = append(part.Train, shuffled[:k]...)
		part.Test = append(part.Test, shuffled[k:]...)
	}

	sort.Ints(part.Train)
	sort.Ints(part.Test)
	return part, nil
}
