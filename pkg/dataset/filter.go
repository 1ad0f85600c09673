package dataset

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Filter removes columns that carry no usable signal. Three stages run in
// order, each on the survivors of the one before: columns with any missing
// value go first, then text columns containing the sentinel or a blank cell,
// then whatever is left of the leading metadata columns. A column removed by
// an earlier stage never reappears in a later one.
type Filter struct {
	// Sentinel is the invalid-value marker scanned for in text columns,
	// for example a spreadsheet division error.
	Sentinel string

	// MetadataPrefix is the number of leading columns, counted by position
	// in the incoming table, that hold identifiers and timestamps rather
	// than predictors. Zero disables the positional strip.
	MetadataPrefix int
}

// Dropped records which columns Apply removed and why. Each column appears
// in at most one bucket, matching the stage that removed it.
type Dropped struct {
	Missing  []string // columns with at least one missing value
	Invalid  []string // text columns containing the sentinel or a blank
	Metadata []string // survivors inside the leading metadata positions
}

// Total returns the number of columns removed across all stages.
func (d Dropped) Total() int {
	return len(d.Missing) + len(d.Invalid) + len(d.Metadata)
}

// Apply returns a frame keeping only the columns that pass every stage,
// in their original order, plus the removal record. Removing every column
// is a valid outcome and yields an empty frame, not an error.
func (f Filter) Apply(df dataframe.DataFrame) (dataframe.DataFrame, Dropped) {
	var dropped Dropped
	if df.Err != nil || df.Ncol() == 0 {
		return df, dropped
	}

	names := df.Names()
	types := df.Types()

	keep := make(map[string]bool, len(names))
	for _, name := range names {
		keep[name] = true
	}

	for _, name := range names {
		if df.Col(name).HasNaN() {
			keep[name] = false
			dropped.Missing = append(dropped.Missing, name)
		}
	}

	for i, name := range names {
		if !keep[name] || types[i] != series.String {
			continue
		}
		for _, v := range df.Col(name).Records() {
			if v == f.Sentinel || v == "" {
				keep[name] = false
				dropped.Invalid = append(dropped.Invalid, name)
				break
			}
		}
	}

	prefix := f.MetadataPrefix
	if prefix > len(names) {
		prefix = len(names)
	}
	for _, name := range names[:prefix] {
		if keep[name] {
			keep[name] = false
			dropped.Metadata = append(dropped.Metadata, name)
		}
	}

	kept := make([]string, 0, len(names))
	for _, name := range names {
		if keep[name] {
			kept = append(kept, name)
		}
	}
	if len(kept) == 0 {
		return dataframe.DataFrame{}, dropped
	}
	return df.Select(kept), dropped
}
