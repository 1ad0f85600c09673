// Package dataset loads delimited sensor tables and narrows them down to
// the columns worth feeding a classifier. Tables are gota DataFrames; the
// package owns loading, column filtering and label normalization, and leaves
// splitting and modelling to its sibling packages.
package dataset

import (
	"fmt"
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Load reads a comma-delimited file with a header row into a typed frame.
// Tokens listed in missing are treated as missing values wherever they
// occur; empty fields in numeric columns come out as missing too. When no
// markers are given the reader's defaults apply.
func Load(path string, missing ...string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	df, err := Read(f, missing...)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("load %s: %w", path, err)
	}
	return df, nil
}

// Read parses comma-delimited text from r. The first row is the header;
// column types are inferred from the data, falling back to text.
func Read(r io.Reader, missing ...string) (dataframe.DataFrame, error) {
	opts := []dataframe.LoadOption{
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.DefaultType(series.String),
	}
	if len(missing) > 0 {
		opts = append(opts, dataframe.NaNValues(missing))
	}
	df := dataframe.ReadCSV(r, opts...)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("read dataset: %w", df.Err)
	}
	return df, nil
}
