package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sensors.csv")
	csv := strings.Join([]string{
		"user,reading,comment",
		"alice,1,ok",
		"bob,NA,fine",
		"carol,3,good",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	df, err := Load(path, "NA")
	require.NoError(t, err)

	assert.Equal(t, 3, df.Nrow())
	assert.Equal(t, []string{"user", "reading", "comment"}, df.Names())

	assert.Equal(t, series.String, df.Col("user").Type())
	assert.Equal(t, series.Float, df.Col("reading").Type())

	assert.True(t, df.Col("reading").HasNaN(), "marker token should read as missing")
	assert.False(t, df.Col("comment").HasNaN())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
}

func TestRead(t *testing.T) {
	t.Run("detects types from data", func(t *testing.T) {
		df, err := Read(strings.NewReader("name,count,weight\na,1,0.5\nb,2,0.25\n"))
		require.NoError(t, err)

		assert.Equal(t, series.String, df.Col("name").Type())
		assert.Equal(t, series.Int, df.Col("count").Type())
		assert.Equal(t, series.Float, df.Col("weight").Type())
	})

	t.Run("empty numeric field is missing", func(t *testing.T) {
		df, err := Read(strings.NewReader("a,b\n1,x\n,y\n"))
		require.NoError(t, err)

		assert.True(t, df.Col("a").HasNaN())
		assert.False(t, df.Col("b").HasNaN())
	})

	t.Run("custom markers override defaults", func(t *testing.T) {
		df, err := Read(strings.NewReader("v\n1\n?\n3\n"), "?")
		require.NoError(t, err)

		assert.True(t, df.Col("v").HasNaN())
	})
}
