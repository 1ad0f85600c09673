package model

import (
	"errors"
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/sjwhitworth/golearn/base"

	"harpipe/pkg/dataset"
)

// schema captures the attribute layout a model was trained with. The same
// attribute objects are reused for every later conversion, so categorical
// value tables stay shared between training and prediction instances and
// golearn resolves them as identical.
type schema struct {
	features []string
	attrs    []base.Attribute
	class    *base.CategoricalAttribute
	label    dataset.Label
}

func newSchema(df dataframe.DataFrame, label dataset.Label) (*schema, error) {
	if df.Err != nil {
		return nil, df.Err
	}
	names := df.Names()
	types := df.Types()

	found := false
	for _, name := range names {
		if name == label.Column {
			found = true
			break
		}
	}
	if !found {
		return nil, &dataset.SchemaError{Column: label.Column}
	}
	if len(label.Levels) == 0 {
		return nil, errors.New("label has no levels")
	}

	s := &schema{label: label}
	for i, name := range names {
		if name == label.Column {
			continue
		}
		switch types[i] {
		case series.Float, series.Int:
			s.attrs = append(s.attrs, base.NewFloatAttribute(name))
		default:
			attr := new(base.CategoricalAttribute)
			attr.SetName(name)
			s.attrs = append(s.attrs, attr)
		}
		s.features = append(s.features, name)
	}
	if len(s.features) == 0 {
		return nil, errors.New("no feature columns")
	}

	s.class = new(base.CategoricalAttribute)
	s.class.SetName(label.Column)
	for _, level := range label.Levels {
		s.class.GetSysValFromString(level)
	}
	return s, nil
}

// instances converts a frame into golearn instances laid out per the
// schema. With withLabel false the class column is padded with the first
// level; predictions overwrite it and classifiers never read it.
func (s *schema) instances(df dataframe.DataFrame, withLabel bool) (*base.DenseInstances, error) {
	if df.Err != nil {
		return nil, df.Err
	}
	if missing := s.missingColumns(df, withLabel); len(missing) > 0 {
		return nil, &SchemaMismatchError{Missing: missing}
	}

	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(s.attrs))
	for i, attr := range s.attrs {
		specs[i] = inst.AddAttribute(attr)
	}
	classSpec := inst.AddAttribute(s.class)
	if err := inst.AddClassAttribute(s.class); err != nil {
		return nil, fmt.Errorf("model: class attribute: %w", err)
	}

	rows := df.Nrow()
	if err := inst.Extend(rows); err != nil {
		return nil, fmt.Errorf("model: allocate instances: %w", err)
	}

	for i, name := range s.features {
		if _, ok := s.attrs[i].(*base.FloatAttribute); ok {
			vals := df.Col(name).Float()
			for row := 0; row < rows; row++ {
				inst.Set(specs[i], row, base.PackFloatToBytes(vals[row]))
			}
			continue
		}
		recs := df.Col(name).Records()
		for row := 0; row < rows; row++ {
			inst.Set(specs[i], row, s.attrs[i].GetSysValFromString(recs[row]))
		}
	}

	if withLabel {
		recs := df.Col(s.label.Column).Records()
		for row := 0; row < rows; row++ {
			inst.Set(classSpec, row, s.class.GetSysValFromString(recs[row]))
		}
	} else {
		fill := s.class.GetSysValFromString(s.label.Levels[0])
		for row := 0; row < rows; row++ {
			inst.Set(classSpec, row, fill)
		}
	}
	return inst, nil
}

func (s *schema) missingColumns(df dataframe.DataFrame, withLabel bool) []string {
	have := make(map[string]bool, df.Ncol())
	for _, name := range df.Names() {
		have[name] = true
	}
	var missing []string
	for _, name := range s.features {
		if !have[name] {
			missing = append(missing, name)
		}
	}
	if withLabel && !have[s.label.Column] {
		missing = append(missing, s.label.Column)
	}
	return missing
}
