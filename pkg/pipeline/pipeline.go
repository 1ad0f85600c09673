// Package pipeline runs the whole classification workflow: load the
// training table, filter its columns, normalize the label, split, prune
// correlated predictors, train, and score. One Run call is one batch job;
// nothing is kept between runs.
package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"harpipe/pkg/config"
	"harpipe/pkg/correlate"
	"harpipe/pkg/dataset"
	"harpipe/pkg/evaluate"
	"harpipe/pkg/model"
	"harpipe/pkg/split"
)

// Runner executes the pipeline described by a Config.
type Runner struct {
	cfg *config.Config
	log *zap.Logger
}

func New(cfg *config.Config, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{cfg: cfg, log: log}
}

// Report collects everything a run produces.
type Report struct {
	Rows            int
	InitialColumns  int
	Columns         []string
	Dropped         dataset.Dropped
	Label           dataset.Label
	TrainRows       int
	TestRows        int
	Correlated      []string
	CrossValidation *model.Score
	Holdout         *evaluate.Result
	External        []string
}

// Run executes the pipeline on the training file at trainPath. When
// externalPath is non-empty the fitted model also predicts that file's
// rows; it may omit the label column.
func (r *Runner) Run(trainPath, externalPath string) (*Report, error) {
	cfg := r.cfg

	df, err := dataset.Load(trainPath, cfg.Data.MissingValues...)
	if err != nil {
		return nil, err
	}
	report := &Report{Rows: df.Nrow(), InitialColumns: df.Ncol()}
	r.log.Info("dataset loaded",
		zap.String("path", trainPath),
		zap.Int("rows", df.Nrow()),
		zap.Int("columns", df.Ncol()))

	filter := dataset.Filter{
		Sentinel:       cfg.Data.Sentinel,
		MetadataPrefix: cfg.Data.MetadataColumns,
	}
	clean, dropped := filter.Apply(df)
	report.Dropped = dropped
	r.log.Info("columns filtered",
		zap.Int("missing", len(dropped.Missing)),
		zap.Int("invalid", len(dropped.Invalid)),
		zap.Int("metadata", len(dropped.Metadata)),
		zap.Int("kept", clean.Ncol()))

	clean, label, err := dataset.NormalizeLabel(clean, cfg.Data.LabelColumn)
	if err != nil {
		return nil, fmt.Errorf("normalize label: %w", err)
	}
	report.Label = label
	r.log.Info("label normalized",
		zap.String("column", label.Column),
		zap.Strings("levels", label.Levels))

	part, err := split.Stratified(clean, label.Column, cfg.Split.TrainFraction, cfg.Split.Seed)
	if err != nil {
		return nil, fmt.Errorf("split rows: %w", err)
	}
	train, test := part.Frames(clean)
	report.TrainRows = train.Nrow()
	report.TestRows = test.Nrow()
	r.log.Info("rows partitioned",
		zap.Float64("fraction", cfg.Split.TrainFraction),
		zap.Uint64("seed", cfg.Split.Seed),
		zap.Int("train", train.Nrow()),
		zap.Int("test", test.Nrow()))

	train, removed, err := correlate.Reduce(train, cfg.Features.CorrelationThreshold)
	if err != nil {
		return nil, fmt.Errorf("prune correlated columns: %w", err)
	}
	report.Correlated = removed
	report.Columns = train.Names()
	r.log.Info("correlated columns pruned",
		zap.Float64("threshold", cfg.Features.CorrelationThreshold),
		zap.Strings("removed", removed))

	mdl, err := r.buildModel()
	if err != nil {
		return nil, err
	}

	if cfg.Model.Folds >= 2 {
		score, err := mdl.CrossValidate(train, label, cfg.Model.Folds)
		if err != nil {
			return nil, fmt.Errorf("cross-validate: %w", err)
		}
		report.CrossValidation = &score
		r.log.Info("cross-validation done",
			zap.Int("folds", cfg.Model.Folds),
			zap.Float64("accuracy", score.Mean),
			zap.Float64("stddev", score.Std))
	}

	if err := mdl.Fit(train, label); err != nil {
		return nil, fmt.Errorf("fit %s: %w", mdl.Name(), err)
	}
	r.log.Info("model fitted", zap.String("model", mdl.Name()), zap.Int("features", len(train.Names())-1))

	holdout, err := evaluate.Evaluate(mdl, test, label.Column)
	if err != nil {
		return nil, fmt.Errorf("evaluate holdout: %w", err)
	}
	report.Holdout = holdout
	r.log.Info("holdout scored",
		zap.Float64("accuracy", holdout.Accuracy),
		zap.Float64("error_rate", holdout.ErrorRate))

	if externalPath != "" {
		ext, err := dataset.Load(externalPath, cfg.Data.MissingValues...)
		if err != nil {
			return nil, err
		}
		preds, err := mdl.Predict(ext)
		if err != nil {
			return nil, fmt.Errorf("predict external set: %w", err)
		}
		report.External = preds
		r.log.Info("external set predicted",
			zap.String("path", externalPath),
			zap.Int("rows", len(preds)))
	}
	return report, nil
}

func (r *Runner) buildModel() (model.Model, error) {
	switch r.cfg.Model.Kind {
	case "forest":
		return model.NewRandomForest(r.cfg.Model.Trees, r.cfg.Model.FeaturesPerTree), nil
	case "tree":
		return model.NewID3Tree(r.cfg.Model.Prune), nil
	default:
		return nil, fmt.Errorf("pipeline: unknown model kind %q", r.cfg.Model.Kind)
	}
}
