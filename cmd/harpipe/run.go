package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"harpipe/pkg/config"
	"harpipe/pkg/pipeline"
)

var (
	trainPath   string
	testPath    string
	labelColumn string
	fraction    float64
	seed        uint64
	threshold   float64
	modelKind   string
	treeCount   int
	foldCount   int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the pipeline end to end",
	Long: `Cleans the training file, fits the configured classifier and prints the
holdout confusion matrix, accuracy and error rate. With --test the fitted
model also labels the rows of an external file, which may omit the label
column.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		applyOverrides(cmd, cfg)

		report, err := pipeline.New(cfg, logger).Run(trainPath, testPath)
		if err != nil {
			return err
		}
		printReport(report)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&trainPath, "train", "", "training CSV file")
	runCmd.Flags().StringVar(&testPath, "test", "", "external CSV file to label")
	runCmd.Flags().StringVar(&labelColumn, "label", "", "label column name")
	runCmd.Flags().Float64Var(&fraction, "fraction", 0, "training fraction of each stratum")
	runCmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for the split")
	runCmd.Flags().Float64Var(&threshold, "threshold", 0, "absolute correlation above which columns drop")
	runCmd.Flags().StringVar(&modelKind, "model", "", "classifier kind: forest or tree")
	runCmd.Flags().IntVar(&treeCount, "trees", 0, "number of trees in the forest")
	runCmd.Flags().IntVar(&foldCount, "folds", 0, "cross-validation folds, below 2 disables the estimate")
	_ = runCmd.MarkFlagRequired("train")
}

// applyOverrides copies explicitly set flags over the file configuration.
func applyOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("label") {
		cfg.Data.LabelColumn = labelColumn
	}
	if flags.Changed("fraction") {
		cfg.Split.TrainFraction = fraction
	}
	if flags.Changed("seed") {
		cfg.Split.Seed = seed
	}
	if flags.Changed("threshold") {
		cfg.Features.CorrelationThreshold = threshold
	}
	if flags.Changed("model") {
		cfg.Model.Kind = modelKind
	}
	if flags.Changed("trees") {
		cfg.Model.Trees = treeCount
	}
	if flags.Changed("folds") {
		cfg.Model.Folds = foldCount
	}
}

func printReport(report *pipeline.Report) {
	fmt.Printf("\nRows: %d\n", report.Rows)
	fmt.Printf("Columns: %d loaded, %d kept for training\n", report.InitialColumns, len(report.Columns))
	fmt.Printf("Dropped: %d missing, %d invalid, %d metadata, %d correlated\n",
		len(report.Dropped.Missing),
		len(report.Dropped.Invalid),
		len(report.Dropped.Metadata),
		len(report.Correlated))
	fmt.Printf("Split: %d train / %d test rows\n", report.TrainRows, report.TestRows)

	if report.CrossValidation != nil {
		fmt.Printf("\nCross-validated accuracy\n%.2f (+/- %.2f)\n", report.CrossValidation.Mean, report.CrossValidation.Std*2)
	}

	fmt.Printf("\nConfusion matrix, actual by predicted\n%s", report.Holdout.Table())
	fmt.Printf("\nAccuracy\n%.4f\n", report.Holdout.Accuracy)
	fmt.Printf("\nError rate\n%.4f\n", report.Holdout.ErrorRate)

	if len(report.External) > 0 {
		fmt.Printf("\nExternal predictions\n%s\n", strings.Join(report.External, " "))
	}
}
