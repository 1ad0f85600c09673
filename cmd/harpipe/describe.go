package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"harpipe/pkg/config"
	"harpipe/pkg/dataset"
)

var describePath string

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Profile a dataset after column filtering",
	Long: `Loads a CSV file, applies the configured column filter and prints the
summary statistics of the surviving columns, plus what was dropped and why.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}

		df, err := dataset.Load(describePath, cfg.Data.MissingValues...)
		if err != nil {
			return err
		}

		filter := dataset.Filter{
			Sentinel:       cfg.Data.Sentinel,
			MetadataPrefix: cfg.Data.MetadataColumns,
		}
		clean, dropped := filter.Apply(df)

		fmt.Printf("Rows: %d\n", df.Nrow())
		fmt.Printf("Columns: %d loaded, %d kept\n", df.Ncol(), clean.Ncol())
		fmt.Printf("Dropped for missing values: %v\n", dropped.Missing)
		fmt.Printf("Dropped for sentinel or blank: %v\n", dropped.Invalid)
		fmt.Printf("Dropped as metadata: %v\n", dropped.Metadata)

		if clean.Ncol() == 0 {
			fmt.Println("No columns survive filtering.")
			return nil
		}

		if _, label, err := dataset.NormalizeLabel(clean, cfg.Data.LabelColumn); err == nil {
			fmt.Printf("Label %s: %v\n", label.Column, label.Levels)
		} else {
			fmt.Printf("Label column %q not present\n", cfg.Data.LabelColumn)
		}

		fmt.Println(clean.Describe())
		return nil
	},
}

func init() {
	describeCmd.Flags().StringVar(&describePath, "train", "", "CSV file to profile")
	_ = describeCmd.MarkFlagRequired("train")
}
