package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// validateCmd checks the input tables without running the solver
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the input tables for consistency without solving",
	Run: func(cmd *cobra.Command, args []string) {
		spec, err := buildSpec()
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		ds, err := loadDataset(spec)
		if err != nil {
			logrus.Fatalf("Validation failed: %v", err)
		}
		logrus.Infof("data valid: %d facilities, %d warehouses, total annual demand %.0f units",
			len(ds.Facilities), len(ds.Warehouses), ds.TotalDemand())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
