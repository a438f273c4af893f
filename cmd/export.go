package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/loanops/internal/export"
	"github.com/sells-group/loanops/internal/reconcile"
)

var (
	exportPAN    string
	exportMobile string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a customer's outcome to an XLSX workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		ctx := cmd.Context()

		env, err := initLookup(ctx, "export")
		if err != nil {
			return err
		}
		defer env.Close()

		outcome, err := env.Service.Outcome(ctx, reconcile.ResolveRequest{PAN: exportPAN, Mobile: exportMobile})
		if err != nil {
			return err
		}
		if err := export.WriteFile(exportOut, outcome); err != nil {
			return err
		}

		zap.L().Info("outcome exported",
			zap.String("file", exportOut),
			zap.String("loan_id", outcome.LoanID),
			zap.Strings("missing_sections", outcome.MissingSections),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportPAN, "pan", "", "customer PAN")
	exportCmd.Flags().StringVar(&exportMobile, "mobile", "", "customer mobile number")
	exportCmd.Flags().StringVar(&exportOut, "out", "outcome.xlsx", "output workbook path")
	rootCmd.AddCommand(exportCmd)
}
