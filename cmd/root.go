package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/loanops/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "loanops",
	Short: "Loan operations record reconciliation",
	Long:  "Resolves customers by PAN or mobile, reconciles securities, eligibility, provider traffic and banker checks across the loan operations sources, and serves the results to the ops dashboard.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
