package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/loanops/internal/fixture"
	"github.com/sells-group/loanops/internal/store"
)

var fixtureFile string

var fixtureCmd = &cobra.Command{
	Use:   "fixture",
	Short: "Manage the SQLite development store",
}

var fixtureLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Create the development schema and load a YAML fixture",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		ctx := cmd.Context()

		if err := cfg.Validate("fixture"); err != nil {
			return err
		}

		st, err := store.NewSQLite(cfg.Store.DatabaseURL)
		if err != nil {
			return eris.Wrap(err, "open development store")
		}
		defer st.Close() //nolint:errcheck

		if err := st.EnsureSchema(ctx); err != nil {
			return err
		}

		counts, err := fixture.LoadFile(ctx, st.DB(), fixtureFile)
		if err != nil {
			return err
		}

		total := 0
		fields := make([]zap.Field, 0, len(counts)+2)
		for _, table := range fixture.Tables {
			if n := counts[table]; n > 0 {
				fields = append(fields, zap.Int(table, n))
				total += n
			}
		}
		fields = append(fields, zap.String("database", cfg.Store.DatabaseURL), zap.Int("total", total))
		zap.L().Info("fixture loaded", fields...)
		return nil
	},
}

func init() {
	fixtureLoadCmd.Flags().StringVar(&fixtureFile, "file", "", "fixture YAML file")
	_ = fixtureLoadCmd.MarkFlagRequired("file")
	fixtureCmd.AddCommand(fixtureLoadCmd)
	rootCmd.AddCommand(fixtureCmd)
}
