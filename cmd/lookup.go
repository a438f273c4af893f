package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sells-group/loanops/internal/reconcile"
)

var (
	lookupOutput   string
	lookupPAN      string
	lookupMobile   string
	lookupProvider string
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Run a single lookup and print the result",
}

var lookupCustomerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Resolve a customer and their active loans by --pan or --mobile",
	Args:  cobra.NoArgs,
	RunE: lookupRunner(func(ctx context.Context, svc *reconcile.Service, _ []string) (any, error) {
		return svc.Resolve(ctx, reconcile.ResolveRequest{PAN: lookupPAN, Mobile: lookupMobile})
	}),
}

var lookupSecuritiesCmd = &cobra.Command{
	Use:   "securities <loan-id>",
	Short: "Reconcile the securities pledged against a loan",
	Args:  cobra.ExactArgs(1),
	RunE: lookupRunner(func(ctx context.Context, svc *reconcile.Service, args []string) (any, error) {
		return svc.Securities(ctx, args[0])
	}),
}

var lookupEligibilityCmd = &cobra.Command{
	Use:   "eligibility",
	Short: "Show provider eligibility for --mobile",
	Args:  cobra.NoArgs,
	RunE: lookupRunner(func(ctx context.Context, svc *reconcile.Service, _ []string) (any, error) {
		return svc.Eligibility(ctx, reconcile.EligibilityRequest{Mobile: lookupMobile, Provider: lookupProvider})
	}),
}

var lookupBankerCheckCmd = &cobra.Command{
	Use:   "banker-check <loan-id>",
	Short: "Group the banker check records of a loan by person",
	Args:  cobra.ExactArgs(1),
	RunE: lookupRunner(func(ctx context.Context, svc *reconcile.Service, args []string) (any, error) {
		return svc.BankerCheck(ctx, args[0])
	}),
}

var lookupProviderLogsCmd = &cobra.Command{
	Use:   "provider-logs <pan>",
	Short: "List provider request logs for a PAN, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: lookupRunner(func(ctx context.Context, svc *reconcile.Service, args []string) (any, error) {
		return svc.ProviderLogs(ctx, args[0])
	}),
}

var lookupOutcomeCmd = &cobra.Command{
	Use:   "outcome",
	Short: "Resolve a customer and run every lookup for their latest loan",
	Args:  cobra.NoArgs,
	RunE: lookupRunner(func(ctx context.Context, svc *reconcile.Service, _ []string) (any, error) {
		return svc.Outcome(ctx, reconcile.ResolveRequest{PAN: lookupPAN, Mobile: lookupMobile})
	}),
}

type lookupFunc func(ctx context.Context, svc *reconcile.Service, args []string) (any, error)

// lookupRunner opens the engine, runs fn and renders its document.
func lookupRunner(fn lookupFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		ctx := cmd.Context()

		env, err := initLookup(ctx, "lookup")
		if err != nil {
			return err
		}
		defer env.Close()

		doc, err := fn(ctx, env.Service, args)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), lookupOutput, doc)
	}
}

func init() {
	lookupCmd.PersistentFlags().StringVarP(&lookupOutput, "output", "o", formatJSON, "output format: json, yaml or text")

	for _, c := range []*cobra.Command{lookupCustomerCmd, lookupOutcomeCmd} {
		c.Flags().StringVar(&lookupPAN, "pan", "", "customer PAN")
		c.Flags().StringVar(&lookupMobile, "mobile", "", "customer mobile number")
	}
	lookupEligibilityCmd.Flags().StringVar(&lookupMobile, "mobile", "", "customer mobile number")
	lookupEligibilityCmd.Flags().StringVar(&lookupProvider, "provider", "", "single provider (AA or MFC); default all")
	_ = lookupEligibilityCmd.MarkFlagRequired("mobile")

	lookupCmd.AddCommand(
		lookupCustomerCmd,
		lookupSecuritiesCmd,
		lookupEligibilityCmd,
		lookupBankerCheckCmd,
		lookupProviderLogsCmd,
		lookupOutcomeCmd,
	)
	rootCmd.AddCommand(lookupCmd)
}
