package cmd

import (
	"github.com/ethanbaker/repogen/internal/bootstrap"
	"github.com/ethanbaker/repogen/internal/janitor"
	"github.com/spf13/cobra"
)

var janitorCmd = &cobra.Command{
	Use:   "janitor",
	Short: "Run one sweep over the run ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		stores, err := bootstrap.OpenStores(config)
		if err != nil {
			return err
		}
		defer stores.Close()

		report, err := janitor.NewFromConfig(stores.Runs, config).RunOnce(cmd.Context())
		if err != nil {
			return err
		}

		return printJSON(cmd.OutOrStdout(), report)
	},
}

func init() {
	rootCmd.AddCommand(janitorCmd)
}
