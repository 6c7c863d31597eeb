package cmd

import (
	"fmt"
	"strings"

	"github.com/ethanbaker/repogen/internal/bootstrap"
	"github.com/spf13/cobra"
)

var conversationKey string

var askCmd = &cobra.Command{
	Use:   "ask <agent-id> <prompt>",
	Short: "Send one message to an agent and print its reply",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap.New(config)
		if err != nil {
			return err
		}
		defer app.Close()

		result, err := app.Orchestrator.Run(cmd.Context(), args[0], conversationKey, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), result.FinalOutput)
		return err
	},
}

func init() {
	askCmd.Flags().StringVar(&conversationKey, "conversation", "", "conversation key to continue")
	rootCmd.AddCommand(askCmd)
}
