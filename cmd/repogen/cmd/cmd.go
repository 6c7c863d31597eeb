package cmd

import (
	"encoding/json"
	"io"
	"log"

	"github.com/ethanbaker/repogen/pkg/utils"
	"github.com/spf13/cobra"
)

var config *utils.Config

var rootCmd = &cobra.Command{
	Use:          "repogen",
	Short:        "Generate repositories from specs and talk to the agents",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config = utils.NewConfigFromEnv(utils.EnvFile())
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalln(err.Error())
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
