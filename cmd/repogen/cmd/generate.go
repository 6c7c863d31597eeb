package cmd

import (
	"errors"
	"os"
	"strings"

	"github.com/ethanbaker/repogen/internal/bootstrap"
	"github.com/ethanbaker/repogen/internal/generator"
	"github.com/spf13/cobra"
)

var generateFlags struct {
	spec          string
	specFile      string
	name          string
	description   string
	visibility    string
	organization  string
	defaultBranch string
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a repository from a spec and push it to GitHub",
	RunE: func(cmd *cobra.Command, args []string) error {
		spec := generateFlags.spec
		if generateFlags.specFile != "" {
			data, err := os.ReadFile(generateFlags.specFile)
			if err != nil {
				return err
			}
			spec = string(data)
		}
		if strings.TrimSpace(spec) == "" {
			return errors.New("one of --spec or --spec-file is required")
		}

		app, err := bootstrap.New(config)
		if err != nil {
			return err
		}
		defer app.Close()

		result, err := app.Generator.Generate(cmd.Context(), generator.Request{
			Spec:          spec,
			Name:          generateFlags.name,
			Description:   generateFlags.description,
			Visibility:    generator.Visibility(generateFlags.visibility),
			Organization:  generateFlags.organization,
			DefaultBranch: generateFlags.defaultBranch,
		})
		if err != nil {
			failure := map[string]any{"kind": generator.KindName(err), "message": err.Error()}
			var genErr *generator.Error
			if errors.As(err, &genErr) && genErr.Repository != nil {
				failure["repository"] = genErr.Repository.FullName
				failure["uploaded"] = genErr.Uploaded
				failure["path"] = genErr.Path
			}
			_ = printJSON(cmd.ErrOrStderr(), failure)
			return err
		}

		return printJSON(cmd.OutOrStdout(), result)
	},
}

func init() {
	flags := generateCmd.Flags()
	flags.StringVar(&generateFlags.spec, "spec", "", "free-text description of the project")
	flags.StringVar(&generateFlags.specFile, "spec-file", "", "read the spec from a file")
	flags.StringVar(&generateFlags.name, "name", "", "repository name (derived from the spec when empty)")
	flags.StringVar(&generateFlags.description, "description", "", "repository description")
	flags.StringVar(&generateFlags.visibility, "visibility", "", "private (default) or public")
	flags.StringVar(&generateFlags.organization, "org", "", "create under this organization")
	flags.StringVar(&generateFlags.defaultBranch, "branch", "", "branch to commit to (default main)")

	rootCmd.AddCommand(generateCmd)
}
