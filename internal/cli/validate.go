package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/logbench/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate <config.yaml>",
	Short: "Validate a sweep configuration file",
	Long: `Check a configuration file against the schema and the semantic rules
without running anything. Lists every violation, not just the first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd, args[0])
	},
}

func runValidate(cmd *cobra.Command, path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		var verrs *config.ValidationErrors
		if errors.As(err, &verrs) {
			for _, e := range verrs.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", e.Field, e.Message)
			}
			return fmt.Errorf("%s: %d validation error(s)", path, len(verrs.Errors))
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: valid (%d scenarios)\n", path, cfg.ScenarioCount())
	return nil
}
