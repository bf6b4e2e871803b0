package config

import (
	"fmt"

	"github.com/go2opsin/go2opsin/internal/cli/shared"
	"github.com/go2opsin/go2opsin/internal/health"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "doctor",
		Aliases: []string{"doc"},
		Short:   "Run health checks for go2opsin dependencies (doc)",
		Long: `Run health checks to verify that everything OPSIN needs is installed and available.

This command checks for:
  - A Java runtime (java_cmd on PATH, 'java -version' runs)
  - The OPSIN jar (jar_path exists)
  - A smoke conversion (ethane -> CC), when both of the above pass

Each check will display a checkmark if passed or an X with an error message if failed.`,
		Example: `  # Check all dependencies
  go2opsin doctor

  # Check a specific jar
  GO2OPSIN_JAR_PATH=/opt/opsin/opsin.jar go2opsin doctor`,
		GroupID: shared.GroupConfiguration,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := shared.LoadConfig(cmd)
			if err != nil {
				return err
			}
			opts, err := cfg.Options()
			if err != nil {
				return shared.WithExitCode(shared.ExitInvalidArguments, err)
			}

			report := health.NewChecker(opts).Run(cmd.Context())
			fmt.Fprint(cmd.OutOrStdout(), health.FormatReport(report))

			if !report.Passed {
				return shared.NewExitError(shared.ExitMissingDependency)
			}
			return nil
		},
	}
}
