// cmd.go - Haupt-CLI Setup und Root Command
// Hauptfunktionen: NewCLI, appendEnvDocs
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/7blacky7/mrimotion/envconfig"
	"github.com/7blacky7/mrimotion/logutil"
)

// appendEnvDocs - Fuegt Umgebungsvariablen-Dokumentation zum Command hinzu
func appendEnvDocs(cmd *cobra.Command, envs []envconfig.EnvVar) {
	if len(envs) == 0 {
		return
	}

	envUsage := `
Environment Variables:
`
	for _, e := range envs {
		envUsage += fmt.Sprintf("      %-24s   %s\n", e.Name, e.Description)
	}

	cmd.SetUsageTemplate(cmd.UsageTemplate() + envUsage)
}

// NewCLI - Erstellt das Haupt-CLI mit allen Commands
func NewCLI() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "mrimotion",
		Short:         "Simulate motion artifacts in Cartesian MRI",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(logutil.NewLogger(os.Stderr, envconfig.LogLevel()))
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Print(cmd.UsageString())
		},
	}

	// Commands erstellen
	evenOddCmd := newEvenOddCmd()
	multiShotCmd := newMultiShotCmd()
	planCmd := newPlanCmd()

	// Environment-Dokumentation hinzufuegen
	envVars := envconfig.AsMap()
	for _, cmd := range []*cobra.Command{evenOddCmd, multiShotCmd, planCmd} {
		switch cmd {
		case evenOddCmd:
			appendEnvDocs(cmd, []envconfig.EnvVar{
				envVars["MRIMOTION_DEBUG"],
				envVars["MRIMOTION_SEED"],
				envVars["MRIMOTION_CHANNEL_FIRST"],
			})
		case multiShotCmd:
			appendEnvDocs(cmd, []envconfig.EnvVar{
				envVars["MRIMOTION_DEBUG"],
				envVars["MRIMOTION_SEED"],
				envVars["MRIMOTION_TRAJECTORY"],
				envVars["MRIMOTION_WORKERS"],
				envVars["MRIMOTION_MAX_DEGREES"],
				envVars["MRIMOTION_MAX_TRANSLATE"],
			})
		default:
			appendEnvDocs(cmd, []envconfig.EnvVar{envVars["MRIMOTION_TRAJECTORY"]})
		}
	}

	rootCmd.AddCommand(
		evenOddCmd,
		multiShotCmd,
		planCmd,
	)

	return rootCmd
}
