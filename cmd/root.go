// Package cmd implements the CLI commands.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wesafe",
	Short: "WeSafe - assistente per verifiche catastali e ipotecarie",
	Long: `WeSafe è un assistente conversazionale per controlli su immobili:
visure catastali, planimetrie, ispezioni ipotecarie e atti di provenienza.

Eseguito senza argomenti entra in modalità conversazione interattiva.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd, args)
	},
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"log di debug su stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
