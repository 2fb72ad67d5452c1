package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use: "shiba",
	Short: "Shiba CLI tool can perform common tasks related to running " +
		"testbenches with Shiba.",
	Long: `Shiba CLI tool can perform common tasks related to running ` +
		`testbenches with Shiba. Currently, it supports inspecting the ` +
		`run databases written by the recording package.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Defaults such as SHIBA_RUN may come from a .env file.
		_ = godotenv.Load()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
