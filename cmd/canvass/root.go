package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "canvass",
	Short: "Canvass is a multi-step survey engine",
	Long:  `Canvass runs JSON or YAML survey definitions with conditional questions, durable resume and pluggable submission endpoints.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("survey", "survey.json", "Path or URL of the survey definition")
	rootCmd.PersistentFlags().String("redis", "", "Redis address for session state (host:port)")
	rootCmd.PersistentFlags().String("state-dir", "", "Directory for file-backed session state")
}
