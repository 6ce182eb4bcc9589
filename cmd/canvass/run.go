package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/canvass/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fill in a survey interactively",
	Long:  `Loads the survey definition and walks through its steps on the terminal, persisting progress when a session ID is given.`,
	Run: func(cmd *cobra.Command, args []string) {
		ref, _ := cmd.Flags().GetString("survey")
		if !cmd.Flags().Changed("survey") && len(args) > 0 {
			ref = args[0]
		}

		opts := cli.RunOptions{Ref: ref}
		opts.SessionID, _ = cmd.Flags().GetString("session")
		opts.Fresh, _ = cmd.Flags().GetBool("fresh")
		opts.RedisAddr, _ = cmd.Flags().GetString("redis")
		opts.StateDir, _ = cmd.Flags().GetString("state-dir")
		opts.SubmitURL, _ = cmd.Flags().GetString("submit-url")
		opts.Debug, _ = cmd.Flags().GetBool("debug")
		opts.Name, _ = cmd.Flags().GetString("name")
		opts.Email, _ = cmd.Flags().GetString("email")
		opts.PreferredName, _ = cmd.Flags().GetString("preferred-name")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := cli.Execute(ctx, opts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("session", "", "Session ID for durable resume")
	runCmd.Flags().Bool("fresh", false, "Discard any saved progress before starting")
	runCmd.Flags().String("submit-url", "", "Endpoint to POST the finished submission to")
	runCmd.Flags().Bool("debug", false, "Enable debug logging on stderr")
	runCmd.Flags().String("name", "", "Respondent full name")
	runCmd.Flags().String("email", "", "Respondent email")
	runCmd.Flags().String("preferred-name", "", "Respondent preferred name")

	// Make 'run' the default if no command is provided.
	rootCmd.Run = runCmd.Run
}
