package main

import (
	"fmt"
	"os"

	"github.com/aretw0/canvass/internal/cli"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage saved survey sessions",
}

var sessionResetCmd = &cobra.Command{
	Use:   "reset <session-id>",
	Short: "Discard the saved progress of a session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		redisAddr, _ := cmd.Flags().GetString("redis")
		stateDir, _ := cmd.Flags().GetString("state-dir")

		if err := cli.ResetSession(args[0], redisAddr, stateDir); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Session '%s' reset.\n", args[0])
	},
}

func init() {
	sessionCmd.AddCommand(sessionResetCmd)
	rootCmd.AddCommand(sessionCmd)
}
