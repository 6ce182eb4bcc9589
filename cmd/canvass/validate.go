package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/canvass/internal/cli"
	"github.com/aretw0/canvass/internal/validator"
	"github.com/aretw0/canvass/pkg/domain"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a survey definition for consistency",
	Long:  `Parses the definition and reports duplicate IDs, dangling condition references and malformed rules.`,
	Run: func(cmd *cobra.Command, args []string) {
		ref, _ := cmd.Flags().GetString("survey")
		if !cmd.Flags().Changed("survey") && len(args) > 0 {
			ref = args[0]
		}

		problems, err := runValidate(cmd.Context(), ref)
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}

		hadErrors := false
		for _, p := range problems {
			fmt.Printf("%s: %s\n", p.Severity, p.Message)
			if p.Severity == validator.SeverityError {
				hadErrors = true
			}
		}
		if hadErrors {
			os.Exit(1)
		}
		fmt.Println("Survey is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(ctx context.Context, ref string) ([]validator.Problem, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	raw, err := cli.ResolveSource(ref).Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}

	var survey domain.Survey
	if err := json.Unmarshal(raw, &survey); err != nil {
		return nil, fmt.Errorf("definition is not valid JSON: %w", err)
	}

	return validator.Check(&survey), nil
}
