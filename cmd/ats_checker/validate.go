package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-ats-checker/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate <result.json>",
	Short: "Validate a saved analysis result against the JSON schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if err := schemas.ValidateAnalysisFile(args[0]); err != nil {
		return err
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s is a valid analysis result\n", args[0])
	return err
}
