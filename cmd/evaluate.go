package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/AzielCF/az-rules/rulesengine/domain"
	"github.com/AzielCF/az-rules/validations"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <message>",
	Short: "Run one message through the rules engine and print the decision",
	Args:  cobra.MinimumNArgs(1),
	RunE:  evaluate,
}

func init() {
	evaluateCmd.Flags().String("workspace", "", "workspace id")
	evaluateCmd.Flags().String("contact", "", "contact id")
	evaluateCmd.Flags().String("phone", "", "contact phone")
	_ = evaluateCmd.MarkFlagRequired("workspace")
	_ = evaluateCmd.MarkFlagRequired("contact")
	rootCmd.AddCommand(evaluateCmd)
}

func evaluate(cmd *cobra.Command, args []string) error {
	defer StopApp()

	workspaceID, _ := cmd.Flags().GetString("workspace")
	contactID, _ := cmd.Flags().GetString("contact")
	phone, _ := cmd.Flags().GetString("phone")

	input := domain.ProcessInput{
		WorkspaceID:  workspaceID,
		ContactID:    contactID,
		ContactPhone: phone,
		Message:      strings.Join(args, " "),
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	if err := validations.ValidateProcessInput(ctx, input); err != nil {
		return err
	}

	result := rulesEngine.Process(ctx, input)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	logrus.Debugf("[EVALUATE] %s -> %s", input.Message, result.Action)
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
