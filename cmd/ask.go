package cmd

import (
	"context"
	"fmt"
	"github.com/charmbracelet/lipgloss"
	"github.com/iamvkosarev/prompt-form/internal/client"
	"github.com/iamvkosarev/prompt-form/internal/logger"
	"github.com/spf13/cobra"
	"io"
	"strings"
	"time"
)

var (
	captionStyle = lipgloss.NewStyle().Faint(true)
	resultStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func newAskCmd() *cobra.Command {
	var gatewayURL string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "ask [prompt...]",
		Short: "Submit a prompt to a running gateway and print the answer",
		Example: `  prompt-form ask "Say hello"
  prompt-form ask --gateway http://localhost:3000 Write a haiku about Go`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.New(logger.Config{Level: "error", Encoding: "console", OutputPath: "stderr"})
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			out := cmd.OutOrStdout()
			controller, err := client.NewFormController(
				gatewayURL, client.FormControllerDeps{
					Logger:   log,
					OnChange: printCaption(out),
				},
			)
			if err != nil {
				return err
			}
			controller.SetPrompt(strings.Join(args, " "))

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			// gateway and transport errors are already part of the result
			result, _ := controller.Submit(ctx)
			if result.Failed() {
				fmt.Fprintln(out, errorStyle.Render(result.Display()))
				return nil
			}
			fmt.Fprintln(out, resultStyle.Render(result.Display()))
			return nil
		},
	}
	cmd.Flags().StringVar(&gatewayURL, "gateway", "http://localhost:3000", "base URL of the running gateway")
	cmd.Flags().DurationVar(&timeout, "timeout", 90*time.Second, "how long to wait for the answer")
	return cmd
}

// printCaption prints the submit caption whenever it changes.
func printCaption(out io.Writer) func(client.State) {
	var last string
	return func(state client.State) {
		caption := state.SubmitCaption()
		if caption == last {
			return
		}
		last = caption
		fmt.Fprintln(out, captionStyle.Render(caption))
	}
}
