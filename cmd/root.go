package cmd

import (
	"fmt"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"os"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "prompt-form",
	Short: "Prompt form - a web form that forwards prompts to a text-completion API",
	Long: `Prompt form serves a single-page form and a completion endpoint.

The endpoint validates the prompt, forwards it to the OpenAI completions API
with fixed generation parameters and returns either the generated text or an
error message.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to an optional YAML config file")
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAskCmd())
}

// Execute runs the root command
func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
