package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "aashactl",
		Short:         "Operator utilities for the Aasha backend",
		Long:          "Inspect prompts and SSML and synthesize audio with the same configuration the server uses.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddGroup(&cobra.Group{ID: "speech", Title: "Speech"}, &cobra.Group{ID: "ai", Title: "Roleplay"})
	root.AddCommand(newSSMLCmd(), newSpeakCmd(), newPromptCmd())
	return root
}

func main() {
	if err := godotenv.Load(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "warning: failed to load .env file: %v\n", err)
	}

	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
