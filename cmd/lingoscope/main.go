package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"codeberg.org/velkan/lingoscope/internal/cli"
	"codeberg.org/velkan/lingoscope/internal/processor"
)

func main() {
	// Load .env file if present; environment variables win over it
	godotenv.Load()

	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	ctx := context.Background()

	proc, err := processor.NewProcessor(ctx, flags)
	if err != nil {
		return err
	}
	defer proc.Close()

	// Sign in first so the collection reflects the merged view
	if flags.User != "" {
		proc.SignIn(flags.User)
	}

	// Handle --delete flag
	if flags.Delete != "" {
		return proc.Delete(flags.Delete)
	}

	// Handle --history flag
	if flags.History {
		return proc.ShowHistory()
	}

	// Handle --export flag
	if flags.Export {
		return proc.Export()
	}

	// Handle --lookup flag
	if flags.Lookup != "" {
		return proc.Lookup(ctx, flags.Lookup)
	}

	// Handle --topic flag
	if flags.Topic != "" {
		return proc.AnalyzeTopic(ctx, flags.Topic)
	}

	// Analyze the given file
	if len(args) > 0 {
		return proc.AnalyzeFile(ctx, args[0])
	}

	fmt.Fprintln(os.Stderr, "Nothing to do: pass a file to analyze, or use --topic, --history or --export.")
	return cmd.Usage()
}
