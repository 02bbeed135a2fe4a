package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/velkan/lingoscope/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lingoscope [file]",
		Short: "Vocabulary analyzer for language learners",
		Long: `lingoscope extracts idioms, phrasal verbs and nuanced vocabulary
from English texts using a generative language model, and turns them
into flashcard practice sessions.

Analyses are kept in a local cache and, when a remote store is
configured, synchronized per user across machines.

Examples:
  lingoscope article.txt                # Analyze a text file
  lingoscope --topic "air travel"       # Vocabulary strategy for a topic
  lingoscope article.txt --save         # Analyze and keep the result
  lingoscope --history                  # List saved analyses
  lingoscope article.txt --practice     # Analyze, then practice in batches
  lingoscope --export                   # Export the collection to JSON`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	home, _ := os.UserHomeDir()
	defaultExportDir := filepath.Join(home, ".local", "state", "lingoscope", "exports")

	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.lingoscope.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.Source, "source", "s", flags.Source, "Source type: news, novel, academic, conversation")
	cmd.Flags().StringVarP(&flags.Topic, "topic", "t", "", "Generate a vocabulary strategy for a topic instead of analyzing text")
	cmd.Flags().StringVarP(&flags.Lookup, "lookup", "l", "", "Look up the definition of a single word or phrase")
	cmd.Flags().BoolVar(&flags.Save, "save", false, "Save the analysis result to the collection")
	cmd.Flags().BoolVar(&flags.History, "history", false, "List saved analyses")
	cmd.Flags().StringVar(&flags.Delete, "delete", "", "Delete the saved analysis with the given id")
	cmd.Flags().StringVarP(&flags.User, "user", "u", "", "Sign in as this user id and sync with the remote store")

	// Practice flags
	cmd.Flags().BoolVarP(&flags.Practice, "practice", "p", false, "Practice the extracted vocabulary in batches")
	cmd.Flags().IntVar(&flags.PracticeBatch, "practice-batch", flags.PracticeBatch, "Vocabulary items per practice batch")

	// Export flags
	cmd.Flags().BoolVar(&flags.Export, "export", false, "Export the collection to a JSON file")
	cmd.Flags().StringVar(&flags.ExportDir, "export-dir", defaultExportDir, "Directory for export files")
	cmd.Flags().BoolVar(&flags.ExportVocabulary, "export-vocabulary", false, "Include a flattened vocabulary list in the export")

	// Speech flags
	cmd.Flags().BoolVar(&flags.Speak, "speak", false, "Read practice sentences aloud (requires an OpenAI API key)")
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	cmd.Flags().StringVar(&flags.OpenAIVoice, "openai-voice", flags.OpenAIVoice, "OpenAI voice: alloy, ash, coral, echo, nova, ...")
	cmd.Flags().Float64Var(&flags.OpenAISpeed, "openai-speed", flags.OpenAISpeed, "OpenAI speech speed (0.25 to 4.0)")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("analysis.source", cmd.Flags().Lookup("source"))
	viper.BindPFlag("practice.batch_size", cmd.Flags().Lookup("practice-batch"))
	viper.BindPFlag("export.directory", cmd.Flags().Lookup("export-dir"))
	viper.BindPFlag("speech.openai_model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("speech.openai_voice", cmd.Flags().Lookup("openai-voice"))
	viper.BindPFlag("speech.openai_speed", cmd.Flags().Lookup("openai-speed"))
	viper.BindPFlag("remote.user", cmd.Flags().Lookup("user"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".lingoscope" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".lingoscope")
	}

	// Environment variables
	viper.SetEnvPrefix("LINGOSCOPE")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	// First check environment variable
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("analysis.gemini_key")
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	return viper.GetString("speech.openai_key")
}

// GetRemoteDSN retrieves the remote store connection string. An empty
// result means the application runs local-only.
func GetRemoteDSN() string {
	if dsn := os.Getenv("LINGOSCOPE_REMOTE_DSN"); dsn != "" {
		return dsn
	}

	return viper.GetString("remote.dsn")
}
