package cli

import (
	"fmt"
	"os"

	"github.com/aipulse/aipulse/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "aipulse",
	Short: "aipulse - Public attitudes toward AI, measured across platforms",
	Long: `aipulse ingests cleaned social-media text about AI from Reddit, Twitter,
and Hacker News, annotates each record with sentiment, emotion, topic,
and toxicity scores through a sequence of batch inference stages, and
serves the aggregated results to a dashboard and a Q&A assistant.

Each stage reads the previous stage's output file and writes its own,
so any single stage can be re-run independently. Records that cannot be
scored keep their row with a sentinel value; no stage ever drops data.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for aipulse.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("aipulse v0.2.1")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.aipulse/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.aipulse")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match AIPULSE_*
	viper.SetEnvPrefix("AIPULSE")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig builds the runtime configuration: built-in defaults
// overlaid with config-file values and AIPULSE_* environment variables.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Invalid configuration, using defaults: %v\n", err)
		cfg = model.DefaultConfig()
	}
	if url := viper.GetString("inference_url"); url != "" {
		cfg.Inference.BaseURL = url
	}
	cfg.Output.Verbose = viper.GetBool("verbose")
	return cfg
}
