package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	logLevel  string
	logPretty bool
)

var rootCmd = &cobra.Command{
	Use:   "ferrodexd",
	Short: "ferrodexd — a boolean full-text search engine over a directory tree",
	Long: `ferrodexd builds an in-memory inverted index over a directory of text
files and answers boolean queries ("cat AND dog", "cat ANDNOT fish",
"(cat OR dog) AND fish") ranked by TF-IDF.

Commands:
  index   Walk a directory, build the index, and report corpus stats
  query   Build the index once and answer a single query on stdout
  serve   Build the index once and answer queries over HTTP`,
}

// Execute is the CLI entrypoint.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (yaml/json/toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logPretty, "log-pretty", false, "use human-readable console log output")

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(serveCmd)
}

// viperFromFlags builds a fresh viper instance bound to the persistent flags
// so every subcommand sees the same config precedence (flags > env > file >
// defaults) without sharing global mutable state between test runs.
func viperFromFlags(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlag("log.level", cmd.Flags().Lookup("log-level"))
	_ = v.BindPFlag("log.pretty", cmd.Flags().Lookup("log-pretty"))
	return v
}
