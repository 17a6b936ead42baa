// Package cmd provides the command-line interface for Pagewright.
//
// Configuration System:
//
//	The CLI supports flexible configuration through multiple sources with clear precedence:
//	1. Command-line flags (--config, --port, etc.) - highest priority
//	2. PAGEWRIGHT_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (PAGEWRIGHT_SERVER_PORT, etc.)
//	4. Configuration files (.pagewright.yml) - lowest priority
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pagewright/pagewright/internal/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pagewright",
	Short: "Compile visual page designs into HTML and CSS",
	Long: `Pagewright compiles event-sourced page designs into static HTML and CSS.

A design lives as an append-only event log in SQLite. Every command replays
the log into a document state, lowers it to an intermediate representation,
validates it, and generates deterministic artifacts.

Quick Start:
  pagewright events append my-site events.json   Record design events
  pagewright preview my-site                     Compile without publishing
  pagewright serve my-site                       Live preview with hot reload
  pagewright publish my-site                     Compile, persist, and publish`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is .pagewright.yml, can also use PAGEWRIGHT_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().String("db", "", "SQLite database path")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")

	viper.BindPFlag("database.path", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// initConfig initializes the configuration system.
//
// Configuration Loading Priority (highest to lowest):
//  1. --config flag: explicitly specified config file path
//  2. PAGEWRIGHT_CONFIG_FILE environment variable
//  3. Default: .pagewright.yml in the current directory
func initConfig() {
	config.SetDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("PAGEWRIGHT_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".pagewright")
	}

	config.BindEnvironment()

	// A missing config file is fine; defaults and environment carry the day.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
