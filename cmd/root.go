package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "signpost",
	Short: "Signpost - marketplace redirect front door",
	Long: `Signpost sits in front of a multi-tenant marketplace platform. It decides
for every inbound request whether the visitor should be redirected (protocol
upgrades, custom domains, renamed or retired marketplaces) and proxies the
rest through to the marketplace application.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./signpost.toml)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config file in standard locations
		viper.SetConfigName("signpost")
		viper.SetConfigType("toml")

		// Current directory (highest priority)
		viper.AddConfigPath(".")

		// User config directory
		if userConfigDir, err := os.UserConfigDir(); err == nil {
			viper.AddConfigPath(userConfigDir + "/signpost")
		}

		// System-wide config directories
		viper.AddConfigPath("/etc/signpost")
		viper.AddConfigPath("/usr/local/etc/signpost")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else {
		if cfgFile != "" {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		} else {
			log.Fatal().Msg("config file not found - please specify with --config flag or ensure signpost.toml exists in current directory")
		}
	}
}
