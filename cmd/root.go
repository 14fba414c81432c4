package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ojiudezue/frigate-config-builder/internal/config"
)

var cfgFile string
var jsonOutput bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "frigate-builder",
	Short: "Discover cameras and build Frigate NVR configuration",
	Long: `Discover cameras exposed by the home automation platform's vendor
integrations and compile them into a Frigate configuration document.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() { config.InitConfig(cfgFile) })

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.frigate-builder.yaml)")

	// Add the persistent flag here
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
}
