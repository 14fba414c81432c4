package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ojiudezue/frigate-config-builder/internal/generator"
	"github.com/ojiudezue/frigate-config-builder/internal/platform"
)

// Variables to hold flag values
var (
	outputFile   string
	pushConfig   bool
	restartAfter bool
	printStdout  bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the Frigate configuration",
	Long: `Runs a discovery cycle, filters it through the camera selection,
and renders the Frigate configuration document.`,
	Example: `  frigate-builder generate
  frigate-builder generate --output ./frigate.yml
  frigate-builder generate --push --restart`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, _, coord := setupCoordinator()

		snap := coord.Discover(context.Background())
		for _, w := range snap.Warnings {
			fmt.Fprintf(os.Stderr, "warning: [%s] %s: %s\n", w.Source, w.Item, w.Message)
		}

		cameras := coord.Selected(cfg.Cameras.Selected, cfg.Cameras.ExcludeUnavailable)
		if len(cameras) == 0 {
			fmt.Println("Error: No cameras to generate a config for.")
			os.Exit(1)
		}

		doc, err := generator.Generate(cfg.Builder, cameras)
		if err != nil {
			fmt.Printf("Error generating config: %v\n", err)
			os.Exit(1)
		}

		if printStdout {
			fmt.Print(doc)
			coord.MarkGenerated()
			return
		}

		path := cfg.Output.Path
		if outputFile != "" {
			path = outputFile
		}

		if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
			fmt.Printf("Error writing file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config for %d cameras written to %s\n", len(cameras), path)

		if pushConfig || cfg.Output.AutoPush {
			if cfg.Output.FrigateURL == "" {
				fmt.Println("Error: No Frigate URL configured for push. Set output.frigate_url.")
				os.Exit(1)
			}
			if err := platform.PushConfig(cfg.Output.FrigateURL, doc, restartAfter); err != nil {
				fmt.Printf("Error pushing config: %v\n", err)
				os.Exit(1)
			}
			if restartAfter {
				fmt.Println("Config pushed, Frigate restarting.")
			} else {
				fmt.Println("Config pushed.")
			}
		}

		coord.MarkGenerated()
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&outputFile, "output", "", "Output filename (overrides output.path)")
	generateCmd.Flags().BoolVar(&printStdout, "stdout", false, "Print the config instead of writing a file")
	generateCmd.Flags().BoolVar(&pushConfig, "push", false, "Push the config to Frigate's API")
	generateCmd.Flags().BoolVar(&restartAfter, "restart", false, "Restart Frigate after pushing")
}
