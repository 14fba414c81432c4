package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ojiudezue/frigate-config-builder/internal/config"
)

var selectIDs string

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Choose which cameras end up in the config",
	Long:  `Stores a camera id selection in the config file. An empty selection means all cameras.`,
	Example: `  frigate-builder select --ids "front_door,driveway"
  frigate-builder select --ids ""`,
	Run: func(cmd *cobra.Command, args []string) {
		// Parse IDs from comma-separated string
		ids := strings.Split(selectIDs, ",")
		// Clean whitespace
		var cleanIDs []string
		for _, id := range ids {
			trimmed := strings.TrimSpace(id)
			if trimmed != "" {
				cleanIDs = append(cleanIDs, trimmed)
			}
		}

		if err := config.SaveSelection(cleanIDs); err != nil {
			fmt.Printf("Error saving selection: %v\n", err)
			os.Exit(1)
		}

		if len(cleanIDs) == 0 {
			fmt.Println("Selection cleared; all discovered cameras will be used.")
			return
		}
		fmt.Printf("Selection saved: %d cameras.\n", len(cleanIDs))
	},
}

func init() {
	rootCmd.AddCommand(selectCmd)
	selectCmd.Flags().StringVar(&selectIDs, "ids", "", "Comma separated list of camera IDs (empty clears the selection)")
	_ = selectCmd.MarkFlagRequired("ids")
}
