package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ojiudezue/frigate-config-builder/internal/config"
	"github.com/ojiudezue/frigate-config-builder/internal/discovery"
	"github.com/ojiudezue/frigate-config-builder/internal/platform"
)

// Helper to load config and assemble the coordinator with every adapter.
// Adapters are registered in fixed order; on duplicate camera ids the
// earliest registered source wins.
func setupCoordinator() (*config.Config, *platform.Client, *discovery.Coordinator) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	if cfg.Platform.BaseURL == "" {
		fmt.Println("Error: No platform base URL configured. Set platform.base_url or SUPERVISOR_TOKEN environment.")
		os.Exit(1)
	}

	api := platform.New(platform.ClientConfig{
		BaseURL: cfg.Platform.BaseURL,
		Token:   cfg.Platform.Token,
		Timeout: cfg.Platform.Timeout,
	})

	adapters := []discovery.Adapter{
		discovery.NewUniFiAdapter(api),
		discovery.NewAmcrestAdapter(cfg.Discovery.AmcrestHosts, cfg.Discovery.AmcrestChannel),
		discovery.NewReolinkAdapter(api, cfg.Discovery.CredentialOverrides),
		discovery.NewGenericAdapter(api, cfg.Discovery.CredentialOverrides),
		discovery.NewManualAdapter(cfg.Discovery.ManualCameras),
	}

	return cfg, api, discovery.NewCoordinator(adapters, cfg.Discovery.AdapterTimeout)
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Run one discovery cycle and list cameras",
	Long:  `Queries every configured source once and prints the normalized camera set.`,
	Run: func(cmd *cobra.Command, args []string) {
		_, _, coord := setupCoordinator()

		snap := coord.Discover(context.Background())

		// Warnings never fail the cycle; surface them on stderr.
		for _, w := range snap.Warnings {
			fmt.Fprintf(os.Stderr, "warning: [%s] %s: %s\n", w.Source, w.Item, w.Message)
		}

		// --- JSON OUTPUT ---
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(snap.Cameras); err != nil {
				fmt.Printf("Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}
		// -------------------

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSOURCE\tAREA\tRESOLUTION\tAVAILABLE\tNEW")
		fmt.Fprintln(w, "--\t----\t------\t----\t----------\t---------\t---")

		for _, cam := range snap.Cameras {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%dx%d\t%t\t%t\n",
				cam.ID,
				cam.FriendlyName,
				cam.Source,
				cam.Area,
				cam.Width,
				cam.Height,
				cam.Available,
				cam.IsNew,
			)
		}
		w.Flush()

		fmt.Printf("\n%d cameras from %d sources.\n", len(snap.Cameras), len(coord.Sources()))
	},
}

func init() {
	rootCmd.AddCommand(discoverCmd)
}
