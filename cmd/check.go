package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ojiudezue/frigate-config-builder/internal/discovery"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check platform connectivity and adapter readiness",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, api, coord := setupCoordinator()

		platformOK := true
		if err := api.Ping(); err != nil {
			platformOK = false
			fmt.Fprintf(os.Stderr, "warning: platform unreachable: %v\n", err)
		}

		status := coord.AdapterStatus()

		// --- JSON OUTPUT ---
		if jsonOutput {
			out := struct {
				PlatformURL string          `json:"platform_url"`
				PlatformOK  bool            `json:"platform_ok"`
				Adapters    map[string]bool `json:"adapters"`
			}{
				PlatformURL: cfg.Platform.BaseURL,
				PlatformOK:  platformOK,
				Adapters:    make(map[string]bool, len(status)),
			}
			for src, ok := range status {
				out.Adapters[string(src)] = ok
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				fmt.Printf("Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}
		// -------------------

		if platformOK {
			fmt.Printf("Platform: %s (reachable)\n\n", cfg.Platform.BaseURL)
		} else {
			fmt.Printf("Platform: %s (UNREACHABLE)\n\n", cfg.Platform.BaseURL)
		}

		order := []discovery.Source{
			discovery.SourceUniFiProtect,
			discovery.SourceAmcrest,
			discovery.SourceReolink,
			discovery.SourceGeneric,
			discovery.SourceManual,
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "SOURCE\tREADY")
		fmt.Fprintln(w, "------\t-----")
		for _, src := range order {
			fmt.Fprintf(w, "%s\t%t\n", src, status[src])
		}
		w.Flush()

		if !platformOK {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
