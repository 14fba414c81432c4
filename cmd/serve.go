package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/kardianos/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/ojiudezue/frigate-config-builder/internal/config"
	"github.com/ojiudezue/frigate-config-builder/internal/discovery"
	"github.com/ojiudezue/frigate-config-builder/internal/generator"
	"github.com/ojiudezue/frigate-config-builder/internal/platform"
)

// Variables to hold flag values
var (
	servePort     string
	serviceAction string // "install", "uninstall", "start", "stop"
)

// --- SERVICE WRAPPER ---

// program implements the kardianos/service interface
type program struct {
	exit   chan struct{}
	server *http.Server
	cfg    *config.Config
	coord  *discovery.Coordinator
}

func (p *program) Start(s service.Service) error {
	// Start should not block. Do the actual work async.
	p.exit = make(chan struct{})
	go p.run()
	return nil
}

func (p *program) run() {
	// 1. Initial discovery cycle so the API never serves an empty snapshot.
	log.Println("Running initial discovery...")
	snap := p.coord.Discover(context.Background())
	log.Printf("Initial discovery found %d cameras.", len(snap.Cameras))

	// 2. Periodic re-discovery
	go p.discoveryLoop()

	// 3. Setup Prometheus
	registry := prometheus.NewRegistry()
	collector := &BuilderCollector{Coordinator: p.coord}
	registry.MustRegister(collector)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	mux.HandleFunc("/api/cameras", p.handleCameras)
	mux.HandleFunc("/api/status", p.handleStatus)
	mux.HandleFunc("/api/generate", p.handleGenerate)

	addr := fmt.Sprintf(":%s", servePort)
	p.server = &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	log.Printf("Frigate config builder listening on %s", addr)

	// Blocking call to listen
	if err := p.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("HTTP Server error: %v", err)
	}
}

func (p *program) discoveryLoop() {
	interval := p.cfg.Discovery.Interval
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			snap := p.coord.Discover(context.Background())
			stale, added, removed := p.coord.Status()
			log.Printf("Discovery cycle: %d cameras, %d warnings, stale=%t (+%d/-%d)",
				len(snap.Cameras), len(snap.Warnings), stale, len(added), len(removed))
		case <-p.exit:
			return
		}
	}
}

func (p *program) Stop(s service.Service) error {
	// Stop should not block. Signal the app to stop.
	log.Println("Stopping service...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if p.server != nil {
		if err := p.server.Shutdown(ctx); err != nil {
			log.Printf("Server forced to shutdown: %v", err)
		}
	}
	close(p.exit)
	return nil
}

// --- JSON API ---

func (p *program) handleCameras(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, p.coord.Cameras())
}

func (p *program) handleStatus(w http.ResponseWriter, r *http.Request) {
	stale, added, removed := p.coord.Status()
	adapters := make(map[string]bool)
	for src, ok := range p.coord.AdapterStatus() {
		adapters[string(src)] = ok
	}
	writeJSON(w, map[string]any{
		"stale":           stale,
		"cameras_added":   added,
		"cameras_removed": removed,
		"adapters":        adapters,
		"warnings":        p.coord.Warnings(),
	})
}

func (p *program) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}

	cameras := p.coord.Selected(p.cfg.Cameras.Selected, p.cfg.Cameras.ExcludeUnavailable)
	doc, err := generator.Generate(p.cfg.Builder, cameras)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if err := os.WriteFile(p.cfg.Output.Path, []byte(doc), 0644); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	pushed := false
	if p.cfg.Output.AutoPush && p.cfg.Output.FrigateURL != "" {
		if err := platform.PushConfig(p.cfg.Output.FrigateURL, doc, false); err != nil {
			log.Printf("Error pushing config: %v", err)
		} else {
			pushed = true
		}
	}

	p.coord.MarkGenerated()
	writeJSON(w, map[string]any{
		"cameras": len(cameras),
		"path":    p.cfg.Output.Path,
		"pushed":  pushed,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// --- COLLECTOR LOGIC ---

type BuilderCollector struct {
	Coordinator *discovery.Coordinator
	Mutex       sync.Mutex
}

var (
	camerasTotalDesc = prometheus.NewDesc(
		"frigate_builder_cameras_total", "Discovered cameras grouped by source.", []string{"source"}, nil,
	)
	cameraAvailableDesc = prometheus.NewDesc(
		"frigate_builder_camera_available", "Camera availability (1=available).", []string{"id", "name", "source", "area"}, nil,
	)
	warningsDesc = prometheus.NewDesc(
		"frigate_builder_warnings_total", "Warnings emitted by the last discovery cycle.", []string{"source"}, nil,
	)
	staleDesc = prometheus.NewDesc(
		"frigate_builder_config_stale", "Whether the generated config lags the camera set (1=stale).", nil, nil,
	)
	adapterReadyDesc = prometheus.NewDesc(
		"frigate_builder_adapter_ready", "Adapter has its integration configured.", []string{"source"}, nil,
	)
)

func (c *BuilderCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- camerasTotalDesc
	ch <- cameraAvailableDesc
	ch <- warningsDesc
	ch <- staleDesc
	ch <- adapterReadyDesc
}

func (c *BuilderCollector) Collect(ch chan<- prometheus.Metric) {
	c.Mutex.Lock()
	defer c.Mutex.Unlock()

	bySource := make(map[discovery.Source]float64)
	for _, cam := range c.Coordinator.Cameras() {
		bySource[cam.Source]++
		avail := 0.0
		if cam.Available {
			avail = 1.0
		}
		ch <- prometheus.MustNewConstMetric(cameraAvailableDesc, prometheus.GaugeValue, avail,
			cam.ID, cam.FriendlyName, string(cam.Source), cam.Area)
	}
	for src, cnt := range bySource {
		ch <- prometheus.MustNewConstMetric(camerasTotalDesc, prometheus.GaugeValue, cnt, string(src))
	}

	warnBySource := make(map[discovery.Source]float64)
	for _, w := range c.Coordinator.Warnings() {
		warnBySource[w.Source]++
	}
	for src, cnt := range warnBySource {
		ch <- prometheus.MustNewConstMetric(warningsDesc, prometheus.GaugeValue, cnt, string(src))
	}

	staleVal := 0.0
	if stale, _, _ := c.Coordinator.Status(); stale {
		staleVal = 1.0
	}
	ch <- prometheus.MustNewConstMetric(staleDesc, prometheus.GaugeValue, staleVal)

	for src, ready := range c.Coordinator.AdapterStatus() {
		readyVal := 0.0
		if ready {
			readyVal = 1.0
		}
		ch <- prometheus.MustNewConstMetric(adapterReadyDesc, prometheus.GaugeValue, readyVal, string(src))
	}
}

// --- COMMAND ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the builder as a long-lived service",
	Long: `Starts a long-running process that re-discovers cameras on an interval
and exposes the camera set, staleness state and Prometheus metrics over HTTP.
Can be installed as a system service.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, _, coord := setupCoordinator()

		// Define Service Configuration
		svcConfig := &service.Config{
			Name:        "frigate-builder",
			DisplayName: "Frigate Config Builder",
			Description: "Discovers cameras and maintains the Frigate configuration",
			// Arguments passed to the binary when run as a service
			Arguments: []string{
				"serve",
				"--port", servePort,
			},
		}
		if cfgFile != "" {
			svcConfig.Arguments = append(svcConfig.Arguments, "--config", cfgFile)
		}

		prg := &program{
			cfg:   cfg,
			coord: coord,
		}

		s, err := service.New(prg, svcConfig)
		if err != nil {
			log.Fatal(err)
		}

		// Handle Service Control Actions (Install, Start, Stop, Uninstall)
		if serviceAction != "" {
			err = service.Control(s, serviceAction)
			if err != nil {
				log.Fatalf("Failed to %s service: %v", serviceAction, err)
			}
			fmt.Printf("Service action '%s' completed successfully.\n", serviceAction)
			return
		}

		// Run the Service (Blocking)
		logger, err := s.Logger(nil)
		if err != nil {
			log.Fatal(err)
		}
		if err = s.Run(); err != nil {
			logger.Error(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&servePort, "port", "8126", "Port to listen on")

	// Service Control
	serveCmd.Flags().StringVar(&serviceAction, "service", "", "Service action: install, uninstall, start, stop")
}
