package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/ojiudezue/frigate-config-builder/internal/discovery"
	"github.com/ojiudezue/frigate-config-builder/internal/generator"
)

// Config is everything read from the config file and environment: platform
// connection, adapter inputs, output targets and the builder settings.
type Config struct {
	Platform  PlatformConfig     `mapstructure:"platform"`
	Output    OutputConfig       `mapstructure:"output"`
	Discovery DiscoveryConfig    `mapstructure:"discovery"`
	Cameras   CameraSelection    `mapstructure:"cameras"`
	Builder   generator.Settings `mapstructure:"builder"`
}

type PlatformConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type OutputConfig struct {
	Path       string `mapstructure:"path"`
	FrigateURL string `mapstructure:"frigate_url"`
	AutoPush   bool   `mapstructure:"auto_push"`
}

type DiscoveryConfig struct {
	Interval            time.Duration                   `mapstructure:"interval"`
	AdapterTimeout      time.Duration                   `mapstructure:"adapter_timeout"`
	AmcrestHosts        []discovery.AmcrestHost         `mapstructure:"amcrest_hosts"`
	AmcrestChannel      int                             `mapstructure:"amcrest_default_channel"`
	ManualCameras       []discovery.ManualCamera        `mapstructure:"manual_cameras"`
	CredentialOverrides map[string]discovery.Credential `mapstructure:"credential_overrides"`
}

type CameraSelection struct {
	Selected           []string `mapstructure:"selected"`
	ExcludeUnavailable bool     `mapstructure:"exclude_unavailable"`
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".frigate-builder" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".frigate-builder")
	}

	setDefaults()

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		// Config loaded successfully
	}
}

func setDefaults() {
	viper.SetDefault("platform.base_url", "http://supervisor/core")
	viper.SetDefault("platform.token", os.Getenv("SUPERVISOR_TOKEN"))
	viper.SetDefault("platform.timeout", 10*time.Second)

	viper.SetDefault("output.path", "/config/www/frigate.yml")

	viper.SetDefault("discovery.interval", 30*time.Minute)
	viper.SetDefault("discovery.adapter_timeout", 30*time.Second)
	viper.SetDefault("discovery.amcrest_default_channel", 1)

	viper.SetDefault("cameras.exclude_unavailable", true)

	defaults := generator.DefaultSettings()
	viper.SetDefault("builder.frigate_version", string(defaults.Version))
	viper.SetDefault("builder.detector_type", defaults.DetectorType)
	viper.SetDefault("builder.detector_device", defaults.DetectorDevice)
	viper.SetDefault("builder.hwaccel", defaults.Hwaccel)
	viper.SetDefault("builder.network_interfaces", defaults.NetworkInterfaces)
	viper.SetDefault("builder.mqtt.host", defaults.MQTT.Host)
	viper.SetDefault("builder.mqtt.port", defaults.MQTT.Port)
	viper.SetDefault("builder.audio_detection", defaults.AudioDetection)
	viper.SetDefault("builder.face_recognition_model", defaults.FaceRecognitionModel)
	viper.SetDefault("builder.semantic_search_model", defaults.SemanticSearchModel)
	viper.SetDefault("builder.birdseye_enabled", defaults.Birdseye)
	viper.SetDefault("builder.birdseye_mode", defaults.BirdseyeMode)
	viper.SetDefault("builder.genai.provider", defaults.GenAI.Provider)
	viper.SetDefault("builder.retain.alerts", defaults.Retain.Alerts)
	viper.SetDefault("builder.retain.detections", defaults.Retain.Detections)
	viper.SetDefault("builder.retain.motion", defaults.Retain.Motion)
	viper.SetDefault("builder.retain.snapshots", defaults.Retain.Snapshots)
	viper.SetDefault("builder.auto_groups_from_areas", defaults.AutoGroups)
}

// Load unmarshals the full configuration.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// SaveSelection updates the config file with the chosen camera id set
func SaveSelection(ids []string) error {
	viper.Set("cameras.selected", ids)

	// Ensure the file exists before writing
	if err := viper.WriteConfig(); err != nil {
		// If file doesn't exist, create it
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return viper.SafeWriteConfig()
		}
		// If it exists but failed to write, try writing to default path
		home, _ := os.UserHomeDir()
		path := filepath.Join(home, ".frigate-builder.yaml")
		return viper.WriteConfigAs(path)
	}
	return nil
}
