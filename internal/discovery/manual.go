package discovery

import (
	"context"
	"fmt"
	"log"
	"net/url"
)

// ManualCamera is a user-declared camera from settings, for hardware no
// integration covers.
type ManualCamera struct {
	Name         string `json:"name" mapstructure:"name"`
	FriendlyName string `json:"friendly_name,omitempty" mapstructure:"friendly_name"`
	RecordURL    string `json:"record_url" mapstructure:"record_url"`
	DetectURL    string `json:"detect_url,omitempty" mapstructure:"detect_url"`
	LiveViewURL  string `json:"live_view_url,omitempty" mapstructure:"live_view_url"`
	Width        int    `json:"width,omitempty" mapstructure:"width"`
	Height       int    `json:"height,omitempty" mapstructure:"height"`
	FPS          int    `json:"fps,omitempty" mapstructure:"fps"`
	Area         string `json:"area,omitempty" mapstructure:"area"`
}

// ManualAdapter turns user-declared camera entries into descriptors. It only
// checks address well-formedness (scheme and host present); it never probes
// the stream.
type ManualAdapter struct {
	cameras []ManualCamera
}

func NewManualAdapter(cameras []ManualCamera) *ManualAdapter {
	return &ManualAdapter{cameras: cameras}
}

func (a *ManualAdapter) Source() Source { return SourceManual }

// Available is always true: manual entries need no vendor integration.
func (a *ManualAdapter) Available() bool { return true }

func (a *ManualAdapter) Discover(_ context.Context) ([]Camera, []Warning) {
	var cameras []Camera
	var warnings []Warning

	for i, mc := range a.cameras {
		if mc.Name == "" {
			warnings = append(warnings, warnf(SourceManual, fmt.Sprintf("entry %d", i), "missing name"))
			continue
		}
		if err := validateStreamURL(mc.RecordURL); err != nil {
			warnings = append(warnings, warnf(SourceManual, mc.Name, "record_url: %v", err))
			continue
		}
		if mc.DetectURL != "" {
			if err := validateStreamURL(mc.DetectURL); err != nil {
				warnings = append(warnings, warnf(SourceManual, mc.Name, "detect_url: %v", err))
				continue
			}
		}

		name := NormalizeName(mc.Name)
		friendly := mc.FriendlyName
		if friendly == "" {
			friendly = mc.Name
		}

		cam := Camera{
			ID:           string(SourceManual) + "_" + name,
			Name:         name,
			FriendlyName: friendly,
			Source:       SourceManual,
			RecordURL:    mc.RecordURL,
			DetectURL:    mc.DetectURL,
			LiveViewURL:  mc.LiveViewURL,
			Width:        mc.Width,
			Height:       mc.Height,
			FPS:          mc.FPS,
			Area:         mc.Area,
			Available:    true,
		}
		cam.ApplyDefaults()
		cameras = append(cameras, cam)
	}

	log.Printf("manual: loaded %d cameras", len(cameras))
	return cameras, warnings
}

func validateStreamURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("missing URL")
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	if parsed.Scheme == "" {
		return fmt.Errorf("missing scheme in %q", rawURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("missing host in %q", rawURL)
	}
	return nil
}
