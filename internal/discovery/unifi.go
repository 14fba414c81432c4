package discovery

import (
	"context"
	"log"
	"regexp"
	"strings"

	"github.com/ojiudezue/frigate-config-builder/pkg/models"
)

// UniFi Protect exposes several camera entities per physical device:
// one per resolution channel plus an optional package camera on doorbells.
// The high channel becomes the record stream, the low channel the detect
// stream, matched through the shared parent device rather than display names.
var (
	unifiChannelRe = regexp.MustCompile(`^camera\.(.+?)_(high|medium|low)_resolution_channel$`)
	unifiPackageRe = regexp.MustCompile(`^camera\.(.+?)_package_camera$`)
)

type UniFiAdapter struct {
	platform Platform
}

type unifiDevice struct {
	name     string
	channels map[string]*models.Entity // high / medium / low / package
}

func NewUniFiAdapter(p Platform) *UniFiAdapter {
	return &UniFiAdapter{platform: p}
}

func (a *UniFiAdapter) Source() Source { return SourceUniFiProtect }

func (a *UniFiAdapter) Available() bool { return a.platform != nil }

func (a *UniFiAdapter) Discover(ctx context.Context) ([]Camera, []Warning) {
	entities, err := a.platform.ListCameraEntities(ctx)
	if err != nil {
		return nil, []Warning{warnf(SourceUniFiProtect, "registry", "entity lookup failed: %v", err)}
	}

	devices := groupUniFiEntities(entities)
	if len(devices) == 0 {
		return nil, nil
	}

	var cameras []Camera
	var warnings []Warning

	for _, dev := range devices {
		cam, warns := a.buildCamera(ctx, dev)
		warnings = append(warnings, warns...)
		if cam != nil {
			cameras = append(cameras, *cam)
		}

		// Doorbells expose an auxiliary package camera; it becomes its own
		// descriptor, never merged into the primary.
		if pkg := dev.channels["package"]; pkg != nil {
			pkgCam, warns := a.buildPackageCamera(ctx, dev, pkg)
			warnings = append(warnings, warns...)
			if pkgCam != nil {
				cameras = append(cameras, *pkgCam)
			}
		}
	}

	log.Printf("unifiprotect: discovered %d cameras from %d devices", len(cameras), len(devices))
	return cameras, warnings
}

func groupUniFiEntities(entities []models.Entity) []*unifiDevice {
	byDevice := make(map[string]*unifiDevice)
	var order []string

	for i := range entities {
		e := entities[i]
		if e.Platform != string(SourceUniFiProtect) || e.Disabled {
			continue
		}
		if strings.Contains(e.EntityID, "_insecure") {
			continue
		}

		var name, channel string
		if m := unifiChannelRe.FindStringSubmatch(e.EntityID); m != nil {
			name, channel = m[1], m[2]
		} else if m := unifiPackageRe.FindStringSubmatch(e.EntityID); m != nil {
			name, channel = m[1], "package"
		} else {
			continue
		}

		key := e.DeviceID
		if key == "" {
			key = name
		}
		dev, ok := byDevice[key]
		if !ok {
			dev = &unifiDevice{name: name, channels: make(map[string]*models.Entity)}
			byDevice[key] = dev
			order = append(order, key)
		}
		dev.channels[channel] = &entities[i]
	}

	devices := make([]*unifiDevice, 0, len(order))
	for _, key := range order {
		devices = append(devices, byDevice[key])
	}
	return devices
}

func (a *UniFiAdapter) buildCamera(ctx context.Context, dev *unifiDevice) (*Camera, []Warning) {
	high := dev.channels["high"]
	if high == nil {
		// Nothing to record from; not an error, the device may only expose
		// a package camera.
		return nil, nil
	}

	recordURL, err := a.platform.StreamSource(ctx, high.EntityID)
	if err != nil {
		return nil, []Warning{warnf(SourceUniFiProtect, dev.name, "no stream source for %s: %v", high.EntityID, err)}
	}
	recordURL = ensureSrtp(recordURL)

	detectURL := ""
	low := dev.channels["low"]
	if low != nil {
		lowURL, err := a.platform.StreamSource(ctx, low.EntityID)
		if err == nil {
			detectURL = ensureSrtp(lowURL)
		}
	}

	friendly := unifiFriendlyName(high.FriendlyName, dev.name)
	dimSource := low
	if dimSource == nil {
		dimSource = high
	}
	width, height := detectDimensions(dimSource.Width, dimSource.Height)

	cam := &Camera{
		ID:           string(SourceUniFiProtect) + "_" + dev.name,
		Name:         dev.name,
		FriendlyName: friendly,
		Source:       SourceUniFiProtect,
		RecordURL:    recordURL,
		DetectURL:    detectURL,
		Width:        width,
		Height:       height,
		Area:         high.Area,
		Available:    high.Available,
	}
	cam.ApplyDefaults()
	return cam, nil
}

func (a *UniFiAdapter) buildPackageCamera(ctx context.Context, dev *unifiDevice, pkg *models.Entity) (*Camera, []Warning) {
	streamURL, err := a.platform.StreamSource(ctx, pkg.EntityID)
	if err != nil {
		return nil, []Warning{warnf(SourceUniFiProtect, dev.name+"_package", "no package stream source: %v", err)}
	}
	streamURL = ensureSrtp(streamURL)

	friendly := pkg.FriendlyName
	if friendly == "" {
		friendly = titleCase(dev.name) + " Package"
	} else {
		friendly = strings.Replace(friendly, " package camera", " Package", 1)
	}

	name := dev.name + "_package"
	cam := &Camera{
		ID:           string(SourceUniFiProtect) + "_" + name,
		Name:         name,
		FriendlyName: friendly,
		Source:       SourceUniFiProtect,
		RecordURL:    streamURL,
		// Package cameras are small fixed-view sensors
		Width:     400,
		Height:    300,
		Area:      pkg.Area,
		Available: pkg.Available,
	}
	cam.ApplyDefaults()
	return cam, nil
}

// ensureSrtp appends the SRTP marker the NVR needs on secure stream URLs.
func ensureSrtp(url string) string {
	if strings.HasPrefix(url, "rtsps://") && !strings.Contains(url, "?enableSrtp") {
		return url + "?enableSrtp"
	}
	return url
}

func unifiFriendlyName(friendly, fallback string) string {
	if friendly == "" {
		return titleCase(fallback)
	}
	friendly = strings.Replace(friendly, " High resolution channel", "", 1)
	return strings.Replace(friendly, " high resolution channel", "", 1)
}

func titleCase(name string) string {
	parts := strings.Split(name, "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

// detectDimensions caps the detection resolution at 640 wide, preserving the
// aspect ratio. Oversized detect streams waste detector cycles.
func detectDimensions(width, height int) (int, int) {
	if width == 0 || height == 0 {
		return DefaultDetectWidth, DefaultDetectHeight
	}
	if width > DefaultDetectWidth {
		ratio := float64(height) / float64(width)
		return DefaultDetectWidth, int(float64(DefaultDetectWidth) * ratio)
	}
	return width, height
}
