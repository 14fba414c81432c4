package discovery

import (
	"net/url"
	"regexp"
	"strings"
)

// Source identifies which vendor adapter produced a camera.
type Source string

const (
	SourceUniFiProtect Source = "unifiprotect"
	SourceAmcrest      Source = "amcrest"
	SourceReolink      Source = "reolink"
	SourceGeneric      Source = "generic"
	SourceManual       Source = "manual"
)

// Detection resolution defaults applied when a vendor reports nothing better.
const (
	DefaultDetectWidth  = 640
	DefaultDetectHeight = 360
	DefaultDetectFPS    = 5
)

// Camera is the normalized record of one discoverable camera. Every adapter
// produces these regardless of how the vendor addresses its streams.
type Camera struct {
	ID           string `json:"id"`   // stable key: "{source}_{name}"
	Name         string `json:"name"` // normalized, used as the document key
	FriendlyName string `json:"friendly_name"`
	Source       Source `json:"source"`

	RecordURL   string `json:"record_url"`    // full resolution, for storage
	DetectURL   string `json:"detect_url"`    // reduced resolution, for detection
	LiveViewURL string `json:"live_view_url"` // low-latency live viewing

	Width  int `json:"width"`
	Height int `json:"height"`
	FPS    int `json:"fps"`

	Area      string `json:"area,omitempty"`
	Available bool   `json:"available"`
	IsNew     bool   `json:"is_new"`
}

// ApplyDefaults fills the derived URL fields and resolution hints.
// detect falls back to the record stream; live view is derived from the
// record URL by the rtsps->rtspx transform.
func (c *Camera) ApplyDefaults() {
	if c.DetectURL == "" {
		c.DetectURL = c.RecordURL
	}
	if c.LiveViewURL == "" {
		c.LiveViewURL = LiveViewFromRecord(c.RecordURL)
	}
	if c.Width == 0 {
		c.Width = DefaultDetectWidth
	}
	if c.Height == 0 {
		c.Height = DefaultDetectHeight
	}
	if c.FPS == 0 {
		c.FPS = DefaultDetectFPS
	}
}

var (
	nonAlnum    = regexp.MustCompile(`[^a-z0-9]+`)
	underscores = regexp.MustCompile(`_+`)
)

// NormalizeName converts a display label into a document-safe camera name:
// lowercase alphanumerics with single underscores.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = nonAlnum.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")
	return underscores.ReplaceAllString(name, "_")
}

// EncodeCredential percent-encodes a username or password for embedding in a
// stream URL ("@" -> "%40", "^" -> "%5E", space -> "%20").
func EncodeCredential(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// LiveViewFromRecord derives a live-view address from a record URL:
// rtsps:// becomes rtspx:// and query parameters are dropped.
func LiveViewFromRecord(recordURL string) string {
	liveURL := strings.Replace(recordURL, "rtsps://", "rtspx://", 1)
	if i := strings.Index(liveURL, "?"); i >= 0 {
		liveURL = liveURL[:i]
	}
	return liveURL
}
