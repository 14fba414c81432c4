package discovery

import (
	"context"
	"log"
	"net/url"
)

// GenericAdapter covers standalone RTSP cameras added through the platform's
// generic-camera integration. The platform already holds the stream address;
// credentials, when configured per host, are embedded into the URL with
// percent-encoding.
type GenericAdapter struct {
	platform Platform
	creds    map[string]Credential // keyed by host
}

func NewGenericAdapter(p Platform, creds map[string]Credential) *GenericAdapter {
	return &GenericAdapter{platform: p, creds: creds}
}

func (a *GenericAdapter) Source() Source { return SourceGeneric }

func (a *GenericAdapter) Available() bool { return a.platform != nil }

func (a *GenericAdapter) Discover(ctx context.Context) ([]Camera, []Warning) {
	entities, err := a.platform.ListCameraEntities(ctx)
	if err != nil {
		return nil, []Warning{warnf(SourceGeneric, "registry", "entity lookup failed: %v", err)}
	}

	var cameras []Camera
	var warnings []Warning

	for _, e := range entities {
		if e.Platform != string(SourceGeneric) || e.Disabled {
			continue
		}

		streamURL, err := a.platform.StreamSource(ctx, e.EntityID)
		if err != nil {
			warnings = append(warnings, warnf(SourceGeneric, e.EntityID, "no stream source: %v", err))
			continue
		}

		recordURL, err := a.withCredentials(streamURL)
		if err != nil {
			warnings = append(warnings, warnf(SourceGeneric, e.EntityID, "malformed stream URL: %v", err))
			continue
		}

		friendly := e.FriendlyName
		if friendly == "" {
			friendly = e.EntityID
		}
		name := NormalizeName(friendly)

		cam := Camera{
			ID:           string(SourceGeneric) + "_" + name,
			Name:         name,
			FriendlyName: friendly,
			Source:       SourceGeneric,
			RecordURL:    recordURL,
			Area:         e.Area,
			Available:    e.Available,
		}
		cam.ApplyDefaults()
		cameras = append(cameras, cam)
	}

	log.Printf("generic: discovered %d cameras", len(cameras))
	return cameras, warnings
}

// withCredentials rebuilds the URL with the host's configured credentials in
// the userinfo part. URLs that already carry credentials are left alone.
func (a *GenericAdapter) withCredentials(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if parsed.User != nil || parsed.Hostname() == "" {
		return rawURL, nil
	}
	cred, ok := a.creds[parsed.Hostname()]
	if !ok || cred.Username == "" {
		return rawURL, nil
	}

	authority := EncodeCredential(cred.Username) + ":" + EncodeCredential(cred.Password) + "@" + parsed.Hostname()
	if parsed.Port() != "" {
		authority += ":" + parsed.Port()
	}

	rebuilt := parsed.Scheme + "://" + authority + parsed.EscapedPath()
	if parsed.RawQuery != "" {
		rebuilt += "?" + parsed.RawQuery
	}
	// Sanity: the rebuilt address must still parse.
	if _, err := url.Parse(rebuilt); err != nil {
		return "", err
	}
	return rebuilt, nil
}
