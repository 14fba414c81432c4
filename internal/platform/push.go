package platform

import (
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

// PushConfig uploads a generated configuration document to the NVR's config
// API and optionally restarts it. The NVR is a separate collaborator so this
// uses its own client, not the platform session.
func PushConfig(frigateURL, configYAML string, restart bool) error {
	base := strings.TrimRight(frigateURL, "/")

	r := resty.New()
	r.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})

	resp, err := r.R().
		SetHeader("Content-Type", "text/plain").
		SetBody(configYAML).
		Post(base + "/api/config/save")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("failed to push config: %s - %s", resp.Status(), resp.String())
	}

	if restart {
		resp, err = r.R().Post(base + "/api/restart")
		if err != nil {
			return err
		}
		if resp.IsError() {
			return fmt.Errorf("config pushed but restart failed: %s", resp.Status())
		}
	}

	return nil
}
