package platform

import (
	"context"
	"fmt"

	"github.com/ojiudezue/frigate-config-builder/pkg/models"
)

// ListCameraEntities returns every camera entity the platform knows about,
// with its vendor tag, parent device, area and liveness state.
func (c *Client) ListCameraEntities(ctx context.Context) ([]models.Entity, error) {
	var respData models.EntityListResponse

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetQueryParam("domain", "camera").
		SetResult(&respData).
		Get("/api/camera_registry")

	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, fmt.Errorf("failed to list camera entities: %s", resp.String())
	}

	return respData.Result.Entities, nil
}
