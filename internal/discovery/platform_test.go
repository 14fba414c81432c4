package discovery

import (
	"context"
	"fmt"

	"github.com/ojiudezue/frigate-config-builder/pkg/models"
)

// fakePlatform serves canned entity and stream lookups to adapter tests.
type fakePlatform struct {
	entities []models.Entity
	streams  map[string]string
	err      error
}

func (f *fakePlatform) ListCameraEntities(_ context.Context) ([]models.Entity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entities, nil
}

func (f *fakePlatform) StreamSource(_ context.Context, entityID string) (string, error) {
	if u, ok := f.streams[entityID]; ok {
		return u, nil
	}
	return "", fmt.Errorf("no stream source for %s", entityID)
}
