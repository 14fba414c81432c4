package discovery

import (
	"context"
	"fmt"

	"github.com/ojiudezue/frigate-config-builder/pkg/models"
)

// Platform is the subset of the host automation platform API the adapters
// consume: the entity directory and the stream-address resolution call.
type Platform interface {
	ListCameraEntities(ctx context.Context) ([]models.Entity, error)
	StreamSource(ctx context.Context, entityID string) (string, error)
}

// Warning records a per-item discovery failure. Cameras that cannot be fully
// resolved are dropped and reported here instead of aborting the adapter.
type Warning struct {
	Source  Source `json:"source"`
	Item    string `json:"item"`
	Message string `json:"message"`
}

// Adapter translates one vendor family's platform representation into
// normalized cameras. Discover never fails as a whole: per-item problems
// come back as warnings and an absent vendor integration yields an empty
// result.
type Adapter interface {
	Source() Source
	Available() bool
	Discover(ctx context.Context) ([]Camera, []Warning)
}

// Credential is a per-host username/password override from user settings.
type Credential struct {
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
}

func warnf(source Source, item, format string, args ...any) Warning {
	return Warning{Source: source, Item: item, Message: fmt.Sprintf(format, args...)}
}
