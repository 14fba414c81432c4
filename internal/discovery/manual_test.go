package discovery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualCameras(t *testing.T) {
	a := NewManualAdapter([]ManualCamera{
		{
			Name:      "Attic Cam",
			RecordURL: "rtsp://10.0.0.50:554/main",
			DetectURL: "rtsp://10.0.0.50:554/sub",
			Width:     1024,
			Height:    576,
			Area:      "Attic",
		},
	})

	cams, warns := a.Discover(context.Background())
	require.Empty(t, warns)
	require.Len(t, cams, 1)

	cam := cams[0]
	assert.Equal(t, "manual_attic_cam", cam.ID)
	assert.Equal(t, "attic_cam", cam.Name)
	assert.Equal(t, "Attic Cam", cam.FriendlyName)
	assert.Equal(t, 1024, cam.Width)
	assert.Equal(t, DefaultDetectFPS, cam.FPS)
	assert.True(t, cam.Available, "manual cameras are always available")
}

func TestManualURLValidation(t *testing.T) {
	a := NewManualAdapter([]ManualCamera{
		{Name: "NoScheme", RecordURL: "10.0.0.51/main"},
		{Name: "NoHost", RecordURL: "rtsp:///main"},
		{Name: "Empty"},
		{RecordURL: "rtsp://10.0.0.52:554/main"},
		{Name: "OK", RecordURL: "rtsp://10.0.0.53:554/main"},
	})

	cams, warns := a.Discover(context.Background())
	require.Len(t, cams, 1)
	assert.Equal(t, "ok", cams[0].Name)
	assert.Len(t, warns, 4)
}

func TestManualBadDetectURLDropsCamera(t *testing.T) {
	a := NewManualAdapter([]ManualCamera{
		{Name: "Cam", RecordURL: "rtsp://10.0.0.54:554/main", DetectURL: "not-a-url"},
	})

	cams, warns := a.Discover(context.Background())
	assert.Empty(t, cams)
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0].Message, "detect_url")
}

func TestManualAlwaysAvailable(t *testing.T) {
	assert.True(t, NewManualAdapter(nil).Available())
}
