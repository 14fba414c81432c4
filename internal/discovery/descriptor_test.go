package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults(t *testing.T) {
	cam := Camera{
		Name:      "front_door",
		RecordURL: "rtsp://10.0.0.5:554/main",
	}
	cam.ApplyDefaults()

	assert.Equal(t, "rtsp://10.0.0.5:554/main", cam.DetectURL, "detect falls back to record")
	assert.Equal(t, "rtsp://10.0.0.5:554/main", cam.LiveViewURL)
	assert.Equal(t, DefaultDetectWidth, cam.Width)
	assert.Equal(t, DefaultDetectHeight, cam.Height)
	assert.Equal(t, DefaultDetectFPS, cam.FPS)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cam := Camera{
		RecordURL: "rtsp://10.0.0.5:554/main",
		DetectURL: "rtsp://10.0.0.5:554/sub",
		Width:     1280,
		Height:    720,
		FPS:       10,
	}
	cam.ApplyDefaults()

	assert.Equal(t, "rtsp://10.0.0.5:554/sub", cam.DetectURL)
	assert.Equal(t, 1280, cam.Width)
	assert.Equal(t, 720, cam.Height)
	assert.Equal(t, 10, cam.FPS)
}

func TestLiveViewFromRecord(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"rtsps://10.0.0.1:7441/abcDEF?enableSrtp", "rtspx://10.0.0.1:7441/abcDEF"},
		{"rtsps://10.0.0.1:7441/abcDEF", "rtspx://10.0.0.1:7441/abcDEF"},
		{"rtsp://10.0.0.5:554/main", "rtsp://10.0.0.5:554/main"},
		{"rtsp://10.0.0.5:554/main?channel=1", "rtsp://10.0.0.5:554/main"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, LiveViewFromRecord(tc.in), tc.in)
	}
}

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Front Door", "front_door"},
		{"Back-Yard (East)", "back_yard_east"},
		{"  Garage  ", "garage"},
		{"Déck Cam", "d_ck_cam"},
		{"already_normal", "already_normal"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeName(tc.in), tc.in)
	}
}

func TestEncodeCredential(t *testing.T) {
	assert.Equal(t, "P%40ss%5E1", EncodeCredential("P@ss^1"))
	assert.Equal(t, "pass%20word", EncodeCredential("pass word"))
	assert.Equal(t, "plain", EncodeCredential("plain"))
}
