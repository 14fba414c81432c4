package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ojiudezue/frigate-config-builder/internal/discovery"
)

func testCameras() []discovery.Camera {
	return []discovery.Camera{
		{
			ID:           "unifiprotect_front_door",
			Name:         "front_door",
			FriendlyName: "Front Door",
			Source:       discovery.SourceUniFiProtect,
			RecordURL:    "rtsps://10.0.0.1:7441/XYZ?enableSrtp",
			DetectURL:    "rtsps://10.0.0.1:7441/ABC?enableSrtp",
			LiveViewURL:  "rtspx://10.0.0.1:7441/XYZ",
			Width:        640,
			Height:       360,
			FPS:          5,
			Area:         "Porch",
			Available:    true,
		},
		{
			ID:           "manual_attic",
			Name:         "attic",
			FriendlyName: "Attic",
			Source:       discovery.SourceManual,
			RecordURL:    "rtsp://10.0.0.50:554/main",
			DetectURL:    "rtsp://10.0.0.50:554/main",
			LiveViewURL:  "rtsp://10.0.0.50:554/main",
			Width:        640,
			Height:       360,
			FPS:          5,
			Available:    true,
		},
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	s := DefaultSettings()
	cams := testCameras()

	first, err := Generate(s, cams)
	require.NoError(t, err)
	second, err := Generate(s, cams)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical inputs must yield byte-identical output")
}

func TestGenerateRejectsInvalidSettings(t *testing.T) {
	s := DefaultSettings()
	s.Hwaccel = "warp-drive"

	_, err := Generate(s, testCameras())
	require.Error(t, err)

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestBuildFlatRetention(t *testing.T) {
	s := DefaultSettings()
	s.Version = V014

	doc, err := Build(s, testCameras())
	require.NoError(t, err)

	require.NotNil(t, doc.Record.Retain)
	assert.Equal(t, s.Retain.Motion, doc.Record.Retain.Days)
	assert.Equal(t, "motion", doc.Record.Retain.Mode)
	assert.Nil(t, doc.Record.Continuous)
	assert.Nil(t, doc.Record.Alerts)
	assert.Nil(t, doc.Record.Detections)

	assert.Nil(t, doc.FFmpeg.GPU)
	assert.Nil(t, doc.Detect.Stationary)
	assert.Equal(t, "0.14", doc.Version)
}

func TestBuildTieredRetention(t *testing.T) {
	s := DefaultSettings()
	s.Version = V017

	doc, err := Build(s, testCameras())
	require.NoError(t, err)

	assert.Nil(t, doc.Record.Retain)
	require.NotNil(t, doc.Record.Continuous)
	assert.Equal(t, 0, doc.Record.Continuous.Days)
	require.NotNil(t, doc.Record.Motion)
	assert.Equal(t, s.Retain.Motion, doc.Record.Motion.Days)
	require.NotNil(t, doc.Record.Alerts)
	assert.Equal(t, s.Retain.Alerts, doc.Record.Alerts.Retain.Days)
	assert.Equal(t, 5, doc.Record.Alerts.PreCapture)
	require.NotNil(t, doc.Record.Detections)
	assert.Equal(t, s.Retain.Detections, doc.Record.Detections.Retain.Days)

	require.NotNil(t, doc.FFmpeg.GPU)
	require.NotNil(t, doc.Detect.Stationary)
	assert.NotZero(t, doc.Review.Alerts.CutoffTime)
	require.NotNil(t, doc.Birdseye)
	assert.NotNil(t, doc.Birdseye.IdleHeartbeatFPS)
}

func TestBuildSplitsRolesAcrossStreams(t *testing.T) {
	doc, err := Build(DefaultSettings(), testCameras())
	require.NoError(t, err)

	front := doc.Cameras["front_door"]
	require.Len(t, front.FFmpeg.Inputs, 2)
	assert.Equal(t, []string{"record", "audio"}, front.FFmpeg.Inputs[0].Roles)
	assert.Equal(t, []string{"detect"}, front.FFmpeg.Inputs[1].Roles)

	attic := doc.Cameras["attic"]
	require.Len(t, attic.FFmpeg.Inputs, 1)
	assert.Equal(t, []string{"record", "audio", "detect"}, attic.FFmpeg.Inputs[0].Roles)
}

func TestBuildRecordPresetsPerSource(t *testing.T) {
	doc, err := Build(DefaultSettings(), testCameras())
	require.NoError(t, err)

	assert.Equal(t, "preset-record-ubiquiti", doc.Cameras["front_door"].FFmpeg.OutputArgs.Record)
	assert.Equal(t, "preset-record-generic", doc.Cameras["attic"].FFmpeg.OutputArgs.Record)
}

func TestBuildGo2RTCStreams(t *testing.T) {
	doc, err := Build(DefaultSettings(), testCameras())
	require.NoError(t, err)

	require.Contains(t, doc.Go2RTC.Streams, "front_door")
	assert.Equal(t, []string{"rtspx://10.0.0.1:7441/XYZ"}, doc.Go2RTC.Streams["front_door"])
}

func TestBuildGenAIPlacementByVersion(t *testing.T) {
	s := DefaultSettings()
	s.GenAI.Enabled = true
	s.GenAI.Provider = "ollama"

	// Flat layout: per-camera genai blocks, no global section.
	doc, err := Build(s, testCameras())
	require.NoError(t, err)
	assert.Nil(t, doc.GenAI)
	assert.Nil(t, doc.Objects)
	require.NotNil(t, doc.Cameras["front_door"].GenAI)
	assert.Contains(t, doc.Cameras["front_door"].GenAI.Prompt, "{label}")

	// Tiered layout: global genai and objects sections, no per-camera block.
	s.Version = V017
	doc, err = Build(s, testCameras())
	require.NoError(t, err)
	require.NotNil(t, doc.GenAI)
	assert.Equal(t, "ollama", doc.GenAI.Provider)
	require.NotNil(t, doc.Objects)
	require.NotNil(t, doc.Objects.GenAI)
	assert.Nil(t, doc.Cameras["front_door"].GenAI)
	require.NotNil(t, doc.Review.GenAI)
	assert.True(t, doc.Review.GenAI.Alerts)
}

func TestBuildOptionalSectionsAbsentByDefault(t *testing.T) {
	s := DefaultSettings()
	s.AudioDetection = false
	s.Birdseye = false

	out, err := Generate(s, testCameras())
	require.NoError(t, err)

	for _, section := range []string{"audio:", "birdseye:", "semantic_search:", "face_recognition:", "lpr:", "classification:", "genai:"} {
		assert.NotContains(t, out, "\n"+section, section)
	}
}

func TestBuildFeatureSections(t *testing.T) {
	s := DefaultSettings()
	s.Version = V017
	s.SemanticSearch = true
	s.FaceRecognition = true
	s.LPR = true
	s.BirdClassification = true

	doc, err := Build(s, testCameras())
	require.NoError(t, err)

	require.NotNil(t, doc.SemanticSearch)
	assert.Equal(t, "large", doc.SemanticSearch.ModelSize)
	require.NotNil(t, doc.FaceRecognition)
	assert.True(t, doc.FaceRecognition.Enabled)
	require.NotNil(t, doc.LPR)
	require.NotNil(t, doc.Classification)
	assert.True(t, doc.Classification.Bird.Enabled)
	require.NotNil(t, doc.Audio)
	assert.Contains(t, doc.Audio.Listen, "bark")
}

func TestBuildAutoGroupsFromAreas(t *testing.T) {
	doc, err := Build(DefaultSettings(), testCameras())
	require.NoError(t, err)

	require.Contains(t, doc.CameraGroups, "Porch")
	assert.Equal(t, []string{"front_door"}, doc.CameraGroups["Porch"].Cameras)

	require.Contains(t, doc.CameraGroups, "Ungrouped")
	assert.Equal(t, []string{"attic"}, doc.CameraGroups["Ungrouped"].Cameras)

	// Sorted labels drive ordering.
	assert.Equal(t, 1, doc.CameraGroups["Porch"].Order)
	assert.Equal(t, 2, doc.CameraGroups["Ungrouped"].Order)
}

func TestBuildManualGroupOverridesAuto(t *testing.T) {
	s := DefaultSettings()
	s.ManualGroups = map[string][]string{
		"Porch":  {"front_door", "attic"},
		"Custom": {"attic"},
	}

	doc, err := Build(s, testCameras())
	require.NoError(t, err)

	// Collision keeps the automatic slot's order but the manual members.
	assert.Equal(t, 1, doc.CameraGroups["Porch"].Order)
	assert.Equal(t, []string{"front_door", "attic"}, doc.CameraGroups["Porch"].Cameras)

	assert.Equal(t, 3, doc.CameraGroups["Custom"].Order)
}

func TestGeneratedDocumentRoundTrips(t *testing.T) {
	out, err := Generate(DefaultSettings(), testCameras())
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &parsed))

	cameras, ok := parsed["cameras"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, cameras, "front_door")
	assert.Contains(t, cameras, "attic")

	assert.Equal(t, "0.14", parsed["version"])
	assert.Contains(t, parsed, "mqtt")
	assert.Contains(t, parsed, "go2rtc")

	// Section order is fixed: mqtt leads, version closes.
	assert.True(t, strings.HasPrefix(out, "mqtt:"), "document starts with mqtt")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), `version: "0.14"`), "document ends with version")
}
