package generator

import (
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/ojiudezue/frigate-config-builder/internal/discovery"
)

const defaultGroup = "Ungrouped"

const genaiPrompt = "Describe the {label} in the sequence of images with as much detail as possible. Do not describe the background."

// Generate compiles builder settings and the selected descriptors into the
// target NVR's configuration document. It is a pure function: no I/O, and
// identical inputs yield byte-identical output.
func Generate(settings Settings, cameras []discovery.Camera) (string, error) {
	doc, err := Build(settings, cameras)
	if err != nil {
		return "", err
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Build assembles the document tree without serializing it.
func Build(settings Settings, cameras []discovery.Camera) (*Document, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	tiered := settings.Version.Tiered()

	doc := &Document{
		MQTT: MQTTSection{
			Host:     settings.MQTT.Host,
			Port:     settings.MQTT.Port,
			User:     settings.MQTT.User,
			Password: settings.MQTT.Password,
		},
		Detectors: map[string]Detector{
			"default": {Type: settings.DetectorType, Device: settings.DetectorDevice},
		},
		FFmpeg:    buildFFmpeg(settings, tiered),
		Detect:    buildDetect(tiered),
		Record:    buildRecord(settings, tiered),
		Snapshots: buildSnapshots(settings),
		Review:    buildReview(settings, tiered),
		Go2RTC:    buildGo2RTC(cameras),
		Cameras:   buildCameras(settings, cameras),
		Telemetry: TelemetrySection{NetworkInterfaces: settings.NetworkInterfaces},
		Version:   string(settings.Version),
	}

	if settings.AudioDetection {
		doc.Audio = &AudioSection{
			Enabled: true,
			Listen:  []string{"bark", "fire_alarm", "scream", "speech", "yell"},
		}
	}
	if settings.Birdseye {
		doc.Birdseye = buildBirdseye(settings, tiered)
	}
	if settings.SemanticSearch {
		doc.SemanticSearch = &ModelFeature{Enabled: true, ModelSize: settings.SemanticSearchModel}
	}
	if settings.FaceRecognition {
		doc.FaceRecognition = &ModelFeature{Enabled: true, ModelSize: settings.FaceRecognitionModel}
	}
	if settings.LPR {
		doc.LPR = &EnabledFeature{Enabled: true}
	}
	if settings.BirdClassification {
		doc.Classification = &ClassificationSection{Bird: EnabledFeature{Enabled: true}}
	}

	// AI descriptions: tiered versions configure the provider globally and
	// attach per-object settings under objects; the flat layout instead
	// carries a genai block inside every camera entry (see buildCameras).
	if settings.GenAI.Enabled && tiered {
		doc.GenAI = &GenAISection{
			Provider: settings.GenAI.Provider,
			Model:    settings.GenAI.Model,
			APIKey:   settings.GenAI.APIKey,
			BaseURL:  settings.GenAI.BaseURL,
		}
		doc.Objects = &ObjectsSection{
			Track: []string{"person", "car", "dog", "cat"},
			GenAI: objectsGenAISpec(),
		}
	}

	if groups := buildGroups(settings, cameras); len(groups) > 0 {
		doc.CameraGroups = groups
	}

	return doc, nil
}

func buildFFmpeg(settings Settings, tiered bool) FFmpegSection {
	section := FFmpegSection{HwaccelArgs: hwaccelPreset(settings.Hwaccel)}
	if tiered {
		gpu := 0
		section.GPU = &gpu
	}
	return section
}

func buildDetect(tiered bool) DetectSection {
	// Detection defaults to off in the target NVR; it must be switched on
	// globally or nothing is ever detected.
	section := DetectSection{Enabled: true, FPS: discovery.DefaultDetectFPS}
	if tiered {
		section.Stationary = &StationarySection{Classifier: true, Interval: 50, Threshold: 50}
	}
	return section
}

func buildRecord(settings Settings, tiered bool) RecordSection {
	section := RecordSection{Enabled: true, ExpireInterval: 60}

	if !tiered {
		// Flat layout: one retention block, no tiers.
		section.Retain = &RetainSpec{Days: settings.Retain.Motion, Mode: "motion"}
		return section
	}

	section.Continuous = &DaysSpec{Days: 0}
	section.Motion = &DaysSpec{Days: settings.Retain.Motion}
	section.Alerts = &RetainTier{
		PreCapture:  5,
		PostCapture: 5,
		Retain:      RetainSpec{Days: settings.Retain.Alerts, Mode: "motion"},
	}
	section.Detections = &RetainTier{
		PreCapture:  5,
		PostCapture: 5,
		Retain:      RetainSpec{Days: settings.Retain.Detections, Mode: "motion"},
	}
	return section
}

func buildSnapshots(settings Settings) SnapshotsSection {
	return SnapshotsSection{
		Enabled:     true,
		CleanCopy:   true,
		Timestamp:   true,
		BoundingBox: true,
		Retain:      SnapshotRetain{Default: settings.Retain.Snapshots},
	}
}

func buildReview(settings Settings, tiered bool) ReviewSection {
	section := ReviewSection{
		Alerts:     ReviewTier{Enabled: true, Labels: []string{"car", "person"}},
		Detections: ReviewTier{Enabled: true, Labels: []string{"car", "person"}},
	}
	if tiered {
		section.Alerts.CutoffTime = 40
		section.Detections.CutoffTime = 30
		if settings.GenAI.Enabled {
			section.GenAI = &ReviewGenAISpec{
				Enabled:     true,
				Alerts:      true,
				Detections:  false,
				ImageSource: "preview",
			}
		}
	}
	return section
}

func buildBirdseye(settings Settings, tiered bool) *BirdseyeSection {
	section := &BirdseyeSection{
		Enabled: true,
		Mode:    settings.BirdseyeMode,
		Width:   2560,
		Height:  1440,
		Quality: 8,
	}
	if tiered {
		fps := 0.0
		section.IdleHeartbeatFPS = &fps
	}
	return section
}

func buildGo2RTC(cameras []discovery.Camera) Go2RTCSection {
	streams := make(map[string][]string, len(cameras))
	for _, cam := range cameras {
		if cam.LiveViewURL != "" {
			streams[cam.Name] = []string{cam.LiveViewURL}
		}
	}
	return Go2RTCSection{Streams: streams}
}

func buildCameras(settings Settings, cameras []discovery.Camera) map[string]CameraSection {
	result := make(map[string]CameraSection, len(cameras))
	hwaccel := hwaccelPreset(settings.Hwaccel)
	perCameraGenAI := settings.GenAI.Enabled && !settings.Version.Tiered()

	for _, cam := range cameras {
		var inputs []StreamInput
		if cam.DetectURL != "" && cam.DetectURL != cam.RecordURL {
			// Separate streams get disjoint role sets.
			inputs = []StreamInput{
				{Path: cam.RecordURL, Roles: []string{"record", "audio"}},
				{Path: cam.DetectURL, Roles: []string{"detect"}},
			}
		} else {
			inputs = []StreamInput{
				{Path: cam.RecordURL, Roles: []string{"record", "audio", "detect"}},
			}
		}

		section := CameraSection{
			Enabled: true,
			FFmpeg: CameraFFmpeg{
				Inputs:      inputs,
				HwaccelArgs: hwaccel,
				OutputArgs:  OutputArgs{Record: recordPreset(cam.Source)},
			},
			Detect: CameraDetect{
				Enabled: true,
				Width:   cam.Width,
				Height:  cam.Height,
				FPS:     cam.FPS,
			},
		}
		if perCameraGenAI {
			section.GenAI = objectsGenAISpec()
		}

		result[cam.Name] = section
	}

	return result
}

func objectsGenAISpec() *ObjectsGenAISpec {
	return &ObjectsGenAISpec{
		Enabled:      true,
		UseSnapshot:  false,
		Prompt:       genaiPrompt,
		Objects:      []string{"person", "car"},
		SendTriggers: map[string]bool{"tracked_object_end": true},
	}
}

// buildGroups derives automatic groups from areas, then merges manual group
// declarations after them. A manual label that collides with an automatic
// one replaces it, keeping the automatic slot's order.
func buildGroups(settings Settings, cameras []discovery.Camera) map[string]CameraGroup {
	groups := make(map[string]CameraGroup)
	order := 0

	if settings.AutoGroups {
		byArea := make(map[string][]string)
		for _, cam := range cameras {
			area := cam.Area
			if area == "" {
				area = defaultGroup
			}
			byArea[area] = append(byArea[area], cam.Name)
		}

		labels := make([]string, 0, len(byArea))
		for label := range byArea {
			labels = append(labels, label)
		}
		sort.Strings(labels)

		for _, label := range labels {
			order++
			groups[label] = CameraGroup{Order: order, Icon: "LuCamera", Cameras: byArea[label]}
		}
	}

	manualLabels := make([]string, 0, len(settings.ManualGroups))
	for label := range settings.ManualGroups {
		manualLabels = append(manualLabels, label)
	}
	sort.Strings(manualLabels)

	for _, label := range manualLabels {
		if existing, ok := groups[label]; ok {
			groups[label] = CameraGroup{Order: existing.Order, Icon: "LuCamera", Cameras: settings.ManualGroups[label]}
			continue
		}
		order++
		groups[label] = CameraGroup{Order: order, Icon: "LuCamera", Cameras: settings.ManualGroups[label]}
	}

	return groups
}
