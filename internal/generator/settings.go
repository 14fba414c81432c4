package generator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Version selects the target NVR release and with it the document shape.
type Version string

const (
	// V014 emits the flat retention layout.
	V014 Version = "0.14"
	// V017 emits tiered retention and global AI-description config.
	V017 Version = "0.17"
)

// Tiered reports whether this version uses the tiered retention layout and
// global AI-description placement.
func (v Version) Tiered() bool { return v == V017 }

// Settings is everything the generator needs besides the cameras themselves.
type Settings struct {
	Version Version `json:"frigate_version" mapstructure:"frigate_version" validate:"required,oneof=0.14 0.17"`

	DetectorType   string `json:"detector_type" mapstructure:"detector_type" validate:"required,oneof=edgetpu cpu openvino tensorrt onnx yolov9"`
	DetectorDevice string `json:"detector_device" mapstructure:"detector_device"`
	Hwaccel        string `json:"hwaccel" mapstructure:"hwaccel" validate:"required,oneof=vaapi cuda qsv rkmpp v4l2m2m none"`

	NetworkInterfaces []string `json:"network_interfaces" mapstructure:"network_interfaces"`

	MQTT MQTTSettings `json:"mqtt" mapstructure:"mqtt"`

	AudioDetection       bool   `json:"audio_detection" mapstructure:"audio_detection"`
	FaceRecognition      bool   `json:"face_recognition" mapstructure:"face_recognition"`
	FaceRecognitionModel string `json:"face_recognition_model" mapstructure:"face_recognition_model" validate:"omitempty,oneof=small large"`
	SemanticSearch       bool   `json:"semantic_search" mapstructure:"semantic_search"`
	SemanticSearchModel  string `json:"semantic_search_model" mapstructure:"semantic_search_model" validate:"omitempty,oneof=small large"`
	LPR                  bool   `json:"lpr" mapstructure:"lpr"`
	BirdClassification   bool   `json:"bird_classification" mapstructure:"bird_classification"`

	Birdseye     bool   `json:"birdseye_enabled" mapstructure:"birdseye_enabled"`
	BirdseyeMode string `json:"birdseye_mode" mapstructure:"birdseye_mode" validate:"omitempty,oneof=continuous motion objects"`

	GenAI GenAISettings `json:"genai" mapstructure:"genai"`

	Retain RetainSettings `json:"retain" mapstructure:"retain"`

	AutoGroups   bool                `json:"auto_groups_from_areas" mapstructure:"auto_groups_from_areas"`
	ManualGroups map[string][]string `json:"manual_groups" mapstructure:"manual_groups"`
}

type MQTTSettings struct {
	Host     string `json:"host" mapstructure:"host" validate:"required"`
	Port     int    `json:"port" mapstructure:"port" validate:"gte=0,lte=65535"`
	User     string `json:"user" mapstructure:"user"`
	Password string `json:"password" mapstructure:"password"`
}

type GenAISettings struct {
	Enabled  bool   `json:"enabled" mapstructure:"enabled"`
	Provider string `json:"provider" mapstructure:"provider" validate:"omitempty,oneof=ollama gemini openai azure_openai"`
	Model    string `json:"model" mapstructure:"model"`
	APIKey   string `json:"api_key" mapstructure:"api_key"`
	BaseURL  string `json:"base_url" mapstructure:"base_url"`
}

// RetainSettings are retention durations in days.
type RetainSettings struct {
	Alerts     int `json:"alerts" mapstructure:"alerts" validate:"gte=0"`
	Detections int `json:"detections" mapstructure:"detections" validate:"gte=0"`
	Motion     int `json:"motion" mapstructure:"motion" validate:"gte=0"`
	Snapshots  int `json:"snapshots" mapstructure:"snapshots" validate:"gte=0"`
}

// DefaultSettings mirrors the defaults the setup flow seeds.
func DefaultSettings() Settings {
	return Settings{
		Version:              V014,
		DetectorType:         "edgetpu",
		DetectorDevice:       "usb",
		Hwaccel:              "vaapi",
		NetworkInterfaces:    []string{"eth0"},
		MQTT:                 MQTTSettings{Host: "localhost", Port: 1883},
		AudioDetection:       true,
		FaceRecognitionModel: "large",
		SemanticSearchModel:  "large",
		Birdseye:             true,
		BirdseyeMode:         "objects",
		GenAI:                GenAISettings{Provider: "ollama"},
		Retain:               RetainSettings{Alerts: 30, Detections: 30, Motion: 7, Snapshots: 30},
		AutoGroups:           true,
	}
}

// ValidationError is the typed generation-time failure for invalid or
// conflicting settings. Generation is never retried on it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid settings: %s: %s", e.Field, e.Reason)
}

var validate = validator.New()

// Validate checks field constraints and version-specific conflicts.
func (s *Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &ValidationError{
				Field:  verrs[0].Namespace(),
				Reason: fmt.Sprintf("failed %q constraint", verrs[0].Tag()),
			}
		}
		return &ValidationError{Field: "settings", Reason: err.Error()}
	}

	// Feature/version conflicts the tag grammar cannot express.
	if s.DetectorType == "yolov9" && !s.Version.Tiered() {
		return &ValidationError{Field: "detector_type", Reason: "yolov9 requires version 0.17"}
	}
	if s.GenAI.Enabled && s.GenAI.Provider == "" {
		return &ValidationError{Field: "genai.provider", Reason: "required when genai is enabled"}
	}
	if s.GenAI.Enabled && s.GenAI.Provider != "ollama" && s.GenAI.APIKey == "" {
		return &ValidationError{Field: "genai.api_key", Reason: "required for hosted providers"}
	}

	return nil
}
