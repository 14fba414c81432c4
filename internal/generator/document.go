package generator

// Typed document tree. Struct field order fixes the section order; camera,
// stream and group maps render with sorted keys, so identical inputs always
// produce identical output.

type Document struct {
	MQTT            MQTTSection               `yaml:"mqtt"`
	Detectors       map[string]Detector       `yaml:"detectors"`
	FFmpeg          FFmpegSection             `yaml:"ffmpeg"`
	Detect          DetectSection             `yaml:"detect"`
	Record          RecordSection             `yaml:"record"`
	Snapshots       SnapshotsSection          `yaml:"snapshots"`
	Review          ReviewSection             `yaml:"review"`
	Audio           *AudioSection             `yaml:"audio,omitempty"`
	Birdseye        *BirdseyeSection          `yaml:"birdseye,omitempty"`
	SemanticSearch  *ModelFeature             `yaml:"semantic_search,omitempty"`
	FaceRecognition *ModelFeature             `yaml:"face_recognition,omitempty"`
	LPR             *EnabledFeature           `yaml:"lpr,omitempty"`
	Classification  *ClassificationSection    `yaml:"classification,omitempty"`
	GenAI           *GenAISection             `yaml:"genai,omitempty"`
	Objects         *ObjectsSection           `yaml:"objects,omitempty"`
	Go2RTC          Go2RTCSection             `yaml:"go2rtc"`
	Cameras         map[string]CameraSection  `yaml:"cameras"`
	CameraGroups    map[string]CameraGroup    `yaml:"camera_groups,omitempty"`
	Telemetry       TelemetrySection          `yaml:"telemetry"`
	Version         string                    `yaml:"version"`
}

type MQTTSection struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user,omitempty"`
	Password string `yaml:"password,omitempty"`
}

type Detector struct {
	Type   string `yaml:"type"`
	Device string `yaml:"device,omitempty"`
}

type FFmpegSection struct {
	HwaccelArgs string `yaml:"hwaccel_args"`
	GPU         *int   `yaml:"gpu,omitempty"` // 0.17+
}

type DetectSection struct {
	Enabled    bool               `yaml:"enabled"`
	FPS        int                `yaml:"fps"`
	Stationary *StationarySection `yaml:"stationary,omitempty"` // 0.17+
}

type StationarySection struct {
	Classifier bool `yaml:"classifier"`
	Interval   int  `yaml:"interval"`
	Threshold  int  `yaml:"threshold"`
}

// RecordSection carries both retention shapes; exactly one is populated.
// Flat (0.14): Retain only. Tiered (0.17): Continuous/Motion/Alerts/Detections.
type RecordSection struct {
	Enabled        bool        `yaml:"enabled"`
	ExpireInterval int         `yaml:"expire_interval"`
	Retain         *RetainSpec `yaml:"retain,omitempty"`
	Continuous     *DaysSpec   `yaml:"continuous,omitempty"`
	Motion         *DaysSpec   `yaml:"motion,omitempty"`
	Alerts         *RetainTier `yaml:"alerts,omitempty"`
	Detections     *RetainTier `yaml:"detections,omitempty"`
}

type RetainSpec struct {
	Days int    `yaml:"days"`
	Mode string `yaml:"mode"`
}

type DaysSpec struct {
	Days int `yaml:"days"`
}

type RetainTier struct {
	PreCapture  int        `yaml:"pre_capture"`
	PostCapture int        `yaml:"post_capture"`
	Retain      RetainSpec `yaml:"retain"`
}

type SnapshotsSection struct {
	Enabled     bool           `yaml:"enabled"`
	CleanCopy   bool           `yaml:"clean_copy"`
	Timestamp   bool           `yaml:"timestamp"`
	BoundingBox bool           `yaml:"bounding_box"`
	Retain      SnapshotRetain `yaml:"retain"`
}

type SnapshotRetain struct {
	Default int `yaml:"default"`
}

type ReviewSection struct {
	Alerts     ReviewTier       `yaml:"alerts"`
	Detections ReviewTier       `yaml:"detections"`
	GenAI      *ReviewGenAISpec `yaml:"genai,omitempty"` // 0.17+
}

type ReviewTier struct {
	Enabled    bool     `yaml:"enabled"`
	Labels     []string `yaml:"labels"`
	CutoffTime int      `yaml:"cutoff_time,omitempty"` // 0.17+
}

type ReviewGenAISpec struct {
	Enabled     bool   `yaml:"enabled"`
	Alerts      bool   `yaml:"alerts"`
	Detections  bool   `yaml:"detections"`
	ImageSource string `yaml:"image_source"`
}

type AudioSection struct {
	Enabled bool     `yaml:"enabled"`
	Listen  []string `yaml:"listen"`
}

type BirdseyeSection struct {
	Enabled          bool     `yaml:"enabled"`
	Mode             string   `yaml:"mode"`
	Width            int      `yaml:"width"`
	Height           int      `yaml:"height"`
	Quality          int      `yaml:"quality"`
	IdleHeartbeatFPS *float64 `yaml:"idle_heartbeat_fps,omitempty"` // 0.17+
}

type ModelFeature struct {
	Enabled   bool   `yaml:"enabled"`
	ModelSize string `yaml:"model_size"`
}

type EnabledFeature struct {
	Enabled bool `yaml:"enabled"`
}

type ClassificationSection struct {
	Bird EnabledFeature `yaml:"bird"`
}

type GenAISection struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
	BaseURL  string `yaml:"base_url,omitempty"`
}

type ObjectsSection struct {
	Track []string          `yaml:"track"`
	GenAI *ObjectsGenAISpec `yaml:"genai,omitempty"`
}

type ObjectsGenAISpec struct {
	Enabled      bool            `yaml:"enabled"`
	UseSnapshot  bool            `yaml:"use_snapshot"`
	Prompt       string          `yaml:"prompt"`
	Objects      []string        `yaml:"objects"`
	SendTriggers map[string]bool `yaml:"send_triggers,omitempty"`
}

type Go2RTCSection struct {
	// One list per camera name; a list so fallback sources can be added.
	Streams map[string][]string `yaml:"streams"`
}

type CameraSection struct {
	Enabled bool              `yaml:"enabled"`
	FFmpeg  CameraFFmpeg      `yaml:"ffmpeg"`
	Detect  CameraDetect      `yaml:"detect"`
	GenAI   *ObjectsGenAISpec `yaml:"genai,omitempty"` // 0.14 per-camera placement
}

type CameraFFmpeg struct {
	Inputs      []StreamInput `yaml:"inputs"`
	HwaccelArgs string        `yaml:"hwaccel_args"`
	OutputArgs  OutputArgs    `yaml:"output_args"`
}

type StreamInput struct {
	Path  string   `yaml:"path"`
	Roles []string `yaml:"roles"`
}

type OutputArgs struct {
	Record string `yaml:"record"`
}

type CameraDetect struct {
	Enabled bool `yaml:"enabled"`
	Width   int  `yaml:"width"`
	Height  int  `yaml:"height"`
	FPS     int  `yaml:"fps"`
}

type CameraGroup struct {
	Order   int      `yaml:"order"`
	Icon    string   `yaml:"icon"`
	Cameras []string `yaml:"cameras"`
}

type TelemetrySection struct {
	NetworkInterfaces []string `yaml:"network_interfaces"`
}
