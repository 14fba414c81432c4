package generator

import "github.com/ojiudezue/frigate-config-builder/internal/discovery"

// ffmpeg hardware-acceleration presets by accelerator type.
var hwaccelPresets = map[string]string{
	"vaapi":   "preset-vaapi",
	"cuda":    "preset-nvidia-h264",
	"qsv":     "preset-intel-qsv-h264",
	"rkmpp":   "preset-rkmpp",
	"v4l2m2m": "preset-rpi-64-h264",
	"none":    "preset-http-jpeg-generic",
}

const defaultHwaccelPreset = "preset-vaapi"

// Record output-encoding presets by camera source. Each vendor family maps
// to one canonical preset; anything unknown gets the generic one.
var recordPresets = map[discovery.Source]string{
	discovery.SourceUniFiProtect: "preset-record-ubiquiti",
	discovery.SourceAmcrest:      "preset-record-generic-audio-aac",
	discovery.SourceReolink:      "preset-record-generic-audio-aac",
	discovery.SourceGeneric:      "preset-record-generic-audio-aac",
	discovery.SourceManual:       "preset-record-generic",
}

const defaultRecordPreset = "preset-record-generic"

func hwaccelPreset(hwaccel string) string {
	if preset, ok := hwaccelPresets[hwaccel]; ok {
		return preset
	}
	return defaultHwaccelPreset
}

func recordPreset(source discovery.Source) string {
	if preset, ok := recordPresets[source]; ok {
		return preset
	}
	return defaultRecordPreset
}
