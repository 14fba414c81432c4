package models

// EntityListResponse represents the outer wrapper of the directory endpoint response
type EntityListResponse struct {
	Result struct {
		Entities []Entity `json:"entities"`
	} `json:"result"`
}

// Entity represents a single camera entity row from the platform's
// entity/device directory.
type Entity struct {
	EntityID     string `json:"entity_id"`
	UniqueID     string `json:"unique_id"`
	Platform     string `json:"platform"` // vendor integration tag: "unifiprotect", "reolink", ...
	DeviceID     string `json:"device_id"` // parent physical device
	Area         string `json:"area"`
	FriendlyName string `json:"friendly_name"`
	Available    bool   `json:"available"`
	Disabled     bool   `json:"disabled"`
	Width        int    `json:"width,omitempty"`  // native stream width, when reported
	Height       int    `json:"height,omitempty"` // native stream height, when reported
}
