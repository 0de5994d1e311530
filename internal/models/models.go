package models

// Scanner describes one attached scan device as reported by the driver.
type Scanner struct {
	Name    string `json:"name"`
	Vendor  string `json:"vendor"`
	Model   string `json:"model"`
	DevType string `json:"dev_type"`
}

// ScanRequest is the body of POST /scan. ScanID is optional; a fresh
// identifier is generated when it is empty.
type ScanRequest struct {
	ScanID     string `json:"scan_id,omitempty"`
	DeviceName string `json:"device_name"`
	Mode       string `json:"mode,omitempty"`
	Resolution int    `json:"resolution,omitempty"`
}

// ScanStatus reports a session identifier and its current page count.
type ScanStatus struct {
	ScanID    string `json:"scan_id"`
	PageCount int    `json:"page_count"`
}
