package models

// Flash categories
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
	FlashWarning = "warning"
	FlashInfo    = "info"
)

// Flash is a one-shot notice shown on the next rendered page
type Flash struct {
	Category string `json:"c"` // One of the Flash* categories
	Message  string `json:"m"` // Human readable text
}
