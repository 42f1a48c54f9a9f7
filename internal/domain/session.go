package domain

import "time"

// Session is a stored vessel segmentation session holding one branch tree
type Session struct {
	ID        string // uuid
	Name      string // e.g., "portal-patient-07"
	CreatedAt time.Time
	UpdatedAt time.Time
	NodeCount int
}

// VolumeHandle identifies the extraction output owned by the host segmentation pipeline
type VolumeHandle struct {
	VolumeID string
	ModelID  string
}
