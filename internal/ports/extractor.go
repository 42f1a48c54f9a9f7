package ports

import (
	"context"

	"vesselx/internal/domain"
)

// ExtractionRequest is the payload handed to the segmentation pipeline.
// Sequence is a snapshot taken when the request was built.
type ExtractionRequest struct {
	SessionID string
	Strategy  string
	Sequence  []domain.SequenceEntry
	SeedSets  []domain.SeedSet
}

// VesselExtractor runs vessel extraction for a tree and reports what it produced
type VesselExtractor interface {
	// Extract blocks until the pipeline finishes or ctx is cancelled
	Extract(ctx context.Context, req ExtractionRequest) (*domain.VolumeHandle, error)

	// IsAvailable returns true if the pipeline can be started
	IsAvailable() bool
}
