package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"vesselx/internal/application"
	"vesselx/internal/domain"
	"vesselx/internal/ports"
)

// ExtractResult contains the handle of the extracted vessel volume
type ExtractResult struct {
	Handle   *domain.VolumeHandle
	Strategy string
	Runs     int
	Message  string
}

// ExtractCommand hands a snapshot of the session tree to the vessel extractor.
// The tree is only read; the volume belongs to the host pipeline.
type ExtractCommand struct {
	store     ports.SessionStore
	extractor ports.VesselExtractor
	SessionID string
	Strategy  string
}

// NewExtractCommand creates a new ExtractCommand
func NewExtractCommand(store ports.SessionStore, extractor ports.VesselExtractor, sessionID, strategy string) *ExtractCommand {
	return &ExtractCommand{
		store:     store,
		extractor: extractor,
		SessionID: sessionID,
		Strategy:  strategy,
	}
}

// Validate checks if the extract operation is valid
func (c *ExtractCommand) Validate() error {
	if err := application.ValidateRequired("sessionID", c.SessionID); err != nil {
		return err
	}
	if err := application.ValidateRequired("strategy", c.Strategy); err != nil {
		return err
	}
	if _, err := domain.StrategyByName(c.Strategy); err != nil {
		return &application.ValidationError{
			Field:   "strategy",
			Message: fmt.Sprintf("unknown strategy: %s (expected one of %s)", c.Strategy, strings.Join(domain.StrategyNames(), ", ")),
		}
	}
	return nil
}

// Execute runs the extract command
func (c *ExtractCommand) Execute(ctx context.Context) (*ExtractResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if !c.extractor.IsAvailable() {
		return nil, &application.ExtractionError{
			SessionID: c.SessionID,
			Strategy:  c.Strategy,
			Reason:    "extractor is not available",
		}
	}

	tree, err := c.store.LoadTree(c.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tree: %w", err)
	}
	snap := tree.Snapshot()
	if err := c.checkReady(snap); err != nil {
		return nil, err
	}

	strategy, _ := domain.StrategyByName(c.Strategy)
	sets := strategy.SeedSets(snap)
	if len(sets) == 0 {
		return nil, &application.ExtractionError{
			SessionID: c.SessionID,
			Strategy:  c.Strategy,
			Reason:    "strategy produced no seed sets",
		}
	}

	log := zerolog.Ctx(ctx).With().Str("session", c.SessionID).Str("strategy", c.Strategy).Logger()
	log.Info().Int("nodes", snap.Len()).Int("runs", len(sets)).Msg("starting extraction")

	handle, err := c.extractor.Extract(ctx, ports.ExtractionRequest{
		SessionID: c.SessionID,
		Strategy:  c.Strategy,
		Sequence:  snap.Sequence,
		SeedSets:  sets,
	})
	if err != nil {
		log.Warn().Err(err).Msg("extraction failed")
		return nil, fmt.Errorf("extraction failed: %w", err)
	}

	return &ExtractResult{
		Handle:   handle,
		Strategy: c.Strategy,
		Runs:     len(sets),
		Message:  fmt.Sprintf("Extracted volume %s (model %s) from %d runs", handle.VolumeID, handle.ModelID, len(sets)),
	}, nil
}

func (c *ExtractCommand) checkReady(snap *domain.Snapshot) error {
	if snap.Len() < 2 {
		return &application.ExtractionError{
			SessionID: c.SessionID,
			Strategy:  c.Strategy,
			Reason:    fmt.Sprintf("need at least 2 nodes, have %d", snap.Len()),
		}
	}
	if unplaced := snap.Unplaced(); len(unplaced) > 0 {
		ids := make([]string, len(unplaced))
		for i, id := range unplaced {
			ids[i] = string(id)
		}
		return &application.ExtractionError{
			SessionID: c.SessionID,
			Strategy:  c.Strategy,
			Reason:    fmt.Sprintf("%d nodes not placed: %s", len(ids), strings.Join(ids, ", ")),
		}
	}
	return nil
}
