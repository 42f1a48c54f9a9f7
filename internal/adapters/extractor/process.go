package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"vesselx/internal/domain"
	"vesselx/internal/ports"
)

// ProcessExtractor implements ports.VesselExtractor by running an external
// segmentation program, e.g. a wrapper around VMTK level sets.
type ProcessExtractor struct {
	command string
	args    []string
	timeout time.Duration
	log     zerolog.Logger
}

// Ensure ProcessExtractor implements VesselExtractor
var _ ports.VesselExtractor = (*ProcessExtractor)(nil)

// Option configures the ProcessExtractor
type Option func(*ProcessExtractor)

// WithArgs sets extra arguments passed before the request is written
func WithArgs(args ...string) Option {
	return func(p *ProcessExtractor) {
		p.args = args
	}
}

// WithTimeout bounds a single extraction. Zero disables the limit.
func WithTimeout(d time.Duration) Option {
	return func(p *ProcessExtractor) {
		p.timeout = d
	}
}

// WithLogger sets the logger
func WithLogger(log zerolog.Logger) Option {
	return func(p *ProcessExtractor) {
		p.log = log
	}
}

// NewProcessExtractor creates an extractor running command
func NewProcessExtractor(command string, opts ...Option) *ProcessExtractor {
	p := &ProcessExtractor{
		command: command,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// nodeJSON is one node of the request written to the program's stdin
type nodeJSON struct {
	ID       string     `json:"id"`
	Position [3]float64 `json:"position"`
	ParentID string     `json:"parent_id,omitempty"`
	Locked   bool       `json:"locked,omitempty"`
}

// runJSON is one extraction run: propagate from seeds, stop at stoppers
type runJSON struct {
	SeedIDs    []string     `json:"seed_ids"`
	Seeds      [][3]float64 `json:"seeds"`
	StopperIDs []string     `json:"stopper_ids"`
	Stoppers   [][3]float64 `json:"stoppers"`
}

type requestJSON struct {
	SessionID string     `json:"session_id"`
	Strategy  string     `json:"strategy"`
	Nodes     []nodeJSON `json:"nodes"`
	Runs      []runJSON  `json:"runs"`
}

// responseJSON is the last JSON object the program prints on stdout
type responseJSON struct {
	VolumeID string `json:"volume_id"`
	ModelID  string `json:"model_id"`
	Error    string `json:"error,omitempty"`
}

// Extract runs the program and waits for its result. Cancelling ctx kills the process.
func (p *ProcessExtractor) Extract(ctx context.Context, req ports.ExtractionRequest) (*domain.VolumeHandle, error) {
	payload, err := json.Marshal(buildRequest(req))
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.command, p.args...)
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = 2 * time.Second

	start := time.Now()
	p.log.Info().Str("command", p.command).Int("runs", len(req.SeedSets)).Msg("extraction started")

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("extraction cancelled: %w", ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("extractor error: %s", strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("extractor error: %w", err)
	}

	handle, err := parseResponse(stdout.String())
	if err != nil {
		return nil, err
	}

	p.log.Info().
		Str("volume", handle.VolumeID).
		Str("model", handle.ModelID).
		Dur("elapsed", time.Since(start)).
		Msg("extraction finished")
	return handle, nil
}

// IsAvailable checks if the extraction program is installed and accessible
func (p *ProcessExtractor) IsAvailable() bool {
	_, err := exec.LookPath(p.command)
	return err == nil
}

func buildRequest(req ports.ExtractionRequest) requestJSON {
	out := requestJSON{
		SessionID: req.SessionID,
		Strategy:  req.Strategy,
		Nodes:     make([]nodeJSON, 0, len(req.Sequence)),
		Runs:      make([]runJSON, 0, len(req.SeedSets)),
	}
	for _, e := range req.Sequence {
		out.Nodes = append(out.Nodes, nodeJSON{
			ID:       string(e.ID),
			Position: vec(e.Position),
			ParentID: string(e.Parent),
			Locked:   e.Locked,
		})
	}
	for _, s := range req.SeedSets {
		out.Runs = append(out.Runs, runJSON{
			SeedIDs:    ids(s.SeedIDs),
			Seeds:      vecs(s.Seeds),
			StopperIDs: ids(s.StopperIDs),
			Stoppers:   vecs(s.Stoppers),
		})
	}
	return out
}

var jsonObjectRe = regexp.MustCompile(`(?m)^\s*\{.*\}\s*$`)

// parseResponse finds the last single-line JSON object in the program output.
// Earlier lines are treated as progress output.
func parseResponse(output string) (*domain.VolumeHandle, error) {
	matches := jsonObjectRe.FindAllString(output, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no JSON result found in extractor output")
	}
	last := strings.TrimSpace(matches[len(matches)-1])

	var resp responseJSON
	if err := json.Unmarshal([]byte(last), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse extractor result: %w (json: %s)", err, last)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("extractor returned an error: %s", resp.Error)
	}
	if resp.VolumeID == "" {
		return nil, fmt.Errorf("extractor result has no volume_id")
	}

	return &domain.VolumeHandle{VolumeID: resp.VolumeID, ModelID: resp.ModelID}, nil
}

func vec(p domain.Position) [3]float64 {
	return [3]float64{p.X, p.Y, p.Z}
}

func vecs(ps []domain.Position) [][3]float64 {
	out := make([][3]float64, len(ps))
	for i, p := range ps {
		out[i] = vec(p)
	}
	return out
}

func ids(in []domain.NodeID) []string {
	out := make([]string, len(in))
	for i, id := range in {
		out[i] = string(id)
	}
	return out
}
