package filesystem

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"vesselx/internal/application"
	"vesselx/internal/domain"
	"vesselx/internal/ports"
)

// FiducialHeader is the header row of the fiducial CSV
var FiducialHeader = []string{"id", "x", "y", "z", "parentId"}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Exporter implements ports.TreeExporter and ports.TreeImporter using CSV files
type Exporter struct {
	dir string
	log zerolog.Logger
}

var (
	_ ports.TreeExporter = (*Exporter)(nil)
	_ ports.TreeImporter = (*Exporter)(nil)
)

// NewExporter creates an exporter writing into dir
func NewExporter(dir string, log zerolog.Logger) *Exporter {
	// Expand ~ to home directory
	if strings.HasPrefix(dir, "~") {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, dir[1:])
	}
	return &Exporter{dir: dir, log: log}
}

// FileNames returns the fiducial and matrix file names used for name
func FileNames(name string) (fiducials, matrix string) {
	base := strings.Trim(unsafeName.ReplaceAllString(name, "_"), "_")
	if base == "" {
		base = "tree"
	}
	return base + "_fiducials.csv", base + "_adjacency.csv"
}

// Export writes both artifacts. Each file is written to a temp file and renamed
// into place so readers never see a partial export.
func (e *Exporter) Export(name string, tree *domain.BranchTree) (*ports.ExportResult, error) {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	seq := tree.DepthFirstSequence()
	fidName, matName := FileNames(name)
	fidPath := filepath.Join(e.dir, fidName)
	matPath := filepath.Join(e.dir, matName)

	if err := writeAtomic(fidPath, func(w io.Writer) error { return WriteFiducials(w, seq) }); err != nil {
		return nil, fmt.Errorf("failed to write fiducials: %w", err)
	}
	if err := writeAtomic(matPath, func(w io.Writer) error { return WriteMatrix(w, tree.AdjacencyMatrix()) }); err != nil {
		return nil, fmt.Errorf("failed to write adjacency matrix: %w", err)
	}

	e.log.Info().Str("fiducials", fidPath).Str("matrix", matPath).Int("nodes", len(seq)).Msg("tree exported")
	return &ports.ExportResult{
		FiducialPath: fidPath,
		MatrixPath:   matPath,
		NodeCount:    len(seq),
	}, nil
}

// Import reads a fiducial CSV and rebuilds the tree. Every imported node is placed.
func (e *Exporter) Import(path string) (*domain.BranchTree, error) {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[1:])
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	seq, err := ReadFiducials(f)
	if err != nil {
		return nil, err
	}
	tree, err := domain.FromSequence(seq)
	if err != nil {
		return nil, fmt.Errorf("invalid tree in %s: %w", path, err)
	}

	e.log.Info().Str("path", path).Int("nodes", tree.Len()).Msg("tree imported")
	return tree, nil
}

// WriteFiducials writes id,x,y,z,parentId rows in depth-first order
func WriteFiducials(w io.Writer, seq []domain.SequenceEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(FiducialHeader); err != nil {
		return err
	}
	for _, e := range seq {
		row := []string{
			string(e.ID),
			formatFloat(e.Position.X),
			formatFloat(e.Position.Y),
			formatFloat(e.Position.Z),
			string(e.Parent),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadFiducials parses a fiducial CSV. The header row is optional.
func ReadFiducials(r io.Reader) ([]domain.SequenceEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(FiducialHeader)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse fiducials: %w", err)
	}
	if len(records) > 0 && strings.EqualFold(records[0][0], FiducialHeader[0]) {
		records = records[1:]
	}

	seq := make([]domain.SequenceEntry, 0, len(records))
	for i, rec := range records {
		var v [3]float64
		for j := range v {
			f, err := strconv.ParseFloat(strings.TrimSpace(rec[j+1]), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid %s %q", i+1, FiducialHeader[j+1], rec[j+1])
			}
			v[j] = f
		}
		p := domain.Position{X: v[0], Y: v[1], Z: v[2]}
		if err := application.ValidatePosition("position", p); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		seq = append(seq, domain.SequenceEntry{
			ID:       domain.NodeID(strings.TrimSpace(rec[0])),
			Position: p,
			Parent:   domain.NodeID(strings.TrimSpace(rec[4])),
			Placed:   true,
		})
	}
	return seq, nil
}

// WriteMatrix writes a plain numeric matrix, one CSV row per matrix row.
// A nil matrix (empty tree) writes nothing.
func WriteMatrix(w io.Writer, m *mat.Dense) error {
	cw := csv.NewWriter(w)
	if m != nil {
		rows, cols := m.Dims()
		row := make([]string, cols)
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				row[j] = formatFloat(m.At(i, j))
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadMatrix parses a matrix written by WriteMatrix
func ReadMatrix(r io.Reader) (*mat.Dense, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse matrix: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	n := len(records)
	data := make([]float64, 0, n*n)
	for i, rec := range records {
		if len(rec) != n {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", i+1, n, len(rec))
		}
		for _, s := range rec {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid value %q", i+1, s)
			}
			data = append(data, f)
		}
	}
	return mat.NewDense(n, n, data), nil
}

func writeAtomic(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
