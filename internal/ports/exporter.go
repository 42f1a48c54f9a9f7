package ports

import "vesselx/internal/domain"

// ExportResult lists the files written by an export
type ExportResult struct {
	FiducialPath string // id,x,y,z,parentId per node
	MatrixPath   string // adjacency matrix, no header
	NodeCount    int
}

// TreeExporter writes a tree as host-readable artifacts
type TreeExporter interface {
	Export(name string, tree *domain.BranchTree) (*ExportResult, error)
}

// TreeImporter rebuilds a tree from a previously exported fiducial file
type TreeImporter interface {
	Import(path string) (*domain.BranchTree, error)
}
