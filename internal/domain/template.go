package domain

import "fmt"

// Anatomical branch names used by the default templates
const (
	PortalVeinRoot     NodeID = "PortalVeinRoot"
	PortalVein         NodeID = "PortalVein"
	RightPortalVein    NodeID = "RightPortalVein"
	LeftPortalVein     NodeID = "LeftPortalVein"
	AnteriorBranch     NodeID = "AnteriorBranch"
	PosteriorBranch    NodeID = "PosteriorBranch"
	SegmentalBranch2   NodeID = "SegmentalBranch_2"
	SegmentalBranch3   NodeID = "SegmentalBranch_3"
	SegmentalBranch4   NodeID = "SegmentalBranch_4"
	SegmentalBranch5   NodeID = "SegmentalBranch_5"
	SegmentalBranch6   NodeID = "SegmentalBranch_6"
	SegmentalBranch7   NodeID = "SegmentalBranch_7"
	SegmentalBranch8   NodeID = "SegmentalBranch_8"
	OptionalBranch1    NodeID = "OptionalBranch_1"
	OptionalBranch2    NodeID = "OptionalBranch_2"
	OptionalBranch3    NodeID = "OptionalBranch_3"
	InferiorCavaRoot   NodeID = "InferiorCavaVeinRoot"
	InferiorCavaVein   NodeID = "InferiorCavaVein"
	RightHepatic       NodeID = "RightHepaticVein"
	RightHepaticRight  NodeID = "RightHepaticVein_RightBranch"
	RightHepaticLeft   NodeID = "RightHepaticVein_LeftBranch"
	MedianHepatic      NodeID = "MedianHepaticVein"
	MedianHepaticRight NodeID = "MedianHepaticVein_RightBranch"
	MedianHepaticLeft  NodeID = "MedianHepaticVein_LeftBranch"
	LeftHepatic        NodeID = "LeftHepaticVein"
	LeftHepaticRight   NodeID = "LeftHepaticVein_RightBranch"
	LeftHepaticLeft    NodeID = "LeftHepaticVein_LeftBranch"
)

// TemplateBranch is one named node of a template and its parent (empty for the root)
type TemplateBranch struct {
	ID     NodeID
	Parent NodeID
}

// Template is a predefined vessel hierarchy the user positions node by node
type Template struct {
	Name     string
	Branches []TemplateBranch
}

// PortalVeinTemplate is the default portal vein hierarchy
var PortalVeinTemplate = Template{
	Name: "portal",
	Branches: []TemplateBranch{
		{PortalVeinRoot, ""},
		{PortalVein, PortalVeinRoot},
		{RightPortalVein, PortalVein},
		{LeftPortalVein, PortalVein},
		{AnteriorBranch, RightPortalVein},
		{PosteriorBranch, RightPortalVein},
		{SegmentalBranch3, LeftPortalVein},
		{SegmentalBranch2, LeftPortalVein},
		{SegmentalBranch4, LeftPortalVein},
		{OptionalBranch3, LeftPortalVein},
		{SegmentalBranch8, AnteriorBranch},
		{SegmentalBranch5, AnteriorBranch},
		{OptionalBranch1, AnteriorBranch},
		{SegmentalBranch7, PosteriorBranch},
		{SegmentalBranch6, PosteriorBranch},
		{OptionalBranch2, PosteriorBranch},
	},
}

// InferiorCavaVeinTemplate is the default inferior vena cava and hepatic vein hierarchy
var InferiorCavaVeinTemplate = Template{
	Name: "ivc",
	Branches: []TemplateBranch{
		{InferiorCavaRoot, ""},
		{InferiorCavaVein, InferiorCavaRoot},
		{RightHepatic, InferiorCavaVein},
		{MedianHepatic, InferiorCavaVein},
		{LeftHepatic, InferiorCavaVein},
		{RightHepaticRight, RightHepatic},
		{RightHepaticLeft, RightHepatic},
		{OptionalBranch1, RightHepatic},
		{MedianHepaticRight, MedianHepatic},
		{MedianHepaticLeft, MedianHepatic},
		{OptionalBranch2, MedianHepatic},
		{LeftHepaticRight, LeftHepatic},
		{LeftHepaticLeft, LeftHepatic},
		{OptionalBranch3, LeftHepatic},
	},
}

// Templates lists the built-in templates by name
var Templates = map[string]Template{
	PortalVeinTemplate.Name:       PortalVeinTemplate,
	InferiorCavaVeinTemplate.Name: InferiorCavaVeinTemplate,
}

// TemplateByName looks up a built-in template
func TemplateByName(name string) (Template, error) {
	tmpl, ok := Templates[name]
	if !ok {
		return Template{}, &TreeError{Op: "template", Kind: ErrNotFound, Reason: fmt.Sprintf("unknown template %q", name)}
	}
	return tmpl, nil
}

// ApplyTemplate fills an empty tree with the template's unplaced nodes
func ApplyTemplate(t *BranchTree, tmpl Template) error {
	if !t.IsEmpty() {
		return invalidState("apply template", t.root, "tree is not empty")
	}
	if err := tmpl.Validate(); err != nil {
		return err
	}
	for _, b := range tmpl.Branches {
		t.insertNamed(b.ID, b.Parent)
	}
	return nil
}

// Validate checks the template describes a single rooted tree in insertion order
func (tmpl Template) Validate() error {
	seen := make(map[NodeID]bool, len(tmpl.Branches))
	for i, b := range tmpl.Branches {
		if b.ID == "" {
			return invalidState("template "+tmpl.Name, "", fmt.Sprintf("branch %d has no id", i))
		}
		if seen[b.ID] {
			return invalidState("template "+tmpl.Name, b.ID, "duplicate branch")
		}
		switch {
		case i == 0 && b.Parent != "":
			return invalidState("template "+tmpl.Name, b.ID, "first branch must be the root")
		case i > 0 && b.Parent == "":
			return invalidState("template "+tmpl.Name, b.ID, "only the first branch may be a root")
		case i > 0 && !seen[b.Parent]:
			return notFound("template "+tmpl.Name, b.Parent, fmt.Sprintf("parent of %s listed after it", b.ID))
		}
		seen[b.ID] = true
	}
	return nil
}

// NextUnplaced returns the first node in depth-first order without a position
func NextUnplaced(t *BranchTree) (NodeID, bool) {
	for _, e := range t.DepthFirstSequence() {
		if !e.Placed {
			return e.ID, true
		}
	}
	return "", false
}
