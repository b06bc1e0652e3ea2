package scene

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/chazu/kerf/pkg/shape"
	"github.com/chazu/kerf/pkg/xform"
)

// NodeID is a content-addressed identifier: the hex sha256 of the path
// that created the node.
type NodeID string

// ZeroID is the empty identifier.
const ZeroID NodeID = ""

// NewNodeID derives the ID for a creation path such as "shape/wheel".
func NewNodeID(path string) NodeID {
	sum := sha256.Sum256([]byte(path))
	return NodeID(hex.EncodeToString(sum[:]))
}

// IsZero reports whether id is unset.
func (id NodeID) IsZero() bool { return id == ZeroID }

// Short returns the first eight hex digits, for messages.
func (id NodeID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}

// NodeKind enumerates the types of nodes in the scene.
type NodeKind int

const (
	NodeShape     NodeKind = iota // a primitive
	NodeTransform                 // an affine map over its children
	NodeGroup                     // logical grouping
)

func (k NodeKind) String() string {
	switch k {
	case NodeShape:
		return "shape"
	case NodeTransform:
		return "transform"
	case NodeGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Node is the fundamental element of the scene.
type Node struct {
	ID       NodeID   `json:"id"`
	Kind     NodeKind `json:"kind"`
	Name     string   `json:"name,omitempty"`
	Children []NodeID `json:"children,omitempty"`
	Data     NodeData `json:"data"`
}

// Label returns the node's name, or its short ID when unnamed.
func (n *Node) Label() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID.Short()
}

// NodeData is the interface for kind-specific node payloads.
type NodeData interface {
	nodeData() // marker method restricting implementations to this package
}

// ShapeData holds the primitive of a shape node.
type ShapeData struct {
	Shape shape.Shape
}

func (ShapeData) nodeData() {}

// TransformData holds the map applied to every child of a transform node.
// Expr is the source form it was built from, when there is one.
type TransformData struct {
	Affine xform.Affine
	Expr   string `json:"expr,omitempty"`
}

func (TransformData) nodeData() {}

// GroupData represents a logical grouping.
type GroupData struct {
	Description string `json:"description,omitempty"`
}

func (GroupData) nodeData() {}
