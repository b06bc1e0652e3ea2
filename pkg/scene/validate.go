package scene

import (
	"fmt"
	"sort"
)

// ValidationSeverity indicates whether a validation finding blocks
// flattening or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks flattening
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	NodeID   NodeID             // which node has the problem (zero if scene-level)
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.NodeID.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] node %s: %s", e.Severity, e.NodeID.Short(), e.Message)
}

// Validate runs the structural checks on the scene and returns every
// finding. An empty slice means the scene is valid. Validate is read-only.
func Validate(s *Scene) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateDAG(s)...)
	errs = append(errs, validateReferences(s)...)
	errs = append(errs, validateNames(s)...)
	errs = append(errs, validateRoots(s)...)
	errs = append(errs, validateKinds(s)...)
	return errs
}

// Errors returns only the blocking findings.
func Errors(findings []ValidationError) []ValidationError {
	var out []ValidationError
	for _, f := range findings {
		if f.Severity == SeverityError {
			out = append(out, f)
		}
	}
	return out
}

// sortedIDs returns the node IDs in a stable order so findings are
// reported deterministically.
func sortedIDs(s *Scene) []NodeID {
	ids := make([]NodeID, 0, len(s.Nodes))
	for id := range s.Nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// validateDAG checks for cycles using DFS with 3-color marking.
// White (0) = unvisited, gray (1) = on the current path, black (2) = done.
func validateDAG(s *Scene) []ValidationError {
	const (
		white = iota
		gray
		black
	)

	color := make(map[NodeID]int)
	var errs []ValidationError

	var visit func(id NodeID) bool // returns true if cycle found
	visit = func(id NodeID) bool {
		switch color[id] {
		case black:
			return false
		case gray:
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("cycle detected: node %s is part of a cycle", id.Short()),
				Severity: SeverityError,
			})
			return true
		}

		color[id] = gray
		node, ok := s.Nodes[id]
		if !ok {
			// Dangling reference; handled by validateReferences.
			color[id] = black
			return false
		}
		for _, childID := range node.Children {
			if visit(childID) {
				return true
			}
		}
		color[id] = black
		return false
	}

	for _, id := range sortedIDs(s) {
		if color[id] == white && visit(id) {
			// One cycle error is sufficient.
			break
		}
	}
	return errs
}

// validateReferences checks that every child points to an existing node.
func validateReferences(s *Scene) []ValidationError {
	var errs []ValidationError
	for _, id := range sortedIDs(s) {
		node := s.Nodes[id]
		for _, childID := range node.Children {
			if _, ok := s.Nodes[childID]; !ok {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("child reference %s does not exist", childID.Short()),
					Severity: SeverityError,
				})
			}
		}
	}
	return errs
}

// validateNames checks that the NameIndex is injective and that every entry
// points to an existing node.
func validateNames(s *Scene) []ValidationError {
	var errs []ValidationError

	names := make([]string, 0, len(s.NameIndex))
	for name := range s.NameIndex {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		id := s.NameIndex[name]
		if _, ok := s.Nodes[id]; !ok {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("name index entry %q references non-existent node %s", name, id.Short()),
				Severity: SeverityError,
			})
		}
	}

	byName := make(map[string]int)
	for _, node := range s.Nodes {
		if node.Name != "" {
			byName[node.Name]++
		}
	}
	names = names[:0]
	for name, n := range byName {
		if n > 1 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		errs = append(errs, ValidationError{
			Message:  fmt.Sprintf("duplicate name %q assigned to %d nodes", name, byName[name]),
			Severity: SeverityError,
		})
	}
	return errs
}

// validateRoots checks that every root exists and warns about nodes that
// no root reaches.
func validateRoots(s *Scene) []ValidationError {
	var errs []ValidationError
	for _, rid := range s.Roots {
		if _, ok := s.Nodes[rid]; !ok {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("root reference %s does not exist", rid.Short()),
				Severity: SeverityError,
			})
		}
	}
	if len(s.Nodes) == 0 {
		return errs
	}

	reachable := make(map[NodeID]bool)
	queue := make([]NodeID, 0, len(s.Roots))
	for _, rid := range s.Roots {
		if _, ok := s.Nodes[rid]; ok && !reachable[rid] {
			reachable[rid] = true
			queue = append(queue, rid)
		}
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		node := s.Nodes[current]
		if node == nil {
			continue
		}
		for _, childID := range node.Children {
			if !reachable[childID] {
				reachable[childID] = true
				queue = append(queue, childID)
			}
		}
	}

	for _, id := range sortedIDs(s) {
		if !reachable[id] {
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("node %q is not reachable from any root (orphan)", s.Nodes[id].Label()),
				Severity: SeverityWarning,
			})
		}
	}
	return errs
}

// validateKinds checks that each node's payload matches its kind: shapes
// are leaves holding a 3D primitive, transforms have children.
func validateKinds(s *Scene) []ValidationError {
	var errs []ValidationError
	bad := func(n *Node, sev ValidationSeverity, format string, args ...any) {
		errs = append(errs, ValidationError{NodeID: n.ID, Message: fmt.Sprintf(format, args...), Severity: sev})
	}
	for _, id := range sortedIDs(s) {
		n := s.Nodes[id]
		switch n.Kind {
		case NodeShape:
			d, ok := n.Data.(ShapeData)
			switch {
			case !ok || d.Shape == nil:
				bad(n, SeverityError, "shape node has no shape")
			case d.Shape.Kind().Planar():
				bad(n, SeverityError, "planar %s cannot be placed in a 3D scene", d.Shape.Kind())
			}
			if len(n.Children) > 0 {
				bad(n, SeverityError, "shape node has %d children", len(n.Children))
			}
		case NodeTransform:
			if _, ok := n.Data.(TransformData); !ok {
				bad(n, SeverityError, "transform node has unexpected data type %T", n.Data)
			}
			if len(n.Children) == 0 {
				bad(n, SeverityWarning, "transform has no children")
			}
		case NodeGroup:
		default:
			bad(n, SeverityError, "unknown node kind %v", n.Kind)
		}
	}
	return errs
}
