package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/kerf/pkg/geom"
	"github.com/chazu/kerf/pkg/scene"
	"github.com/chazu/kerf/pkg/shape"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms kerf Lisp source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: major-dir -> major_dir
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a geom.Vector3.
type sexpVec3 struct {
	vec geom.Vector3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpShape wraps a primitive so it can be returned from a shape builtin
// and consumed by defshape or a transform.
type sexpShape struct {
	shape shape.Shape
}

func (s *sexpShape) SexpString(ps *zygo.PrintState) string { return s.shape.String() }
func (s *sexpShape) Type() *zygo.RegisteredType            { return nil }

// sexpNodeRef wraps a scene.NodeID so it can be passed between builtins.
type sexpNodeRef struct {
	id   scene.NodeID
	name string // human-readable name for error messages
}

func (n *sexpNodeRef) SexpString(ps *zygo.PrintState) string {
	if n.name != "" {
		return fmt.Sprintf("(noderef %q)", n.name)
	}
	return fmt.Sprintf("(noderef %s)", n.id.Short())
}
func (n *sexpNodeRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// A keyword directly followed by another keyword is a flag and takes the
// value true; so is a keyword at the end of the list.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			i++
			continue
		}
		if i+1 < len(args) {
			if _, next := isKW(args[i+1]); !next || isAxisName(args[i+1]) {
				result.kw[name] = args[i+1]
				i += 2
				continue
			}
		}
		result.kw[name] = &zygo.SexpBool{Val: true}
		i++
	}
	return result
}

// isAxisName reports whether s is one of the keywords :x, :y or :z, which
// are values rather than flags.
func isAxisName(s zygo.Sexp) bool {
	name, ok := isKW(s)
	return ok && (name == "x" || name == "y" || name == "z")
}

func (a kwArgs) has(key string) bool {
	_, ok := a.kw[key]
	return ok
}

// num returns the required numeric keyword key.
func (a kwArgs) num(key string) (float64, error) {
	v, ok := a.kw[key]
	if !ok {
		return 0, fmt.Errorf("missing :%s", key)
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

// numOr returns the numeric keyword key, or def when it is absent.
func (a kwArgs) numOr(key string, def float64) (float64, error) {
	if !a.has(key) {
		return def, nil
	}
	return a.num(key)
}

// vec returns the required vector keyword key.
func (a kwArgs) vec(key string) (geom.Vector3, error) {
	v, ok := a.kw[key]
	if !ok {
		return geom.Vector3{}, fmt.Errorf("missing :%s", key)
	}
	w, err := toVec3(v)
	if err != nil {
		return geom.Vector3{}, fmt.Errorf("%s: %w", key, err)
	}
	return w, nil
}

// vecOr returns the vector keyword key, or def when it is absent.
func (a kwArgs) vecOr(key string, def geom.Vector3) (geom.Vector3, error) {
	if !a.has(key) {
		return def, nil
	}
	return a.vec(key)
}

// pointOr is vecOr for locations.
func (a kwArgs) pointOr(key string, def geom.Point3) (geom.Point3, error) {
	v, err := a.vecOr(key, def.Vector())
	return geom.PointFromVector(v), err
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_z) and plain strings ("z").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toAxis converts a keyword or string naming a principal axis to its unit
// direction.
func toAxis(s zygo.Sexp) (geom.Direction3, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return geom.Direction3{}, fmt.Errorf("expected axis keyword (:x, :y, :z): %w", err)
	}
	switch name {
	case "x":
		return geom.UnitX, nil
	case "y":
		return geom.UnitY, nil
	case "z":
		return geom.UnitZ, nil
	}
	return geom.Direction3{}, fmt.Errorf("invalid axis %q, expected x, y, or z", name)
}

// toVec3 extracts a vector from a sexpVec3 or an axis keyword.
func toVec3(s zygo.Sexp) (geom.Vector3, error) {
	switch v := s.(type) {
	case *sexpVec3:
		return v.vec, nil
	case *zygo.SexpStr:
		d, err := toAxis(v)
		if err != nil {
			return geom.Vector3{}, err
		}
		return d.Vector(), nil
	}
	return geom.Vector3{}, fmt.Errorf("expected vec3 or axis, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// builder accumulates nodes into a scene while user code runs.
type builder struct {
	scene *scene.Scene
	tol   geom.Tol
	n     int // counter for anonymous node paths

	groups []scene.NodeID // in definition order
}

// next returns a fresh ID for an anonymous node of the given kind. IDs
// depend only on evaluation order, so identical sources give identical
// scenes.
func (b *builder) next(kind string) scene.NodeID {
	b.n++
	return scene.NewNodeID(fmt.Sprintf("%s/#%d", kind, b.n))
}

// register installs every kerf builtin into env.
func (b *builder) register(env *zygo.Zlisp) {
	b.registerShapes(env)
	b.registerTransforms(env)
}

// settleRoots makes every group that no other node uses a root, in the
// order the groups were defined. A group nested in another group or a
// transform is placed only through its parent.
func (b *builder) settleRoots() {
	used := make(map[scene.NodeID]bool)
	for _, n := range b.scene.Nodes {
		for _, c := range n.Children {
			used[c] = true
		}
	}
	for _, id := range b.groups {
		if !used[id] {
			b.scene.AddRoot(id)
		}
	}
}

// addShape stores s as a shape node and returns a reference to it.
func (b *builder) addShape(id scene.NodeID, name string, s shape.Shape) *sexpNodeRef {
	b.scene.AddNode(&scene.Node{
		ID:   id,
		Kind: scene.NodeShape,
		Name: name,
		Data: scene.ShapeData{Shape: s},
	})
	return &sexpNodeRef{id: id, name: name}
}

// toChild resolves an argument used as the child of a transform or group.
// Bare shapes become anonymous shape nodes.
func (b *builder) toChild(s zygo.Sexp) (scene.NodeID, error) {
	switch v := s.(type) {
	case *sexpNodeRef:
		return v.id, nil
	case *sexpShape:
		return b.addShape(b.next("shape"), "", v.shape).id, nil
	}
	return scene.ZeroID, fmt.Errorf("expected shape or node reference, got %T (%s)", s, s.SexpString(nil))
}
