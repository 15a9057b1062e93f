// Package spatial implements a minimal octree acceleration structure for
// ray/triangle intersection, suited to a scale of 1 metre == 1 unit with
// millimetre resolution (it relies on fixed tolerances).
//
// Nodes are a tagged variant (branch or leaf) stored in a flat arena;
// children are referenced by index rather than pointer so the tree can be
// built once and shared freely across concurrent readers.
package spatial

import (
	"github.com/hxa7241/minilight-go/internal/geom"
	"github.com/hxa7241/minilight-go/internal/vec3"
)

const (
	maxItems  = 8
	maxLevels = 44
	// tolerance matches geom.Tolerance: both bound the same physical fuzz.
	tolerance = geom.Tolerance
)

// absent marks a branch child slot with no subcell.
const absent int32 = -1

// nodeKind tags a Node as either an internal branch or a leaf of items.
type nodeKind uint8

const (
	branch nodeKind = iota
	leaf
)

// Node is one cell of the octree: either a branch with up to 8 children,
// or a leaf holding triangle indices. Every node stores its own bound.
type Node struct {
	kind     nodeKind
	bound    [6]float64
	children [8]int32 // valid when kind == branch; absent == no child
	items    []int32  // valid when kind == leaf; indices into Index.Triangles
}

// Index is a built octree over a fixed set of triangles, referenced by
// index (never by pointer) so identity checks (e.g. excluding the ray's
// own origin triangle) are cheap value comparisons.
type Index struct {
	Triangles []geom.Triangle
	nodes     []Node
	root      int32
}

// Build constructs an octree over triangles, with eyePosition folded into
// the root bound so the camera's origin is always inside the index even
// if it lies outside every triangle's bound.
func Build(eyePosition vec3.Vector3, triangles []geom.Triangle) *Index {
	idx := &Index{Triangles: triangles}

	rootBound := [6]float64{
		eyePosition.X, eyePosition.Y, eyePosition.Z,
		eyePosition.X, eyePosition.Y, eyePosition.Z,
	}
	for _, tri := range triangles {
		b := tri.Bound()
		for a := 0; a < 3; a++ {
			if b[a] < rootBound[a] {
				rootBound[a] = b[a]
			}
			if b[a+3] > rootBound[a+3] {
				rootBound[a+3] = b[a+3]
			}
		}
	}
	// inflate to a cube: every axis extended to the largest extent
	maxSize := 0.0
	for a := 0; a < 3; a++ {
		extent := rootBound[a+3] - rootBound[a]
		if extent > maxSize {
			maxSize = extent
		}
	}
	for a := 0; a < 3; a++ {
		rootBound[a+3] = rootBound[a] + maxSize
	}

	items := make([]int32, len(triangles))
	for i := range triangles {
		items[i] = int32(i)
	}

	idx.root = idx.construct(rootBound, items, 0)
	return idx
}

func (idx *Index) construct(bound [6]float64, items []int32, level int) int32 {
	if len(items) > maxItems && level < maxLevels-1 {
		var subItems [8][]int32
		for s := 0; s < 8; s++ {
			subBound := subcellBound(bound, s)
			for _, item := range items {
				if overlaps(subBound, idx.Triangles[item].Bound()) {
					subItems[s] = append(subItems[s], item)
				}
			}
		}

		// count subcells that did not actually partition the set: if more
		// than one contains every item, recursing further would loop
		degenerate := 0
		for s := 0; s < 8; s++ {
			if len(subItems[s]) == len(items) {
				degenerate++
			}
		}
		subExtent := (bound[3] - bound[0]) * 0.5
		nextLevel := level + 1
		if degenerate > 1 || subExtent < tolerance*4.0 {
			nextLevel = maxLevels
		}

		var children [8]int32
		for s := 0; s < 8; s++ {
			if len(subItems[s]) == 0 {
				children[s] = absent
				continue
			}
			children[s] = idx.construct(subcellBound(bound, s), subItems[s], nextLevel)
		}

		idx.nodes = append(idx.nodes, Node{kind: branch, bound: bound, children: children})
		return int32(len(idx.nodes) - 1)
	}

	idx.nodes = append(idx.nodes, Node{kind: leaf, bound: bound, items: items})
	return int32(len(idx.nodes) - 1)
}

// subcellBound computes the bound of octree subcell s (0..7) of a parent
// cell. Bit m of s selects the upper (1) or lower (0) half along axis m.
func subcellBound(parent [6]float64, s int) [6]float64 {
	var out [6]float64
	for m := 0; m < 3; m++ {
		center := (parent[m] + parent[m+3]) * 0.5
		high := (s>>uint(m))&1 == 1
		if high {
			out[m] = center
			out[m+3] = parent[m+3]
		} else {
			out[m] = parent[m]
			out[m+3] = center
		}
	}
	return out
}

func overlaps(a, b [6]float64) bool {
	for axis := 0; axis < 3; axis++ {
		if a[axis+3] < b[axis] || b[axis+3] < a[axis] {
			return false
		}
	}
	return true
}
