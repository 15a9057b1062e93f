package spatial

import "github.com/hxa7241/minilight-go/internal/vec3"

// Intersect finds the nearest triangle hit by the ray (origin, direction),
// excluding the triangle at lastHit (pass -1 to exclude none — used to
// avoid a reflected ray immediately re-hitting its own origin surface).
// Returns the hit triangle's index and the hit position; ok is false if
// nothing was hit.
func (idx *Index) Intersect(rayOrigin, rayDirection vec3.Vector3, lastHit int32) (hitIndex int32, hitPosition vec3.Vector3, ok bool) {
	hitIndex = -1
	bestDist := rayBoxExitDistance(idx.nodes[idx.root].bound, rayOrigin, rayDirection)
	if bestDist < 0 {
		return -1, vec3.Vector3{}, false
	}

	best := -1.0
	idx.intersectNode(idx.root, rayOrigin, rayDirection, lastHit, &hitIndex, &best)
	if hitIndex < 0 {
		return -1, vec3.Vector3{}, false
	}
	return hitIndex, rayOrigin.Add(rayDirection.MultiplyScalar(best)), true
}

func (idx *Index) intersectNode(nodeIdx int32, rayOrigin, rayDirection vec3.Vector3, lastHit int32, bestIndex *int32, bestDist *float64) {
	node := &idx.nodes[nodeIdx]

	switch node.kind {
	case leaf:
		for _, item := range node.items {
			if item == lastHit {
				continue
			}
			dist, hit := idx.Triangles[item].Intersect(rayOrigin, rayDirection)
			if !hit {
				continue
			}
			if *bestIndex == -1 || dist < *bestDist {
				*bestIndex = item
				*bestDist = dist
			}
		}
	case branch:
		for _, child := range node.children {
			if child == absent {
				continue
			}
			tEnter, tExit, hitsBox := rayBoxInterval(idx.nodes[child].bound, rayOrigin, rayDirection)
			if !hitsBox || tExit < 0 {
				continue
			}
			if *bestIndex != -1 && tEnter > *bestDist {
				continue
			}
			idx.intersectNode(child, rayOrigin, rayDirection, lastHit, bestIndex, bestDist)
		}
	}
}

// rayBoxInterval computes the [tEnter, tExit] parametric interval where
// the ray crosses the given axis-aligned box, using the slab method.
func rayBoxInterval(bound [6]float64, origin, direction vec3.Vector3) (tEnter, tExit float64, ok bool) {
	tMin, tMax := -1e300, 1e300

	axes := [3]float64{origin.X, origin.Y, origin.Z}
	dirs := [3]float64{direction.X, direction.Y, direction.Z}

	for a := 0; a < 3; a++ {
		if dirs[a] == 0 {
			if axes[a] < bound[a] || axes[a] > bound[a+3] {
				return 0, 0, false
			}
			continue
		}
		invD := 1.0 / dirs[a]
		t0 := (bound[a] - axes[a]) * invD
		t1 := (bound[a+3] - axes[a]) * invD
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMin > tMax {
			return 0, 0, false
		}
	}
	return tMin, tMax, true
}

func rayBoxExitDistance(bound [6]float64, origin, direction vec3.Vector3) float64 {
	_, tExit, ok := rayBoxInterval(bound, origin, direction)
	if !ok {
		return -1
	}
	return tExit
}
