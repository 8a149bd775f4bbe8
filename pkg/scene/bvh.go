package scene

import (
	"math"
	"sort"
	"sync"

	"github.com/aharden/lumen/pkg/core"
)

// bvhNode is one entry of the flattened BVH. Leaf nodes carry a
// primitive range into the BVH's reordered primitives slice; internal
// nodes carry the index of their second child (the first child always
// follows immediately).
type bvhNode struct {
	bounds      core.AABB
	start       int // first primitive index, for leaves
	count       int // primitive count; 0 means internal node
	secondChild int // index of the right child, for internal nodes
}

const leafThreshold = 4

// BVH is a bounding-volume hierarchy built once over a Scene's
// primitives and traversed many times, concurrently, read-only.
// Traversal is iterative: each call borrows a reusable stack from a
// sync.Pool rather than recursing, since Go has no goroutine-local
// storage to pin a single stack per worker (see SPEC_FULL.md's
// per-thread-state implementation note).
type BVH struct {
	nodes      []bvhNode
	primitives []Primitive // reordered during build; owns the storage Scene iterates
	stacks     sync.Pool
}

// NewBVH builds a BVH over prims. prims is copied and reordered; the
// returned BVH's Primitives() reflects the reordering and is what the
// Scene should store and index from then on.
func NewBVH(prims []Primitive) *BVH {
	b := &BVH{primitives: append([]Primitive(nil), prims...)}
	b.stacks.New = func() any {
		return make([]int, 0, stackCapacity(len(prims)))
	}

	indices := make([]int, len(prims))
	for i := range indices {
		indices[i] = i
	}

	if len(prims) == 0 {
		return b
	}

	ordered := make([]Primitive, 0, len(prims))
	b.nodes = make([]bvhNode, 0, 2*len(prims))
	b.build(indices, &ordered)
	b.primitives = ordered
	return b
}

func stackCapacity(n int) int {
	cap := 8
	for x := n; x > 1; x >>= 1 {
		cap++
	}
	return cap
}

// build recursively partitions indices (referring into the original,
// pre-reorder primitive slice passed to NewBVH) by sorting along the
// longest axis of the enclosing bounds and splitting at the
// surface-area-heuristic minimum chosen by sahSplit, and appends
// primitives to ordered in traversal (leaf) order. It returns the
// index of the node it created.
func (b *BVH) build(indices []int, ordered *[]Primitive) int {
	bounds := boundsOf(b.primitives, indices)

	nodeIdx := len(b.nodes)
	b.nodes = append(b.nodes, bvhNode{bounds: bounds})

	if len(indices) <= leafThreshold {
		start := len(*ordered)
		for _, i := range indices {
			*ordered = append(*ordered, b.primitives[i])
		}
		b.nodes[nodeIdx].start = start
		b.nodes[nodeIdx].count = len(indices)
		return nodeIdx
	}

	axis := bounds.LongestAxis()
	sort.Slice(indices, func(i, j int) bool {
		return centroid(b.primitives[indices[i]], axis) < centroid(b.primitives[indices[j]], axis)
	})
	mid := sahSplit(b.primitives, indices)

	b.build(indices[:mid], ordered)
	secondChild := b.build(indices[mid:], ordered)
	b.nodes[nodeIdx].secondChild = secondChild
	return nodeIdx
}

// sahSplit picks the split point (into indices, already sorted along
// the chosen axis) that minimizes the surface-area-heuristic cost
// leftSA*leftCount + rightSA*rightCount, evaluating every candidate
// split in O(n) via running prefix/suffix bounds. Falls back to the
// median if indices is too short to have an interior candidate.
func sahSplit(prims []Primitive, indices []int) int {
	n := len(indices)

	prefix := make([]core.AABB, n)
	prefix[0] = prims[indices[0]].AABB()
	for i := 1; i < n; i++ {
		prefix[i] = prefix[i-1].Union(prims[indices[i]].AABB())
	}

	suffix := make([]core.AABB, n)
	suffix[n-1] = prims[indices[n-1]].AABB()
	for i := n - 2; i >= 0; i-- {
		suffix[i] = suffix[i+1].Union(prims[indices[i]].AABB())
	}

	bestSplit := n / 2
	bestCost := math.Inf(1)
	for split := 1; split < n; split++ {
		leftCost := prefix[split-1].SurfaceArea() * float64(split)
		rightCost := suffix[split].SurfaceArea() * float64(n-split)
		if cost := leftCost + rightCost; cost < bestCost {
			bestCost = cost
			bestSplit = split
		}
	}
	return bestSplit
}

func boundsOf(prims []Primitive, indices []int) core.AABB {
	box := prims[indices[0]].AABB()
	for _, i := range indices[1:] {
		box = box.Union(prims[i].AABB())
	}
	return box
}

func centroid(p Primitive, axis int) float64 {
	c := p.AABB().Center()
	switch axis {
	case 0:
		return c.X
	case 1:
		return c.Y
	default:
		return c.Z
	}
}

// Primitives returns the BVH's (possibly reordered) primitive storage.
func (b *BVH) Primitives() []Primitive { return b.primitives }

func (b *BVH) getStack() []int {
	return b.stacks.Get().([]int)[:0]
}

func (b *BVH) putStack(stack []int) {
	b.stacks.Put(stack) //nolint:staticcheck // intentionally storing a zero-length reusable slice
}

// ClosestHit returns the nearest primitive intersection along ray
// within (tMin, tMax), or false if none exists.
func (b *BVH) ClosestHit(ray core.Ray, tMin, tMax float64) (RayIntersection, bool) {
	if len(b.nodes) == 0 {
		return RayIntersection{}, false
	}

	stack := b.getStack()
	defer b.putStack(stack)
	stack = append(stack, 0)

	best := tMax
	var bestPrim *Primitive
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &b.nodes[idx]
		if !node.bounds.Hit(ray, tMin, best) {
			continue
		}
		if node.count > 0 { // leaf
			for i := node.start; i < node.start+node.count; i++ {
				if t, ok := b.primitives[i].Intersect(ray, tMin, best); ok {
					best = t
					bestPrim = &b.primitives[i]
				}
			}
			continue
		}
		stack = append(stack, idx+1, node.secondChild)
	}

	if bestPrim == nil {
		return RayIntersection{}, false
	}
	return RayIntersection{Distance: best, Primitive: bestPrim, Ray: ray}, true
}

// AnyHit reports whether any non-emissive primitive lies along ray
// within (tMin, tMax); used for shadow rays, where lights must not
// occlude themselves and only existence (not distance) matters.
func (b *BVH) AnyHit(ray core.Ray, tMin, tMax float64) bool {
	if len(b.nodes) == 0 {
		return false
	}

	stack := b.getStack()
	defer b.putStack(stack)
	stack = append(stack, 0)

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &b.nodes[idx]
		if !node.bounds.Hit(ray, tMin, tMax) {
			continue
		}
		if node.count > 0 {
			for i := node.start; i < node.start+node.count; i++ {
				p := &b.primitives[i]
				if p.Mat.IsLight() {
					continue
				}
				if _, ok := p.Intersect(ray, tMin, tMax); ok {
					return true
				}
			}
			continue
		}
		stack = append(stack, idx+1, node.secondChild)
	}
	return false
}

// Bounds returns the root bounding box, or the zero AABB if empty.
func (b *BVH) Bounds() core.AABB {
	if len(b.nodes) == 0 {
		return core.AABB{}
	}
	return b.nodes[0].bounds
}
