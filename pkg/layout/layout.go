package layout

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/orgmap/pkg/dag"
	"github.com/matzehuels/orgmap/pkg/dag/transform"
	"github.com/matzehuels/orgmap/pkg/errors"
)

// Result holds the computed layout of one graph.
type Result struct {
	// Anchor is the box point Positions refer to.
	Anchor Anchor
	// Positions maps node ID to its anchored coordinate.
	Positions map[string]Point
	// Boxes maps node ID to its full rectangle.
	Boxes map[string]Box
	// Depths maps node ID to its layer.
	Depths map[string]int
	// Rows lists node IDs per layer, left to right.
	Rows [][]string
	// Width and Height are the extent of all boxes.
	Width, Height float64
	// NodeWidth and NodeHeight are the box size used.
	NodeWidth, NodeHeight float64
	// Crossings is the number of edge crossings between adjacent layers.
	Crossings int
}

// Position returns the anchored coordinate of a node.
func (r *Result) Position(id string) (Point, bool) {
	p, ok := r.Positions[id]
	return p, ok
}

// Compute lays out g without modifying it. Options are completed with
// defaults.
//
// Returns a LAYOUT_ERROR if g has a dangling edge or a cycle, and an
// INVALID_CONFIG error for invalid options.
func Compute(g *dag.DAG, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.WithDefaults()

	if err := checkStructure(g); err != nil {
		return nil, err
	}

	layering := transform.AssignLayers(g)
	e := newEngine(layering, opts)
	e.run()

	res := &Result{
		Anchor:     opts.Anchor,
		Positions:  make(map[string]Point, len(layering.Depth)),
		Boxes:      make(map[string]Box, len(layering.Depth)),
		Depths:     layering.Depth,
		Rows:       layering.Layers,
		NodeWidth:  opts.NodeWidth,
		NodeHeight: opts.NodeHeight,
	}
	if len(layering.Depth) == 0 {
		return res, nil
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	for id := range layering.Depth {
		minX = math.Min(minX, e.x[id])
		maxX = math.Max(maxX, e.x[id])
	}
	shift := opts.NodeWidth/2 - minX

	for depth, row := range layering.Layers {
		top := float64(depth) * opts.RankSeparation
		for _, id := range row {
			cx := e.x[id] + shift
			b := Box{
				NodeID: id,
				Left:   cx - opts.NodeWidth/2,
				Right:  cx + opts.NodeWidth/2,
				Top:    top,
				Bottom: top + opts.NodeHeight,
			}
			res.Boxes[id] = b
			res.Positions[id] = b.At(opts.Anchor)
		}
	}

	res.Width = maxX - minX + opts.NodeWidth
	res.Height = float64(len(layering.Layers)-1)*opts.RankSeparation + opts.NodeHeight

	orders := make(map[int][]string, len(layering.Layers))
	for d, row := range layering.Layers {
		orders[d] = row
	}
	res.Crossings = dag.CountCrossings(g, orders)
	return res, nil
}

func checkStructure(g *dag.DAG) error {
	if err := g.Validate(); err != nil && err != dag.ErrGraphHasCycle {
		return errors.Layout(err, "invalid edge set")
	}
	if cyc := transform.FindCycle(g); cyc != nil {
		return errors.Layout(
			fmt.Errorf("%w: %s", dag.ErrGraphHasCycle, strings.Join(cyc, " -> ")),
			"edge set is not a tree",
		)
	}
	return nil
}

// =============================================================================
// Tidy tree placement
// =============================================================================

// contour holds, per depth below a subtree root (index 0 = the root itself),
// the leftmost and rightmost node center relative to the subtree root.
type contour struct {
	left, right []float64
}

type engine struct {
	layering transform.Layering
	sep      float64             // minimum distance between adjacent centers
	kids     map[string][]string // spanning-tree children in discovery order
	offset   map[string]float64  // center x relative to spanning-tree parent
	x        map[string]float64  // absolute center x
}

func newEngine(l transform.Layering, opts Options) *engine {
	e := &engine{
		layering: l,
		sep:      opts.NodeWidth + opts.NodeSeparation,
		kids:     make(map[string][]string, len(l.Depth)),
		offset:   make(map[string]float64, len(l.Depth)),
		x:        make(map[string]float64, len(l.Depth)),
	}
	for _, row := range l.Layers {
		for _, id := range row {
			if p, ok := l.Parent[id]; ok {
				e.kids[p] = append(e.kids[p], id)
			}
		}
	}
	return e
}

func (e *engine) run() {
	if len(e.layering.Layers) == 0 {
		return
	}
	roots := e.layering.Layers[0]
	subs := make([]contour, len(roots))
	for i, r := range roots {
		subs[i] = e.place(r)
	}
	offsets, _ := e.stack(subs)
	for i, r := range roots {
		e.assign(r, offsets[i])
	}
}

// place lays out the subtree rooted at v and returns its contour. Child
// offsets are stored relative to v, with v centered over its children.
func (e *engine) place(v string) contour {
	kids := e.kids[v]
	if len(kids) == 0 {
		return contour{left: []float64{0}, right: []float64{0}}
	}

	subs := make([]contour, len(kids))
	for i, k := range kids {
		subs[i] = e.place(k)
	}
	offsets, merged := e.stack(subs)

	mid := (offsets[0] + offsets[len(offsets)-1]) / 2
	for i, k := range kids {
		e.offset[k] = offsets[i] - mid
	}

	c := contour{
		left:  make([]float64, 1, len(merged.left)+1),
		right: make([]float64, 1, len(merged.right)+1),
	}
	for d := range merged.left {
		c.left = append(c.left, merged.left[d]-mid)
		c.right = append(c.right, merged.right[d]-mid)
	}
	return c
}

// stack packs sibling subtrees left to right, each as far left as its
// contour allows, and returns their offsets (first at 0) and the merged
// contour of the row of subtrees.
func (e *engine) stack(subs []contour) ([]float64, contour) {
	offsets := make([]float64, len(subs))
	acc := contour{
		left:  append([]float64(nil), subs[0].left...),
		right: append([]float64(nil), subs[0].right...),
	}
	for i := 1; i < len(subs); i++ {
		s := subs[i]
		shift := math.Inf(-1)
		for d := 0; d < len(acc.right) && d < len(s.left); d++ {
			shift = math.Max(shift, acc.right[d]-s.left[d]+e.sep)
		}
		offsets[i] = shift
		for d := range s.left {
			if d < len(acc.left) {
				acc.right[d] = s.right[d] + shift
				continue
			}
			acc.left = append(acc.left, s.left[d]+shift)
			acc.right = append(acc.right, s.right[d]+shift)
		}
	}
	return offsets, acc
}

// assign converts relative offsets to absolute centers, top-down.
func (e *engine) assign(root string, x float64) {
	stack := []string{root}
	e.x[root] = x
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, k := range e.kids[v] {
			e.x[k] = e.x[v] + e.offset[k]
			stack = append(stack, k)
		}
	}
}
