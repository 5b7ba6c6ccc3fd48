package pathfinding

import (
	"container/heap"

	"github.com/zyedidia/generic/mapset"

	"evnav/geometry"
	"evnav/grid"
)

// pathNode is a state in the search. It only lives for one FindPath call.
type pathNode struct {
	coord  grid.Coord
	g      float64 // Cost from start
	h      float64 // Heuristic cost to goal
	f      float64 // g + h
	parent *pathNode
	seq    int // Insertion order, the final tie-breaker
	index  int // Index in the heap
}

// nodeQueue is a priority queue of nodes ordered by f.
type nodeQueue []*pathNode

func (nq nodeQueue) Len() int { return len(nq) }

func (nq nodeQueue) Less(i, j int) bool {
	if nq[i].f != nq[j].f {
		return nq[i].f < nq[j].f
	}
	// Prefer nodes closer to the goal
	if nq[i].h != nq[j].h {
		return nq[i].h < nq[j].h
	}
	return nq[i].seq < nq[j].seq
}

func (nq nodeQueue) Swap(i, j int) {
	nq[i], nq[j] = nq[j], nq[i]
	nq[i].index = i
	nq[j].index = j
}

func (nq *nodeQueue) Push(x interface{}) {
	node := x.(*pathNode)
	node.index = len(*nq)
	*nq = append(*nq, node)
}

func (nq *nodeQueue) Pop() interface{} {
	old := *nq
	n := len(old)
	node := old[n-1]
	old[n-1] = nil  // avoid memory leak
	node.index = -1 // for safety
	*nq = old[0 : n-1]
	return node
}

// Finder runs searches over one grid.
type Finder struct {
	grid          *grid.Grid
	pass          *Passability
	costs         Costs
	maxIterations int // 0 means 2 x rows x cols
}

// NewFinder creates a finder for a grid. labelCells stay walkable even when
// they are filled.
func NewFinder(g *grid.Grid, labelCells []grid.Coord, costs Costs) *Finder {
	return &Finder{
		grid:  g,
		pass:  NewPassability(g, labelCells),
		costs: costs,
	}
}

// SetMaxIterations overrides the iteration bound. Zero or less restores the
// default of twice the cell count.
func (f *Finder) SetMaxIterations(n int) {
	f.maxIterations = n
}

// Passability returns the walkability rule in use.
func (f *Finder) Passability() *Passability {
	return f.pass
}

// FindPath finds a path from start to end. It never fails: when the goal
// cannot be reached within the iteration bound the result is the straight
// fallback line with Found unset.
func FindPath(g *grid.Grid, start, end grid.Coord, labelCells []grid.Coord) Result {
	return NewFinder(g, labelCells, DefaultCosts()).FindPath(start, end)
}

// FindPath finds a path from start to end.
func (f *Finder) FindPath(start, end grid.Coord) Result {
	if start == end {
		return Result{Points: []grid.Coord{start}, Found: true}
	}
	if !f.grid.InBounds(start) || !f.grid.InBounds(end) {
		return fallback(start, end)
	}

	limit := f.maxIterations
	if limit <= 0 {
		limit = 2 * f.grid.Rows() * f.grid.Cols()
	}

	openSet := &nodeQueue{}
	heap.Init(openSet)
	closedSet := mapset.New[grid.Coord]()
	nodeMap := make(map[grid.Coord]*pathNode)
	seq := 0

	startNode := &pathNode{coord: start, h: f.heuristic(start, end)}
	startNode.f = startNode.h
	heap.Push(openSet, startNode)
	nodeMap[start] = startNode

	for iterations := 0; openSet.Len() > 0 && iterations < limit; iterations++ {
		current := heap.Pop(openSet).(*pathNode)
		if current.coord == end {
			return reconstructPath(current)
		}
		closedSet.Put(current.coord)

		for _, o := range neighborOffsets {
			next := grid.Coord{Row: current.coord.Row + o.dRow, Col: current.coord.Col + o.dCol}
			if !f.grid.InBounds(next) || closedSet.Has(next) {
				continue
			}
			if !f.walkable(next, end) {
				continue
			}

			step := f.costs.Orthogonal
			if o.diagonal() {
				// No corner cutting: both cells flanking the diagonal must be open
				rowSide := grid.Coord{Row: current.coord.Row + o.dRow, Col: current.coord.Col}
				colSide := grid.Coord{Row: current.coord.Row, Col: current.coord.Col + o.dCol}
				if !f.walkable(rowSide, end) || !f.walkable(colSide, end) {
					continue
				}
				step = f.costs.Diagonal
			}
			tentativeG := current.g + step

			existing, seen := nodeMap[next]
			if !seen {
				seq++
				node := &pathNode{
					coord:  next,
					g:      tentativeG,
					h:      f.heuristic(next, end),
					parent: current,
					seq:    seq,
				}
				node.f = node.g + node.h
				heap.Push(openSet, node)
				nodeMap[next] = node
			} else if tentativeG < existing.g {
				existing.g = tentativeG
				existing.f = existing.g + existing.h
				existing.parent = current
				heap.Fix(openSet, existing.index)
			}
		}
	}

	return fallback(start, end)
}

// walkable applies the passability rule with the goal exception.
func (f *Finder) walkable(c, goal grid.Coord) bool {
	return c == goal || f.pass.Passable(c)
}

// heuristic is the Manhattan distance scaled by the orthogonal step cost.
func (f *Finder) heuristic(c, goal grid.Coord) float64 {
	return float64(geometry.ManhattanDistance(c, goal)) * f.costs.Orthogonal
}

// reconstructPath walks parent links back from the goal.
func reconstructPath(goal *pathNode) Result {
	var points []grid.Coord
	for n := goal; n != nil; n = n.parent {
		points = append(points, n.coord)
	}
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return Result{Points: points, Found: true, Cost: goal.g}
}
