package hexgrid

import "container/heap"

// Unreachable is the cost oracle's signal that a hex cannot be entered at
// all (spec §4.2: "returns infinity if impassable for that category").
const Unreachable = -1

// CostOracle reports the cost to enter dst, or Unreachable if dst cannot
// be entered. The oracle is consulted per destination hex, not per edge,
// per spec §4.1.
type CostOracle func(dst Hex) int

// pathNode is one entry in the A* open set.
type pathNode struct {
	hex      Hex
	gCost    int // cost from start
	fCost    int // gCost + heuristic
	seq      int // stable insertion order, used as a tie-break
	index    int // heap.Interface bookkeeping
}

type openHeap []*pathNode

func (h openHeap) Len() int { return len(h) }
func (h openHeap) Less(i, j int) bool {
	if h[i].fCost != h[j].fCost {
		return h[i].fCost < h[j].fCost
	}
	// Lower heuristic first, then stable insertion order (spec §4.1).
	if hi, hj := h[i].fCost-h[i].gCost, h[j].fCost-h[j].gCost; hi != hj {
		return hi < hj
	}
	return h[i].seq < h[j].seq
}
func (h openHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *openHeap) Push(x any) {
	n := *h
	node := x.(*pathNode)
	node.index = len(n)
	*h = append(n, node)
}
func (h *openHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*h = old[:n-1]
	return node
}

// FindPath runs A* from start to goal using costOracle for edge weights.
// It returns the path including both start and goal, or an empty slice if
// goal is unreachable or every discoverable path exceeds maxCost (pass a
// negative maxCost to disable the cap). The returned path, when
// non-empty, is minimum-cost; ties break on lower heuristic first, then
// stable insertion order (spec §4.1, §8 optimality).
func FindPath(start, goal Hex, costOracle CostOracle, maxCost int) []Hex {
	if start == goal {
		return []Hex{start}
	}

	open := &openHeap{}
	heap.Init(open)
	seqCounter := 0

	gScore := map[Hex]int{start: 0}
	cameFrom := map[Hex]Hex{}
	closed := map[Hex]bool{}

	heap.Push(open, &pathNode{hex: start, gCost: 0, fCost: start.Distance(goal), seq: seqCounter})
	seqCounter++

	for open.Len() > 0 {
		cur := heap.Pop(open).(*pathNode)
		if closed[cur.hex] {
			continue
		}
		if cur.hex == goal {
			return reconstruct(cameFrom, start, goal)
		}
		closed[cur.hex] = true

		for _, n := range cur.hex.Neighbors() {
			cost := costOracle(n)
			if cost == Unreachable || cost < 0 {
				continue
			}
			tentative := cur.gCost + cost
			if maxCost >= 0 && tentative > maxCost {
				continue
			}
			if existing, ok := gScore[n]; ok && existing <= tentative {
				continue
			}
			gScore[n] = tentative
			cameFrom[n] = cur.hex
			heap.Push(open, &pathNode{
				hex:   n,
				gCost: tentative,
				fCost: tentative + n.Distance(goal),
				seq:   seqCounter,
			})
			seqCounter++
		}
	}
	return nil
}

func reconstruct(cameFrom map[Hex]Hex, start, goal Hex) []Hex {
	path := []Hex{goal}
	cur := goal
	for cur != start {
		prev, ok := cameFrom[cur]
		if !ok {
			return nil
		}
		path = append(path, prev)
		cur = prev
	}
	// reverse in place
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
