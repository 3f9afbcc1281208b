package hexgrid

import "testing"

func uniformCost(Hex) int { return 1 }

func TestFindPathTrivial(t *testing.T) {
	a := FromAxial(0, 0)
	path := FindPath(a, a, uniformCost, -1)
	if len(path) != 1 || path[0] != a {
		t.Fatalf("trivial path = %+v", path)
	}
}

func TestFindPathStraightLine(t *testing.T) {
	start := FromAxial(0, 0)
	goal := FromAxial(3, 0)
	path := FindPath(start, goal, uniformCost, -1)
	if len(path) != 4 {
		t.Fatalf("path length = %d, want 4: %+v", len(path), path)
	}
	if path[0] != start || path[len(path)-1] != goal {
		t.Fatalf("path endpoints wrong: %+v", path)
	}
}

func TestFindPathRoutesAroundBlockedHex(t *testing.T) {
	start := FromAxial(0, 0)
	goal := FromAxial(2, 0)
	blocked := map[Hex]bool{FromAxial(1, 0): true}
	oracle := func(h Hex) int {
		if blocked[h] {
			return Unreachable
		}
		return 1
	}
	// Only the hex directly between start and goal is blocked, so the
	// path must route around it.
	path := FindPath(start, goal, oracle, -1)
	if len(path) == 0 {
		t.Fatalf("expected a detour path, got none")
	}
	for _, h := range path {
		if blocked[h] {
			t.Fatalf("path passes through blocked hex: %+v", path)
		}
	}
}

func TestFindPathUnreachableReturnsEmpty(t *testing.T) {
	start := FromAxial(0, 0)
	goal := FromAxial(5, 0)
	oracle := func(Hex) int { return Unreachable }
	path := FindPath(start, goal, oracle, -1)
	if len(path) != 0 {
		t.Fatalf("expected empty path, got %+v", path)
	}
}

func TestFindPathRespectsMaxCost(t *testing.T) {
	start := FromAxial(0, 0)
	goal := FromAxial(10, 0)
	path := FindPath(start, goal, uniformCost, 3)
	if len(path) != 0 {
		t.Fatalf("expected empty path over maxCost, got %+v", path)
	}
}

func TestFindPathOptimality(t *testing.T) {
	start := FromAxial(0, 0)
	goal := FromAxial(4, -2)
	// The hex midway along the direct route costs 0 and every other hex
	// costs 2, so the optimal path must pass through it.
	cheap := FromAxial(2, -1)
	oracle := func(h Hex) int {
		if h == cheap {
			return 0
		}
		return 2
	}
	path := FindPath(start, goal, oracle, -1)
	if len(path) == 0 {
		t.Fatalf("expected a path")
	}
	total := 0
	for _, h := range path[1:] {
		total += oracle(h)
	}
	// Direct distance is 4, so a shortest route that avoids the free hex
	// costs 8. Routing through the free hex should cost strictly less.
	if total >= 8 {
		t.Fatalf("path cost %d is not better than naive straight line (8): %+v", total, path)
	}
}
