// Package hexgrid implements cube-coordinate hex math: construction,
// neighbors, distance, rings, ranges, line-draw, and A* pathfinding over
// a caller-supplied cost oracle.
package hexgrid

import (
	"fmt"
	"math"
)

// Hex is a cube coordinate satisfying q+r+s=0.
type Hex struct {
	Q, R, S int
}

// New constructs a Hex from cube coordinates, rejecting any triple whose
// components don't sum to zero.
func New(q, r, s int) (Hex, error) {
	if q+r+s != 0 {
		return Hex{}, fmt.Errorf("hexgrid: invalid cube coordinate (%d,%d,%d): q+r+s must be 0", q, r, s)
	}
	return Hex{Q: q, R: r, S: s}, nil
}

// FromAxial derives a cube Hex from axial (q, r).
func FromAxial(q, r int) Hex {
	return Hex{Q: q, R: r, S: -q - r}
}

// Axial returns the axial (q, r) projection of h.
func (h Hex) Axial() (q, r int) {
	return h.Q, h.R
}

// OffsetParity selects odd-r or even-r offset conversion.
type OffsetParity int

const (
	OffsetOddR OffsetParity = iota
	OffsetEvenR
)

// FromOffset derives a cube Hex from "odd-r"/"even-r" row-offset
// coordinates, the common representation for a rectangular hex map.
func FromOffset(col, row int, parity OffsetParity) Hex {
	var q int
	switch parity {
	case OffsetOddR:
		q = col - (row-(row&1))/2
	default:
		q = col - (row+(row&1))/2
	}
	r := row
	return FromAxial(q, r)
}

// Offset converts h back to "odd-r"/"even-r" row-offset (col, row).
func (h Hex) Offset(parity OffsetParity) (col, row int) {
	row = h.R
	switch parity {
	case OffsetOddR:
		col = h.Q + (row-(row&1))/2
	default:
		col = h.Q + (row+(row&1))/2
	}
	return col, row
}

// Add returns the component-wise sum of two hexes.
func (h Hex) Add(o Hex) Hex {
	return Hex{Q: h.Q + o.Q, R: h.R + o.R, S: h.S + o.S}
}

// Sub returns the component-wise difference of two hexes.
func (h Hex) Sub(o Hex) Hex {
	return Hex{Q: h.Q - o.Q, R: h.R - o.R, S: h.S - o.S}
}

// Scale returns h scaled by an integer factor.
func (h Hex) Scale(factor int) Hex {
	return Hex{Q: h.Q * factor, R: h.R * factor, S: h.S * factor}
}

// directions are the six canonical cube-coordinate neighbor vectors,
// ordered clockwise starting from the east direction.
var directions = [6]Hex{
	{Q: 1, R: 0, S: -1},
	{Q: 1, R: -1, S: 0},
	{Q: 0, R: -1, S: 1},
	{Q: -1, R: 0, S: 1},
	{Q: -1, R: 1, S: 0},
	{Q: 0, R: 1, S: -1},
}

// Direction returns one of the six canonical neighbor vectors, 0-5.
func Direction(i int) Hex {
	return directions[((i%6)+6)%6]
}

// Neighbor returns the hex adjacent to h in direction i (0-5).
func (h Hex) Neighbor(i int) Hex {
	return h.Add(Direction(i))
}

// Neighbors returns all six adjacent hexes.
func (h Hex) Neighbors() [6]Hex {
	var out [6]Hex
	for i := 0; i < 6; i++ {
		out[i] = h.Neighbor(i)
	}
	return out
}

// Distance returns the canonical cube distance max(|q|,|r|,|s|) between
// h and o. Per spec §9 this is authoritative; the halved offset-style
// distance the source sometimes uses is not implemented.
func (h Hex) Distance(o Hex) int {
	d := h.Sub(o)
	return iMax3(iAbs(d.Q), iAbs(d.R), iAbs(d.S))
}

// Ring returns every hex at exactly radius n from h (n >= 0).
func (h Hex) Ring(n int) []Hex {
	if n == 0 {
		return []Hex{h}
	}
	out := make([]Hex, 0, 6*n)
	cur := h.Add(Direction(4).Scale(n))
	for side := 0; side < 6; side++ {
		for step := 0; step < n; step++ {
			out = append(out, cur)
			cur = cur.Neighbor(side)
		}
	}
	return out
}

// Range returns every hex within radius n of h (inclusive), including h.
func (h Hex) Range(n int) []Hex {
	out := make([]Hex, 0, 3*n*(n+1)+1)
	for q := -n; q <= n; q++ {
		r1 := iMax(-n, -q-n)
		r2 := iMin(n, -q+n)
		for r := r1; r <= r2; r++ {
			out = append(out, h.Add(Hex{Q: q, R: r, S: -q - r}))
		}
	}
	return out
}

// lerp linearly interpolates one cube coordinate (as a float) at t in [0,1].
func lerp(a, b float64, t float64) float64 {
	return a + (b-a)*t
}

// round rounds fractional cube coordinates to the nearest valid integer
// hex, per the standard cube-rounding algorithm.
func round(q, r, s float64) Hex {
	rq := math.Round(q)
	rr := math.Round(r)
	rs := math.Round(s)

	dq := math.Abs(rq - q)
	dr := math.Abs(rr - r)
	ds := math.Abs(rs - s)

	if dq > dr && dq > ds {
		rq = -rr - rs
	} else if dr > ds {
		rr = -rq - rs
	} else {
		rs = -rq - rr
	}
	return Hex{Q: int(rq), R: int(rr), S: int(rs)}
}

// Line draws the sequence of hexes from a to b inclusive, via linear
// interpolation and cube rounding. Line(a,b) equals reverse(Line(b,a))
// up to tie-break-equivalent hexes (spec §8).
func Line(a, b Hex) []Hex {
	n := a.Distance(b)
	if n == 0 {
		return []Hex{a}
	}
	out := make([]Hex, 0, n+1)
	// A tiny epsilon nudge keeps the rounding stable and symmetric when a
	// hex lies exactly on a shared edge between two cells.
	const eps = 1e-6
	aq, ar, as := float64(a.Q)+eps, float64(a.R)+eps, float64(a.S)-2*eps
	bq, br, bs := float64(b.Q)+eps, float64(b.R)+eps, float64(b.S)-2*eps
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		out = append(out, round(lerp(aq, bq, t), lerp(ar, br, t), lerp(as, bs, t)))
	}
	return out
}

func iAbs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func iMax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func iMin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func iMax3(a, b, c int) int {
	return iMax(a, iMax(b, c))
}
