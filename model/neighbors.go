package model

// NeighborTable holds, per row parity and direction, the signed linear index
// offset from a cell to its neighbor in that direction, plus per-edge
// corrections that wrap the indexing periodically. The even/odd split captures
// the half-cell eastward shift of odd rows on the triangular FHP lattices.
//
// The corrections are named for the boundary the wrapped neighbor lands on:
// a cell on the eastern edge reaching east wraps to the western boundary, so
// OffsetToWesternBoundary* applies to cells on the eastern edge, and so on.
// Entries are zero for directions that do not cross the edge, so the kernels
// add them unconditionally.
type NeighborTable struct {
	DimX, DimY int

	OffsetToNeighborEven []int
	OffsetToNeighborOdd  []int

	OffsetToWesternBoundaryEven  []int
	OffsetToWesternBoundaryOdd   []int
	OffsetToEasternBoundaryEven  []int
	OffsetToEasternBoundaryOdd   []int
	OffsetToNorthernBoundaryEven []int
	OffsetToNorthernBoundaryOdd  []int
	OffsetToSouthernBoundaryEven []int
	OffsetToSouthernBoundaryOdd  []int
}

// displacements returns the per-direction storage-grid displacement of the
// neighbor in each direction for the given row parity.
func displacements(m Model, odd bool) (dx, dy []int) {
	switch m {
	case HPP:
		dx = []int{1, 0, -1, 0}
		dy = []int{0, 1, 0, -1}
	default:
		if !odd {
			dx = []int{1, 0, -1, -1, -1, 0}
			dy = []int{0, 1, 1, 0, -1, -1}
		} else {
			dx = []int{1, 1, 0, -1, 0, 1}
			dy = []int{0, 1, 1, 0, -1, -1}
		}
		// Rest slots stay in place
		for d := 6; d < m.NumDir(); d++ {
			dx = append(dx, 0)
			dy = append(dy, 0)
		}
	}
	return
}

// NewNeighborTable precomputes the offset and correction tables for the given
// model and grid dimensions.
func NewNeighborTable(m Model, dimX, dimY int) (nt *NeighborTable) {
	var (
		numDir = m.NumDir()
		n      = dimX * dimY
	)
	nt = &NeighborTable{
		DimX:                         dimX,
		DimY:                         dimY,
		OffsetToNeighborEven:         make([]int, numDir),
		OffsetToNeighborOdd:          make([]int, numDir),
		OffsetToWesternBoundaryEven:  make([]int, numDir),
		OffsetToWesternBoundaryOdd:   make([]int, numDir),
		OffsetToEasternBoundaryEven:  make([]int, numDir),
		OffsetToEasternBoundaryOdd:   make([]int, numDir),
		OffsetToNorthernBoundaryEven: make([]int, numDir),
		OffsetToNorthernBoundaryOdd:  make([]int, numDir),
		OffsetToSouthernBoundaryEven: make([]int, numDir),
		OffsetToSouthernBoundaryOdd:  make([]int, numDir),
	}
	for _, odd := range []bool{false, true} {
		dx, dy := displacements(m, odd)
		offset := nt.OffsetToNeighborEven
		west := nt.OffsetToWesternBoundaryEven
		east := nt.OffsetToEasternBoundaryEven
		north := nt.OffsetToNorthernBoundaryEven
		south := nt.OffsetToSouthernBoundaryEven
		if odd {
			offset = nt.OffsetToNeighborOdd
			west = nt.OffsetToWesternBoundaryOdd
			east = nt.OffsetToEasternBoundaryOdd
			north = nt.OffsetToNorthernBoundaryOdd
			south = nt.OffsetToSouthernBoundaryOdd
		}
		for d := 0; d < numDir; d++ {
			offset[d] = dy[d]*dimX + dx[d]
			if dx[d] > 0 { // crosses the eastern edge when on it
				west[d] = -dimX
			}
			if dx[d] < 0 { // crosses the western edge when on it
				east[d] = dimX
			}
			if dy[d] > 0 { // crosses the northern edge when on it
				south[d] = -n
			}
			if dy[d] < 0 { // crosses the southern edge when on it
				north[d] = n
			}
		}
	}
	return
}
