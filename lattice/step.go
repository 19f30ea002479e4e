package lattice

import (
	"sync"

	"github.com/myousefi2016/lgca/model"
	"github.com/myousefi2016/lgca/utils"
)

// CollideAndPropagate advances the lattice by one step: each cell gathers the
// particles arriving from its neighbors, applies the collision rule of its
// cell type and scatters the result into the scratch buffer, which then
// becomes current. Workers operate on disjoint blocks of cells; the gather
// reads only the current buffer, so no synchronization is needed inside the
// kernel.
func (l *Lattice) CollideAndPropagate() {
	var (
		pm = l.blockPartitions
		wg = sync.WaitGroup{}
	)
	l.refreshRandomPool()
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			blockMin, blockMax := pm.GetBucketRange(np)
			for block := blockMin; block < blockMax; block++ {
				cellMax := (block + 1) * utils.BitsPerBlock
				if cellMax > l.NumCells {
					cellMax = l.NumCells
				}
				for cell := block * utils.BitsPerBlock; cell < cellMax; cell++ {
					l.updateCell(cell)
				}
			}
		}(np)
	}
	wg.Wait()
	l.nodeState, l.nodeStateTmp = l.nodeStateTmp, l.nodeState
}

func (l *Lattice) updateCell(cell int) {
	var (
		md = l.Model
		nt = l.neighbors

		posY = cell / l.DimX
		even = posY%2 == 0

		onEasternBoundary  = (cell+1)%l.DimX == 0
		onNorthernBoundary = cell >= l.NumCells-l.DimX
		onWesternBoundary  = cell%l.DimX == 0
		onSouthernBoundary = cell < l.DimX
	)

	// Pull the arriving node states from the neighbor cells: the particle
	// arriving in direction dir comes from the neighbor in the inverse
	// direction, where it is stored under dir as well.
	var in uint8
	for dir := 0; dir < md.NumDir; dir++ {
		invDir := md.InvDir[dir]
		var offset int
		if even {
			offset = nt.OffsetToNeighborEven[invDir]
			if onEasternBoundary {
				offset += nt.OffsetToWesternBoundaryEven[invDir]
			}
			if onNorthernBoundary {
				offset += nt.OffsetToSouthernBoundaryEven[invDir]
			}
			if onWesternBoundary {
				offset += nt.OffsetToEasternBoundaryEven[invDir]
			}
			if onSouthernBoundary {
				offset += nt.OffsetToNorthernBoundaryEven[invDir]
			}
		} else {
			offset = nt.OffsetToNeighborOdd[invDir]
			if onEasternBoundary {
				offset += nt.OffsetToWesternBoundaryOdd[invDir]
			}
			if onNorthernBoundary {
				offset += nt.OffsetToSouthernBoundaryOdd[invDir]
			}
			if onWesternBoundary {
				offset += nt.OffsetToEasternBoundaryOdd[invDir]
			}
			if onSouthernBoundary {
				offset += nt.OffsetToNorthernBoundaryOdd[invDir]
			}
		}
		if l.nodeState.Test((cell+offset)*model.Stride + dir) {
			in |= 1 << uint(dir)
		}
	}

	var out uint8
	switch l.CellTypes[cell] {
	case Fluid:
		tiebreak := 0
		if l.rnd.Test(cell) {
			tiebreak = 1
		}
		out = md.CollisionLUT[tiebreak][in]
	case SolidNoSlip:
		out = md.BounceBackLUT[in]
	case SolidSlip:
		out = in
		if onNorthernBoundary || onSouthernBoundary {
			out = md.BounceForwardXLUT[out]
		}
		if onEasternBoundary || onWesternBoundary {
			out = md.BounceForwardYLUT[out]
		}
	}

	base := cell * model.Stride
	for dir := 0; dir < md.NumDir; dir++ {
		l.nodeStateTmp.SetTo(base+dir, out&(1<<uint(dir)) != 0)
	}
}
