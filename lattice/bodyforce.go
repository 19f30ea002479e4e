package lattice

import (
	"github.com/myousefi2016/lgca/model"
)

// BodyForceDir selects the axis of the body force.
type BodyForceDir byte

const (
	BodyForceX BodyForceDir = 'x'
	BodyForceY BodyForceDir = 'y'
)

// ApplyBodyForce reverses up to forcing suitable particle pairs in randomly
// sampled fluid cells, injecting net momentum along the given axis. Sampling
// stops after 2*NumCells draws even if fewer reversals succeeded, so a
// saturated lattice cannot livelock the operator; the caller can compare the
// returned count against forcing. Runs sequentially on the current buffer and
// must not overlap the step kernel.
func (l *Lattice) ApplyBodyForce(dir BodyForceDir, forcing int) (reverted int) {
	var (
		itMax = 2 * l.NumCells
		isHPP = l.Model.Model == model.HPP
	)
	for it := 0; reverted < forcing && it < itMax; it++ {
		cell := l.rng.Intn(l.NumCells)
		if l.CellTypes[cell] != Fluid {
			continue
		}
		base := cell * model.Stride
		if isHPP {
			switch dir {
			case BodyForceX:
				if !l.nodeState.Test(base+0) && l.nodeState.Test(base+2) {
					l.nodeState.Set(base + 0)
					l.nodeState.Clear(base + 2)
					reverted++
				}
			case BodyForceY:
				if l.nodeState.Test(base+1) && !l.nodeState.Test(base+3) {
					l.nodeState.Clear(base + 1)
					l.nodeState.Set(base + 3)
					reverted++
				}
			}
			continue
		}
		switch dir {
		case BodyForceX:
			if !l.nodeState.Test(base+0) && l.nodeState.Test(base+3) {
				l.nodeState.Set(base + 0)
				l.nodeState.Clear(base + 3)
				reverted++
			}
		case BodyForceY:
			// Both diagonal pairs with a y component are tried independently
			if l.nodeState.Test(base+1) && !l.nodeState.Test(base+5) {
				l.nodeState.Clear(base + 1)
				l.nodeState.Set(base + 5)
				reverted++
			}
			if reverted < forcing && l.nodeState.Test(base+2) && !l.nodeState.Test(base+4) {
				l.nodeState.Clear(base + 2)
				l.nodeState.Set(base + 4)
				reverted++
			}
		}
	}
	return
}
