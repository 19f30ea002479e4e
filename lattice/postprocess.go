package lattice

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/myousefi2016/lgca/model"
)

const densityTol = 1.0e-06

// PostProcess derives the per-cell and coarse-grained quantities of interest
// from the snapshot buffer. It never mutates node state; running it twice
// without stepping yields identical fields.
func (l *Lattice) PostProcess() {
	l.cellPostProcess()
	l.meanPostProcess()
}

// cellPostProcess computes each cell's density (occupied node count) and
// momentum (occupancy-weighted sum of lattice vectors).
func (l *Lattice) cellPostProcess() {
	var (
		md = l.Model
		pm = l.cellPartitions
		wg = sync.WaitGroup{}
	)
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			cellMin, cellMax := pm.GetBucketRange(np)
			for cell := cellMin; cell < cellMax; cell++ {
				var (
					density   int
					momentumX float64
					momentumY float64
					base      = cell * model.Stride
				)
				for dir := 0; dir < md.NumDir; dir++ {
					if !l.nodeStateOut.Test(base + dir) {
						continue
					}
					density++
					momentumX += md.LatticeVecX[dir]
					momentumY += md.LatticeVecY[dir]
				}
				l.cellDensity[cell] = float64(density)
				l.cellMomentum[cell*model.SpatialDim] = momentumX
				l.cellMomentum[cell*model.SpatialDim+1] = momentumY
			}
		}(np)
	}
	wg.Wait()
}

// meanPostProcess averages density and momentum over the fine-cell window of
// every coarse cell. The window spans 2r+1 rows and 2r+1 columns starting at
// its bottom left cell, but neighbors that fall outside the array or whose
// column lies more than r away from that origin column are skipped: only the
// first r+1 columns contribute, and east/west wrap-around is kept out of the
// averages.
func (l *Lattice) meanPostProcess() {
	var (
		r  = l.CoarseRadius
		w  = 2*r + 1
		pm = l.coarsePartitions
		wg = sync.WaitGroup{}
	)
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			coarseMin, coarseMax := pm.GetBucketRange(np)
			for coarseCell := coarseMin; coarseCell < coarseMax; coarseCell++ {
				var (
					// Fine cell in the bottom left corner of the coarse cell
					cell = (coarseCell%l.CoarseDimX)*w + (coarseCell/l.CoarseDimX)*w*l.DimX
					posX = cell % l.DimX

					meanDensity    float64
					meanMomentumX  float64
					meanMomentumY  float64
					existNeighbors int
				)
				for y := 0; y <= 2*r; y++ {
					for x := 0; x <= 2*r; x++ {
						neighbor := cell + y*l.DimX + x
						if neighbor < 0 || neighbor >= l.NumCells {
							continue
						}
						posXNeighbor := neighbor % l.DimX
						if posXNeighbor-posX > r || posX-posXNeighbor > r {
							continue
						}
						existNeighbors++
						meanDensity += l.cellDensity[neighbor]
						meanMomentumX += l.cellMomentum[neighbor*model.SpatialDim]
						meanMomentumY += l.cellMomentum[neighbor*model.SpatialDim+1]
					}
				}
				l.meanDensity[coarseCell] = meanDensity / float64(existNeighbors)
				l.meanMomentum[coarseCell*model.SpatialDim] = meanMomentumX / float64(existNeighbors)
				l.meanMomentum[coarseCell*model.SpatialDim+1] = meanMomentumY / float64(existNeighbors)
			}
		}(np)
	}
	wg.Wait()
}

// GetMeanVelocity reduces the per-cell fields to the mean velocity over all
// fluid cells. Cells with vanishing density contribute nothing; a negative
// density is an invariant violation and aborts the run.
func (l *Lattice) GetMeanVelocity() (meanVelocity [model.SpatialDim]float64) {
	var (
		pm      = l.cellPartitions
		np      = pm.ParallelDegree
		sumX    = make([]float64, np)
		sumY    = make([]float64, np)
		counter = make([]float64, np)
		wg      = sync.WaitGroup{}
	)
	for n := 0; n < np; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			cellMin, cellMax := pm.GetBucketRange(n)
			for cell := cellMin; cell < cellMax; cell++ {
				if l.CellTypes[cell] != Fluid {
					continue
				}
				counter[n]++
				density := l.cellDensity[cell]
				if density > densityTol {
					sumX[n] += l.cellMomentum[cell*model.SpatialDim] / density
					sumY[n] += l.cellMomentum[cell*model.SpatialDim+1] / density
				} else if density < -densityTol {
					panic(fmt.Sprintf("negative cell density %g detected at cell %d", density, cell))
				}
			}
		}(n)
	}
	wg.Wait()
	total := floats.Sum(counter)
	if total == 0 {
		return
	}
	meanVelocity[0] = floats.Sum(sumX) / total
	meanVelocity[1] = floats.Sum(sumY) / total
	return
}
