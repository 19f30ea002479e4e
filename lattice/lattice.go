package lattice

import (
	"fmt"
	"math/rand"
	"runtime"

	"github.com/myousefi2016/lgca/model"
	"github.com/myousefi2016/lgca/utils"
)

// CellType classifies a cell's behavior under the step operator.
type CellType uint8

const (
	Fluid CellType = iota
	SolidNoSlip
	SolidSlip
)

// Config collects the construction parameters of a Lattice.
type Config struct {
	Model                model.Model
	DimX, DimY           int
	Re, MaS              float64 // accepted opaquely, consumed by the driver
	CoarseGrainingRadius int
	Seed                 int64
	ProcLimit            int // caps the number of worker goroutines, 0 = NumCPU
}

// Lattice owns the automaton state: the cell-type map, the ping-pong pair of
// bit-packed node-state buffers, a snapshot buffer for post-processing, the
// per-cell random pool and the derived density/momentum fields.
type Lattice struct {
	Model *model.Descriptor

	DimX, DimY int
	NumCells   int

	CoarseRadius   int
	CoarseDimX     int
	CoarseDimY     int
	NumCoarseCells int

	Re, MaS float64

	CellTypes []CellType

	nodeState    *utils.Bitset // current, read by the step kernel
	nodeStateTmp *utils.Bitset // scratch, written by the step kernel
	nodeStateOut *utils.Bitset // snapshot read by post-processing
	rnd          *utils.Bitset // one tiebreak bit per cell

	rng *rand.Rand

	cellDensity  []float64
	cellMomentum []float64 // interleaved x,y per cell
	meanDensity  []float64
	meanMomentum []float64 // interleaved x,y per coarse cell

	neighbors *model.NeighborTable

	ParallelDegree   int
	cellPartitions   *utils.PartitionMap
	blockPartitions  *utils.PartitionMap
	coarsePartitions *utils.PartitionMap
}

// New validates the configuration and allocates all buffers. The node state
// starts empty and all cells are Fluid.
func New(cfg Config) (l *Lattice, err error) {
	if cfg.Model.NumDir() == 0 {
		return nil, fmt.Errorf("unknown model %d", cfg.Model)
	}
	if cfg.DimX < 1 || cfg.DimY < 1 {
		return nil, fmt.Errorf("invalid domain dimensions %dx%d", cfg.DimX, cfg.DimY)
	}
	if cfg.Model != model.HPP && cfg.DimY%2 != 0 {
		return nil, fmt.Errorf("invalid domain dimension in y direction: %s requires even DimY, got %d",
			cfg.Model, cfg.DimY)
	}
	if cfg.CoarseGrainingRadius < 0 {
		return nil, fmt.Errorf("negative coarse graining radius %d", cfg.CoarseGrainingRadius)
	}
	var (
		n      = cfg.DimX * cfg.DimY
		w      = 2*cfg.CoarseGrainingRadius + 1
		cDimX  = (cfg.DimX + w - 1) / w
		cDimY  = (cfg.DimY + w - 1) / w
		nCells = cDimX * cDimY
	)
	l = &Lattice{
		Model:          model.NewDescriptor(cfg.Model),
		DimX:           cfg.DimX,
		DimY:           cfg.DimY,
		NumCells:       n,
		CoarseRadius:   cfg.CoarseGrainingRadius,
		CoarseDimX:     cDimX,
		CoarseDimY:     cDimY,
		NumCoarseCells: nCells,
		Re:             cfg.Re,
		MaS:            cfg.MaS,
		CellTypes:      make([]CellType, n),
		nodeState:      utils.NewBitset(n * model.Stride),
		nodeStateTmp:   utils.NewBitset(n * model.Stride),
		nodeStateOut:   utils.NewBitset(n * model.Stride),
		rnd:            utils.NewBitset(n),
		rng:            rand.New(rand.NewSource(cfg.Seed)),
		cellDensity:    make([]float64, n),
		cellMomentum:   make([]float64, model.SpatialDim*n),
		meanDensity:    make([]float64, nCells),
		meanMomentum:   make([]float64, model.SpatialDim*nCells),
		neighbors:      model.NewNeighborTable(cfg.Model, cfg.DimX, cfg.DimY),
	}
	l.ParallelDegree = cfg.ProcLimit
	if l.ParallelDegree == 0 {
		l.ParallelDegree = runtime.NumCPU()
	}
	l.cellPartitions = l.newPartitionMap(l.NumCells)
	l.blockPartitions = l.newPartitionMap((l.NumCells-1)/utils.BitsPerBlock + 1)
	l.coarsePartitions = l.newPartitionMap(l.NumCoarseCells)
	l.refreshRandomPool()
	return l, nil
}

func (l *Lattice) newPartitionMap(maxIndex int) *utils.PartitionMap {
	np := l.ParallelDegree
	if np > maxIndex {
		np = 1
	}
	return utils.NewPartitionMap(np, maxIndex)
}

// CellIndex linearizes grid coordinates.
func (l *Lattice) CellIndex(x, y int) int {
	return y*l.DimX + x
}

// SetCellType stamps the type of one cell. Geometry is stamped before the run
// and is immutable during it.
func (l *Lattice) SetCellType(x, y int, ct CellType) {
	if x < 0 || x >= l.DimX || y < 0 || y >= l.DimY {
		panic(fmt.Sprintf("cell (%d,%d) outside %dx%d domain", x, y, l.DimX, l.DimY))
	}
	l.CellTypes[l.CellIndex(x, y)] = ct
}

// CellTypeAt returns the type of the cell at (x, y).
func (l *Lattice) CellTypeAt(x, y int) CellType {
	return l.CellTypes[l.CellIndex(x, y)]
}

// InitSingle places one particle at (x, y) moving in direction dir.
func (l *Lattice) InitSingle(x, y, dir int) {
	if dir < 0 || dir >= l.Model.NumDir {
		panic(fmt.Sprintf("direction %d outside model %s", dir, l.Model.Model))
	}
	l.nodeState.Set(l.CellIndex(x, y)*model.Stride + dir)
}

// InitRandom occupies every moving-direction node of every fluid cell with
// the given probability, drawing from the lattice PRNG.
func (l *Lattice) InitRandom(density float64) {
	var (
		nMoving = l.Model.Model.NumMovingDir()
	)
	for cell := 0; cell < l.NumCells; cell++ {
		if l.CellTypes[cell] != Fluid {
			continue
		}
		for dir := 0; dir < nMoving; dir++ {
			if l.rng.Float64() < density {
				l.nodeState.Set(cell*model.Stride + dir)
			}
		}
	}
}

// ClearNodeState empties all three node-state buffers.
func (l *Lattice) ClearNodeState() {
	l.nodeState.Reset()
	l.nodeStateTmp.Reset()
	l.nodeStateOut.Reset()
}

// NodeAt reports the occupancy of (cell, dir) in the current buffer.
func (l *Lattice) NodeAt(x, y, dir int) bool {
	return l.nodeState.Test(l.CellIndex(x, y)*model.Stride + dir)
}

// CellPattern returns the node pattern of one cell in the current buffer.
func (l *Lattice) CellPattern(x, y int) (p uint8) {
	base := l.CellIndex(x, y) * model.Stride
	for dir := 0; dir < l.Model.NumDir; dir++ {
		if l.nodeState.Test(base + dir) {
			p |= 1 << uint(dir)
		}
	}
	return
}

// NumParticles returns the total particle count of the current buffer.
func (l *Lattice) NumParticles() int {
	return l.nodeState.Count()
}

// SnapshotOutput copies the current node state into the snapshot buffer the
// post-processing kernels read. The driver decides when the snapshot is taken.
func (l *Lattice) SnapshotOutput() {
	l.nodeStateOut.CopyFrom(l.nodeState)
}

// CellDensity exposes the per-cell densities computed by the last post-process
// pass.
func (l *Lattice) CellDensity() []float64 {
	return l.cellDensity
}

// CellMomentum exposes the per-cell momenta, interleaved x,y.
func (l *Lattice) CellMomentum() []float64 {
	return l.cellMomentum
}

// MeanDensity exposes the coarse-grained densities.
func (l *Lattice) MeanDensity() []float64 {
	return l.meanDensity
}

// MeanMomentum exposes the coarse-grained momenta, interleaved x,y.
func (l *Lattice) MeanMomentum() []float64 {
	return l.meanMomentum
}

// refreshRandomPool redraws the per-cell tiebreak bits. Runs sequentially
// before the parallel step so the pool is read-only during it.
func (l *Lattice) refreshRandomPool() {
	for n := 0; n < l.rnd.NumBlocks(); n++ {
		l.rnd.SetBlock(n, l.rng.Uint64())
	}
}
