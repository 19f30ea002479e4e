package test_cases

import (
	"fmt"
	"math"

	"github.com/myousefi2016/lgca/lattice"
)

// CaseType names the built-in flow configurations. A case stamps the cell-type
// map and seeds the node state; the lattice core treats the result as opaque
// input.
type CaseType uint8

const (
	Box CaseType = iota // periodic all-fluid torus
	Pipe
	Karman
	Diffusion
	Collision
)

func NewCaseType(name string) (c CaseType, err error) {
	switch name {
	case "box":
		c = Box
	case "pipe":
		c = Pipe
	case "karman":
		c = Karman
	case "diffusion":
		c = Diffusion
	case "collision":
		c = Collision
	default:
		err = fmt.Errorf("unknown test case %q", name)
	}
	return
}

func (c CaseType) Print() string {
	return []string{"box", "pipe", "karman", "diffusion", "collision"}[c]
}

// SeedDensity derives the initial per-node occupation probability from the
// Mach target: the equilibrium mean velocity scales with both the forcing and
// the fraction of free nodes, so higher Ma targets seed a lighter lattice.
func SeedDensity(maS float64) (d float64) {
	d = 0.5 - 0.2*maS
	if d < 0.05 {
		d = 0.05
	}
	return
}

// SuggestedForcing derives a body-force intensity from the Reynolds and Mach
// targets: steady state is reached when the per-step injection balances the
// viscous drain of the channel, which scales with u*N/(Re*L).
func SuggestedForcing(l *lattice.Lattice) (forcing int) {
	var (
		uTarget = l.MaS / math.Sqrt2 // lattice speed of sound times Ma
		n       = float64(l.NumCells)
		scale   = uTarget * n / (l.Re * float64(l.DimY))
	)
	forcing = int(scale)
	if forcing < 1 {
		forcing = 1
	}
	return
}

// Setup stamps the geometry of the chosen case and seeds the node state.
func Setup(l *lattice.Lattice, c CaseType) error {
	switch c {
	case Box:
		setupBox(l)
	case Pipe:
		setupPipe(l)
	case Karman:
		setupKarman(l)
	case Diffusion:
		setupDiffusion(l)
	case Collision:
		setupCollision(l)
	default:
		return fmt.Errorf("unknown test case %d", c)
	}
	return nil
}

// setupBox leaves the whole domain fluid and periodic.
func setupBox(l *lattice.Lattice) {
	l.InitRandom(SeedDensity(l.MaS))
}

// setupPipe walls the top and bottom rows with no-slip cells.
func setupPipe(l *lattice.Lattice) {
	setupGeometryPipe(l)
	l.InitRandom(SeedDensity(l.MaS))
}

// setupKarman places a flat plate obstacle across a quarter of the channel
// height, a quarter of the way downstream.
func setupKarman(l *lattice.Lattice) {
	setupGeometryPipe(l)
	var (
		plateX = l.DimX / 4
		h      = l.DimY / 4
		y0     = (l.DimY - h) / 2
	)
	for y := y0; y < y0+h; y++ {
		l.SetCellType(plateX, y, lattice.SolidNoSlip)
	}
	l.InitRandom(SeedDensity(l.MaS))
}

// setupDiffusion closes the box with no-slip walls and seeds only the western
// half, so the density front diffuses eastward.
func setupDiffusion(l *lattice.Lattice) {
	for x := 0; x < l.DimX; x++ {
		l.SetCellType(x, 0, lattice.SolidNoSlip)
		l.SetCellType(x, l.DimY-1, lattice.SolidNoSlip)
	}
	for y := 0; y < l.DimY; y++ {
		l.SetCellType(0, y, lattice.SolidNoSlip)
		l.SetCellType(l.DimX-1, y, lattice.SolidNoSlip)
	}
	// Seed the western half only by masking the eastern half while seeding
	seedHalf(l, SeedDensity(l.MaS))
}

func seedHalf(l *lattice.Lattice, density float64) {
	// InitRandom draws cell by cell; restrict by stamping the eastern half
	// solid, seeding, then restoring it
	half := l.DimX / 2
	saved := make([]lattice.CellType, 0, l.NumCells)
	for y := 0; y < l.DimY; y++ {
		for x := half; x < l.DimX; x++ {
			saved = append(saved, l.CellTypeAt(x, y))
			l.SetCellType(x, y, lattice.SolidNoSlip)
		}
	}
	l.InitRandom(density)
	i := 0
	for y := 0; y < l.DimY; y++ {
		for x := half; x < l.DimX; x++ {
			l.SetCellType(x, y, saved[i])
			i++
		}
	}
}

// setupCollision injects two particles on a head-on course along the x axis,
// meeting halfway across the domain.
func setupCollision(l *lattice.Lattice) {
	var (
		y    = l.DimY / 2
		west = l.DimX/2 - 1
		east = l.DimX/2 + 1
		eDir = 0
		wDir = l.Model.InvDir[eDir]
	)
	l.InitSingle(west, y, eDir)
	l.InitSingle(east, y, wDir)
}

func setupGeometryPipe(l *lattice.Lattice) {
	for x := 0; x < l.DimX; x++ {
		l.SetCellType(x, 0, lattice.SolidNoSlip)
		l.SetCellType(x, l.DimY-1, lattice.SolidNoSlip)
	}
}
