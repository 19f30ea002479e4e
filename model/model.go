package model

import (
	"fmt"
	"math"
)

// Model selects the particle-velocity set of the automaton.
type Model uint8

const (
	HPP Model = iota // 4 directions on a square lattice
	FHPI
	FHPII
	FHPIII
)

const (
	// Stride is the per-cell bit alignment of the node-state array: the bit for
	// (cell, dir) lives at cell*Stride + dir regardless of the model.
	Stride = 8

	// SpatialDim is the number of space dimensions.
	SpatialDim = 2
)

// NewModel resolves a model name as it appears in input files and on the
// command line.
func NewModel(name string) (m Model, err error) {
	switch name {
	case "HPP", "hpp":
		m = HPP
	case "FHP-I", "FHP_I", "fhp-i":
		m = FHPI
	case "FHP-II", "FHP_II", "fhp-ii":
		m = FHPII
	case "FHP-III", "FHP_III", "fhp-iii":
		m = FHPIII
	default:
		err = fmt.Errorf("unknown model %q", name)
	}
	return
}

func (m Model) String() string {
	switch m {
	case HPP:
		return "HPP"
	case FHPI:
		return "FHP-I"
	case FHPII:
		return "FHP-II"
	case FHPIII:
		return "FHP-III"
	}
	return "INVALID"
}

// NumDir returns the number of node slots per cell: 4 (HPP), 6 (FHP-I),
// 7 (FHP-II, adds a rest particle), 8 (FHP-III, rest particle plus a reserved
// slot with richer collisions).
func (m Model) NumDir() int {
	switch m {
	case HPP:
		return 4
	case FHPI:
		return 6
	case FHPII:
		return 7
	case FHPIII:
		return 8
	}
	return 0
}

// HasRest reports whether the model carries a rest particle in slot 6.
func (m Model) HasRest() bool {
	return m == FHPII || m == FHPIII
}

// NumMovingDir returns the number of directions with nonzero lattice vectors.
func (m Model) NumMovingDir() int {
	if m == HPP {
		return 4
	}
	return 6
}

// Descriptor is the per-model record the kernels read: direction counts,
// lattice basis vectors, direction maps and the collision/bounce lookup
// tables. All fields are immutable after construction.
type Descriptor struct {
	Model  Model
	NumDir int

	// Unit lattice vectors per direction; zero for rest slots.
	LatticeVecX []float64
	LatticeVecY []float64

	// InvDir maps a direction to its opposite; MirDirX and MirDirY map a
	// direction to its mirror image across the x- and y-axes.
	InvDir  []int
	MirDirX []int
	MirDirY []int

	// CollisionLUT maps an input node pattern and a tiebreak bit to the
	// post-collision pattern. BounceBackLUT reverses every particle,
	// BounceForwardXLUT and BounceForwardYLUT reflect across the respective
	// axis. All four tables are permutations of the pattern space.
	CollisionLUT      [2][]uint8
	BounceBackLUT     []uint8
	BounceForwardXLUT []uint8
	BounceForwardYLUT []uint8
}

// NewDescriptor builds the descriptor for the given model. The tables are
// derived once here; the stepping kernels index them without branching on the
// model.
func NewDescriptor(m Model) (md *Descriptor) {
	var (
		numDir = m.NumDir()
	)
	md = &Descriptor{
		Model:       m,
		NumDir:      numDir,
		LatticeVecX: make([]float64, numDir),
		LatticeVecY: make([]float64, numDir),
		InvDir:      make([]int, numDir),
		MirDirX:     make([]int, numDir),
		MirDirY:     make([]int, numDir),
	}
	md.buildDirectionMaps()
	md.BounceBackLUT = buildPermutationLUT(md.InvDir, numDir)
	md.BounceForwardXLUT = buildPermutationLUT(md.MirDirX, numDir)
	md.BounceForwardYLUT = buildPermutationLUT(md.MirDirY, numDir)
	md.CollisionLUT = buildCollisionLUT(m)
	return
}

func (md *Descriptor) buildDirectionMaps() {
	var (
		m       = md.Model
		nMoving = m.NumMovingDir()
	)
	for d := 0; d < nMoving; d++ {
		theta := 2 * math.Pi * float64(d) / float64(nMoving)
		md.LatticeVecX[d] = math.Cos(theta)
		md.LatticeVecY[d] = math.Sin(theta)
		md.InvDir[d] = (d + nMoving/2) % nMoving
		md.MirDirX[d] = (nMoving - d) % nMoving
		// Reflection across the y-axis maps angle theta to pi-theta
		md.MirDirY[d] = (nMoving/2 - d + nMoving) % nMoving
	}
	// Rest slots map to themselves under every reflection
	for d := nMoving; d < md.NumDir; d++ {
		md.InvDir[d] = d
		md.MirDirX[d] = d
		md.MirDirY[d] = d
	}
}

// buildPermutationLUT expands a direction permutation into a full
// pattern-space table.
func buildPermutationLUT(dirMap []int, numDir int) (lut []uint8) {
	size := 1 << uint(numDir)
	lut = make([]uint8, size)
	for p := 0; p < size; p++ {
		var q uint8
		for d := 0; d < numDir; d++ {
			if p&(1<<uint(d)) != 0 {
				q |= 1 << uint(dirMap[d])
			}
		}
		lut[p] = q
	}
	return
}
