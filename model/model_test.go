package model

import (
	"math"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
)

const tol = 1.e-12

var allModels = []Model{HPP, FHPI, FHPII, FHPIII}

func TestDirectionMaps(t *testing.T) {
	for _, m := range allModels {
		md := NewDescriptor(m)
		assert.Equal(t, m.NumDir(), len(md.InvDir))
		for d := 0; d < md.NumDir; d++ {
			// Inversion is an involution and negates the lattice vector
			assert.Equal(t, d, md.InvDir[md.InvDir[d]])
			assert.InDelta(t, -md.LatticeVecX[d], md.LatticeVecX[md.InvDir[d]], tol)
			assert.InDelta(t, -md.LatticeVecY[d], md.LatticeVecY[md.InvDir[d]], tol)
			// Mirrors are involutions and flip exactly one component
			assert.Equal(t, d, md.MirDirX[md.MirDirX[d]])
			assert.Equal(t, d, md.MirDirY[md.MirDirY[d]])
			assert.InDelta(t, md.LatticeVecX[d], md.LatticeVecX[md.MirDirX[d]], tol)
			assert.InDelta(t, -md.LatticeVecY[d], md.LatticeVecY[md.MirDirX[d]], tol)
			assert.InDelta(t, -md.LatticeVecX[d], md.LatticeVecX[md.MirDirY[d]], tol)
			assert.InDelta(t, md.LatticeVecY[d], md.LatticeVecY[md.MirDirY[d]], tol)
		}
		// Rest slots carry no momentum
		for d := m.NumMovingDir(); d < md.NumDir; d++ {
			assert.Equal(t, 0., md.LatticeVecX[d])
			assert.Equal(t, 0., md.LatticeVecY[d])
		}
	}
}

func momentum(md *Descriptor, p int) (mx, my float64) {
	for d := 0; d < md.NumDir; d++ {
		if p&(1<<uint(d)) != 0 {
			mx += md.LatticeVecX[d]
			my += md.LatticeVecY[d]
		}
	}
	return
}

func TestCollisionConservation(t *testing.T) {
	// For every input pattern and tiebreak bit, collision preserves particle
	// count and momentum
	for _, m := range allModels {
		md := NewDescriptor(m)
		size := 1 << uint(md.NumDir)
		for b := 0; b < 2; b++ {
			for p := 0; p < size; p++ {
				q := int(md.CollisionLUT[b][p])
				assert.Equal(t, bits.OnesCount(uint(p)), bits.OnesCount(uint(q)))
				pmx, pmy := momentum(md, p)
				qmx, qmy := momentum(md, q)
				assert.InDelta(t, pmx, qmx, tol)
				assert.InDelta(t, pmy, qmy, tol)
			}
		}
	}
}

func TestLUTPermutations(t *testing.T) {
	// Every table is a bijection of the pattern space
	checkPermutation := func(lut []uint8) {
		seen := make([]bool, len(lut))
		for _, q := range lut {
			assert.False(t, seen[q])
			seen[q] = true
		}
	}
	for _, m := range allModels {
		md := NewDescriptor(m)
		checkPermutation(md.CollisionLUT[0])
		checkPermutation(md.CollisionLUT[1])
		checkPermutation(md.BounceBackLUT)
		checkPermutation(md.BounceForwardXLUT)
		checkPermutation(md.BounceForwardYLUT)
	}
}

func TestBounceInvolutions(t *testing.T) {
	for _, m := range allModels {
		md := NewDescriptor(m)
		for p := 0; p < 1<<uint(md.NumDir); p++ {
			assert.Equal(t, uint8(p), md.BounceBackLUT[md.BounceBackLUT[p]])
			assert.Equal(t, uint8(p), md.BounceForwardXLUT[md.BounceForwardXLUT[p]])
			assert.Equal(t, uint8(p), md.BounceForwardYLUT[md.BounceForwardYLUT[p]])
		}
	}
}

func TestHPPHeadOnRotation(t *testing.T) {
	// The two-particle head-on input rotates by 90 degrees for either
	// tiebreak bit
	md := NewDescriptor(HPP)
	var (
		ew = uint8(1<<0 | 1<<2)
		ns = uint8(1<<1 | 1<<3)
	)
	for b := 0; b < 2; b++ {
		assert.Equal(t, ns, md.CollisionLUT[b][ew])
		assert.Equal(t, ew, md.CollisionLUT[b][ns])
	}
}

func TestFHPHeadOnRotation(t *testing.T) {
	// A head-on pair rotates +60 or -60 degrees depending on the tiebreak bit
	md := NewDescriptor(FHPI)
	headOn := func(d int) uint8 { return 1<<uint(d) | 1<<uint(d+3) }
	for d := 0; d < 3; d++ {
		assert.Equal(t, headOn((d+1)%3), md.CollisionLUT[0][headOn(d)])
		assert.Equal(t, headOn((d+2)%3), md.CollisionLUT[1][headOn(d)])
	}
	// Symmetric three-particle states invert
	var (
		triEven = uint8(1<<0 | 1<<2 | 1<<4)
		triOdd  = uint8(1<<1 | 1<<3 | 1<<5)
	)
	for b := 0; b < 2; b++ {
		assert.Equal(t, triOdd, md.CollisionLUT[b][triEven])
		assert.Equal(t, triEven, md.CollisionLUT[b][triOdd])
	}
}

func TestRestParticleExchange(t *testing.T) {
	// A lone mover plus the rest particle trades with the 120 degree pair
	// around it, and back
	for _, m := range []Model{FHPII, FHPIII} {
		md := NewDescriptor(m)
		for d := 0; d < 6; d++ {
			var (
				single = uint8(1<<uint(d)) | 1<<6
				pair   = uint8(1<<uint((d+1)%6) | 1<<uint((d+5)%6))
			)
			for b := 0; b < 2; b++ {
				assert.Equal(t, pair, md.CollisionLUT[b][single])
				assert.Equal(t, single, md.CollisionLUT[b][pair])
			}
		}
	}
}

func TestModelParsing(t *testing.T) {
	for _, m := range allModels {
		parsed, err := NewModel(m.String())
		assert.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
	_, err := NewModel("D2Q9")
	assert.Error(t, err)
}

func TestLatticeVectorsUnit(t *testing.T) {
	for _, m := range allModels {
		md := NewDescriptor(m)
		for d := 0; d < m.NumMovingDir(); d++ {
			assert.InDelta(t, 1., math.Hypot(md.LatticeVecX[d], md.LatticeVecY[d]), tol)
		}
	}
}
