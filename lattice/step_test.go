package lattice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/myousefi2016/lgca/model"
)

func TestHPPHeadOnCollision(t *testing.T) {
	// Two particles on a head-on course along the x axis meet in one cell,
	// rotate to the north-south axis and separate vertically
	l, err := New(newTestConfig(model.HPP, 4, 4))
	assert.NoError(t, err)
	l.InitSingle(0, 1, 0) // eastbound
	l.InitSingle(2, 1, 2) // westbound

	l.CollideAndPropagate()
	assert.Equal(t, uint8(1<<1|1<<3), l.CellPattern(1, 1))
	assert.Equal(t, 2, l.NumParticles())

	l.CollideAndPropagate()
	assert.True(t, l.NodeAt(1, 2, 1))
	assert.True(t, l.NodeAt(1, 0, 3))
	assert.Equal(t, 2, l.NumParticles())
}

func TestMassConservation(t *testing.T) {
	// A periodic all-fluid FHP-I lattice conserves the particle count at
	// every step boundary
	l, err := New(newTestConfig(model.FHPI, 32, 32))
	assert.NoError(t, err)
	l.InitRandom(0.3)
	initial := l.NumParticles()
	assert.Greater(t, initial, 0)
	for step := 0; step < 1000; step++ {
		l.CollideAndPropagate()
		assert.Equal(t, initial, l.NumParticles())
	}
}

func TestMassConservationAllModels(t *testing.T) {
	for _, m := range []model.Model{model.HPP, model.FHPII, model.FHPIII} {
		l, err := New(newTestConfig(m, 16, 16))
		assert.NoError(t, err)
		l.InitRandom(0.4)
		initial := l.NumParticles()
		for step := 0; step < 100; step++ {
			l.CollideAndPropagate()
			assert.Equal(t, initial, l.NumParticles())
		}
	}
}

func TestBounceBackWall(t *testing.T) {
	// A single northbound particle in an 8-row channel with no-slip top and
	// bottom walls retraces its path with period 14
	l, err := New(newTestConfig(model.HPP, 8, 8))
	assert.NoError(t, err)
	for x := 0; x < 8; x++ {
		l.SetCellType(x, 0, SolidNoSlip)
		l.SetCellType(x, 7, SolidNoSlip)
	}
	l.InitSingle(3, 6, 1)

	l.CollideAndPropagate() // step 1: reaches the top wall, reversed
	assert.True(t, l.NodeAt(3, 7, 3))
	l.CollideAndPropagate() // step 2: moving south again
	assert.True(t, l.NodeAt(3, 6, 3))
	for step := 3; step <= 8; step++ {
		l.CollideAndPropagate()
	}
	assert.True(t, l.NodeAt(3, 0, 1)) // reversed off the bottom wall
	for step := 9; step <= 14; step++ {
		l.CollideAndPropagate()
	}
	assert.True(t, l.NodeAt(3, 6, 1)) // back at the origin
	assert.Equal(t, 1, l.NumParticles())
}

func TestSlipWall(t *testing.T) {
	// A northeast-bound FHP particle reflects off a free-slip top wall to the
	// southeast, keeping its x velocity component
	l, err := New(newTestConfig(model.FHPI, 8, 8))
	assert.NoError(t, err)
	for x := 0; x < 8; x++ {
		l.SetCellType(x, 0, SolidSlip)
		l.SetCellType(x, 7, SolidSlip)
	}
	l.InitSingle(3, 6, 1)

	l.CollideAndPropagate() // arrives at the wall cell, mirrored across x
	assert.True(t, l.NodeAt(3, 7, 5))
	l.CollideAndPropagate() // leaves southeastward
	assert.True(t, l.NodeAt(4, 6, 5))
	assert.Equal(t, 1, l.NumParticles())
}

// identityCollisions disables collisions so the step operator is pure
// propagation.
func identityCollisions(l *Lattice) {
	size := 1 << uint(l.Model.NumDir)
	for b := 0; b < 2; b++ {
		lut := make([]uint8, size)
		for p := 0; p < size; p++ {
			lut[p] = uint8(p)
		}
		l.Model.CollisionLUT[b] = lut
	}
}

// applyDirPermutation rewrites every cell pattern of the current buffer
// through the given table.
func applyDirPermutation(l *Lattice, lut []uint8) {
	for cell := 0; cell < l.NumCells; cell++ {
		var (
			base = cell * model.Stride
			p    uint8
		)
		for dir := 0; dir < l.Model.NumDir; dir++ {
			if l.nodeState.Test(base + dir) {
				p |= 1 << uint(dir)
			}
		}
		q := lut[p]
		for dir := 0; dir < l.Model.NumDir; dir++ {
			l.nodeState.SetTo(base+dir, q&(1<<uint(dir)) != 0)
		}
	}
}

func TestPropagationReversibility(t *testing.T) {
	// On a fully fluid periodic lattice, propagation followed by inverted
	// propagation restores the original state
	for _, m := range []model.Model{model.HPP, model.FHPI, model.FHPII, model.FHPIII} {
		l, err := New(newTestConfig(m, 12, 10))
		assert.NoError(t, err)
		identityCollisions(l)
		l.InitRandom(0.4)

		before := make([]uint8, l.NumCells)
		for cell := 0; cell < l.NumCells; cell++ {
			before[cell] = l.CellPattern(cell%l.DimX, cell/l.DimX)
		}

		l.CollideAndPropagate()
		applyDirPermutation(l, l.Model.BounceBackLUT)
		l.CollideAndPropagate()
		applyDirPermutation(l, l.Model.BounceBackLUT)

		for cell := 0; cell < l.NumCells; cell++ {
			assert.Equal(t, before[cell], l.CellPattern(cell%l.DimX, cell/l.DimX))
		}
	}
}

func TestBodyForce(t *testing.T) {
	{ // FHP x forcing moves westbound particles east
		l, err := New(newTestConfig(model.FHPI, 16, 16))
		assert.NoError(t, err)
		for x := 0; x < 16; x++ {
			for y := 0; y < 16; y++ {
				l.InitSingle(x, y, 3)
			}
		}
		initial := l.NumParticles()
		reverted := l.ApplyBodyForce(BodyForceX, 10)
		assert.Equal(t, 10, reverted)
		assert.Equal(t, initial, l.NumParticles())
	}
	{ // Saturated lattice hits the iteration bound instead of spinning
		l, err := New(newTestConfig(model.FHPI, 8, 8))
		assert.NoError(t, err)
		reverted := l.ApplyBodyForce(BodyForceX, 5)
		assert.Equal(t, 0, reverted)
	}
	{ // Solid cells are left alone
		l, err := New(newTestConfig(model.HPP, 8, 8))
		assert.NoError(t, err)
		for x := 0; x < 8; x++ {
			for y := 0; y < 8; y++ {
				l.SetCellType(x, y, SolidNoSlip)
				l.InitSingle(x, y, 2)
			}
		}
		reverted := l.ApplyBodyForce(BodyForceX, 5)
		assert.Equal(t, 0, reverted)
		for x := 0; x < 8; x++ {
			for y := 0; y < 8; y++ {
				assert.Equal(t, uint8(1<<2), l.CellPattern(x, y))
			}
		}
	}
}
