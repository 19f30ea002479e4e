package model

// Collision tables.
//
// Every rule below swaps or cycles whole equivalence classes of node patterns
// with equal mass and momentum, so each table is a permutation of the pattern
// space and conserves both quantities entry by entry. Patterns outside any
// rule class map to themselves.
//
// HPP: the two head-on pairs exchange (90 degree rotation).
// FHP-I: head-on pairs rotate +-60 degrees selected by the tiebreak bit;
// the two symmetric three-particle patterns invert.
// FHP-II: adds the rest particle: a lone mover plus rest exchanges with the
// 120-degree pair straddling it, and the FHP-I rules run with a resting
// spectator.
// FHP-III: adds the four-particle double-head-on rotation; slot 7 is a
// reserved spectator bit.

func buildCollisionLUT(m Model) (lut [2][]uint8) {
	size := 1 << uint(m.NumDir())
	for b := 0; b < 2; b++ {
		lut[b] = make([]uint8, size)
		for p := 0; p < size; p++ {
			lut[b][p] = uint8(p)
		}
	}
	switch m {
	case HPP:
		applyHPPRules(&lut)
	case FHPI:
		applyFHPMoverRules(&lut, 0, false)
	case FHPII:
		applyFHPMoverRules(&lut, 0, false)
		applyFHPMoverRules(&lut, restBit, false)
		applyFHPRestRules(&lut, 0)
	case FHPIII:
		for _, spectator := range []uint8{0, spareBit, restBit, restBit | spareBit} {
			applyFHPMoverRules(&lut, spectator, true)
		}
		applyFHPRestRules(&lut, 0)
		applyFHPRestRules(&lut, spareBit)
	}
	return
}

const (
	restBit  = 1 << 6
	spareBit = 1 << 7
)

func applyHPPRules(lut *[2][]uint8) {
	var (
		ew = uint8(1<<0 | 1<<2)
		ns = uint8(1<<1 | 1<<3)
	)
	for b := 0; b < 2; b++ {
		lut[b][ew] = ns
		lut[b][ns] = ew
	}
}

// headOnPair returns the two-particle pattern {d, d+3} on the six moving
// directions.
func headOnPair(d int) uint8 {
	return 1<<uint(d%3) | 1<<uint(d%3+3)
}

// applyFHPMoverRules installs the mover-only FHP collisions, all patterns
// carrying the given spectator bits unchanged. With fourBody set the dual
// four-particle head-on states rotate as well.
func applyFHPMoverRules(lut *[2][]uint8, spectator uint8, fourBody bool) {
	const full6 = uint8(1<<6 - 1)
	// Head-on pairs cycle through the three collision axes, the tiebreak bit
	// picking the sense of rotation
	for d := 0; d < 3; d++ {
		lut[0][headOnPair(d)|spectator] = headOnPair(d+1) | spectator
		lut[1][headOnPair(d)|spectator] = headOnPair(d+2) | spectator
	}
	// Symmetric three-particle states invert
	var (
		triEven = uint8(1<<0 | 1<<2 | 1<<4)
		triOdd  = uint8(1<<1 | 1<<3 | 1<<5)
	)
	for b := 0; b < 2; b++ {
		lut[b][triEven|spectator] = triOdd | spectator
		lut[b][triOdd|spectator] = triEven | spectator
	}
	if fourBody {
		for d := 0; d < 3; d++ {
			lut[0][full6^headOnPair(d)|spectator] = full6 ^ headOnPair(d+1) | spectator
			lut[1][full6^headOnPair(d)|spectator] = full6 ^ headOnPair(d+2) | spectator
		}
	}
}

// applyFHPRestRules installs the rest-particle exchange: a mover in direction
// d plus the rest particle trades with the pair {d+1, d-1}, whose momentum sum
// equals the lone mover's.
func applyFHPRestRules(lut *[2][]uint8, spectator uint8) {
	for d := 0; d < 6; d++ {
		var (
			single = uint8(1<<uint(d)) | restBit | spectator
			pair   = uint8(1<<uint((d+1)%6)|1<<uint((d+5)%6)) | spectator
		)
		for b := 0; b < 2; b++ {
			lut[b][single] = pair
			lut[b][pair] = single
		}
	}
}
