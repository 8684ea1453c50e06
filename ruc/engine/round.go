package engine

import (
	"github.com/randomuniverse/RUC/ruc/gf"
	"github.com/randomuniverse/RUC/ruc/register"
)

// executeRound applies one round of substitution/permutation/mixing to the
// state. It reports whether the round was actually processed: if roundKey is
// shorter than a register or sbox shorter than a full table the round is a
// no-op and false is returned. Input validation beyond that is the caller's
// responsibility.
//
// The destination register of each selector step is derived from live state
// (register 0), so the access pattern is key- and state-dependent. That is
// the cipher's diffusion mechanism, not an accident, and it is not intended
// to be constant-time.
func (s *State) executeRound(selectors []uint16, sbox, roundKey, keyConstants []byte) bool {
	if len(roundKey) < RegisterSize || len(sbox) < SBoxSize {
		return false
	}

	rk := register.FromSlice(roundKey[:RegisterSize])
	rkWord := rk.Uint64()

	for selIdx, sel := range selectors {
		// Destination register: (R0 ^ selector ^ roundKey) mod 7,
		// narrowed to 32 bits first.
		destWord := (s.registers[0].Uint64() ^ uint64(sel) ^ rkWord) & 0xFFFFFFFF
		place := int(destWord % RegisterCount)

		// Nonlinear path: GF-multiply the doubled selector's low byte
		// against the target register's top byte, fold in the key
		// constant, then substitute.
		temp := sel * 2
		gfResult := gf.Mul(byte(temp), s.registers[place][0])
		if selIdx < len(keyConstants) {
			gfResult ^= keyConstants[selIdx]
		}
		result := sbox[gfResult]

		reg := s.registers[place].MulScalar(result)

		// Shift amounts of 8..15 contribute nothing here. Part of the
		// cipher definition, not a missing case.
		if shift := sel % 16; shift < 8 {
			reg[0] ^= result << shift
		}

		reg[RegisterSize-1] ^= sbox[reg[RegisterSize-1]]
		reg = reg.RotateLeft(1)

		s.registers[place] = register.XOR(reg, s.registers[(place+1)%RegisterCount])

		s.accumulatorSum += uint64(result)
	}

	// Inter-round diffusion. Each register folds in its two cyclic
	// successors, reading the state as progressively updated; the
	// iteration order is part of the cipher definition.
	for i := 0; i < RegisterCount; i++ {
		s.registers[i] = register.XOR(s.registers[i], s.registers[(i+1)%RegisterCount])
		s.registers[i] = register.XOR(s.registers[i], s.registers[(i+2)%RegisterCount])
	}
	return true
}
