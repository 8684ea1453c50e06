package engine

import (
	"golang.org/x/crypto/sha3"

	"github.com/randomuniverse/RUC/ruc/register"
)

// Algorithm parameters.
const (
	// BlockSize is the plaintext block size in bytes.
	BlockSize = 32
	// Rounds is the number of round-function invocations per block.
	Rounds = 24
	// RegisterCount is the number of cipher registers.
	RegisterCount = 7
	// RegisterSize is the width of one register in bytes.
	RegisterSize = register.Size
	// AccumulatorSize is the width of the accumulator buffer in bytes.
	AccumulatorSize = 128
	// SBoxSize is the size of one round's substitution table.
	SBoxSize = 256
)

// State is the mutable working state of one block: seven registers, the
// accumulator buffer and a running 64-bit sum of round output. A State is
// scoped to exactly one block; Reset rebuilds it from key material so a
// single value can be reused across a batch without heap churn.
type State struct {
	registers      [RegisterCount]register.Register
	accumulator    [AccumulatorSize]byte
	accumulatorSum uint64
}

// NewState builds a state initialized from keyMaterial, as by Reset.
func NewState(keyMaterial []byte) *State {
	s := new(State)
	s.Reset(keyMaterial)
	return s
}

// Reset loads the registers from the first 7×64 bytes of keyMaterial and
// clears the accumulator. A register is filled only when a full 64-byte
// slice is available at its offset; registers beyond the supplied key
// material stay zero.
func (s *State) Reset(keyMaterial []byte) {
	for i := 0; i < RegisterCount; i++ {
		off := i * RegisterSize
		if off+RegisterSize <= len(keyMaterial) {
			s.registers[i] = register.FromSlice(keyMaterial[off : off+RegisterSize])
		} else {
			s.registers[i] = register.Register{}
		}
	}
	s.accumulator = [AccumulatorSize]byte{}
	s.accumulatorSum = 0
}

// AccumulatorSum returns the wrapping sum of every round's scalar output
// byte processed so far in the current block.
func (s *State) AccumulatorSum() uint64 {
	return s.accumulatorSum
}

// Registers returns a flattened copy of the seven registers in order.
func (s *State) Registers() []byte {
	out := make([]byte, 0, RegisterCount*RegisterSize)
	for i := range s.registers {
		out = append(out, s.registers[i][:]...)
	}
	return out
}

// Keystream finalizes the state into the 32-byte block keystream:
// SHA3-256 over the accumulator buffer followed by registers 0..6.
//
// The accumulator buffer is never written during the rounds (only the
// scalar accumulatorSum is tracked), so the hash input always starts with
// 128 zero bytes. Hashing the zero buffer anyway is part of the cipher
// definition; changing it would change every ciphertext.
func (s *State) Keystream() [BlockSize]byte {
	h := sha3.New256()
	h.Write(s.accumulator[:])
	for i := range s.registers {
		h.Write(s.registers[i][:])
	}
	var ks [BlockSize]byte
	copy(ks[:], h.Sum(nil))
	return ks
}
